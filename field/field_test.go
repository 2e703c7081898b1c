package field_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/julianliedtke/kryvos-go/field"
)

func TestArithmeticOverSmallPrime(t *testing.T) {
	f := field.New(big.NewInt(13))

	a := f.ElemInt64(7)
	b := f.ElemInt64(9)

	assert.Equal(t, "3", a.Add(b).String()) // 16 mod 13
	assert.Equal(t, "11", a.Sub(b).String()) // -2 mod 13
	assert.Equal(t, "6", a.Neg().String())   // -7 mod 13
	assert.Equal(t, "11", a.Mul(b).String()) // 63 mod 13
}

func TestInverseRoundTrips(t *testing.T) {
	f := field.New(big.NewInt(251))
	for i := int64(1); i < 251; i++ {
		e := f.ElemInt64(i)
		inv, err := e.Inverse()
		assert.NoError(t, err)
		assert.True(t, e.Mul(inv).Equal(f.One()))
	}
}

func TestInverseOfZeroIsInvalid(t *testing.T) {
	f := field.New(big.NewInt(13))
	_, err := f.Zero().Inverse()
	assert.ErrorIs(t, err, field.ErrInvalid)
}

func TestDivByZeroIsInvalid(t *testing.T) {
	f := field.New(big.NewInt(13))
	_, err := f.ElemInt64(5).Div(f.Zero())
	assert.ErrorIs(t, err, field.ErrInvalid)
}

func TestDivUndoesMul(t *testing.T) {
	f := field.New(big.NewInt(251))
	a := f.ElemInt64(37)
	b := f.ElemInt64(101)
	prod := a.Mul(b)
	quot, err := prod.Div(b)
	assert.NoError(t, err)
	assert.True(t, quot.Equal(a))
}

func TestPowMatchesRepeatedMul(t *testing.T) {
	f := field.New(big.NewInt(251))
	a := f.ElemInt64(5)
	want := f.One()
	for i := 0; i < 7; i++ {
		want = want.Mul(a)
	}
	got := a.Pow(big.NewInt(7))
	assert.True(t, want.Equal(got))
}

func TestBitLen(t *testing.T) {
	f := field.New(big.NewInt(13))
	assert.Equal(t, 4, f.BitLen())
}

// TestEveryNonZeroElementInverts quantifies spec.md §8's "for every field
// element a != 0: a * a^-1 == 1" invariant over randomly generated
// elements of a large prime field, rather than the exhaustive small-prime
// sweep above.
func TestEveryNonZeroElementInverts(t *testing.T) {
	const modulus = 2147483647 // 2^31 - 1, Mersenne prime
	f := field.New(big.NewInt(modulus))

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("a * inverse(a) == 1 for a != 0", prop.ForAll(
		func(a int64) bool {
			e := f.ElemInt64(a)
			inv, err := e.Inverse()
			if err != nil {
				return false
			}
			return e.Mul(inv).Equal(f.One())
		},
		gen.Int64Range(1, modulus-1),
	))
	properties.TestingRun(t)
}

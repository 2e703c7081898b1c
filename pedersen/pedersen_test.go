package pedersen_test

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/curve"
	"github.com/julianliedtke/kryvos-go/pedersen"
)

func newPedersenBuilder() (*circuit.Builder, circuit.Wire, circuit.Wire) {
	b := circuit.New(big.NewInt(13))
	return b, b.Const(3), b.Const(1) // A, B
}

func point(b *circuit.Builder, x, y, z int64) curve.HomogeneousPoint {
	return curve.HomogeneousPoint{X: b.Const(x), Y: b.Const(y), Z: b.Const(z)}
}

func bits(b *circuit.Builder, vals ...int64) []circuit.Wire {
	out := make([]circuit.Wire, len(vals))
	for i, v := range vals {
		out[i] = b.Const(v)
	}
	return out
}

func TestCommitBitRandomness(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 4, 8, 1)
	h := point(b, 10, 6, 1)

	com, err := pedersen.CommitBitRandomness(b, A, B, g, h, 3, bits(b, 1, 1, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, "4", com.X.String())
	assert.Equal(t, "8", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

func TestCommitBitRandomnessRespectsMaxBitsM(t *testing.T) {
	g := func() (*circuit.Builder, circuit.Wire, circuit.Wire) { return newPedersenBuilder() }
	for n := 4; n < 6; n++ {
		b, A, B := g()
		gp := point(b, 4, 8, 1)
		h := point(b, 10, 6, 1)

		com, err := pedersen.CommitBitRandomness(b, A, B, gp, h, 3, bits(b, 1, 1, 0), n)
		require.NoError(t, err)
		assert.Equal(t, "4", com.X.String())
		assert.Equal(t, "8", com.Y.String())
		assert.Equal(t, "1", com.Z.String())
	}
}

func TestCommitBitRandomnessHInfinity(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 10, 7, 1)
	h := point(b, 0, 1, 0)

	com, err := pedersen.CommitBitRandomness(b, A, B, g, h, 7, bits(b, 1, 0, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "10", com.X.String())
	assert.Equal(t, "6", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

func TestCommitBitRandomnessGInfinity(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 0, 1, 0)
	h := point(b, 10, 7, 1)

	com, err := pedersen.CommitBitRandomness(b, A, B, g, h, 5, bits(b, 1, 1, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "10", com.X.String())
	assert.Equal(t, "6", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

func TestCommitBitRandomnessBothInfinity(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 0, 1, 0)
	h := point(b, 0, 1, 0)

	com, err := pedersen.CommitBitRandomness(b, A, B, g, h, 5, bits(b, 1, 1, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "0", com.X.String())
	assert.Equal(t, "1", com.Y.String())
	assert.Equal(t, "0", com.Z.String())
}

func TestCommitBitRandomnessHZeroPoint(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 12, 1, 1)
	h := point(b, 0, 0, 1)

	com, err := pedersen.CommitBitRandomness(b, A, B, g, h, 5, bits(b, 1, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, "12", com.X.String())
	assert.Equal(t, "12", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

func TestCommitBitRandomnessExample(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 10, 7, 1)
	h := point(b, 4, 8, 1)

	com, err := pedersen.CommitBitRandomness(b, A, B, g, h, 9, bits(b, 1, 0, 0, 0), 0)
	require.NoError(t, err)
	assert.Equal(t, "12", com.X.String())
	assert.Equal(t, "11", com.Y.String())
	assert.Equal(t, "9", com.Z.String())
}

func TestCommit(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 4, 8, 1)
	h := point(b, 10, 6, 1)

	com, err := pedersen.Commit(b, A, B, g, h, 3, 6)
	require.NoError(t, err)
	assert.Equal(t, "4", com.X.String())
	assert.Equal(t, "8", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

func TestCommitHInfinity(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 10, 7, 1)
	h := point(b, 0, 1, 0)

	com, err := pedersen.Commit(b, A, B, g, h, 7, 5)
	require.NoError(t, err)
	assert.Equal(t, "10", com.X.String())
	assert.Equal(t, "6", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

func TestCommitExample(t *testing.T) {
	b, A, B := newPedersenBuilder()
	g := point(b, 10, 7, 1)
	h := point(b, 4, 8, 1)

	com, err := pedersen.Commit(b, A, B, g, h, 9, 8)
	require.NoError(t, err)
	assert.Equal(t, "12", com.X.String())
	assert.Equal(t, "11", com.Y.String())
	assert.Equal(t, "9", com.Z.String())
}

func TestCommitVectorBitRandomness(t *testing.T) {
	b, A, B := newPedersenBuilder()
	gs := []curve.HomogeneousPoint{
		point(b, 4, 5, 1),
		point(b, 10, 7, 1),
		point(b, 12, 12, 1),
	}
	h := point(b, 10, 6, 1)
	ms := []circuit.Operand{int64(3), int64(2), int64(4)}
	rBits := bits(b, 1, 0)

	com, err := pedersen.CommitVectorBitRandomness(b, A, B, gs, h, ms, rBits, 0)
	require.NoError(t, err)
	assert.Equal(t, "10", com.X.String())
	assert.Equal(t, "6", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

func TestCommitVector(t *testing.T) {
	b, A, B := newPedersenBuilder()
	gs := []curve.HomogeneousPoint{
		point(b, 4, 5, 1),
		point(b, 10, 7, 1),
		point(b, 12, 12, 1),
	}
	h := point(b, 10, 6, 1)
	ms := []circuit.Operand{int64(3), int64(2), int64(4)}

	com, err := pedersen.CommitVector(b, A, B, gs, h, ms, int64(2))
	require.NoError(t, err)
	assert.Equal(t, "10", com.X.String())
	assert.Equal(t, "6", com.Y.String())
	assert.Equal(t, "1", com.Z.String())
}

// TestCommitIsHomomorphic quantifies spec.md §8's commitment-homomorphism
// invariant: commit(g,h,m1,r1) + commit(g,h,m2,r2) == commit(g,h,m1+m2,r1+r2).
func TestCommitIsHomomorphic(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("commit(m1,r1) + commit(m2,r2) == commit(m1+m2,r1+r2)", prop.ForAll(
		func(m1, r1, m2, r2 int64) bool {
			b, A, B := newPedersenBuilder()
			g := point(b, 4, 8, 1)
			h := point(b, 10, 6, 1)

			com1, err := pedersen.Commit(b, A, B, g, h, m1, r1)
			if err != nil {
				return false
			}
			com2, err := pedersen.Commit(b, A, B, g, h, m2, r2)
			if err != nil {
				return false
			}
			sum := curve.AddHomogeneousPoints(b, A, B, com1, com2)

			comCombined, err := pedersen.Commit(b, A, B, g, h, m1+m2, r1+r2)
			if err != nil {
				return false
			}

			return sum.X.String() == comCombined.X.String() &&
				sum.Y.String() == comCombined.Y.String() &&
				sum.Z.String() == comCombined.Z.String()
		},
		gen.Int64Range(0, 50),
		gen.Int64Range(0, 50),
		gen.Int64Range(0, 50),
		gen.Int64Range(0, 50),
	))
	properties.TestingRun(t)
}

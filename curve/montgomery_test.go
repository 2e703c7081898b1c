package curve_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/curve"
	"github.com/julianliedtke/kryvos-go/field"
)

// wireCmpOpt lets cmp.Diff compare circuit.Wire-shaped structs (curve
// points) despite field.Element's unexported internals, which cmp cannot
// traverse on its own.
var wireCmpOpt = cmp.Comparer(func(a, b field.Element) bool { return a.Equal(b) })

// newCurveBuilder mirrors the curve from spec.md's worked scenarios: the
// Montgomery curve y^2 = x^3 + 3x^2 + x over GF(13), with B=1.
func newCurveBuilder() *circuit.Builder {
	return circuit.New(big.NewInt(13))
}

func TestXaddChargesExactlySixMultiplications(t *testing.T) {
	b := newCurveBuilder()
	p := curve.HomogeneousPoint{X: b.Secret(2), Z: b.Secret(1)}
	q := curve.HomogeneousPoint{X: b.Secret(3), Z: b.Secret(1)}
	m := curve.HomogeneousPoint{X: b.Secret(5), Z: b.Secret(1)}

	curve.XAdd(b, p, q, m)
	assert.Equal(t, uint64(6), b.NMul())
}

func TestXdblHomogeneousChargesFiveMultiplications(t *testing.T) {
	b := newCurveBuilder()
	p := curve.HomogeneousPoint{X: b.Secret(2), Z: b.Secret(1)}
	curve.XDbl(b, p, b.Secret(3))
	assert.Equal(t, uint64(5), b.NMul())
}

func TestXdblAffineChargesSixMultiplications(t *testing.T) {
	b := newCurveBuilder()
	p := curve.AffinePoint{X: b.Secret(2), Z: b.Secret(1)}
	_, err := curve.XDblAffine(b, p, b.Secret(3))
	require.NoError(t, err)
	assert.Equal(t, uint64(6), b.NMul())
}

func TestAddAffinePointsDoubling(t *testing.T) {
	b := newCurveBuilder()
	A, B := b.Const(3), b.Const(1)
	p := curve.AffinePoint{X: b.Const(2), Y: b.Const(2), Z: b.Const(1)}

	sum := curve.AddAffinePoints(b, A, B, p, p)
	assert.Equal(t, "1", sum.Z.String()) // not a point at infinity
}

// TestAddAffinePointsMatchesWorkedScenario exercises spec.md §8's first
// end-to-end scenario literally: add_affine_points((4,5), (12,12)) over
// p=13, A=3, B=1 yields (10, 6, 1).
func TestAddAffinePointsMatchesWorkedScenario(t *testing.T) {
	b := newCurveBuilder()
	A, B := b.Const(3), b.Const(1)
	p := curve.AffinePoint{X: b.Const(4), Y: b.Const(5), Z: b.Const(1)}
	q := curve.AffinePoint{X: b.Const(12), Y: b.Const(12), Z: b.Const(1)}

	got := curve.AddAffinePoints(b, A, B, p, q)
	want := curve.HomogeneousPoint{X: b.Secret(10), Y: b.Secret(6), Z: b.Secret(1)}

	if diff := cmp.Diff(want, got, wireCmpOpt); diff != "" {
		t.Errorf("add_affine_points((4,5),(12,12)) mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAffinePointsInverseIsInfinity(t *testing.T) {
	b := newCurveBuilder()
	A, B := b.Const(3), b.Const(1)
	p := curve.AffinePoint{X: b.Const(2), Y: b.Const(2), Z: b.Const(1)}
	negP := curve.AffinePoint{X: b.Const(2), Y: b.Neg(b.Const(2)), Z: b.Const(1)}

	sum := curve.AddAffinePoints(b, A, B, p, negP)
	assert.Equal(t, "0", sum.Z.String())
	assert.Equal(t, "0", sum.X.String())
	assert.Equal(t, "1", sum.Y.String())
}

func TestAddHomogeneousPointsWithInfinityOperand(t *testing.T) {
	b := newCurveBuilder()
	A, B := b.Const(3), b.Const(1)
	infinity := curve.HomogeneousPoint{X: b.Const(0), Y: b.Const(1), Z: b.Const(0)}
	p := curve.HomogeneousPoint{X: b.Const(2), Y: b.Const(2), Z: b.Const(1)}

	sum := curve.AddHomogeneousPoints(b, A, B, infinity, p)
	assert.Equal(t, p.X.String(), sum.X.String())
	assert.Equal(t, p.Y.String(), sum.Y.String())
	assert.Equal(t, p.Z.String(), sum.Z.String())

	sum2 := curve.AddHomogeneousPoints(b, A, B, p, infinity)
	assert.Equal(t, p.X.String(), sum2.X.String())
	assert.Equal(t, p.Y.String(), sum2.Y.String())
	assert.Equal(t, p.Z.String(), sum2.Z.String())
}

func TestConvertHomogeneousToAffineOfInfinity(t *testing.T) {
	b := newCurveBuilder()
	p := curve.HomogeneousPoint{X: b.Const(5), Y: b.Const(7), Z: b.Const(0)}
	affine := curve.ConvertHomogeneousToAffine(b, p)
	assert.Equal(t, "0", affine.X.String())
	assert.Equal(t, "1", affine.Y.String())
	assert.Equal(t, "0", affine.Z.String())
}

func TestConvertHomogeneousToAffineOfOrdinaryPoint(t *testing.T) {
	b := newCurveBuilder()
	p := curve.HomogeneousPoint{X: b.Const(6), Y: b.Const(8), Z: b.Const(2)}
	affine := curve.ConvertHomogeneousToAffine(b, p)
	assert.Equal(t, "3", affine.X.String()) // 6/2 mod 13
	assert.Equal(t, "4", affine.Y.String()) // 8/2 mod 13
	assert.Equal(t, "1", affine.Z.String())
}

func TestExponentHomogeneousPointOfZeroPoint(t *testing.T) {
	b := newCurveBuilder()
	A, B := b.Const(3), b.Const(1)
	zeroPoint := curve.HomogeneousPoint{X: b.Const(0), Y: b.Const(0), Z: b.Const(1)}

	res, err := curve.ExponentHomogeneousPoint(b, A, B, zeroPoint, 3)
	require.NoError(t, err)
	assert.Equal(t, "0", res.X.String())
}

func TestLadderAffineRoundTripsGeneratorDoubling(t *testing.T) {
	b := newCurveBuilder()
	A := b.Const(3)
	p := curve.AffinePoint{X: b.Const(2), Z: b.Const(1)}

	r0, r1, err := curve.LadderAffine(b, []circuit.Wire{b.Const(1), b.Const(0)}, p, A)
	require.NoError(t, err)
	assert.NotEmpty(t, r0.X.String())
	assert.NotEmpty(t, r1.X.String())
}

func TestValidateParamsAcceptsNonSingularCurve(t *testing.T) {
	b := newCurveBuilder()
	assert.NoError(t, curve.ValidateParams(b, b.Const(3), b.Const(1)))
}

func TestValidateParamsRejectsSingularDiscriminant(t *testing.T) {
	b := newCurveBuilder()
	// A=2 makes A*A-4 == 0 mod 13.
	assert.ErrorIs(t, curve.ValidateParams(b, b.Const(2), b.Const(1)), circuit.ErrInvalid)
}

func TestValidateParamsRejectsZeroB(t *testing.T) {
	b := newCurveBuilder()
	assert.ErrorIs(t, curve.ValidateParams(b, b.Const(3), b.Const(0)), circuit.ErrInvalid)
}

// Package curve implements point arithmetic over a Montgomery curve
// B*y^2 = x^3 + A*x^2 + x inside a circuit: x-only doubling/addition, the
// Montgomery ladder, Okeya-Sakurai y-recovery, and general point addition
// in both affine and homogeneous coordinates.
package curve

import (
	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/gates"
)

// AffinePoint is a point in affine coordinates. Z is 1 for any ordinary
// point; the x-only ladder helpers (XAddAffine, XDblAffine, LadderAffine)
// always carry Z=1 and never represent the point at infinity — only
// AddAffinePoints and the homogeneous-coordinate machinery do that, via
// HomogeneousPoint's Z=0 convention.
type AffinePoint struct {
	X, Y, Z circuit.Wire
}

// HomogeneousPoint is a point in homogeneous (projective-style, y-optional)
// coordinates. Z=0 is the canonical representation of the point at
// infinity.
type HomogeneousPoint struct {
	X, Y, Z circuit.Wire
}

// XAdd performs the x-only differential addition step of the Montgomery
// ladder: given P, Q and M = P - Q, it returns the x-coordinate (in
// homogeneous form) of P + Q.
func XAdd(b *circuit.Builder, p, q, m HomogeneousPoint) HomogeneousPoint {
	v0 := b.Add(p.X, p.Z)
	v1 := b.Mul(b.Sub(q.X, q.Z), v0)
	v0 = b.Sub(p.X, p.Z)
	v2 := b.Mul(b.Add(q.X, q.Z), v0)
	v3 := b.Add(v1, v2)
	v3 = b.Mul(v3, v3)
	v4 := b.Sub(v1, v2)
	v4 = b.Mul(v4, v4)
	xp := b.Mul(m.Z, v3)
	zp := b.Mul(m.X, v4)
	return HomogeneousPoint{X: xp, Z: zp}
}

// XDbl performs the x-only doubling step of the Montgomery ladder.
func XDbl(b *circuit.Builder, p HomogeneousPoint, A circuit.Operand) HomogeneousPoint {
	v1 := b.Add(p.X, p.Z)
	v1 = b.Mul(v1, v1)
	v2 := b.Sub(p.X, p.Z)
	v2 = b.Mul(v2, v2)
	xd := b.Mul(v1, v2)
	v1 = b.Sub(v1, v2)
	// 4 is a constant, so dividing by it charges no constraint; a zero
	// divisor (characteristic 2) is replaced by 1, as DivisionSafe does.
	four := b.Const(4)
	if four.Value.IsZero() {
		four = b.One()
	}
	quarter, _ := b.Inverse(four)
	aPlus2Over4 := b.Mul(b.Add(A, 2), quarter)
	v3 := b.Mul(aPlus2Over4, v1)
	v3 = b.Add(v3, v2)
	zd := b.Mul(v1, v3)
	return HomogeneousPoint{X: xd, Z: zd}
}

// Ladder runs the Montgomery ladder over kBits (most-significant bit
// first; the leading bit is assumed to be 1 and is not iterated over),
// returning (R0, R1) = ([k]P, [k+1]P) in homogeneous, y-omitted form.
func Ladder(b *circuit.Builder, kBits []circuit.Wire, p HomogeneousPoint, A circuit.Operand) (HomogeneousPoint, HomogeneousPoint) {
	r0 := HomogeneousPoint{X: p.X, Z: p.Z}
	r1 := XDbl(b, p, A)

	for _, bit := range kBits[1:] {
		padd := XAdd(b, r1, r0, p)
		r00 := XDbl(b, r0, A)
		r11 := XDbl(b, r1, A)

		ipaddx := b.Mul(bit, padd.X)
		ipaddz := b.Mul(bit, padd.Z)
		oneMinusI := b.Sub(1, bit)

		r0 = HomogeneousPoint{
			X: b.Add(ipaddx, b.Mul(oneMinusI, r00.X)),
			Z: b.Add(ipaddz, b.Mul(oneMinusI, r00.Z)),
		}
		r1 = HomogeneousPoint{
			X: b.Sub(b.Add(b.Mul(bit, r11.X), padd.X), ipaddx),
			Z: b.Sub(b.Add(b.Mul(bit, r11.Z), padd.Z), ipaddz),
		}
	}

	return r0, r1
}

// XAddAffine is the affine-coordinate analogue of XAdd, using unsafe
// division: it returns ErrInvalid if the witnessed denominator is zero.
func XAddAffine(b *circuit.Builder, p, q, m AffinePoint) (AffinePoint, error) {
	numerator := b.Sub(b.Mul(p.X, q.X), 1)
	numeratorSquare := b.Mul(numerator, numerator)
	denomParen := b.Sub(p.X, q.X)
	denom := b.Mul(b.Mul(m.X, denomParen), denomParen)
	xAdd, err := gates.DivisionUnsafe(b, numeratorSquare, denom)
	if err != nil {
		return AffinePoint{}, err
	}
	return AffinePoint{X: xAdd, Z: b.Const(1)}, nil
}

// XDblAffine is the affine-coordinate analogue of XDbl, using unsafe
// division.
func XDblAffine(b *circuit.Builder, p AffinePoint, A circuit.Operand) (AffinePoint, error) {
	xSquare := b.Mul(p.X, p.X)
	xSquareM := b.Sub(xSquare, 1)
	xSquareMSquare := b.Mul(xSquareM, xSquareM)
	denom := b.Mul(b.Mul(b.Const(4), p.X), b.Add(b.Add(xSquare, b.Mul(A, p.X)), 1))
	xDbl, err := gates.DivisionUnsafe(b, xSquareMSquare, denom)
	if err != nil {
		return AffinePoint{}, err
	}
	return AffinePoint{X: xDbl, Z: b.Const(1)}, nil
}

// LadderAffine is the affine-coordinate analogue of Ladder.
func LadderAffine(b *circuit.Builder, kBits []circuit.Wire, p AffinePoint, A circuit.Operand) (AffinePoint, AffinePoint, error) {
	r0 := AffinePoint{X: p.X, Z: b.Const(1)}
	r1, err := XDblAffine(b, p, A)
	if err != nil {
		return AffinePoint{}, AffinePoint{}, err
	}

	for _, bit := range kBits[1:] {
		padd, err := XAddAffine(b, r1, r0, p)
		if err != nil {
			return AffinePoint{}, AffinePoint{}, err
		}
		r00, err := XDblAffine(b, r0, A)
		if err != nil {
			return AffinePoint{}, AffinePoint{}, err
		}
		r11, err := XDblAffine(b, r1, A)
		if err != nil {
			return AffinePoint{}, AffinePoint{}, err
		}

		ixpadd := b.Mul(bit, padd.X)
		r0 = AffinePoint{X: b.Add(ixpadd, b.Mul(b.Sub(1, bit), r00.X)), Z: b.Const(1)}
		r1 = AffinePoint{X: b.Sub(b.Add(b.Mul(bit, r11.X), padd.X), ixpadd), Z: b.Const(1)}
	}

	return r0, r1, nil
}

// OkeyaSakuraiYRecovery reconstructs the y-coordinate of q given p, q and
// pq = p + q, assuming q is not in {p, -p, the point at infinity}.
func OkeyaSakuraiYRecovery(b *circuit.Builder, A, B circuit.Operand, p AffinePoint, q, pq HomogeneousPoint) HomogeneousPoint {
	v1 := b.Mul(p.X, q.Z)
	v2 := b.Add(q.X, v1)
	v3 := b.Sub(q.X, v1)
	v3 = b.Mul(v3, v3)
	v3 = b.Mul(v3, pq.X)
	v1 = b.Mul(b.Mul(2, A), q.Z)
	v2 = b.Add(v2, v1)
	v4 := b.Mul(p.X, q.X)
	v4 = b.Add(v4, q.Z)
	v2 = b.Mul(v2, v4)
	v1 = b.Mul(v1, q.Z)
	v2 = b.Sub(v2, v1)
	v2 = b.Mul(v2, pq.Z)
	y := b.Sub(v2, v3)
	v1 = b.Mul(b.Mul(2, B), p.Y)
	v1 = b.Mul(v1, q.Z)
	v1 = b.Mul(v1, pq.Z)
	x := b.Mul(v1, q.X)
	z := b.Mul(v1, q.Z)
	return HomogeneousPoint{X: x, Y: y, Z: z}
}

// YRecovery wraps OkeyaSakuraiYRecovery with the two edge-case overrides
// the algorithm itself cannot handle: q at infinity, and q = -p.
func YRecovery(b *circuit.Builder, A, B circuit.Operand, p AffinePoint, q, pq HomogeneousPoint) HomogeneousPoint {
	recovered := OkeyaSakuraiYRecovery(b, A, B, p, q, pq)

	condInfty := gates.EqZero(b, q.Z)
	recovered.X = gates.IfThenSetZero(b, condInfty, recovered.X)
	recovered.Y = gates.IfThenElse(b, condInfty, 1, recovered.Y)
	recovered.Z = gates.IfThenSetZero(b, condInfty, recovered.Z)

	qOverZ := gates.DivisionSafe(b, q.X, q.Z)
	condMinusP := gates.AndGate(b, []circuit.Wire{
		gates.EqZero(b, pq.Z),
		gates.Eq(b, p.X, qOverZ),
	})
	recovered.X = gates.IfThenElse(b, condMinusP, p.X, recovered.X)
	recovered.Y = gates.IfThenElse(b, condMinusP, b.Neg(p.Y), recovered.Y)
	recovered.Z = gates.IfThenElse(b, condMinusP, 1, recovered.Z)

	return recovered
}

// AddAffinePoints computes p + q, returning a HomogeneousPoint since the
// sum may be the point at infinity (Z=0), which AffinePoint cannot
// represent within this library's x-only affine helpers.
func AddAffinePoints(b *circuit.Builder, A, B circuit.Operand, p, q AffinePoint) HomogeneousPoint {
	lambdaEqNumerator := b.Add(b.Add(b.Mul(b.Mul(3, p.X), p.X), b.Mul(b.Mul(2, A), p.X)), 1)
	lambdaEqDenom := b.Mul(b.Mul(2, B), p.Y)
	lambdaEq := gates.DivisionSafe(b, lambdaEqNumerator, lambdaEqDenom)

	lambdaOtherNumerator := b.Sub(q.Y, p.Y)
	lambdaOtherDenom := b.Sub(q.X, p.X)
	lambdaOther := gates.DivisionSafe(b, lambdaOtherNumerator, lambdaOtherDenom)

	indicatorXEq := gates.Eq(b, p.X, q.X)
	lambdaWire := gates.IfThenElse(b, indicatorXEq, lambdaEq, lambdaOther)

	x := b.Sub(b.Sub(b.Mul(b.Mul(B, lambdaWire), lambdaWire), b.Add(p.X, q.X)), A)

	indicatorPEqMinusQ := gates.AndGate(b, []circuit.Wire{
		indicatorXEq,
		gates.Eq(b, b.Neg(p.Y), q.Y),
	})

	y := b.Sub(b.Mul(lambdaWire, b.Sub(p.X, x)), p.Y)

	indicatorZero := gates.EqZero(b, p.X)
	indicatorZeroPlusZero := gates.AndGate(b, []circuit.Wire{indicatorXEq, indicatorZero})

	indicatorInfty := gates.IfThenElse(b, indicatorPEqMinusQ, 1, indicatorZeroPlusZero)

	x = gates.IfThenSetZero(b, indicatorInfty, x)
	y = gates.IfThenElse(b, indicatorInfty, 1, y)

	return HomogeneousPoint{X: x, Y: y, Z: b.Sub(1, indicatorInfty)}
}

// AddHomogeneousPoints computes p + q for points in homogeneous
// coordinates, handling either operand being the point at infinity.
func AddHomogeneousPoints(b *circuit.Builder, A, B circuit.Operand, p, q HomogeneousPoint) HomogeneousPoint {
	pAffine := ConvertHomogeneousToAffine(b, p)
	qAffine := ConvertHomogeneousToAffine(b, q)
	pq := AddAffinePoints(b, A, B, pAffine, qAffine)

	indicatorFirstInfty := gates.EqZero(b, p.Z)
	pq.X = gates.IfThenElse(b, indicatorFirstInfty, q.X, pq.X)
	pq.Y = gates.IfThenElse(b, indicatorFirstInfty, q.Y, pq.Y)
	pq.Z = gates.IfThenElse(b, indicatorFirstInfty, q.Z, pq.Z)

	indicatorSecondInfty := gates.EqZero(b, q.Z)
	pq.X = gates.IfThenElse(b, indicatorSecondInfty, p.X, pq.X)
	pq.Y = gates.IfThenElse(b, indicatorSecondInfty, p.Y, pq.Y)
	pq.Z = gates.IfThenElse(b, indicatorSecondInfty, p.Z, pq.Z)

	return pq
}

// ConvertHomogeneousToAffine converts a HomogeneousPoint to an
// AffinePoint, mapping the point at infinity to the canonical (0, 1, 0).
func ConvertHomogeneousToAffine(b *circuit.Builder, p HomogeneousPoint) AffinePoint {
	quotients := gates.DivisionSafeMultiple(b, []circuit.Wire{p.X, p.Y}, p.Z)
	xAffine, yAffine := quotients[0], quotients[1]
	indicatorInfty := gates.EqZero(b, p.Z)
	xAffine = gates.IfThenSetZero(b, indicatorInfty, xAffine)
	yAffine = gates.IfThenElse(b, indicatorInfty, 1, yAffine)
	return AffinePoint{X: xAffine, Y: yAffine, Z: b.Sub(1, indicatorInfty)}
}

// ExponentAffinePoint computes [exponent]P for an affine point P, returning
// the result in affine coordinates.
func ExponentAffinePoint(b *circuit.Builder, A, B circuit.Operand, p AffinePoint, exponent circuit.Operand) (AffinePoint, error) {
	exponentBits, err := gates.Split(b, exponent, b.BitLen())
	if err != nil {
		return AffinePoint{}, err
	}

	pe0, pe1 := Ladder(b, exponentBits, HomogeneousPoint{X: p.X, Z: b.Secret(1)}, A)
	pe := YRecovery(b, A, B, p, pe0, pe1)
	return ConvertHomogeneousToAffine(b, pe), nil
}

// ExponentHomogeneousPointBitExponent computes [k]P for a homogeneous point
// P given k's bit decomposition (MSB first), applying both the
// point-at-infinity and the 2-torsion "zero point" overrides the ladder
// and y-recovery cannot express on their own.
func ExponentHomogeneousPointBitExponent(b *circuit.Builder, A, B circuit.Operand, p HomogeneousPoint, exponentBits []circuit.Wire) HomogeneousPoint {
	pe0, pe1 := Ladder(b, exponentBits, p, A)
	pAffine := AffinePoint{X: p.X, Z: b.Const(1)}
	pe := YRecovery(b, A, B, pAffine, pe0, pe1)

	indicatorInfty := gates.EqZero(b, pe0.Z)
	pe.X = gates.IfThenSetZero(b, indicatorInfty, pe.X)
	pe.Y = gates.IfThenElse(b, indicatorInfty, 1, pe.Y)
	pe.Z = gates.IfThenSetZero(b, indicatorInfty, pe.Z)

	indicatorZero := gates.AndGate(b, []circuit.Wire{
		gates.EqZero(b, p.X),
		gates.EqZero(b, p.Y),
		b.Sub(1, gates.EqZero(b, p.Z)),
	})
	lsb := exponentBits[len(exponentBits)-1]
	indicatorOdd := gates.EqZero(b, b.Sub(lsb, 1))
	indicatorZeroOdd := b.Mul(indicatorZero, indicatorOdd)
	indicatorZeroEven := b.Mul(indicatorZero, b.Sub(1, indicatorOdd))

	pe.X = gates.IfThenElse(b, indicatorZeroOdd, 0, pe.X)
	pe.Y = gates.IfThenElse(b, indicatorZeroOdd, 0, pe.Y)
	pe.Z = gates.IfThenElse(b, indicatorZeroOdd, 1, pe.Z)
	pe.X = gates.IfThenElse(b, indicatorZeroEven, 0, pe.X)
	pe.Y = gates.IfThenElse(b, indicatorZeroEven, 1, pe.Y)
	pe.Z = gates.IfThenElse(b, indicatorZeroEven, 0, pe.Z)

	return pe
}

// ExponentHomogeneousPoint computes [exponent]P for a homogeneous point P.
func ExponentHomogeneousPoint(b *circuit.Builder, A, B circuit.Operand, p HomogeneousPoint, exponent circuit.Operand) (HomogeneousPoint, error) {
	exponentBits, err := gates.Split(b, exponent, b.BitLen())
	if err != nil {
		return HomogeneousPoint{}, err
	}
	return ExponentHomogeneousPointBitExponent(b, A, B, p, exponentBits), nil
}

// ValidateParams asserts that (A, B) describe a non-singular Montgomery
// curve B*y^2 = x^3 + A*x^2 + x, i.e. B*(A*A - 4) != 0. The original never
// checks this before running point arithmetic; callers constructing a
// curve from untrusted or generated parameters should call this first.
func ValidateParams(b *circuit.Builder, A, B circuit.Operand) error {
	discriminantFactor := b.Sub(b.Mul(A, A), 4)
	nonSingular := b.Mul(B, discriminantFactor)
	if gates.EqZero(b, nonSingular).Int().Sign() != 0 {
		return circuit.Invalidf("curve parameters A=%s, B=%s describe a singular Montgomery curve", b.ToWire(A), b.ToWire(B))
	}
	return nil
}

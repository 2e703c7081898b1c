// Package pedersen implements Pedersen commitments over a Montgomery
// curve: scalar and vector commitments, with the commitment randomness
// supplied either as a field element or as a pre-split bit vector.
package pedersen

import (
	"github.com/julianliedtke/kryvos-go/circuit"
	"github.com/julianliedtke/kryvos-go/curve"
	"github.com/julianliedtke/kryvos-go/gates"
)

func splitBits(b *circuit.Builder, w circuit.Operand, maxBitsM int) ([]circuit.Wire, error) {
	n := maxBitsM
	if n <= 0 {
		n = b.BitLen()
	}
	return gates.Split(b, w, n)
}

// CommitBitRandomness computes a Pedersen commitment to m, under
// randomness supplied as a pre-split bit vector rBits (most significant
// bit first).
func CommitBitRandomness(b *circuit.Builder, A, B circuit.Operand, g, h curve.HomogeneousPoint, m circuit.Operand, rBits []circuit.Wire, maxBitsM int) (curve.HomogeneousPoint, error) {
	mBits, err := splitBits(b, m, maxBitsM)
	if err != nil {
		return curve.HomogeneousPoint{}, err
	}
	gm := curve.ExponentHomogeneousPointBitExponent(b, A, B, g, mBits)
	hr := curve.ExponentHomogeneousPointBitExponent(b, A, B, h, rBits)
	return curve.AddHomogeneousPoints(b, A, B, gm, hr), nil
}

// Commit computes a Pedersen commitment to m under randomness r.
func Commit(b *circuit.Builder, A, B circuit.Operand, g, h curve.HomogeneousPoint, m, r circuit.Operand) (curve.HomogeneousPoint, error) {
	gm, err := curve.ExponentHomogeneousPoint(b, A, B, g, m)
	if err != nil {
		return curve.HomogeneousPoint{}, err
	}
	hr, err := curve.ExponentHomogeneousPoint(b, A, B, h, r)
	if err != nil {
		return curve.HomogeneousPoint{}, err
	}
	return curve.AddHomogeneousPoints(b, A, B, gm, hr), nil
}

// CommitVectorBitRandomness computes a Pedersen commitment to the vector
// ms, one base point per entry of gs, under randomness supplied as a
// pre-split bit vector rBits.
func CommitVectorBitRandomness(b *circuit.Builder, A, B circuit.Operand, gs []curve.HomogeneousPoint, h curve.HomogeneousPoint, ms []circuit.Operand, rBits []circuit.Wire, maxBitsM int) (curve.HomogeneousPoint, error) {
	hr := curve.ExponentHomogeneousPointBitExponent(b, A, B, h, rBits)

	pointSum := hr
	for i, g := range gs {
		mBits, err := splitBits(b, ms[i], maxBitsM)
		if err != nil {
			return curve.HomogeneousPoint{}, err
		}
		gm := curve.ExponentHomogeneousPointBitExponent(b, A, B, g, mBits)
		pointSum = curve.AddHomogeneousPoints(b, A, B, gm, pointSum)
	}

	return pointSum, nil
}

// CommitVector computes a Pedersen commitment to the vector ms, one base
// point per entry of gs, under randomness r.
func CommitVector(b *circuit.Builder, A, B circuit.Operand, gs []curve.HomogeneousPoint, h curve.HomogeneousPoint, ms []circuit.Operand, r circuit.Operand) (curve.HomogeneousPoint, error) {
	hr, err := curve.ExponentHomogeneousPoint(b, A, B, h, r)
	if err != nil {
		return curve.HomogeneousPoint{}, err
	}

	pointSum := hr
	for i, g := range gs {
		gm, err := curve.ExponentHomogeneousPoint(b, A, B, g, ms[i])
		if err != nil {
			return curve.HomogeneousPoint{}, err
		}
		pointSum = curve.AddHomogeneousPoints(b, A, B, gm, pointSum)
	}

	return pointSum, nil
}

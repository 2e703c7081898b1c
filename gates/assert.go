package gates

import "github.com/julianliedtke/kryvos-go/circuit"

func sumOperands(b *circuit.Builder, ops []circuit.Operand) circuit.Wire {
	acc := b.Zero()
	for _, op := range ops {
		acc = b.Add(acc, op)
	}
	return acc
}

// AssertEqual asserts that the sum of onesSet equals the sum of twosSet,
// returning ErrInvalid if they differ.
func AssertEqual(b *circuit.Builder, onesSet, twosSet []circuit.Operand) error {
	sumOne := sumOperands(b, onesSet)
	sumTwo := sumOperands(b, twosSet)
	if !sumOne.Value.Equal(sumTwo.Value) {
		return circuit.Invalidf("equality does not hold: %s != %s", sumOne, sumTwo)
	}
	return nil
}

// AssertBit asserts that wire's value is 0 or 1, returning ErrInvalid
// otherwise.
func AssertBit(b *circuit.Builder, wire circuit.Operand) error {
	w := b.Sub(1, wire)
	res := b.Mul(wire, w)
	if !res.Value.IsZero() {
		return circuit.Invalidf("value of the wire is not a bit")
	}
	return nil
}

// AssertGT asserts that wireOne's witnessed value is greater than or equal
// to wireTwo's, returning ErrInvalid if not, or if bits exceeds half the
// field's bit length.
func AssertGT(b *circuit.Builder, wireOne, wireTwo circuit.Operand, bits int) error {
	maxBitsAllowed := b.BitLen() / 2
	if bits > maxBitsAllowed {
		return circuit.Invalidf("value of bits (%d) is too large (must be at most %d)", bits, maxBitsAllowed)
	}

	diff := b.Sub(wireOne, wireTwo)
	wOne, wTwo := b.ToWire(wireOne), b.ToWire(wireTwo)
	if wOne.Int().Cmp(wTwo.Int()) < 0 {
		return circuit.Invalidf("value of the first wire is not greater than (or equal) the value of the second wire")
	}

	wireB := b.Secret(diff.Int())
	if _, err := Split(b, wireB, bits); err != nil {
		return err
	}

	two := b.Const(2)
	lhs := []circuit.Operand{b.Mul(two, diff)}
	rhs := []circuit.Operand{b.Add(diff, wireB)}
	return AssertEqual(b, lhs, rhs)
}

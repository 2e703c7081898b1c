package gates

import (
	"math/big"
	"strconv"

	"github.com/julianliedtke/kryvos-go/circuit"
)

// Split decomposes wire's witnessed value into bits, most significant
// first. The output has bitLength entries unless wire's witnessed value
// does not fit in bitLength bits, in which case — as in the original,
// whose Python zfill never truncates — it grows to fit the value exactly,
// so the weighted-sum assertion below can still succeed; the per-bit
// AssertBit calls still run over every produced bit either way. It returns
// ErrInvalid if either assertion fails.
func Split(b *circuit.Builder, wire circuit.Operand, bitLength int) ([]circuit.Wire, error) {
	w := b.ToWire(wire)
	value := w.Int()

	n := bitLength
	if actual := value.BitLen(); actual > n {
		n = actual
	}

	bits := make([]circuit.Wire, n)
	sum := b.Zero()
	twoExp := big.NewInt(1)
	for i := n - 1; i >= 0; i-- {
		bit := new(big.Int).And(new(big.Int).Rsh(value, uint(n-1-i)), big.NewInt(1))
		bitWire := b.Secret(bit)
		bits[i] = bitWire
		weighted := b.Mul(b.Const(new(big.Int).Set(twoExp)), bitWire)
		sum = b.Add(sum, weighted)
		twoExp.Lsh(twoExp, 1)
	}

	if err := AssertEqual(b, []circuit.Operand{sum}, []circuit.Operand{w}); err != nil {
		return nil, err
	}
	for _, bitWire := range bits {
		if err := AssertBit(b, bitWire); err != nil {
			return nil, err
		}
	}
	return bits, nil
}

// VerifyBit returns an indicator that is 1 when wire's value is 0 or 1,
// and 0 otherwise. Unlike AssertBit it never fails.
func VerifyBit(b *circuit.Builder, wire circuit.Operand) circuit.Wire {
	oneMinus := b.Sub(1, wire)
	mul := b.Mul(wire, oneMinus)
	return EqZero(b, mul)
}

func warnIfNotBit(b *circuit.Builder, name string, wire circuit.Wire) {
	v := wire.Int()
	if v.Cmp(big.NewInt(0)) != 0 && v.Cmp(big.NewInt(1)) != 0 {
		b.Logger().Warn().Str("wire", name).Msg("value of input wire is not binary")
	}
}

// AndGate evaluates an AND gate over wires. The result is only meaningful
// if every input is binary; non-binary inputs are logged as a warning, not
// rejected.
func AndGate(b *circuit.Builder, wires []circuit.Wire) circuit.Wire {
	if len(wires) == 2 {
		return AndGateTwoInputs(b, wires[0], wires[1])
	}
	return AndGateMultipleInputs(b, wires)
}

// AndGateTwoInputs is the two-input specialization of AndGate.
func AndGateTwoInputs(b *circuit.Builder, wireOne, wireTwo circuit.Wire) circuit.Wire {
	warnIfNotBit(b, "wire_one", wireOne)
	warnIfNotBit(b, "wire_two", wireTwo)
	return b.Mul(wireOne, wireTwo)
}

// AndGateMultipleInputs is the N-ary specialization of AndGate: the AND of
// wires is 1 exactly when their sum equals len(wires).
func AndGateMultipleInputs(b *circuit.Builder, wires []circuit.Wire) circuit.Wire {
	for i, w := range wires {
		warnIfNotBit(b, fieldIndexName(i), w)
	}
	sumWire := b.Const(int64(len(wires)))
	ones := make([]circuit.Wire, len(wires))
	copy(ones, wires)
	return EqMultiple(b, operandsOf(ones), []circuit.Operand{sumWire})
}

// OrGate evaluates an OR gate over wires.
func OrGate(b *circuit.Builder, wires []circuit.Wire) circuit.Wire {
	if len(wires) == 2 {
		return OrGateTwoInputs(b, wires[0], wires[1])
	}
	return OrGateMultipleInputs(b, wires)
}

// OrGateTwoInputs is the two-input specialization of OrGate.
func OrGateTwoInputs(b *circuit.Builder, wireOne, wireTwo circuit.Wire) circuit.Wire {
	warnIfNotBit(b, "wire_one", wireOne)
	warnIfNotBit(b, "wire_two", wireTwo)
	sum := b.Add(wireOne, wireTwo)
	prod := b.Mul(wireOne, wireTwo)
	return b.Sub(sum, prod)
}

// OrGateMultipleInputs is the N-ary specialization of OrGate: 1 - (all
// inputs are zero). A warning is logged (not an error) if there are as
// many inputs as the field has elements, mirroring the original's
// oversized-OR diagnostic.
func OrGateMultipleInputs(b *circuit.Builder, wires []circuit.Wire) circuit.Wire {
	for i, w := range wires {
		warnIfNotBit(b, fieldIndexName(i), w)
	}
	modulus := b.Field().Modulus()
	if big.NewInt(int64(len(wires))).Cmp(modulus) >= 0 {
		b.Logger().Warn().Int("n_wires", len(wires)).Msg("number of input wires is too large")
	}
	allZero := EqZeroMultiple(b, wires)
	return b.Sub(1, allZero)
}

// XorGateTwoInputs evaluates an XOR gate over two (assumed binary) wires.
func XorGateTwoInputs(b *circuit.Builder, wireOne, wireTwo circuit.Wire) circuit.Wire {
	warnIfNotBit(b, "wire_one", wireOne)
	warnIfNotBit(b, "wire_two", wireTwo)
	orVal := OrGate(b, []circuit.Wire{wireOne, wireTwo})
	andVal := AndGate(b, []circuit.Wire{wireOne, wireTwo})
	oneMinusAnd := b.Sub(1, andVal)
	return AndGate(b, []circuit.Wire{orVal, oneMinusAnd})
}

func operandsOf(wires []circuit.Wire) []circuit.Operand {
	ops := make([]circuit.Operand, len(wires))
	for i, w := range wires {
		ops[i] = w
	}
	return ops
}

func fieldIndexName(i int) string {
	return "wire[" + strconv.Itoa(i) + "]"
}

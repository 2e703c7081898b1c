// Package gates implements the primitive and composite arithmetic-circuit
// gates built on top of package circuit: arithmetic, assertion, bit,
// comparison, branching and list gates.
package gates

import "github.com/julianliedtke/kryvos-go/circuit"

// IfThenElse returns ifWire when condition is 1 and elseWire when condition
// is 0: condition*ifWire + (1-condition)*elseWire. condition is assumed to
// be a bit; callers that cannot guarantee this should assert it themselves
// (e.g. with AssertBit) first.
func IfThenElse(b *circuit.Builder, condition, ifWire, elseWire circuit.Operand) circuit.Wire {
	onMinusCond := b.Sub(1, condition)
	left := b.Mul(condition, ifWire)
	right := b.Mul(onMinusCond, elseWire)
	return b.Add(left, right)
}

// IfThenSetZero returns 0 when condition is 1 and input unchanged when
// condition is 0: (1-condition)*input.
func IfThenSetZero(b *circuit.Builder, condition, input circuit.Operand) circuit.Wire {
	onMinusCond := b.Sub(1, condition)
	return b.Mul(onMinusCond, input)
}

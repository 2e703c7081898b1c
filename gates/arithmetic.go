package gates

import (
	"math/big"

	"github.com/julianliedtke/kryvos-go/circuit"
)

// DivisionUnsafe returns dividend / divisor. It is unsafe: it returns
// ErrInvalid immediately if divisor's witnessed value is zero.
func DivisionUnsafe(b *circuit.Builder, dividend, divisor circuit.Operand) (circuit.Wire, error) {
	return b.DivUnchecked(dividend, divisor)
}

// DivisionSafe returns dividend / divisor, substituting 1 for divisor when
// divisor is zero so the gate never fails. Callers must account for this
// substitution themselves when divisor may legitimately be zero.
func DivisionSafe(b *circuit.Builder, dividend, divisor circuit.Operand) circuit.Wire {
	condition := EqZero(b, divisor)
	divisorSafe := IfThenElse(b, condition, 1, divisor)
	quotient, err := b.DivUnchecked(dividend, divisorSafe)
	if err != nil {
		panic("gates: unreachable, divisor_safe is never zero")
	}
	return quotient
}

// DivisionSafeMultiple computes dividend/divisor for every dividend,
// amortizing a single zero-check of divisor across all of them.
func DivisionSafeMultiple(b *circuit.Builder, dividends []circuit.Wire, divisor circuit.Operand) []circuit.Wire {
	condition := EqZero(b, divisor)
	divisorSafe := IfThenElse(b, condition, 1, divisor)
	results := make([]circuit.Wire, len(dividends))
	for i, dividend := range dividends {
		quotient, err := b.DivUnchecked(dividend, divisorSafe)
		if err != nil {
			panic("gates: unreachable, divisor_safe is never zero")
		}
		results[i] = quotient
	}
	return results
}

// Term is a (factor, wire) pair used to build a weighted-sum operand for
// R1CSConstraintSingleOutput.
type Term struct {
	Factor *big.Int
	Wire   circuit.Wire
}

// IntTerm is a convenience constructor for a Term with a small integer
// factor.
func IntTerm(factor int64, wire circuit.Wire) Term {
	return Term{Factor: big.NewInt(factor), Wire: wire}
}

// R1CSConstraintSingleOutput evaluates a single R1CS constraint with one
// output wire: (sum of wiresA's weighted terms) * (sum of wiresB's
// weighted terms), charging exactly one multiplication regardless of the
// operands' constness and forcing the result non-const.
func R1CSConstraintSingleOutput(b *circuit.Builder, wiresA, wiresB []Term) circuit.Wire {
	valueA := b.Field().Zero()
	for _, t := range wiresA {
		valueA = valueA.Add(t.Wire.Value.Mul(b.Field().Elem(t.Factor)))
	}
	valueB := b.Field().Zero()
	for _, t := range wiresB {
		valueB = valueB.Add(t.Wire.Value.Mul(b.Field().Elem(t.Factor)))
	}
	return b.ForceMul(b.Const(valueA), b.Const(valueB))
}

package circuit

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/julianliedtke/kryvos-go/field"
)

// ErrInvalid is the single error sentinel raised by any gate that cannot be
// satisfied by its witness: a failed assertion, or a division by zero that
// was not routed through a *Safe variant. Callers use errors.Is(err,
// circuit.ErrInvalid) to detect it; gates never return any other error kind.
var ErrInvalid = field.ErrInvalid

// Builder is an independent circuit-construction context: it owns the
// field the circuit is built over and the two counters that are this
// library's entire observable measure of circuit size, n_mul and n_wires.
// Two Builders never share counters, matching the original's single
// process-wide Wire class turned into an explicit, non-shared context
// object (spec §5, §9 "Process-wide mutable counters").
type Builder struct {
	field *field.Field

	nMul   uint64
	nWires uint64

	logger zerolog.Logger

	knownCurveName string

	profiling bool
	tags      map[Tag]tagSnapshot
	deltas    []counterDelta
}

// New returns a Builder constructing circuits over Z_p.
func New(p *big.Int, opts ...Option) *Builder {
	b := &Builder{
		field:  field.New(p),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Field returns the prime field this builder's wires live in.
func (b *Builder) Field() *field.Field { return b.field }

// BitLen returns the bit length of the field's modulus.
func (b *Builder) BitLen() int { return b.field.BitLen() }

// NMul returns the total number of non-const×non-const multiplications (and
// non-const inversions) charged so far.
func (b *Builder) NMul() uint64 { return b.nMul }

// NWires returns the total number of intermediate wires introduced so far.
// In this library every charged multiplication introduces exactly one new
// wire, so NWires always equals NMul; it is tracked separately to mirror
// the original's two independent counters and to leave room for gates that
// might one day charge wires without a multiplication.
func (b *Builder) NWires() uint64 { return b.nWires }

// Reset zeroes the builder's counters without discarding any wires already
// constructed (existing Wire values remain valid field elements; only the
// cost accounting restarts). Useful for measuring the incremental cost of
// a sub-circuit in isolation.
func (b *Builder) Reset() {
	b.nMul = 0
	b.nWires = 0
}

func (b *Builder) chargeMul() {
	b.nMul++
	b.nWires++
}

// Const returns a compile-time-constant wire holding v.
func (b *Builder) Const(v interface{}) Wire {
	return Wire{Value: b.elemOf(v), IsConst: true}
}

// Secret returns a non-constant wire holding v (a witness value the
// builder does not treat as known at constraint-authoring time).
func (b *Builder) Secret(v interface{}) Wire {
	return Wire{Value: b.elemOf(v), IsConst: false}
}

// Zero and One are the field's additive and multiplicative identities,
// represented as constant wires.
func (b *Builder) Zero() Wire { return b.Const(0) }
func (b *Builder) One() Wire  { return b.Const(1) }

func (b *Builder) elemOf(v interface{}) field.Element {
	switch x := v.(type) {
	case field.Element:
		return x
	case Wire:
		return x.Value
	case *big.Int:
		return b.field.Elem(x)
	case int:
		return b.field.ElemInt64(int64(x))
	case int64:
		return b.field.ElemInt64(x)
	case uint64:
		return b.field.Elem(new(big.Int).SetUint64(x))
	default:
		panic(fmt.Sprintf("circuit: unsupported operand type %T", v))
	}
}

// toWire coerces an Operand to a Wire, treating anything that is not
// already a Wire as a freshly-minted constant — the Go equivalent of the
// original's implicit "plain int operands are always const" convention.
func (b *Builder) toWire(op Operand) Wire {
	if w, ok := op.(Wire); ok {
		return w
	}
	return b.Const(op)
}

// ToWire is the exported form of toWire, for gate packages that need to
// inspect an operand's witnessed value or constness without performing an
// arithmetic operation on it.
func (b *Builder) ToWire(op Operand) Wire {
	return b.toWire(op)
}

// Add returns a + b.
func (b *Builder) Add(a, bb Operand) Wire {
	wa, wb := b.toWire(a), b.toWire(bb)
	return Wire{
		Value:   wa.Value.Add(wb.Value),
		IsConst: wa.IsConst && wb.IsConst,
	}
}

// Sub returns a - b.
func (b *Builder) Sub(a, bb Operand) Wire {
	wa, wb := b.toWire(a), b.toWire(bb)
	return Wire{
		Value:   wa.Value.Sub(wb.Value),
		IsConst: wa.IsConst && wb.IsConst,
	}
}

// Neg returns -a.
func (b *Builder) Neg(a Operand) Wire {
	wa := b.toWire(a)
	return Wire{Value: wa.Value.Neg(), IsConst: wa.IsConst}
}

// Mul returns a * b, charging one multiplication (and one wire) exactly
// when both operands are non-const wires — see DESIGN.md for why this
// departs from a literal read of the original's asymmetric check.
func (b *Builder) Mul(a, bb Operand) Wire {
	wa, wb := b.toWire(a), b.toWire(bb)
	if !wa.IsConst && !wb.IsConst {
		b.chargeMul()
	}
	return Wire{
		Value:   wa.Value.Mul(wb.Value),
		IsConst: wa.IsConst && wb.IsConst,
	}
}

// ForceMul multiplies a and b and unconditionally charges one
// multiplication, forcing the result non-const regardless of either
// operand's constness. This matches r1cs_constraint_single_output in the
// original, which charges exactly one constraint per call no matter what
// its operands look like.
func (b *Builder) ForceMul(a, bb Operand) Wire {
	wa, wb := b.toWire(a), b.toWire(bb)
	b.chargeMul()
	return Wire{Value: wa.Value.Mul(wb.Value), IsConst: false}
}

// Inverse returns the multiplicative inverse of a, charging one
// multiplication (and one wire) when a is non-const. It returns
// ErrInvalid if a's value is zero.
func (b *Builder) Inverse(a Operand) (Wire, error) {
	wa := b.toWire(a)
	inv, err := wa.Value.Inverse()
	if err != nil {
		return Wire{}, err
	}
	if !wa.IsConst {
		b.chargeMul()
	}
	return Wire{Value: inv, IsConst: wa.IsConst}, nil
}

// DivUnchecked returns a / b. It is unsafe: it returns ErrInvalid
// immediately if b's witnessed value is zero, matching the original's
// arithmetic.division.
func (b *Builder) DivUnchecked(a, bb Operand) (Wire, error) {
	wb := b.toWire(bb)
	inv, err := b.Inverse(wb)
	if err != nil {
		return Wire{}, err
	}
	return b.Mul(a, inv), nil
}

// Invalidf wraps a formatted message with ErrInvalid, the convention every
// gate in this module uses to report a failed assertion.
func Invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...)
}

// IsErrInvalid reports whether err is (or wraps) ErrInvalid.
func IsErrInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// Logger returns the builder's configured logger (a no-op logger unless
// WithLogger was supplied), used by gates that warn rather than fail.
func (b *Builder) Logger() *zerolog.Logger { return &b.logger }

// Package field implements prime-field arithmetic over an arbitrary runtime
// modulus: the single +, -, unary -, *, / and ^ operations every gate in
// this module is ultimately built from.
package field

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrInvalid is the single sentinel error raised by any operation that
// cannot be satisfied by the field — division by zero, or (higher up, in
// package circuit/gates) an unsatisfiable witness.
var ErrInvalid = errors.New("field: invalid operation")

// Field is a prime field Z_p for a runtime-supplied modulus p. It holds no
// mutable state beyond the modulus itself and is safe for concurrent use by
// multiple goroutines reading from it (spec: field values are immutable).
type Field struct {
	modulus *big.Int
}

// New returns the field Z_p. It does not check p for primality: callers are
// responsible for supplying a prime modulus, exactly as the original
// WireGroup did no primality check of its own.
func New(p *big.Int) *Field {
	m := new(big.Int).Set(p)
	return &Field{modulus: m}
}

// Modulus returns the field's modulus.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.modulus)
}

// BitLen returns the bit length of the modulus, used throughout the gate
// library to bound bit-decompositions (WireGroup.bit_length in the original).
func (f *Field) BitLen() int {
	return f.modulus.BitLen()
}

// Element is an immutable value in Z_p.
type Element struct {
	field *Field
	value *big.Int
}

// Elem reduces v modulo the field's modulus and returns the resulting
// element.
func (f *Field) Elem(v *big.Int) Element {
	r := new(big.Int).Mod(v, f.modulus)
	return Element{field: f, value: r}
}

// ElemInt64 is a convenience constructor for small literal values.
func (f *Field) ElemInt64(v int64) Element {
	return f.Elem(big.NewInt(v))
}

// Zero returns the field's additive identity.
func (f *Field) Zero() Element { return f.ElemInt64(0) }

// One returns the field's multiplicative identity.
func (f *Field) One() Element { return f.ElemInt64(1) }

// Field returns the field this element belongs to.
func (e Element) Field() *Field { return e.field }

// Int returns the element's canonical representative in [0, p).
func (e Element) Int() *big.Int {
	return new(big.Int).Set(e.value)
}

// String renders the element's canonical integer value.
func (e Element) String() string {
	return e.value.String()
}

// IsZero reports whether e is the field's additive identity.
func (e Element) IsZero() bool {
	return e.value.Sign() == 0
}

// Equal reports whether e and other represent the same residue class.
// Elements from different Field instances are equal when both their values
// and their moduli match.
func (e Element) Equal(other Element) bool {
	if e.field != other.field {
		return e.value.Cmp(other.value) == 0 && e.field.modulus.Cmp(other.field.modulus) == 0
	}
	return e.value.Cmp(other.value) == 0
}

func (e Element) checkField(other Element) {
	if e.field != other.field && e.field.modulus.Cmp(other.field.modulus) != 0 {
		panic("field: operands belong to different fields")
	}
}

// Add returns e + other.
func (e Element) Add(other Element) Element {
	e.checkField(other)
	return e.field.Elem(new(big.Int).Add(e.value, other.value))
}

// Sub returns e - other.
func (e Element) Sub(other Element) Element {
	e.checkField(other)
	return e.field.Elem(new(big.Int).Sub(e.value, other.value))
}

// Neg returns -e.
func (e Element) Neg() Element {
	return e.field.Elem(new(big.Int).Neg(e.value))
}

// Mul returns e * other.
func (e Element) Mul(other Element) Element {
	e.checkField(other)
	return e.field.Elem(new(big.Int).Mul(e.value, other.value))
}

// Pow returns e raised to the (non-negative) exponent n.
func (e Element) Pow(n *big.Int) Element {
	r := new(big.Int).Exp(e.value, n, e.field.modulus)
	return Element{field: e.field, value: r}
}

// Inverse returns the multiplicative inverse of e, computed via the
// extended Euclidean algorithm (math/big's ModInverse), matching the
// original's `pow(value, -1, modulus)`. It returns ErrInvalid if e is zero.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Element{}, fmt.Errorf("%w: cannot invert zero", ErrInvalid)
	}
	inv := new(big.Int).ModInverse(e.value, e.field.modulus)
	if inv == nil {
		return Element{}, fmt.Errorf("%w: no inverse exists for %s mod %s", ErrInvalid, e.value, e.field.modulus)
	}
	return Element{field: e.field, value: inv}, nil
}

// Div returns e / other. It returns ErrInvalid if other is zero.
func (e Element) Div(other Element) (Element, error) {
	e.checkField(other)
	inv, err := other.Inverse()
	if err != nil {
		return Element{}, err
	}
	return e.Mul(inv), nil
}

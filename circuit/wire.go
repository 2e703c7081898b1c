package circuit

import (
	"math/big"

	"github.com/julianliedtke/kryvos-go/field"
)

// Wire is a value flowing through a circuit: a field element tagged with a
// conservative is-constant flag. IsConst is true only when the wire is
// known, syntactically, to hold a compile-time constant — it is always safe
// to treat a const wire as non-const (that merely over-counts constraints),
// never the other way around.
type Wire struct {
	Value   field.Element
	IsConst bool
}

// Int returns the wire's canonical integer representative.
func (w Wire) Int() *big.Int {
	return w.Value.Int()
}

// String renders the wire's underlying value.
func (w Wire) String() string {
	return w.Value.String()
}

// Operand is anything that can be coerced to a Wire by a Builder: a Wire
// itself, or any value that builder.toWire treats as a compile-time
// constant (int, int64, *big.Int, field.Element). This is the Go stand-in
// for the original's implicit "Wire or plain int" operand convention, since
// Go has no operator overloading.
type Operand interface{}

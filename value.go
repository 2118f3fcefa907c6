package arith

import (
	"math"
	"strconv"
)

// Kind discriminates the variants a Value can hold.
type Kind int8

const (
	// Int is an exact 64-bit integer. Literals without a decimal point are
	// Int, and arithmetic between two Ints stays Int.
	Int Kind = iota
	// Float is a 64-bit floating-point number. Literals with a decimal
	// point are Float, as is any arithmetic with a Float operand.
	Float
	// Text is a rendered string, produced only by the chr, bin, hex, and
	// oct builtins.
	Text
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Text:
		return "text"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is the result of evaluating an expression.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// IntValue returns a Value holding an exact integer.
func IntValue(i int64) Value {
	return Value{kind: Int, i: i}
}

// FloatValue returns a Value holding a floating-point number.
func FloatValue(f float64) Value {
	return Value{kind: Float, f: f}
}

// TextValue returns a Value holding rendered text.
func TextValue(s string) Value {
	return Value{kind: Text, s: s}
}

// NaN returns the not-a-number sentinel that degenerate arithmetic, such
// as division by zero, evaluates to.
func NaN() Value {
	return Value{kind: Float, f: math.NaN()}
}

// Kind returns the variant v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsInt reports whether v is an exact integer.
func (v Value) IsInt() bool {
	return v.kind == Int
}

// IsFloat reports whether v is a floating-point number.
func (v Value) IsFloat() bool {
	return v.kind == Float
}

// IsText reports whether v is rendered text.
func (v Value) IsText() bool {
	return v.kind == Text
}

// IsNumeric reports whether v is an Int or a Float.
func (v Value) IsNumeric() bool {
	return v.kind == Int || v.kind == Float
}

// IsNaN reports whether v is the not-a-number sentinel.
func (v Value) IsNaN() bool {
	return v.kind == Float && math.IsNaN(v.f)
}

// AsInt returns v as an integer, truncating a Float toward zero. Text
// yields 0.
func (v Value) AsInt() int64 {
	switch v.kind {
	case Int:
		return v.i
	case Float:
		return int64(v.f)
	default:
		return 0
	}
}

// AsFloat returns v as a floating-point number. Text yields NaN.
func (v Value) AsFloat() float64 {
	switch v.kind {
	case Int:
		return float64(v.i)
	case Float:
		return v.f
	default:
		return math.NaN()
	}
}

// String renders v the way the command line prints results.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Text:
		return v.s
	default:
		return "<invalid>"
	}
}

package arith

import (
	"math"
	"strconv"
	"strings"
)

// constants maps constant identifiers to their values. Lookup is
// case-sensitive. The table is built once and never modified.
var constants = map[string]Value{
	"PI":  FloatValue(math.Pi),
	"TAU": FloatValue(2 * math.Pi),
	"E":   FloatValue(math.E),
	"INF": FloatValue(math.Inf(1)),
	"NAN": NaN(),
}

// builtin is one entry of the function table. min and max are the
// inclusive argument count bounds, checked by the builder. call must be
// total: an argument outside the function's domain yields NaN, never an
// error or a panic.
type builtin struct {
	min, max int
	call     func(args []Value) Value
}

// CanCall reports whether the function accepts n arguments.
func (f builtin) CanCall(n int) bool {
	return f.min <= n && n <= f.max
}

// monadic wraps a function of one value into a builtin.
func monadic(f func(Value) Value) builtin {
	return builtin{1, 1, func(args []Value) Value { return f(args[0]) }}
}

// floatFn wraps a float64 function into a builtin. Non-numeric arguments
// yield NaN; domain violations already follow IEEE rules inside math.
func floatFn(f func(float64) float64) builtin {
	return monadic(func(v Value) Value {
		if !v.IsNumeric() {
			return NaN()
		}
		return FloatValue(f(v.AsFloat()))
	})
}

// builtins is the function table. It is built once and never modified.
var builtins = map[string]builtin{
	"fact":      monadic(factorial),
	"factorial": monadic(factorial),
	"sin":       floatFn(math.Sin),
	"cos":       floatFn(math.Cos),
	"tan":       floatFn(math.Tan),
	"abs":       monadic(absValue),
	"sqrt":      floatFn(math.Sqrt),
	"log":       {1, 2, logarithm},
	"log2":      floatFn(math.Log2),
	"log10":     floatFn(math.Log10),
	"gcd":       {2, 1000, gcd},
	"lcm":       {2, 1000, lcm},
	"xor":       {2, 2, xor},
	"int":       monadic(toInt),
	"float":     monadic(toFloat),
	"min":       {2, 1000, minValue},
	"max":       {2, 1000, maxValue},
	"not":       monadic(not),
	"round":     {1, 2, round},
	"ceil":      monadic(ceil),
	"floor":     monadic(floorV),
	"chr":       monadic(chr),
	"bin":       monadic(radixFn(2, "0b")),
	"hex":       monadic(radixFn(16, "0x")),
	"oct":       monadic(radixFn(8, "0o")),
	"hypot":     {1, 1000, hypot},
}

// intArg extracts an exact integer argument. Floats do not qualify, even
// integral ones.
func intArg(v Value) (int64, bool) {
	if !v.IsInt() {
		return 0, false
	}
	return v.AsInt(), true
}

func factorial(v Value) Value {
	if !v.IsNumeric() {
		return NaN()
	}
	if v.IsFloat() {
		f := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return NaN()
		}
	}
	n := v.AsInt()
	if n < 0 {
		return NaN()
	}
	if n <= 20 {
		// 20! is the largest factorial an int64 holds.
		r := int64(1)
		for i := int64(2); i <= n; i++ {
			r *= i
		}
		return IntValue(r)
	}
	r := float64(1)
	for i := int64(2); i <= n; i++ {
		r *= float64(i)
	}
	return FloatValue(r)
}

func absValue(v Value) Value {
	switch {
	case v.IsInt():
		if n := v.AsInt(); n < 0 {
			return IntValue(-n)
		}
		return v
	case v.IsFloat():
		return FloatValue(math.Abs(v.AsFloat()))
	default:
		return NaN()
	}
}

func logarithm(args []Value) Value {
	if !args[0].IsNumeric() {
		return NaN()
	}
	x := math.Log(args[0].AsFloat())
	if len(args) == 1 {
		return FloatValue(x)
	}
	if !args[1].IsNumeric() {
		return NaN()
	}
	return FloatValue(x / math.Log(args[1].AsFloat()))
}

func gcd(args []Value) Value {
	r := int64(0)
	for _, a := range args {
		n, ok := intArg(a)
		if !ok {
			return NaN()
		}
		if n < 0 {
			n = -n
		}
		for n != 0 {
			r, n = n, r%n
		}
	}
	return IntValue(r)
}

func lcm(args []Value) Value {
	r := int64(1)
	for _, a := range args {
		n, ok := intArg(a)
		if !ok {
			return NaN()
		}
		if n < 0 {
			n = -n
		}
		if n == 0 {
			return IntValue(0)
		}
		g := gcd2(r, n)
		r = r / g * n
	}
	return IntValue(r)
}

func gcd2(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func xor(args []Value) Value {
	a, ok := intArg(args[0])
	if !ok {
		return NaN()
	}
	b, ok := intArg(args[1])
	if !ok {
		return NaN()
	}
	return IntValue(a ^ b)
}

func toInt(v Value) Value {
	switch {
	case v.IsInt():
		return v
	case v.IsFloat():
		f := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return NaN()
		}
		return IntValue(int64(f))
	default:
		return NaN()
	}
}

func toFloat(v Value) Value {
	if !v.IsNumeric() {
		return NaN()
	}
	return FloatValue(v.AsFloat())
}

func minValue(args []Value) Value { return extremum(args, true) }
func maxValue(args []Value) Value { return extremum(args, false) }

// extremum picks the least or greatest argument, preserving its kind.
func extremum(args []Value, less bool) Value {
	best := args[0]
	if !best.IsNumeric() || best.IsNaN() {
		return NaN()
	}
	for _, a := range args[1:] {
		if !a.IsNumeric() || a.IsNaN() {
			return NaN()
		}
		if numLess(a, best) == less {
			best = a
		}
	}
	return best
}

// numLess compares two numeric values, exactly when both are Int.
func numLess(a, b Value) bool {
	if a.IsInt() && b.IsInt() {
		return a.AsInt() < b.AsInt()
	}
	return a.AsFloat() < b.AsFloat()
}

func not(v Value) Value {
	truthy := false
	switch {
	case v.IsInt():
		truthy = v.AsInt() != 0
	case v.IsFloat():
		truthy = v.AsFloat() != 0
	default:
		truthy = v.String() != ""
	}
	if truthy {
		return IntValue(0)
	}
	return IntValue(1)
}

func round(args []Value) Value {
	v := args[0]
	if !v.IsNumeric() {
		return NaN()
	}
	if len(args) == 1 {
		if v.IsInt() {
			return v
		}
		f := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return NaN()
		}
		// Ties round to even.
		return IntValue(int64(math.RoundToEven(f)))
	}
	d, ok := intArg(args[1])
	if !ok {
		return NaN()
	}
	p := math.Pow(10, float64(d))
	if v.IsInt() {
		if d >= 0 {
			return v
		}
		return IntValue(int64(math.RoundToEven(v.AsFloat()*p) / p))
	}
	return FloatValue(math.RoundToEven(v.AsFloat()*p) / p)
}

func ceil(v Value) Value {
	return intward(v, math.Ceil)
}

func floorV(v Value) Value {
	return intward(v, math.Floor)
}

func intward(v Value, f func(float64) float64) Value {
	switch {
	case v.IsInt():
		return v
	case v.IsFloat():
		x := v.AsFloat()
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return NaN()
		}
		return IntValue(int64(f(x)))
	default:
		return NaN()
	}
}

func chr(v Value) Value {
	n, ok := intArg(v)
	if !ok || n < 0 || n > 0x10FFFF {
		return NaN()
	}
	return TextValue(string(rune(n)))
}

// radixFn renders an integer in a base with its conventional prefix. The
// sign precedes the prefix: -0b101.
func radixFn(base int, prefix string) func(Value) Value {
	return func(v Value) Value {
		n, ok := intArg(v)
		if !ok {
			return NaN()
		}
		s := strconv.FormatInt(n, base)
		if strings.HasPrefix(s, "-") {
			return TextValue("-" + prefix + s[1:])
		}
		return TextValue(prefix + s)
	}
}

func hypot(args []Value) Value {
	h := float64(0)
	for _, a := range args {
		if !a.IsNumeric() {
			return NaN()
		}
		h = math.Hypot(h, a.AsFloat())
	}
	return FloatValue(h)
}

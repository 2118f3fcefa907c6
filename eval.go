package arith

import "math"

// Evaluate is a shortcut to parse src and evaluate the result.
func Evaluate(src string) (Value, error) {
	e, err := Parse(src)
	if err != nil {
		return Value{}, err
	}
	return e.Eval(), nil
}

// Eval computes the value of the expression. Evaluation is total over every
// tree Parse produces: numeric degeneracy such as a zero divisor yields NaN
// rather than an error or a runtime fault.
func (e *Expr) Eval() Value {
	return e.root.eval()
}

// eval computes the node's value by post-order recursion.
func (n *node) eval() Value {
	switch n.kind {
	case nodeNum:
		return n.val
	case nodeOp:
		op, ok := operators[n.op]
		if !ok {
			panic("arith: invalid operator node " + n.op)
		}
		return op.fn(n.left.eval(), n.right.eval())
	case nodeCall:
		f, ok := builtins[n.name]
		if !ok {
			panic("arith: invalid call node " + n.name)
		}
		args := make([]Value, len(n.args))
		for i, a := range n.args {
			args[i] = a.eval()
		}
		return f.call(args)
	default:
		panic("arith: invalid node kind " + n.kind.String())
	}
}

// btoi renders a comparison result in the numeric convention: 1 for true,
// 0 for false.
func btoi(b bool) Value {
	if b {
		return IntValue(1)
	}
	return IntValue(0)
}

// add returns l + r. Two integers stay exact. Two texts concatenate; text
// mixed with a number is NaN.
func add(l, r Value) Value {
	switch {
	case l.IsText() && r.IsText():
		return TextValue(l.String() + r.String())
	case !l.IsNumeric() || !r.IsNumeric():
		return NaN()
	case l.IsInt() && r.IsInt():
		return IntValue(l.AsInt() + r.AsInt())
	default:
		return FloatValue(l.AsFloat() + r.AsFloat())
	}
}

func sub(l, r Value) Value {
	if !l.IsNumeric() || !r.IsNumeric() {
		return NaN()
	}
	if l.IsInt() && r.IsInt() {
		return IntValue(l.AsInt() - r.AsInt())
	}
	return FloatValue(l.AsFloat() - r.AsFloat())
}

func mul(l, r Value) Value {
	if !l.IsNumeric() || !r.IsNumeric() {
		return NaN()
	}
	if l.IsInt() && r.IsInt() {
		return IntValue(l.AsInt() * r.AsInt())
	}
	return FloatValue(l.AsFloat() * r.AsFloat())
}

// div is true division. The result is always a float, and a zero divisor
// yields NaN so that batch evaluation never aborts on a denominator.
func div(l, r Value) Value {
	if !l.IsNumeric() || !r.IsNumeric() {
		return NaN()
	}
	if r.AsFloat() == 0 {
		return NaN()
	}
	return FloatValue(l.AsFloat() / r.AsFloat())
}

// floorDiv is floor division: the quotient rounds toward negative infinity,
// keeping x == (x//y)*y + x%y. Two integer operands yield an integer.
func floorDiv(l, r Value) Value {
	if !l.IsNumeric() || !r.IsNumeric() {
		return NaN()
	}
	if l.IsInt() && r.IsInt() {
		a, b := l.AsInt(), r.AsInt()
		if b == 0 {
			return NaN()
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return IntValue(q)
	}
	if r.AsFloat() == 0 {
		return NaN()
	}
	return FloatValue(math.Floor(l.AsFloat() / r.AsFloat()))
}

// mod is the floored remainder: the result takes the divisor's sign,
// matching floorDiv. A zero divisor yields NaN.
func mod(l, r Value) Value {
	if !l.IsNumeric() || !r.IsNumeric() {
		return NaN()
	}
	if l.IsInt() && r.IsInt() {
		a, b := l.AsInt(), r.AsInt()
		if b == 0 {
			return NaN()
		}
		m := a % b
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return IntValue(m)
	}
	if r.AsFloat() == 0 {
		return NaN()
	}
	m := math.Mod(l.AsFloat(), r.AsFloat())
	if m != 0 && (m < 0) != (r.AsFloat() < 0) {
		m += r.AsFloat()
	}
	return FloatValue(m)
}

// pow is exponentiation. An integer base with a nonnegative integer
// exponent stays in exact integer arithmetic; everything else goes through
// math.Pow.
func pow(l, r Value) Value {
	if !l.IsNumeric() || !r.IsNumeric() {
		return NaN()
	}
	if l.IsInt() && r.IsInt() && r.AsInt() >= 0 {
		return IntValue(ipow(l.AsInt(), r.AsInt()))
	}
	return FloatValue(math.Pow(l.AsFloat(), r.AsFloat()))
}

// ipow raises base to exp by squaring. int64 overflow wraps.
func ipow(base, exp int64) int64 {
	r := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r *= base
		}
		base *= base
		exp >>= 1
	}
	return r
}

// Comparisons yield 0 or 1 so their results combine with further
// arithmetic. Two texts compare lexicographically. Text against a number
// is unequal and unordered: == is 0, != is 1, and the rest are NaN.

func eq(l, r Value) Value {
	switch {
	case l.IsText() && r.IsText():
		return btoi(l.String() == r.String())
	case l.IsText() || r.IsText():
		return IntValue(0)
	case l.IsInt() && r.IsInt():
		return btoi(l.AsInt() == r.AsInt())
	default:
		return btoi(l.AsFloat() == r.AsFloat())
	}
}

func ne(l, r Value) Value {
	switch {
	case l.IsText() && r.IsText():
		return btoi(l.String() != r.String())
	case l.IsText() || r.IsText():
		return IntValue(1)
	case l.IsInt() && r.IsInt():
		return btoi(l.AsInt() != r.AsInt())
	default:
		return btoi(l.AsFloat() != r.AsFloat())
	}
}

func lt(l, r Value) Value {
	switch {
	case l.IsText() && r.IsText():
		return btoi(l.String() < r.String())
	case l.IsText() || r.IsText():
		return NaN()
	case l.IsInt() && r.IsInt():
		return btoi(l.AsInt() < r.AsInt())
	default:
		return btoi(l.AsFloat() < r.AsFloat())
	}
}

func gt(l, r Value) Value {
	switch {
	case l.IsText() && r.IsText():
		return btoi(l.String() > r.String())
	case l.IsText() || r.IsText():
		return NaN()
	case l.IsInt() && r.IsInt():
		return btoi(l.AsInt() > r.AsInt())
	default:
		return btoi(l.AsFloat() > r.AsFloat())
	}
}

func le(l, r Value) Value {
	switch {
	case l.IsText() && r.IsText():
		return btoi(l.String() <= r.String())
	case l.IsText() || r.IsText():
		return NaN()
	case l.IsInt() && r.IsInt():
		return btoi(l.AsInt() <= r.AsInt())
	default:
		return btoi(l.AsFloat() <= r.AsFloat())
	}
}

func ge(l, r Value) Value {
	switch {
	case l.IsText() && r.IsText():
		return btoi(l.String() >= r.String())
	case l.IsText() || r.IsText():
		return NaN()
	case l.IsInt() && r.IsInt():
		return btoi(l.AsInt() >= r.AsInt())
	default:
		return btoi(l.AsFloat() >= r.AsFloat())
	}
}

package arith

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Expr = num | const | Call | Neg | Cmp | Add | Sub | Mul | Div | FloorDiv | Mod | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Cmp = Expr ('==' | '!=' | '<' | '>' | '<=' | '>=') Expr

// Expr is a parsed expression. An Expr is immutable once built and may be
// evaluated concurrently from any number of goroutines.
type Expr struct {
	// root is the root node of the expression tree.
	root *node
}

// String formats the expression with every operator application
// parenthesized, making the folded structure visible.
func (e *Expr) String() string {
	return e.root.String()
}

// Binding strengths, tightest first. Unary minus is not listed because it
// folds before any binary operator.
const (
	precPow int8 = 4
	precMul int8 = 3
	precAdd int8 = 2
	precCmp int8 = 1
)

// precLevels lists the binding strengths in folding order.
var precLevels = [...]int8{precPow, precMul, precAdd, precCmp}

// operator describes a binary operator: how tightly it binds, whether it
// associates rightward, and the function applied during evaluation.
type operator struct {
	prec  int8
	right bool
	fn    func(l, r Value) Value
}

// operators is the operator table. It is built once and never modified, so
// it is safe to read without synchronization.
var operators = map[string]operator{
	"**": {precPow, true, pow},
	"//": {precMul, false, floorDiv},
	"/":  {precMul, false, div},
	"*":  {precMul, false, mul},
	"%":  {precMul, false, mod},
	"+":  {precAdd, false, add},
	"-":  {precAdd, false, sub},
	"==": {precCmp, false, eq},
	"!=": {precCmp, false, ne},
	"<":  {precCmp, false, lt},
	">":  {precCmp, false, gt},
	"<=": {precCmp, false, le},
	">=": {precCmp, false, ge},
}

// item is one element of the builder's work list: either a token not yet
// consumed or a node reduced from earlier tokens.
type item struct {
	tok lexToken // meaningful only when n is nil
	n   *node
	pos int
}

func valueItem(n *node, pos int) item {
	return item{n: n, pos: pos}
}

// isValue reports whether the item has been reduced to a node.
func (it item) isValue() bool {
	return it.n != nil
}

// Parse builds the expression tree for src. Empty and blank inputs parse
// successfully and evaluate to 0. Any returned error satisfies InputError
// and reports the byte offset of the offending token.
func Parse(src string) (*Expr, error) {
	toks := lex(src)
	if err := checkBalance(toks); err != nil {
		return nil, err
	}
	items, err := resolve(toks)
	if err != nil {
		return nil, err
	}
	items, err = reduceParens(items)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if !it.isValue() && it.tok.kind == tokenSep {
			return nil, &SyntaxError{Col: it.pos, Msg: "separator outside function call"}
		}
	}
	root, err := foldSpan(items)
	if err != nil {
		return nil, err
	}
	return &Expr{root: root}, nil
}

// checkBalance verifies that parentheses pair up. It runs over the raw
// token stream before any reduction so a mismatch is reported at its own
// position rather than wherever reduction happens to strand.
func checkBalance(toks []lexToken) error {
	var open []int
	for _, t := range toks {
		switch t.kind {
		case tokenOpen:
			open = append(open, t.pos)
		case tokenClose:
			if len(open) == 0 {
				return &SyntaxError{Col: t.pos, Msg: "unmatched )"}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		return &SyntaxError{Col: open[len(open)-1], Msg: "unmatched ("}
	}
	return nil
}

// resolve turns raw tokens into work items. Numeric literals and constants
// become nodes immediately. Any other identifier must name a function
// applied to a parenthesized list, and every operator spelling must appear
// in the operator table.
func resolve(toks []lexToken) ([]item, error) {
	items := make([]item, 0, len(toks))
	for i, t := range toks {
		switch t.kind {
		case tokenNum:
			n, err := literal(t)
			if err != nil {
				return nil, err
			}
			items = append(items, valueItem(n, t.pos))
		case tokenIdent:
			if c, ok := constants[t.text]; ok {
				items = append(items, valueItem(numNode(c), t.pos))
				continue
			}
			if _, ok := builtins[t.text]; !ok {
				return nil, &UnknownFunctionError{Col: t.pos, Name: t.text}
			}
			if i+1 >= len(toks) || toks[i+1].kind != tokenOpen {
				return nil, &SyntaxError{Col: t.pos, Msg: fmt.Sprintf("function %s must be called", t.text)}
			}
			items = append(items, item{tok: t, pos: t.pos})
		case tokenOp:
			if _, ok := operators[t.text]; !ok {
				return nil, &UnknownOperatorError{Col: t.pos, Operator: t.text}
			}
			items = append(items, item{tok: t, pos: t.pos})
		case tokenOpen, tokenClose, tokenSep:
			items = append(items, item{tok: t, pos: t.pos})
		default:
			panic("arith: cannot resolve token " + t.String())
		}
	}
	return items, nil
}

// literal parses a numeric token. A decimal point selects the float kind.
// An integer literal beyond int64 range falls back to float rather than
// failing, and a literal even float cannot hold saturates to infinity.
func literal(t lexToken) (*node, error) {
	if !strings.ContainsRune(t.text, '.') {
		n, err := strconv.ParseInt(t.text, 10, 64)
		if err == nil {
			return numNode(IntValue(n)), nil
		}
		if !errors.Is(err, strconv.ErrRange) {
			return nil, &InvalidNumberError{Col: t.pos, Text: t.text}
		}
	}
	f, err := strconv.ParseFloat(t.text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &InvalidNumberError{Col: t.pos, Text: t.text}
	}
	return numNode(FloatValue(f)), nil
}

// reduceParens collapses parenthesized spans innermost-first. The first
// closing parenthesis and the nearest opening one to its left bound a span
// containing no parentheses at all, so it reduces without recursion.
func reduceParens(items []item) ([]item, error) {
	for {
		end := -1
		for i, it := range items {
			if !it.isValue() && it.tok.kind == tokenClose {
				end = i
				break
			}
		}
		if end < 0 {
			return items, nil
		}
		start := -1
		for i := end - 1; i >= 0; i-- {
			if !items[i].isValue() && items[i].tok.kind == tokenOpen {
				start = i
				break
			}
		}
		if start < 0 {
			panic("arith: unbalanced parentheses after balance check")
		}
		inner := items[start+1 : end]
		if start > 0 && !items[start-1].isValue() && items[start-1].tok.kind == tokenIdent {
			call, err := reduceCall(items[start-1], inner)
			if err != nil {
				return nil, err
			}
			items = splice(items, start-1, end+1, valueItem(call, items[start-1].pos))
			continue
		}
		// Transparent grouping.
		if len(inner) == 0 {
			return nil, &SyntaxError{Col: items[start].pos, Msg: "empty parentheses"}
		}
		for _, it := range inner {
			if !it.isValue() && it.tok.kind == tokenSep {
				return nil, &SyntaxError{Col: it.pos, Msg: "separator outside function call"}
			}
		}
		n, err := foldSpan(inner)
		if err != nil {
			return nil, err
		}
		items = splice(items, start, end+1, valueItem(n, items[start].pos))
	}
}

// splice replaces items[start:end] with a single item.
func splice(items []item, start, end int, it item) []item {
	items[start] = it
	return append(items[:start+1], items[end:]...)
}

// reduceCall folds the argument list of a call to the named function.
// inner is the span between the parentheses, separators still in place.
// Arguments are reduced before the arity check so the reported count is
// of argument expressions, not raw tokens.
func reduceCall(name item, inner []item) (*node, error) {
	f := builtins[name.tok.text]
	segs, err := splitArgs(inner)
	if err != nil {
		return nil, err
	}
	args := make([]*node, len(segs))
	for i, seg := range segs {
		n, err := foldSpan(seg)
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	if !f.CanCall(len(args)) {
		return nil, &ArityError{Col: name.pos, Func: name.tok.text, Min: f.min, Max: f.max, Len: len(args)}
	}
	return &node{kind: nodeCall, name: name.tok.text, args: args}, nil
}

// splitArgs splits an argument span on its separators. An empty segment,
// including one left by a trailing separator, is a syntax error. The empty
// span is a call with no arguments.
func splitArgs(inner []item) ([][]item, error) {
	if len(inner) == 0 {
		return nil, nil
	}
	var segs [][]item
	start := 0
	for i, it := range inner {
		if it.isValue() || it.tok.kind != tokenSep {
			continue
		}
		if i == start {
			return nil, &SyntaxError{Col: it.pos, Msg: "missing argument"}
		}
		segs = append(segs, inner[start:i])
		start = i + 1
	}
	if start == len(inner) {
		return nil, &SyntaxError{Col: inner[len(inner)-1].pos, Msg: "missing argument"}
	}
	return append(segs, inner[start:]), nil
}

// foldSpan reduces a parenthesis-free, separator-free span to one node.
// The empty span is the empty expression and reduces to 0.
func foldSpan(items []item) (*node, error) {
	if len(items) == 0 {
		return zeroNode(), nil
	}
	items = foldUnary(items)
	for _, prec := range precLevels {
		var err error
		items, err = foldBinary(items, prec)
		if err != nil {
			return nil, err
		}
	}
	if len(items) == 1 && items[0].isValue() {
		return items[0].n, nil
	}
	// Every operator folded or failed above, so what remains here is two
	// or more values with nothing joining them.
	for _, it := range items {
		if !it.isValue() {
			return nil, &SyntaxError{Col: it.pos, Msg: fmt.Sprintf("unexpected %q", it.tok.text)}
		}
	}
	return nil, &SyntaxError{Col: items[1].pos, Msg: "expected operator"}
}

// foldUnary rewrites unary minus as subtraction from zero. A minus is
// unary when nothing or another operator stands to its left and a value
// stands to its right. Scanning right to left folds stacked negations
// innermost first.
func foldUnary(items []item) []item {
	for i := len(items) - 1; i >= 0; i-- {
		it := items[i]
		if it.isValue() || it.tok.kind != tokenOp || it.tok.text != "-" {
			continue
		}
		if i+1 >= len(items) || !items[i+1].isValue() {
			continue
		}
		if i > 0 && items[i-1].isValue() {
			continue
		}
		n := &node{kind: nodeOp, op: "-", left: zeroNode(), right: items[i+1].n}
		items[i] = valueItem(n, it.pos)
		items = append(items[:i+1], items[i+2:]...)
	}
	return items
}

// foldBinary folds every operator of binding strength prec. Left-associative
// levels scan left to right; the right-associative ** level scans right to
// left so that a ** b ** c folds as a ** (b ** c).
func foldBinary(items []item, prec int8) ([]item, error) {
	if rightAssoc(prec) {
		for i := len(items) - 1; i >= 0; i-- {
			if !opAt(items, i, prec) {
				continue
			}
			var err error
			items, err = foldAt(items, i)
			if err != nil {
				return nil, err
			}
		}
		return items, nil
	}
	for i := 0; i < len(items); i++ {
		if !opAt(items, i, prec) {
			continue
		}
		var err error
		items, err = foldAt(items, i)
		if err != nil {
			return nil, err
		}
		// The fold left its node at i-1, so the item after it slid into i.
		i--
	}
	return items, nil
}

// rightAssoc reports whether operators of binding strength prec fold
// rightward. Associativity is uniform within a level.
func rightAssoc(prec int8) bool {
	return prec == precPow
}

// opAt reports whether items[i] is an operator of binding strength prec.
func opAt(items []item, i int, prec int8) bool {
	it := items[i]
	if it.isValue() || it.tok.kind != tokenOp {
		return false
	}
	op, ok := operators[it.tok.text]
	if !ok {
		panic("arith: unknown operator " + it.tok.text + " after resolve")
	}
	return op.prec == prec
}

// foldAt replaces items[i-1 : i+2] with one operator node. Both neighbors
// must already be values.
func foldAt(items []item, i int) ([]item, error) {
	it := items[i]
	if i == 0 || !items[i-1].isValue() || i+1 >= len(items) || !items[i+1].isValue() {
		return nil, &SyntaxError{Col: it.pos, Msg: fmt.Sprintf("operator %q missing operand", it.tok.text)}
	}
	n := &node{kind: nodeOp, op: it.tok.text, left: items[i-1].n, right: items[i+1].n}
	items[i-1] = valueItem(n, items[i-1].pos)
	return append(items[:i], items[i+2:]...), nil
}

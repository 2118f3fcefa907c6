package arith

import (
	"strconv"
	"strings"
)

// node is a node in the expression tree.
type node struct {
	kind nodeKind

	val  Value  // nodeNum
	op   string // nodeOp
	name string // nodeCall

	left  *node   // nodeOp operands
	right *node
	args  []*node // nodeCall arguments
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // a literal or constant value
	nodeOp   // apply op to left and right
	nodeCall // apply the named builtin to args
)

func (k nodeKind) String() string {
	switch k {
	case nodeNone:
		return "None"
	case nodeNum:
		return "Num"
	case nodeOp:
		return "Op"
	case nodeCall:
		return "Call"
	default:
		return "nodeKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// numNode returns a number node holding v.
func numNode(v Value) *node {
	return &node{kind: nodeNum, val: v}
}

// zeroNode is what an empty expression builds. It evaluates to integer 0.
// Unary negation also desugars through it, as 0 - x.
func zeroNode() *node {
	return numNode(IntValue(0))
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(n.val.String())
	case nodeOp:
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(n.op)
		b.WriteByte(' ')
		n.right.fmt(b)
		b.WriteByte(')')
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		for i, a := range n.args {
			if i > 0 {
				b.WriteString(", ")
			}
			a.fmt(b)
		}
		b.WriteByte(')')
	default:
		panic("arith: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}

package expr

import (
	"strconv"
	"strings"
)

// Node is a node of the expression tree.
type Node interface {
	// write appends the canonical, fully parenthesized form of the node.
	write(b *strings.Builder)
}

// Num is a numeric literal.
type Num struct {
	Value float64
}

// Var is a reference to the Index-th declared variable.
type Var struct {
	Name  string
	Index int
}

// Neg is unary minus.
type Neg struct {
	X Node
}

// Binary is an infix operation. Op is one of + - * / ^.
type Binary struct {
	Op   byte
	L, R Node
}

// Call applies an elementary function to one argument.
type Call struct {
	Fn  string
	Arg Node
}

func (n *Num) write(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (n *Var) write(b *strings.Builder) { b.WriteString(n.Name) }

func (n *Neg) write(b *strings.Builder) {
	b.WriteString("(-")
	n.X.write(b)
	b.WriteByte(')')
}

func (n *Binary) write(b *strings.Builder) {
	b.WriteByte('(')
	n.L.write(b)
	b.WriteByte(' ')
	b.WriteByte(n.Op)
	b.WriteByte(' ')
	n.R.write(b)
	b.WriteByte(')')
}

func (n *Call) write(b *strings.Builder) {
	b.WriteString(n.Fn)
	b.WriteByte('(')
	n.Arg.write(b)
	b.WriteByte(')')
}

// intExponent reports whether n is a literal integer usable with Powi.
func intExponent(n Node) (int, bool) {
	num, ok := n.(*Num)
	if !ok {
		return 0, false
	}
	if num.Value != float64(int(num.Value)) || num.Value > 1<<20 || num.Value < -(1<<20) {
		return 0, false
	}
	return int(num.Value), true
}

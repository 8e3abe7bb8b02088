package derivater

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/cespare/xxhash/v2"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is the capability set shared by every node. Nodes are immutable:
// no method mutates its receiver or any child.
//
// Equal is syntactic ("built identically"), never mathematical, and Hash is
// consistent with it. Types outside this package can implement Expr and use
// the Default* helpers for the parts they don't care about.
type Expr interface {
	fmt.Stringer

	// Content returns the immediate children in order. Atoms return nil.
	Content() []Expr
	// MapContent rebuilds the node with f applied to each child and
	// re-runs the node's own canonicalization.
	MapContent(f func(Expr) Expr) Expr
	DependsOn(s *Symbol) bool
	// Derivative should be called through the package-level Derivative,
	// which answers 0 for independent nodes before dispatching here.
	Derivative(wrt *Symbol) (Expr, error)
	GentleSimplify() Expr
	// FractionCoefficient splits out a purely rational factor.
	FractionCoefficient() (*big.Rat, Expr)
	Equal(other Expr) bool
	Hash() uint64
}

// Parenthesizer lets a node control how it is wrapped when displayed
// inside a Sum, a Product or a Power.
type Parenthesizer interface {
	AddParenthesize() string
	MulParenthesize() string
	PowParenthesize() string
}

const maxSimplifyPasses = 32

var (
	zero     = N(0)
	one      = N(1)
	minusOne = N(-1)
)

// ============================================================
// Protocol defaults
// ============================================================

// DefaultDependsOn answers true iff any child depends on s.
func DefaultDependsOn(e Expr, s *Symbol) bool {
	for _, c := range e.Content() {
		if c.DependsOn(s) {
			return true
		}
	}
	return false
}

// DefaultGentleSimplify simplifies the children and leaves the node itself alone.
func DefaultGentleSimplify(e Expr) Expr {
	return e.MapContent(func(c Expr) Expr { return c.GentleSimplify() })
}

// DefaultDerivative is the rule for nodes that know no better: zero when
// independent of wrt, an *UnsupportedDerivativeError otherwise.
func DefaultDerivative(e Expr, wrt *Symbol) (Expr, error) {
	if !e.DependsOn(wrt) {
		return zero, nil
	}
	return nil, &UnsupportedDerivativeError{Expr: e, Wrt: wrt}
}

// MapRecursive maps every child recursively and then applies f to the rebuilt node.
func MapRecursive(e Expr, f func(Expr) Expr) Expr {
	mapped := e.MapContent(func(c Expr) Expr { return MapRecursive(c, f) })
	return f(mapped)
}

// Simplify runs GentleSimplify until the tree stops changing.
func Simplify(e Expr) Expr {
	cur := e.GentleSimplify()
	for i := 0; i < maxSimplifyPasses; i++ {
		next := cur.GentleSimplify()
		if next.Equal(cur) {
			return cur
		}
		cur = next
	}
	return cur
}

// Derivative differentiates e with respect to wrt.
func Derivative(e Expr, wrt *Symbol) (Expr, error) {
	if !e.DependsOn(wrt) {
		return zero, nil
	}
	return e.Derivative(wrt)
}

// DerivativeN differentiates n times.
func DerivativeN(e Expr, wrt *Symbol, n int) (Expr, error) {
	var err error
	for i := 0; i < n; i++ {
		if e, err = Derivative(e, wrt); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// ============================================================
// Helpers
// ============================================================

func isZero(e Expr) bool {
	i, ok := e.(*Integer)
	return ok && i.val.Sign() == 0
}

func isOne(e Expr) bool {
	i, ok := e.(*Integer)
	return ok && i.val.IsInt64() && i.val.Int64() == 1
}

func isMinusOne(e Expr) bool {
	i, ok := e.(*Integer)
	return ok && i.val.IsInt64() && i.val.Int64() == -1
}

// isNumeric reports whether e is a pure rational number in disguise.
func isNumeric(e Expr) bool {
	_, rest := e.FractionCoefficient()
	return isOne(rest)
}

func mapAll(es []Expr, f func(Expr) Expr) []Expr {
	out := make([]Expr, len(es))
	for i, e := range es {
		out[i] = f(e)
	}
	return out
}

func equalLists(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func hashString(tag, s string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(tag)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(s)
	return d.Sum64()
}

func hashNode(tag string, parts ...uint64) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(tag)
	buf := make([]byte, 0, 8*len(parts))
	for _, p := range parts {
		buf = binary.LittleEndian.AppendUint64(buf, p)
	}
	_, _ = d.Write(buf)
	return d.Sum64()
}

func hashList(tag string, es []Expr) uint64 {
	parts := make([]uint64, len(es))
	for i, e := range es {
		parts[i] = e.Hash()
	}
	return hashNode(tag, parts...)
}

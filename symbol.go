package derivater

import (
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// Symbol — named variable
// ============================================================

// Symbol is a named variable. Two symbols with the same name are equal.
type Symbol struct{ name string }

// S returns the symbol called name.
func S(name string) *Symbol { return &Symbol{name: name} }

// Symbols returns one symbol per name.
func Symbols(names ...string) []*Symbol {
	out := make([]*Symbol, len(names))
	for i, n := range names {
		out[i] = S(n)
	}
	return out
}

func (s *Symbol) Name() string                          { return s.name }
func (s *Symbol) String() string                        { return s.name }
func (s *Symbol) Content() []Expr                       { return nil }
func (s *Symbol) MapContent(func(Expr) Expr) Expr       { return s }
func (s *Symbol) GentleSimplify() Expr                  { return s }
func (s *Symbol) FractionCoefficient() (*big.Rat, Expr) { return ratOne(), s }
func (s *Symbol) Hash() uint64                          { return hashString("symbol", s.name) }

func (s *Symbol) Equal(other Expr) bool {
	o, ok := other.(*Symbol)
	return ok && s.name == o.name
}

func (s *Symbol) DependsOn(other *Symbol) bool { return s.Equal(other) }

func (s *Symbol) Derivative(wrt *Symbol) (Expr, error) {
	if s.Equal(wrt) {
		return one, nil
	}
	return zero, nil
}

// ============================================================
// SymbolFunction — opaque unary function f(x), f'(x), ...
// ============================================================

// SymbolFunction is an unknown single-variable function applied to an
// argument, carrying how many times it has been differentiated.
type SymbolFunction struct {
	name  string
	arg   Expr
	order int
}

// Fn returns name(arg).
func Fn(name string, arg Expr) *SymbolFunction {
	return &SymbolFunction{name: name, arg: arg}
}

// NewSymbolFunction returns name with order primes applied to arg.
func NewSymbolFunction(name string, arg Expr, order int) (*SymbolFunction, error) {
	if order < 0 {
		return nil, &NegativeDerivativeOrderError{Name: name, Order: order}
	}
	return &SymbolFunction{name: name, arg: arg, order: order}, nil
}

// Function returns a constructor for name, so f := Function("f") reads like f(x).
func Function(name string) func(arg Expr) *SymbolFunction {
	return func(arg Expr) *SymbolFunction { return Fn(name, arg) }
}

func (f *SymbolFunction) Name() string    { return f.name }
func (f *SymbolFunction) Arg() Expr       { return f.arg }
func (f *SymbolFunction) Order() int      { return f.order }
func (f *SymbolFunction) Content() []Expr { return []Expr{f.arg} }

func (f *SymbolFunction) String() string {
	return f.name + strings.Repeat("'", f.order) + "(" + f.arg.String() + ")"
}

func (f *SymbolFunction) MapContent(fn func(Expr) Expr) Expr {
	return &SymbolFunction{name: f.name, arg: fn(f.arg), order: f.order}
}

func (f *SymbolFunction) DependsOn(s *Symbol) bool              { return f.arg.DependsOn(s) }
func (f *SymbolFunction) GentleSimplify() Expr                  { return DefaultGentleSimplify(f) }
func (f *SymbolFunction) FractionCoefficient() (*big.Rat, Expr) { return ratOne(), f }

func (f *SymbolFunction) Derivative(wrt *Symbol) (Expr, error) {
	darg, err := Derivative(f.arg, wrt)
	if err != nil {
		return nil, err
	}
	next := &SymbolFunction{name: f.name, arg: f.arg, order: f.order + 1}
	return MulOf(next, darg), nil
}

func (f *SymbolFunction) Equal(other Expr) bool {
	o, ok := other.(*SymbolFunction)
	return ok && f.name == o.name && f.order == o.order && f.arg.Equal(o.arg)
}

func (f *SymbolFunction) Hash() uint64 {
	return hashNode("function", hashString("name", f.name), hashString("order", strconv.Itoa(f.order)), f.arg.Hash())
}

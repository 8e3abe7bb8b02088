package derivater

import (
	"math"
	"math/big"
)

// ============================================================
// Func — elementary function applications
// ============================================================

// FuncOp identifies an elementary function.
type FuncOp int

const (
	OpLn FuncOp = iota
	OpSin
	OpCos
	OpTan
	OpAsin
	OpAcos
	OpAtan
)

var funcNames = map[FuncOp]string{
	OpLn:   "ln",
	OpSin:  "sin",
	OpCos:  "cos",
	OpTan:  "tan",
	OpAsin: "asin",
	OpAcos: "acos",
	OpAtan: "atan",
}

func (op FuncOp) String() string { return funcNames[op] }

func funcOpByName(name string) (FuncOp, bool) {
	for op, n := range funcNames {
		if n == name {
			return op, true
		}
	}
	return 0, false
}

// Func is an elementary function applied to one argument. Use the
// constructors (Ln, Sin, ...): they return special values such as
// ln(1) = 0 instead of a Func where one is known.
type Func struct {
	op  FuncOp
	arg Expr
}

func Ln(arg Expr) Expr   { return apply(OpLn, arg) }
func Sin(arg Expr) Expr  { return apply(OpSin, arg) }
func Cos(arg Expr) Expr  { return apply(OpCos, arg) }
func Tan(arg Expr) Expr  { return apply(OpTan, arg) }
func Asin(arg Expr) Expr { return apply(OpAsin, arg) }
func Acos(arg Expr) Expr { return apply(OpAcos, arg) }
func Atan(arg Expr) Expr { return apply(OpAtan, arg) }

// Exp is e**arg.
func Exp(arg Expr) Expr { return PowOf(E, arg) }

// Log is the logarithm of arg in the given base, ln(arg)/ln(base).
func Log(arg, base Expr) Expr { return DivOf(Ln(arg), Ln(base)) }

func Log2(arg Expr) Expr  { return Log(arg, N(2)) }
func Log10(arg Expr) Expr { return Log(arg, N(10)) }

// Apply calls the constructor for op.
func Apply(op FuncOp, arg Expr) Expr { return apply(op, arg) }

func apply(op FuncOp, arg Expr) Expr {
	switch op {
	case OpLn:
		if isOne(arg) {
			return zero
		}
		if arg.Equal(E) {
			return one
		}
		if pw, ok := arg.(*Power); ok && pw.base.Equal(E) {
			return pw.exp
		}
	case OpSin, OpTan, OpAsin, OpAtan:
		if isZero(arg) {
			return zero
		}
	case OpCos:
		if isZero(arg) {
			return one
		}
	case OpAcos:
		if isOne(arg) {
			return zero
		}
	}
	return &Func{op: op, arg: arg}
}

func (f *Func) Op() FuncOp      { return f.op }
func (f *Func) Arg() Expr       { return f.arg }
func (f *Func) Content() []Expr { return []Expr{f.arg} }
func (f *Func) String() string  { return f.op.String() + "(" + f.arg.String() + ")" }

func (f *Func) MapContent(fn func(Expr) Expr) Expr    { return apply(f.op, fn(f.arg)) }
func (f *Func) GentleSimplify() Expr                  { return apply(f.op, f.arg.GentleSimplify()) }
func (f *Func) DependsOn(s *Symbol) bool              { return f.arg.DependsOn(s) }
func (f *Func) FractionCoefficient() (*big.Rat, Expr) { return ratOne(), f }
func (f *Func) Hash() uint64                          { return hashNode("func:"+f.op.String(), f.arg.Hash()) }

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.op == o.op && f.arg.Equal(o.arg)
}

// (ln(a))**b reads better than ln(a)**b.
func (f *Func) AddParenthesize() string { return f.String() }
func (f *Func) MulParenthesize() string { return f.String() }
func (f *Func) PowParenthesize() string { return "(" + f.String() + ")" }

// Derivative applies the chain rule to the textbook derivative of op.
func (f *Func) Derivative(wrt *Symbol) (Expr, error) {
	du, err := Derivative(f.arg, wrt)
	if err != nil {
		return nil, err
	}
	u := f.arg
	switch f.op {
	case OpLn:
		return DivOf(du, u), nil
	case OpSin:
		return MulOf(Cos(u), du), nil
	case OpCos:
		return MulOf(minusOne, Sin(u), du), nil
	case OpTan:
		// (1 + tan(u)**2) * u', kept expanded
		return AddOf(du, MulOf(du, PowOf(Tan(u), N(2)))), nil
	case OpAsin:
		return MulOf(du, PowOf(SubOf(one, PowOf(u, N(2))), F(-1, 2))), nil
	case OpAcos:
		return MulOf(minusOne, du, PowOf(SubOf(one, PowOf(u, N(2))), F(-1, 2))), nil
	case OpAtan:
		return DivOf(du, AddOf(one, PowOf(u, N(2)))), nil
	}
	return nil, &UnsupportedDerivativeError{Expr: f, Wrt: wrt}
}

func (op FuncOp) approx(v float64) float64 {
	switch op {
	case OpLn:
		return math.Log(v)
	case OpSin:
		return math.Sin(v)
	case OpCos:
		return math.Cos(v)
	case OpTan:
		return math.Tan(v)
	case OpAsin:
		return math.Asin(v)
	case OpAcos:
		return math.Acos(v)
	case OpAtan:
		return math.Atan(v)
	}
	return math.NaN()
}

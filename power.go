package derivater

import (
	"math/big"
)

// ============================================================
// Power — base**exponent
// ============================================================

// Power is base**exponent. A canonical Power never has a Power or a
// Product as its base and never has 1 as base or exponent. Division is
// represented with negative exponents.
type Power struct{ base, exp Expr }

// NewPower builds a Power without simplifying it.
func NewPower(base, exp Expr) *Power { return &Power{base: base, exp: exp} }

// PowOf raises base to exp and returns the canonical result.
func PowOf(base, exp Expr) Expr { return NewPower(base, exp).GentleSimplify() }

func (p *Power) Base() Expr     { return p.base }
func (p *Power) Exponent() Expr { return p.exp }

func (p *Power) Content() []Expr { return []Expr{p.base, p.exp} }

func (p *Power) MapContent(f func(Expr) Expr) Expr {
	return (&Power{base: f(p.base), exp: f(p.exp)}).GentleSimplify()
}

func (p *Power) DependsOn(s *Symbol) bool { return p.base.DependsOn(s) || p.exp.DependsOn(s) }
func (p *Power) Hash() uint64             { return hashNode("power", p.base.Hash(), p.exp.Hash()) }

func (p *Power) Equal(other Expr) bool {
	o, ok := other.(*Power)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

// FractionCoefficient treats b**(-k) with integer b and k as the rational 1/b**k.
func (p *Power) FractionCoefficient() (*big.Rat, Expr) {
	b, ok1 := p.base.(*Integer)
	e, ok2 := p.exp.(*Integer)
	if !ok1 || !ok2 || e.Sign() >= 0 || b.Sign() == 0 {
		return ratOne(), p
	}
	k := new(big.Int).Neg(e.val)
	den := new(big.Int).Exp(b.val, k, nil)
	return new(big.Rat).SetFrac(big.NewInt(1), den), one
}

// GentleSimplify collapses nested powers, distributes over products and
// evaluates the numeric special cases in a fixed priority.
func (p *Power) GentleSimplify() Expr {
	base := p.base.GentleSimplify()
	exp := p.exp.GentleSimplify()

	if inner, ok := base.(*Power); ok {
		return (&Power{base: inner.base, exp: MulOf(inner.exp, exp)}).GentleSimplify()
	}
	if prod, ok := base.(*Product); ok {
		factors := make([]Expr, len(prod.factors))
		for i, f := range prod.factors {
			factors[i] = &Power{base: f, exp: exp}
		}
		return (&Product{factors: factors}).GentleSimplify()
	}

	switch {
	case isZero(base) && isZero(exp):
		// 0**0 follows math.Pow and big.Int.Exp.
		return one
	case isZero(base):
		return zero
	case isOne(base):
		return one
	case isZero(exp):
		return one
	case isOne(exp):
		return base
	}

	if b, ok := base.(*Integer); ok {
		if e, ok := exp.(*Integer); ok && (e.Sign() >= 0 || isMinusOne(b)) {
			return integerPow(b, e)
		}
	}
	return &Power{base: base, exp: exp}
}

func integerPow(b, e *Integer) *Integer {
	if isMinusOne(b) {
		if e.val.Bit(0) == 0 {
			return one
		}
		return minusOne
	}
	return &Integer{val: new(big.Int).Exp(b.val, e.val, nil)}
}

// Derivative picks the simplest applicable rule so that no logarithm is
// introduced unless the exponent actually varies.
func (p *Power) Derivative(wrt *Symbol) (Expr, error) {
	baseVaries := p.base.DependsOn(wrt)
	expVaries := p.exp.DependsOn(wrt)

	switch {
	case !baseVaries && !expVaries:
		return zero, nil
	case !expVaries:
		// d/dx f**c = c * f**(c-1) * f'; also valid for negative f and integer c
		db, err := Derivative(p.base, wrt)
		if err != nil {
			return nil, err
		}
		return MulOf(p.exp, PowOf(p.base, SubOf(p.exp, one)), db), nil
	case !baseVaries:
		// d/dx a**g = a**g * ln(a) * g'
		de, err := Derivative(p.exp, wrt)
		if err != nil {
			return nil, err
		}
		return MulOf(p, Ln(p.base), de), nil
	}

	// f**g = e**(g*ln(f)); differentiate that and put f**g back
	rewrite := Exp(MulOf(p.exp, Ln(p.base)))
	d, err := Derivative(rewrite, wrt)
	if err != nil {
		return nil, err
	}
	return Replace(d, rewrite, p)
}

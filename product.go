package derivater

import (
	"math/big"
)

// ============================================================
// Product — factors
// ============================================================

// Product is a list of factors. A canonical Product has at least two
// factors, no nested Product, no zero or one, its rational coefficient up
// front as [numerator, denominator**(-1)], and at most one factor per base.
type Product struct{ factors []Expr }

// NewProduct builds a Product without simplifying it.
func NewProduct(factors ...Expr) *Product {
	return &Product{factors: append([]Expr(nil), factors...)}
}

// MulOf multiplies factors and returns the canonical result.
func MulOf(factors ...Expr) Expr { return NewProduct(factors...).GentleSimplify() }

// Factors returns a copy of the factors.
func (p *Product) Factors() []Expr { return append([]Expr(nil), p.factors...) }

func (p *Product) Content() []Expr { return p.Factors() }

func (p *Product) MapContent(f func(Expr) Expr) Expr {
	return (&Product{factors: mapAll(p.factors, f)}).GentleSimplify()
}

func (p *Product) DependsOn(s *Symbol) bool { return DefaultDependsOn(p, s) }
func (p *Product) Hash() uint64             { return hashList("product", p.factors) }

func (p *Product) Equal(other Expr) bool {
	o, ok := other.(*Product)
	return ok && equalLists(p.factors, o.factors)
}

// FractionCoefficient multiplies the factors' coefficients together and
// keeps whatever is not numeric as the remainder.
func (p *Product) FractionCoefficient() (*big.Rat, Expr) {
	coeff := ratOne()
	rest := make([]Expr, 0, len(p.factors))
	for _, f := range p.factors {
		c, r := f.FractionCoefficient()
		coeff.Mul(coeff, c)
		if !isOne(r) {
			rest = append(rest, r)
		}
	}
	switch len(rest) {
	case 0:
		return coeff, one
	case 1:
		return coeff, rest[0]
	}
	if equalLists(rest, p.factors) {
		return coeff, p
	}
	return coeff, &Product{factors: rest}
}

// GentleSimplify flattens, pulls out the rational coefficient, merges equal
// bases by adding exponents and orders the factors by base.
func (p *Product) GentleSimplify() Expr {
	flat := make([]Expr, 0, len(p.factors))
	for _, f := range p.factors {
		f = f.GentleSimplify()
		if isZero(f) {
			return zero
		}
		if inner, ok := f.(*Product); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := ratOne()
	rest := make([]Expr, 0, len(flat))
	for _, f := range flat {
		c, r := f.FractionCoefficient()
		coeff.Mul(coeff, c)
		if isOne(r) {
			continue
		}
		rest = append(rest, r)
	}
	if coeff.Sign() == 0 {
		return zero
	}

	rest = foldDuplicates(rest, func(f Expr, k int) Expr {
		return PowOf(f, N(int64(k)))
	})

	var table exprTable
	var exps [][]Expr
	for _, f := range rest {
		base, exp := baseAndExponent(f)
		i, added := table.insert(base)
		if added {
			exps = append(exps, []Expr{exp})
		} else {
			exps[i] = append(exps[i], exp)
		}
	}

	factors := make([]Expr, 0, len(table.keys))
	renormalize := false
	for i, base := range table.keys {
		exp := exps[i][0]
		if len(exps[i]) > 1 {
			exp = AddOf(exps[i]...)
		}
		if isZero(exp) {
			continue
		}
		f := PowOf(base, exp)
		switch {
		case isZero(f):
			return zero
		case isOne(f):
			continue
		}
		if _, ok := f.(*Product); ok || isNumeric(f) {
			renormalize = true
		}
		factors = append(factors, f)
	}
	if renormalize {
		// a merged power collapsed into a number or a product: run again so
		// the coefficient and the flattening stay right
		return (&Product{factors: append([]Expr{RationalOf(coeff)}, factors...)}).GentleSimplify()
	}
	sortByKey(factors, func(f Expr) Expr {
		base, _ := baseAndExponent(f)
		return base
	})

	out := make([]Expr, 0, len(factors)+2)
	if !coeff.Num().IsInt64() || coeff.Num().Int64() != 1 {
		out = append(out, NewInteger(coeff.Num()))
	}
	if !coeff.IsInt() {
		out = append(out, &Power{base: NewInteger(coeff.Denom()), exp: minusOne})
	}
	out = append(out, factors...)

	switch len(out) {
	case 0:
		return one
	case 1:
		return out[0]
	}
	return &Product{factors: out}
}

func baseAndExponent(e Expr) (Expr, Expr) {
	if pw, ok := e.(*Power); ok {
		return pw.base, pw.exp
	}
	return e, one
}

// Derivative applies the product rule: the sum over factors of that factor's
// derivative times all the others.
func (p *Product) Derivative(wrt *Symbol) (Expr, error) {
	parts := make([]Expr, 0, len(p.factors))
	for i, f := range p.factors {
		d, err := Derivative(f, wrt)
		if err != nil {
			return nil, err
		}
		if isZero(d) {
			continue
		}
		others := make([]Expr, 0, len(p.factors))
		others = append(others, d)
		others = append(others, p.factors[:i]...)
		others = append(others, p.factors[i+1:]...)
		parts = append(parts, MulOf(others...))
	}
	return AddOf(parts...), nil
}

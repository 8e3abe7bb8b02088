package derivater

import (
	"math/big"
)

// ============================================================
// Sum — addends
// ============================================================

// Sum is a list of addends. A canonical Sum has at least two terms, no
// nested Sum, no zero, and at most one numeric term, which comes last.
// Subtraction a - b is Sum([a, Product([-1, b])]).
type Sum struct{ terms []Expr }

// NewSum builds a Sum without simplifying it.
func NewSum(terms ...Expr) *Sum {
	return &Sum{terms: append([]Expr(nil), terms...)}
}

// AddOf adds terms and returns the canonical result.
func AddOf(terms ...Expr) Expr { return NewSum(terms...).GentleSimplify() }

// Terms returns a copy of the addends.
func (s *Sum) Terms() []Expr { return append([]Expr(nil), s.terms...) }

func (s *Sum) Content() []Expr { return s.Terms() }

func (s *Sum) MapContent(f func(Expr) Expr) Expr {
	return (&Sum{terms: mapAll(s.terms, f)}).GentleSimplify()
}

func (s *Sum) DependsOn(sym *Symbol) bool            { return DefaultDependsOn(s, sym) }
func (s *Sum) FractionCoefficient() (*big.Rat, Expr) { return ratOne(), s }
func (s *Sum) Hash() uint64                          { return hashList("sum", s.terms) }

func (s *Sum) Equal(other Expr) bool {
	o, ok := other.(*Sum)
	return ok && equalLists(s.terms, o.terms)
}

// GentleSimplify flattens nested sums, collects the numeric part, merges
// like terms by their rational coefficient and orders what is left.
func (s *Sum) GentleSimplify() Expr {
	flat := make([]Expr, 0, len(s.terms))
	for _, t := range s.terms {
		t = t.GentleSimplify()
		if inner, ok := t.(*Sum); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, t)
		}
	}

	numeric := new(big.Rat)
	others := make([]Expr, 0, len(flat))
	for _, t := range flat {
		coeff, rest := t.FractionCoefficient()
		if isOne(rest) {
			numeric.Add(numeric, coeff)
			continue
		}
		others = append(others, t)
	}

	others = foldDuplicates(others, func(t Expr, k int) Expr {
		return MulOf(N(int64(k)), t)
	})

	var table exprTable
	var coeffs []*big.Rat
	for _, t := range others {
		coeff, rest := t.FractionCoefficient()
		i, added := table.insert(rest)
		if added {
			coeffs = append(coeffs, new(big.Rat).Set(coeff))
		} else {
			coeffs[i].Add(coeffs[i], coeff)
		}
	}

	terms := make([]Expr, 0, len(table.keys)+1)
	for i, rest := range table.keys {
		if coeffs[i].Sign() == 0 {
			continue
		}
		terms = append(terms, scaleTerm(coeffs[i], rest))
	}
	sortByKey(terms, func(t Expr) Expr {
		_, rest := t.FractionCoefficient()
		return rest
	})
	if numeric.Sign() != 0 {
		terms = append(terms, RationalOf(numeric))
	}

	switch len(terms) {
	case 0:
		return zero
	case 1:
		return terms[0]
	}
	return &Sum{terms: terms}
}

func scaleTerm(coeff *big.Rat, rest Expr) Expr {
	if ratIsOne(coeff) {
		return rest
	}
	return MulOf(RationalOf(coeff), rest)
}

// Derivative applies linearity.
func (s *Sum) Derivative(wrt *Symbol) (Expr, error) {
	parts := make([]Expr, len(s.terms))
	for i, t := range s.terms {
		d, err := Derivative(t, wrt)
		if err != nil {
			return nil, err
		}
		parts[i] = d
	}
	return AddOf(parts...), nil
}

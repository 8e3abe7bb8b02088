package derivater

import (
	"strings"
)

// ============================================================
// Display
// ============================================================

func addParen(e Expr) string {
	if p, ok := e.(Parenthesizer); ok {
		return p.AddParenthesize()
	}
	return e.String()
}

func mulParen(e Expr) string {
	if p, ok := e.(Parenthesizer); ok {
		return p.MulParenthesize()
	}
	return addParen(e)
}

func powParen(e Expr) string {
	if p, ok := e.(Parenthesizer); ok {
		return p.PowParenthesize()
	}
	return mulParen(e)
}

// divParen wraps either side of a " / " unless it binds tighter than division.
func divParen(e Expr) string {
	switch e.(type) {
	case *Sum, *Product:
		return "(" + e.String() + ")"
	}
	return mulParen(e)
}

// looksNegative reports a negative integer or a product led by one.
func looksNegative(e Expr) bool {
	switch v := e.(type) {
	case *Integer:
		return v.Sign() < 0
	case *Product:
		if len(v.factors) == 0 {
			return false
		}
		i, ok := v.factors[0].(*Integer)
		return ok && i.Sign() < 0
	}
	return false
}

func (s *Sum) String() string {
	if len(s.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	sb.WriteString(addParen(s.terms[0]))
	for _, t := range s.terms[1:] {
		if looksNegative(t) {
			sb.WriteString(" - ")
			sb.WriteString(addParen(NegOf(t)))
		} else {
			sb.WriteString(" + ")
			sb.WriteString(addParen(t))
		}
	}
	return sb.String()
}

func (s *Sum) AddParenthesize() string { return s.String() }
func (s *Sum) MulParenthesize() string { return "(" + s.String() + ")" }
func (s *Sum) PowParenthesize() string { return s.MulParenthesize() }

// String renders a*b**(-1) as a division.
func (p *Product) String() string {
	if len(p.factors) == 0 {
		return "1"
	}
	if looksNegative(p) {
		return "-" + mulParen(NegOf(p))
	}

	var top, bottom []Expr
	for _, f := range p.factors {
		if pw, ok := f.(*Power); ok && looksNegative(pw.exp) {
			bottom = append(bottom, InvOf(pw))
		} else {
			top = append(top, f)
		}
	}
	if len(bottom) == 0 {
		parts := make([]string, len(top))
		for i, f := range top {
			parts[i] = mulParen(f)
		}
		return strings.Join(parts, "*")
	}
	return divParen(MulOf(top...)) + " / " + divParen(MulOf(bottom...))
}

func (p *Product) AddParenthesize() string { return p.String() }
func (p *Product) MulParenthesize() string { return p.String() }
func (p *Product) PowParenthesize() string { return "(" + p.String() + ")" }

func (p *Power) String() string {
	if isMinusOne(p.exp) {
		return "1 / " + divParen(p.base)
	}
	return powParen(p.base) + "**" + powParen(p.exp)
}

// x**y**z means x**(y**z), so a power inside a power is always wrapped.
func (p *Power) AddParenthesize() string { return p.String() }
func (p *Power) MulParenthesize() string { return p.String() }
func (p *Power) PowParenthesize() string { return "(" + p.String() + ")" }

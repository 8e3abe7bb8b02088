package derivater

// Validate walks e and returns an *InvalidNodeError for the first node that
// breaks the canonical-form rules of Sum, Product and Power. Trees returned
// by the canonicalizing constructors always validate.
func Validate(e Expr) error {
	for _, c := range e.Content() {
		if err := Validate(c); err != nil {
			return err
		}
	}
	invalid := func(reason string) error { return &InvalidNodeError{Expr: e, Reason: reason} }

	switch v := e.(type) {
	case *Sum:
		if len(v.terms) < 2 {
			return invalid("fewer than two terms")
		}
		for i, t := range v.terms {
			if _, ok := t.(*Sum); ok {
				return invalid("nested sum")
			}
			if isZero(t) {
				return invalid("zero term")
			}
			if isNumeric(t) && i != len(v.terms)-1 {
				return invalid("numeric term is not last")
			}
		}
	case *Product:
		if len(v.factors) < 2 {
			return invalid("fewer than two factors")
		}
		var bases exprTable
		for i, f := range v.factors {
			if _, ok := f.(*Product); ok {
				return invalid("nested product")
			}
			if isZero(f) || isOne(f) {
				return invalid("zero or one factor")
			}
			if _, ok := f.(*Integer); ok && i != 0 {
				return invalid("integer coefficient is not first")
			}
			if isNumeric(f) {
				continue
			}
			base, _ := baseAndExponent(f)
			if _, added := bases.insert(base); !added {
				return invalid("repeated base " + base.String())
			}
		}
	case *Power:
		if _, ok := v.base.(*Power); ok {
			return invalid("power base")
		}
		if isOne(v.base) || isOne(v.exp) {
			return invalid("base or exponent is one")
		}
	}
	return nil
}

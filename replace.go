package derivater

// ============================================================
// Substitution
// ============================================================

// Replace substitutes repl for every subtree structurally equal to old.
//
// Rebuilt nodes are canonicalized through MapContent, except for partial
// matches: when old is a Sum (or Product) whose terms occur as a sub-multiset
// of a Sum's terms (or a Product's factors), those terms are removed and repl
// takes the place of the last of them. That result is left unsimplified so
// the new structure can be inspected.
func Replace(e, old, repl Expr) (Expr, error) {
	switch p := old.(type) {
	case *Sum:
		if len(p.terms) == 0 {
			return nil, &EmptyPatternError{Pattern: old}
		}
	case *Product:
		if len(p.factors) == 0 {
			return nil, &EmptyPatternError{Pattern: old}
		}
	}
	return replace(e, old, repl), nil
}

func replace(e, old, repl Expr) Expr {
	if e.Equal(old) {
		return repl
	}
	recurse := func(c Expr) Expr { return replace(c, old, repl) }

	switch v := e.(type) {
	case *Sum:
		if pat, ok := old.(*Sum); ok {
			terms := mapAll(v.terms, recurse)
			if out, ok := replacePartial(terms, pat.terms, repl); ok {
				if len(out) == 1 {
					return out[0]
				}
				return &Sum{terms: out}
			}
			return (&Sum{terms: terms}).GentleSimplify()
		}
	case *Product:
		if pat, ok := old.(*Product); ok {
			factors := mapAll(v.factors, recurse)
			if out, ok := replacePartial(factors, pat.factors, repl); ok {
				if len(out) == 1 {
					return out[0]
				}
				return &Product{factors: out}
			}
			return (&Product{factors: factors}).GentleSimplify()
		}
	}
	return e.MapContent(recurse)
}

// replacePartial removes each occurrence of the pattern multiset from elems
// and inserts repl where the last matched element was.
func replacePartial(elems, pattern []Expr, repl Expr) ([]Expr, bool) {
	matched := false
	// a one-element pattern keeps the length constant, so bound the passes
	for pass := 0; pass <= len(elems); pass++ {
		idx, ok := matchMultiset(elems, pattern)
		if !ok {
			break
		}
		matched = true

		last := 0
		removed := make(map[int]bool, len(idx))
		for _, i := range idx {
			removed[i] = true
			if i > last {
				last = i
			}
		}
		pos := last - (len(idx) - 1)

		out := make([]Expr, 0, len(elems)-len(idx)+1)
		for i, el := range elems {
			if !removed[i] {
				out = append(out, el)
			}
		}
		out = append(out[:pos], append([]Expr{repl}, out[pos:]...)...)
		elems = out
	}
	return elems, matched
}

// matchMultiset finds, for every pattern element, the first unused index of
// an equal element.
func matchMultiset(elems, pattern []Expr) ([]int, bool) {
	if len(pattern) > len(elems) {
		return nil, false
	}
	used := make([]bool, len(elems))
	idx := make([]int, 0, len(pattern))
	for _, p := range pattern {
		found := -1
		for i, el := range elems {
			if !used[i] && el.Equal(p) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, false
		}
		used[found] = true
		idx = append(idx, found)
	}
	return idx, true
}

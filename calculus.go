package derivater

import (
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Expansion
// ============================================================

// maxExpandPower bounds the integer powers of sums Expand multiplies out.
const maxExpandPower = 10

// Expand distributes products over sums and multiplies out small
// non-negative integer powers of sums.
func Expand(e Expr) Expr { return Simplify(expand(e)) }

func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Product:
		out := Expr(one)
		for _, f := range v.factors {
			out = distribute(out, expand(f))
		}
		return out
	case *Power:
		base := expand(v.base)
		if _, ok := base.(*Sum); ok {
			if n, ok := v.exp.(*Integer); ok && n.Sign() >= 0 && n.val.IsInt64() && n.val.Int64() <= maxExpandPower {
				out := Expr(one)
				for i := int64(0); i < n.val.Int64(); i++ {
					out = distribute(out, base)
				}
				return out
			}
		}
		return PowOf(base, expand(v.exp))
	}
	return e.MapContent(expand)
}

// distribute multiplies two expanded expressions term by term. MulOf would
// fold a repeated sum back into a power, so the terms are paired explicitly.
func distribute(a, b Expr) Expr {
	as, bs := termsOf(a), termsOf(b)
	if len(as) == 1 && len(bs) == 1 {
		return MulOf(a, b)
	}
	terms := make([]Expr, 0, len(as)*len(bs))
	for _, x := range as {
		for _, y := range bs {
			terms = append(terms, expand(MulOf(x, y)))
		}
	}
	return AddOf(terms...)
}

func termsOf(e Expr) []Expr {
	if s, ok := e.(*Sum); ok {
		return s.terms
	}
	return []Expr{e}
}

// ============================================================
// Free Symbols
// ============================================================

// FreeSymbols returns the distinct symbols occurring in e, sorted by name.
func FreeSymbols(e Expr) []*Symbol {
	seen := map[string]*Symbol{}
	collectSymbols(e, seen)
	out := make([]*Symbol, 0, len(seen))
	for _, s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func collectSymbols(e Expr, out map[string]*Symbol) {
	if s, ok := e.(*Symbol); ok {
		out[s.name] = s
		return
	}
	for _, c := range e.Content() {
		collectSymbols(c, out)
	}
}

// ============================================================
// Matrix
// ============================================================

// Matrix is a dense matrix of expressions stored row by row. Entries are
// kept canonical: Set and the Apply methods simplify what they store.
type Matrix struct {
	rows, cols int
	entries    []Expr
}

// NewMatrix returns a rows×cols matrix of zeros.
func NewMatrix(rows, cols int) *Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("derivater: negative matrix size %dx%d", rows, cols))
	}
	entries := make([]Expr, rows*cols)
	for i := range entries {
		entries[i] = zero
	}
	return &Matrix{rows: rows, cols: cols, entries: entries}
}

// MatrixOf builds a matrix from rows of equal length.
func MatrixOf(rows [][]Expr) (*Matrix, error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := NewMatrix(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &DimensionMismatchError{Op: fmt.Sprintf("matrix row %d", i), Want: cols, Got: len(row)}
		}
		for j, e := range row {
			m.entries[m.index(i, j)] = Simplify(e)
		}
	}
	return m, nil
}

// index panics on out-of-range positions, like slice indexing.
func (m *Matrix) index(row, col int) int {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		panic(fmt.Sprintf("derivater: matrix index [%d,%d] out of range for %dx%d", row, col, m.rows, m.cols))
	}
	return row*m.cols + col
}

func (m *Matrix) Get(row, col int) Expr { return m.entries[m.index(row, col)] }

// Set stores the canonical form of val.
func (m *Matrix) Set(row, col int, val Expr) { m.entries[m.index(row, col)] = Simplify(val) }

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Row returns a copy of one row.
func (m *Matrix) Row(row int) []Expr {
	if row < 0 || row >= m.rows {
		panic(fmt.Sprintf("derivater: matrix row %d out of range for %dx%d", row, m.rows, m.cols))
	}
	return append([]Expr(nil), m.entries[row*m.cols:(row+1)*m.cols]...)
}

// Transpose returns a new matrix; m is left untouched.
func (m *Matrix) Transpose() *Matrix {
	out := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.entries[out.index(j, i)] = m.entries[m.index(i, j)]
		}
	}
	return out
}

// Apply maps f over every entry and stops at the first error.
func (m *Matrix) Apply(f func(Expr) (Expr, error)) (*Matrix, error) {
	out := &Matrix{rows: m.rows, cols: m.cols, entries: make([]Expr, len(m.entries))}
	for i, e := range m.entries {
		v, err := f(e)
		if err != nil {
			return nil, err
		}
		out.entries[i] = Simplify(v)
	}
	return out, nil
}

// ApplyDerivative differentiates every entry with respect to wrt.
func (m *Matrix) ApplyDerivative(wrt *Symbol) (*Matrix, error) {
	return m.Apply(func(e Expr) (Expr, error) { return Derivative(e, wrt) })
}

// ApplyReplace substitutes repl for old in every entry.
func (m *Matrix) ApplyReplace(old, repl Expr) (*Matrix, error) {
	return m.Apply(func(e Expr) (Expr, error) { return Replace(e, old, repl) })
}

// Equal compares entry by entry.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i, e := range m.entries {
		if !e.Equal(other.entries[i]) {
			return false
		}
	}
	return true
}

// String renders rows as nested brackets: [[a, b], [c, d]].
func (m *Matrix) String() string {
	rows := make([]string, m.rows)
	for i := range rows {
		cells := make([]string, m.cols)
		for j := range cells {
			cells[j] = m.entries[m.index(i, j)].String()
		}
		rows[i] = "[" + strings.Join(cells, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// ============================================================
// Vector Calculus
// ============================================================

// Gradient returns the partial derivatives of e, one per variable.
func Gradient(e Expr, vars []*Symbol) ([]Expr, error) {
	out := make([]Expr, len(vars))
	for i, v := range vars {
		d, err := Derivative(e, v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Jacobian returns the len(es)×len(vars) matrix of first partials.
func Jacobian(es []Expr, vars []*Symbol) (*Matrix, error) {
	m := NewMatrix(len(es), len(vars))
	for i, e := range es {
		row, err := Gradient(e, vars)
		if err != nil {
			return nil, err
		}
		copy(m.entries[i*m.cols:], row)
	}
	return m, nil
}

// Hessian returns the matrix of second partials of e.
func Hessian(e Expr, vars []*Symbol) (*Matrix, error) {
	grad, err := Gradient(e, vars)
	if err != nil {
		return nil, err
	}
	return Jacobian(grad, vars)
}

// Laplacian returns the sum of the unmixed second partials of e.
func Laplacian(e Expr, vars []*Symbol) (Expr, error) {
	terms := make([]Expr, len(vars))
	for i, v := range vars {
		d, err := DerivativeN(e, v, 2)
		if err != nil {
			return nil, err
		}
		terms[i] = d
	}
	return AddOf(terms...), nil
}

// Divergence returns the sum of d field[i] / d vars[i].
func Divergence(field []Expr, vars []*Symbol) (Expr, error) {
	if len(field) != len(vars) {
		return nil, &DimensionMismatchError{Op: "divergence", Want: len(vars), Got: len(field)}
	}
	terms := make([]Expr, len(field))
	for i := range field {
		d, err := Derivative(field[i], vars[i])
		if err != nil {
			return nil, err
		}
		terms[i] = d
	}
	return AddOf(terms...), nil
}

// Curl returns the curl of a three-dimensional vector field.
func Curl(field [3]Expr, vars [3]*Symbol) ([3]Expr, error) {
	var out [3]Expr
	for i := range out {
		// component i is d field[k] / d vars[j] - d field[j] / d vars[k]
		j, k := (i+1)%3, (i+2)%3
		a, err := Derivative(field[k], vars[j])
		if err != nil {
			return out, err
		}
		b, err := Derivative(field[j], vars[k])
		if err != nil {
			return out, err
		}
		out[i] = SubOf(a, b)
	}
	return out, nil
}

// ============================================================
// Taylor / Maclaurin series
// ============================================================

// TaylorSeries returns the Taylor polynomial of e around wrt = at, up to
// and including the term of the given order. Each coefficient is the k-th
// derivative with at substituted for wrt, divided by k!.
func TaylorSeries(e Expr, wrt *Symbol, at Expr, order int) (Expr, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: series order %d", ErrNegativeDerivativeOrder, order)
	}
	dx := SubOf(wrt, at)
	terms := make([]Expr, 0, order+1)
	current := e
	factorial := big.NewInt(1)
	for k := 0; k <= order; k++ {
		if k > 0 {
			factorial.Mul(factorial, big.NewInt(int64(k)))
			d, err := Derivative(current, wrt)
			if err != nil {
				return nil, err
			}
			current = d
		}
		value, err := Replace(current, wrt, at)
		if err != nil {
			return nil, err
		}
		coeff := DivOf(Simplify(value), NewInteger(factorial))
		if isZero(coeff) {
			continue
		}
		terms = append(terms, MulOf(coeff, PowOf(dx, N(int64(k)))))
	}
	return AddOf(terms...), nil
}

// MaclaurinSeries is TaylorSeries around zero.
func MaclaurinSeries(e Expr, wrt *Symbol, order int) (Expr, error) {
	return TaylorSeries(e, wrt, zero, order)
}

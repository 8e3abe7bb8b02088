package derivater_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	dv "github.com/njchilds90/derivater"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Expand tests
// ============================================================

func TestExpand_Square(t *testing.T) {
	got := dv.Expand(dv.PowOf(dv.AddOf(x, dv.N(1)), dv.N(2)))
	assertExprEqual(t, dv.AddOf(dv.PowOf(x, dv.N(2)), dv.MulOf(dv.N(2), x), dv.N(1)), got)
	assert.Equal(t, "2*x + x**2 + 1", got.String())
}

func TestExpand_Distributes(t *testing.T) {
	got := dv.Expand(dv.MulOf(dv.AddOf(x, y), z))
	assertExprEqual(t, dv.AddOf(dv.MulOf(x, z), dv.MulOf(y, z)), got)
}

func TestExpand_DifferenceOfSquares(t *testing.T) {
	got := dv.Expand(dv.MulOf(dv.AddOf(x, dv.N(1)), dv.SubOf(x, dv.N(1))))
	assert.Equal(t, "x**2 - 1", got.String())
}

func TestExpand_InsideFunctions(t *testing.T) {
	got := dv.Expand(dv.Sin(dv.MulOf(dv.N(2), dv.AddOf(x, y))))
	assertExprEqual(t, dv.Sin(dv.AddOf(dv.MulOf(dv.N(2), x), dv.MulOf(dv.N(2), y))), got)
}

func TestExpand_LeavesLargePowers(t *testing.T) {
	e := dv.PowOf(dv.AddOf(x, dv.N(1)), dv.N(11))
	assertExprEqual(t, e, dv.Expand(e))

	e = dv.PowOf(dv.AddOf(x, dv.N(1)), y)
	assertExprEqual(t, e, dv.Expand(e))
}

// ============================================================
// FreeSymbols tests
// ============================================================

func names(syms []*dv.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.Name()
	}
	return out
}

func TestFreeSymbols(t *testing.T) {
	e := dv.AddOf(z, dv.Sin(x), dv.Fn("f", y), dv.MulOf(x, dv.E))
	if diff := cmp.Diff([]string{"x", "y", "z"}, names(dv.FreeSymbols(e))); diff != "" {
		t.Errorf("FreeSymbols mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, dv.FreeSymbols(dv.Pi))
}

// ============================================================
// Matrix tests
// ============================================================

func TestMatrix_Basics(t *testing.T) {
	m := dv.NewMatrix(2, 3)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assertExprEqual(t, dv.N(0), m.Get(1, 2))

	m.Set(0, 1, x)
	assertExprEqual(t, x, m.Get(0, 1))
	assert.Equal(t, "[[0, x, 0], [0, 0, 0]]", m.String())

	tr := m.Transpose()
	assert.Equal(t, 3, tr.Rows())
	assertExprEqual(t, x, tr.Get(1, 0))
	assert.True(t, tr.Transpose().Equal(m))
	assert.False(t, tr.Equal(m))
}

func TestMatrix_OutOfRange(t *testing.T) {
	m := dv.NewMatrix(1, 1)
	assert.Panics(t, func() { m.Get(1, 0) })
	assert.Panics(t, func() { m.Set(0, -1, x) })
	assert.Panics(t, func() { m.Row(1) })
	assert.Panics(t, func() { dv.NewMatrix(-1, 2) })
}

func TestMatrix_SetSimplifies(t *testing.T) {
	m := dv.NewMatrix(1, 1)
	m.Set(0, 0, dv.NewSum(x, x))
	assertExprEqual(t, dv.MulOf(dv.N(2), x), m.Get(0, 0))
}

func TestMatrixOf(t *testing.T) {
	m, err := dv.MatrixOf([][]dv.Expr{{x, dv.NewProduct(y, y)}, {dv.N(1), z}})
	require.NoError(t, err)
	assert.Equal(t, "[[x, y**2], [1, z]]", m.String())

	row := m.Row(1)
	row[0] = x
	assertExprEqual(t, dv.N(1), m.Get(1, 0))

	_, err = dv.MatrixOf([][]dv.Expr{{x, y}, {z}})
	assert.ErrorIs(t, err, dv.ErrDimensionMismatch)

	empty, err := dv.MatrixOf(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty.String())
}

func TestMatrix_ApplyDerivative(t *testing.T) {
	m, err := dv.MatrixOf([][]dv.Expr{
		{dv.PowOf(x, dv.N(2)), dv.MulOf(x, y)},
		{dv.Sin(x), dv.N(1)},
	})
	require.NoError(t, err)

	d, err := m.ApplyDerivative(x)
	require.NoError(t, err)
	assert.Equal(t, "[[2*x, y], [cos(x), 0]]", d.String())
	// m itself is unchanged
	assertExprEqual(t, dv.PowOf(x, dv.N(2)), m.Get(0, 0))

	_, err = dv.NewMatrix(1, 1).ApplyDerivative(x)
	require.NoError(t, err)

	bad, err := dv.MatrixOf([][]dv.Expr{{x, opaque{arg: x}}})
	require.NoError(t, err)
	_, err = bad.ApplyDerivative(x)
	assert.ErrorIs(t, err, dv.ErrUnsupportedDerivative)
}

func TestMatrix_ApplyReplace(t *testing.T) {
	m, err := dv.MatrixOf([][]dv.Expr{
		{dv.PowOf(x, dv.N(2)), dv.MulOf(x, y)},
		{dv.Sin(x), dv.N(1)},
	})
	require.NoError(t, err)

	got, err := m.ApplyReplace(x, dv.N(2))
	require.NoError(t, err)
	want, err := dv.MatrixOf([][]dv.Expr{
		{dv.N(4), dv.MulOf(dv.N(2), y)},
		{dv.Sin(dv.N(2)), dv.N(1)},
	})
	require.NoError(t, err)
	assert.Truef(t, want.Equal(got), "want %s, got %s", want, got)

	_, err = m.ApplyReplace(dv.NewSum(), x)
	assert.ErrorIs(t, err, dv.ErrEmptyPattern)
}

// ============================================================
// Vector calculus tests
// ============================================================

func TestGradient(t *testing.T) {
	grad, err := dv.Gradient(dv.MulOf(x, y), []*dv.Symbol{x, y, z})
	require.NoError(t, err)
	require.Len(t, grad, 3)
	assertExprEqual(t, y, grad[0])
	assertExprEqual(t, x, grad[1])
	assertExprEqual(t, dv.N(0), grad[2])
}

func TestJacobian(t *testing.T) {
	j, err := dv.Jacobian([]dv.Expr{dv.MulOf(x, y), dv.AddOf(x, y)}, []*dv.Symbol{x, y})
	require.NoError(t, err)
	assert.Equal(t, "[[y, x], [1, 1]]", j.String())
}

func TestHessian(t *testing.T) {
	h, err := dv.Hessian(dv.MulOf(dv.PowOf(x, dv.N(2)), y), []*dv.Symbol{x, y})
	require.NoError(t, err)

	want := dv.NewMatrix(2, 2)
	want.Set(0, 0, dv.MulOf(dv.N(2), y))
	want.Set(0, 1, dv.MulOf(dv.N(2), x))
	want.Set(1, 0, dv.MulOf(dv.N(2), x))
	assert.Truef(t, want.Equal(h), "want %s, got %s", want, h)
}

func TestGradient_Unsupported(t *testing.T) {
	_, err := dv.Gradient(opaque{arg: x}, []*dv.Symbol{x})
	assert.ErrorIs(t, err, dv.ErrUnsupportedDerivative)

	_, err = dv.Hessian(opaque{arg: x}, []*dv.Symbol{x})
	assert.ErrorIs(t, err, dv.ErrUnsupportedDerivative)
}

func TestLaplacian(t *testing.T) {
	got, err := dv.Laplacian(dv.AddOf(dv.PowOf(x, dv.N(2)), dv.PowOf(y, dv.N(2))), []*dv.Symbol{x, y})
	require.NoError(t, err)
	assertExprEqual(t, dv.N(4), got)

	got, err = dv.Laplacian(dv.MulOf(dv.PowOf(x, dv.N(2)), y), []*dv.Symbol{x, y})
	require.NoError(t, err)
	assertExprEqual(t, dv.MulOf(dv.N(2), y), got)

	_, err = dv.Laplacian(opaque{arg: x}, []*dv.Symbol{x})
	assert.ErrorIs(t, err, dv.ErrUnsupportedDerivative)
}

func TestDivergence(t *testing.T) {
	field := []dv.Expr{dv.MulOf(x, y), dv.MulOf(y, z), dv.MulOf(z, x)}
	got, err := dv.Divergence(field, []*dv.Symbol{x, y, z})
	require.NoError(t, err)
	assertExprEqual(t, dv.AddOf(x, y, z), got)

	_, err = dv.Divergence(field, []*dv.Symbol{x, y})
	require.ErrorIs(t, err, dv.ErrDimensionMismatch)
	var dm *dv.DimensionMismatchError
	require.True(t, errors.As(err, &dm))
	assert.Equal(t, 2, dm.Want)
	assert.Equal(t, 3, dm.Got)
}

func TestCurl(t *testing.T) {
	vars := [3]*dv.Symbol{x, y, z}

	// rotation about the z axis
	got, err := dv.Curl([3]dv.Expr{y, dv.NegOf(x), dv.N(0)}, vars)
	require.NoError(t, err)
	assertExprEqual(t, dv.N(0), got[0])
	assertExprEqual(t, dv.N(0), got[1])
	assertExprEqual(t, dv.N(-2), got[2])

	// the gradient of x*y*z is curl-free
	grad, err := dv.Gradient(dv.MulOf(x, y, z), vars[:])
	require.NoError(t, err)
	got, err = dv.Curl([3]dv.Expr{grad[0], grad[1], grad[2]}, vars)
	require.NoError(t, err)
	for _, c := range got {
		assertExprEqual(t, dv.N(0), c)
	}
}

// ============================================================
// Series tests
// ============================================================

func TestMaclaurinSeries_Exp(t *testing.T) {
	got, err := dv.MaclaurinSeries(dv.Exp(x), x, 3)
	require.NoError(t, err)
	want := dv.AddOf(dv.N(1), x, dv.MulOf(dv.F(1, 2), dv.PowOf(x, dv.N(2))), dv.MulOf(dv.F(1, 6), dv.PowOf(x, dv.N(3))))
	assertExprEqual(t, want, got)
}

func TestMaclaurinSeries_SinSkipsZeroTerms(t *testing.T) {
	got, err := dv.MaclaurinSeries(dv.Sin(x), x, 5)
	require.NoError(t, err)
	want := dv.AddOf(x, dv.MulOf(dv.F(-1, 6), dv.PowOf(x, dv.N(3))), dv.MulOf(dv.F(1, 120), dv.PowOf(x, dv.N(5))))
	assertExprEqual(t, want, got)
}

func TestTaylorSeries_AroundPoint(t *testing.T) {
	square := dv.PowOf(x, dv.N(2))

	got, err := dv.TaylorSeries(square, x, dv.N(1), 2)
	require.NoError(t, err)
	assertExprEqual(t, square, dv.Expand(got))

	got, err = dv.TaylorSeries(square, x, dv.N(1), 1)
	require.NoError(t, err)
	assertExprEqual(t, dv.AddOf(dv.MulOf(dv.N(2), x), dv.N(-1)), dv.Expand(got))

	got, err = dv.TaylorSeries(square, x, dv.N(1), 0)
	require.NoError(t, err)
	assertExprEqual(t, dv.N(1), got)
}

func TestTaylorSeries_SymbolicPoint(t *testing.T) {
	got, err := dv.TaylorSeries(dv.PowOf(x, dv.N(3)), x, y, 3)
	require.NoError(t, err)
	assertExprEqual(t, dv.PowOf(x, dv.N(3)), dv.Expand(got))
}

func TestTaylorSeries_Errors(t *testing.T) {
	_, err := dv.TaylorSeries(x, x, dv.N(0), -1)
	assert.ErrorIs(t, err, dv.ErrNegativeDerivativeOrder)

	_, err = dv.MaclaurinSeries(opaque{arg: x}, x, 1)
	assert.ErrorIs(t, err, dv.ErrUnsupportedDerivative)

	got, err := dv.MaclaurinSeries(dv.PowOf(x, dv.N(3)), x, 2)
	require.NoError(t, err)
	assertExprEqual(t, dv.N(0), got)
}

package derivater

import (
	"math"
	"math/big"
)

// Approximate evaluates a closed tree in float64, using the constants'
// approximations. Symbols and opaque functions have no value and fail with
// a *NotPurelyNumericError.
func Approximate(e Expr) (float64, error) {
	switch v := e.(type) {
	case *Integer:
		f, _ := new(big.Float).SetInt(v.val).Float64()
		return f, nil
	case *NamedConstant:
		if math.IsNaN(v.approx) {
			return 0, &NotPurelyNumericError{Expr: e, Reason: "constant has no approximation"}
		}
		return v.approx, nil
	case *Sum:
		acc := 0.0
		for _, t := range v.terms {
			f, err := Approximate(t)
			if err != nil {
				return 0, err
			}
			acc += f
		}
		return acc, nil
	case *Product:
		acc := 1.0
		for _, t := range v.factors {
			f, err := Approximate(t)
			if err != nil {
				return 0, err
			}
			acc *= f
		}
		return acc, nil
	case *Power:
		b, err := Approximate(v.base)
		if err != nil {
			return 0, err
		}
		x, err := Approximate(v.exp)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, x), nil
	case *Func:
		x, err := Approximate(v.arg)
		if err != nil {
			return 0, err
		}
		return v.op.approx(x), nil
	}
	return 0, &NotPurelyNumericError{Expr: e}
}

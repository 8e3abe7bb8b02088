package derivater

import (
	"math/big"
)

// ============================================================
// Integer — exact integer scalar
// ============================================================

// Integer is an exact integer of any size.
type Integer struct{ val *big.Int }

// N returns the Integer n.
func N(n int64) *Integer { return &Integer{val: big.NewInt(n)} }

// NewInteger copies v into a new Integer.
func NewInteger(v *big.Int) *Integer { return &Integer{val: new(big.Int).Set(v)} }

// Int returns a copy of the value.
func (i *Integer) Int() *big.Int { return new(big.Int).Set(i.val) }

// Sign returns -1, 0 or +1.
func (i *Integer) Sign() int { return i.val.Sign() }

func (i *Integer) String() string                        { return i.val.String() }
func (i *Integer) Content() []Expr                       { return nil }
func (i *Integer) MapContent(func(Expr) Expr) Expr       { return i }
func (i *Integer) DependsOn(*Symbol) bool                { return false }
func (i *Integer) Derivative(*Symbol) (Expr, error)      { return zero, nil }
func (i *Integer) GentleSimplify() Expr                  { return i }
func (i *Integer) FractionCoefficient() (*big.Rat, Expr) { return new(big.Rat).SetInt(i.val), one }
func (i *Integer) Hash() uint64                          { return hashString("integer", i.val.String()) }

func (i *Integer) Equal(other Expr) bool {
	o, ok := other.(*Integer)
	return ok && i.val.Cmp(o.val) == 0
}

func (i *Integer) AddParenthesize() string {
	if i.val.Sign() < 0 {
		return "(" + i.String() + ")"
	}
	return i.String()
}
func (i *Integer) MulParenthesize() string { return i.AddParenthesize() }
func (i *Integer) PowParenthesize() string { return i.AddParenthesize() }

// ============================================================
// Rational coefficients
// ============================================================

// RationalOf builds the canonical node for r: p, q**(-1) or p*q**(-1).
func RationalOf(r *big.Rat) Expr {
	if r.IsInt() {
		return NewInteger(r.Num())
	}
	den := &Power{base: NewInteger(r.Denom()), exp: minusOne}
	if r.Num().IsInt64() && r.Num().Int64() == 1 {
		return den
	}
	return &Product{factors: []Expr{NewInteger(r.Num()), den}}
}

// F returns the canonical node for p/q. It panics if q is zero, like the
// big.Rat constructor it wraps.
func F(p, q int64) Expr {
	return RationalOf(big.NewRat(p, q))
}

func ratOne() *big.Rat { return big.NewRat(1, 1) }

func ratIsOne(r *big.Rat) bool { return r.IsInt() && r.Num().IsInt64() && r.Num().Int64() == 1 }

// ============================================================
// Host value conversion
// ============================================================

// Mathify converts an exact Go number into a canonical node. Expr values are
// returned as is. Floats are rejected so precision is never lost silently.
func Mathify(v any) (Expr, error) {
	switch x := v.(type) {
	case Expr:
		return x, nil
	case int:
		return N(int64(x)), nil
	case int8:
		return N(int64(x)), nil
	case int16:
		return N(int64(x)), nil
	case int32:
		return N(int64(x)), nil
	case int64:
		return N(x), nil
	case uint:
		return NewInteger(new(big.Int).SetUint64(uint64(x))), nil
	case uint8:
		return N(int64(x)), nil
	case uint16:
		return N(int64(x)), nil
	case uint32:
		return N(int64(x)), nil
	case uint64:
		return NewInteger(new(big.Int).SetUint64(x)), nil
	case *big.Int:
		if x == nil {
			break
		}
		return NewInteger(x), nil
	case *big.Rat:
		if x == nil {
			break
		}
		return RationalOf(x), nil
	}
	return nil, &UnsupportedValueError{Value: v}
}

// MustMathify is Mathify for literals known to be valid.
func MustMathify(v any) Expr {
	e, err := Mathify(v)
	if err != nil {
		panic(err)
	}
	return e
}

// ToExactNumber evaluates a purely numeric tree exactly.
func ToExactNumber(e Expr) (*big.Rat, error) {
	switch v := e.(type) {
	case *Integer:
		return new(big.Rat).SetInt(v.val), nil
	case *Sum:
		acc := new(big.Rat)
		for _, t := range v.terms {
			r, err := ToExactNumber(t)
			if err != nil {
				return nil, err
			}
			acc.Add(acc, r)
		}
		return acc, nil
	case *Product:
		acc := ratOne()
		for _, f := range v.factors {
			r, err := ToExactNumber(f)
			if err != nil {
				return nil, err
			}
			acc.Mul(acc, r)
		}
		return acc, nil
	case *Power:
		base, err := ToExactNumber(v.base)
		if err != nil {
			return nil, err
		}
		exp, err := ToExactNumber(v.exp)
		if err != nil {
			return nil, err
		}
		if !exp.IsInt() {
			return nil, &NotPurelyNumericError{Expr: e, Reason: "non-integer exponent"}
		}
		return ratPow(e, base, exp.Num())
	}
	return nil, &NotPurelyNumericError{Expr: e}
}

func ratPow(e Expr, base *big.Rat, exp *big.Int) (*big.Rat, error) {
	if exp.Sign() < 0 {
		if base.Sign() == 0 {
			return nil, &NotPurelyNumericError{Expr: e, Reason: "division by zero"}
		}
		base = new(big.Rat).Inv(base)
		exp = new(big.Int).Neg(exp)
	}
	num := new(big.Int).Exp(base.Num(), exp, nil)
	den := new(big.Int).Exp(base.Denom(), exp, nil)
	return new(big.Rat).SetFrac(num, den), nil
}

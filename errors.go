package derivater

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Every concrete error type below matches exactly one of them.
var (
	ErrUnsupportedValue        = errors.New("derivater: unsupported value")
	ErrNotPurelyNumeric        = errors.New("derivater: not purely numeric")
	ErrUnsupportedDerivative   = errors.New("derivater: unsupported derivative")
	ErrInvalidNode             = errors.New("derivater: invalid node")
	ErrEmptyPattern            = errors.New("derivater: empty pattern")
	ErrNegativeDerivativeOrder = errors.New("derivater: negative derivative order")
	ErrDimensionMismatch       = errors.New("derivater: dimension mismatch")
)

// UnsupportedValueError is returned by Mathify for values it cannot convert.
type UnsupportedValueError struct {
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("don't know how to mathify %#v (%T)", e.Value, e.Value)
}

func (e *UnsupportedValueError) Unwrap() error { return ErrUnsupportedValue }

// NotPurelyNumericError reports a tree that cannot be turned into a number.
type NotPurelyNumericError struct {
	Expr   Expr
	Reason string
}

func (e *NotPurelyNumericError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is not purely numeric: %s", e.Expr, e.Reason)
	}
	return fmt.Sprintf("%s is not purely numeric", e.Expr)
}

func (e *NotPurelyNumericError) Unwrap() error { return ErrNotPurelyNumeric }

// UnsupportedDerivativeError is returned when a node depends on the variable
// but has no derivative rule.
type UnsupportedDerivativeError struct {
	Expr Expr
	Wrt  *Symbol
}

func (e *UnsupportedDerivativeError) Error() string {
	return fmt.Sprintf("cannot take derivative of %s with respect to %s", e.Expr, e.Wrt)
}

func (e *UnsupportedDerivativeError) Unwrap() error { return ErrUnsupportedDerivative }

// InvalidNodeError describes a canonical-form violation found by Validate.
type InvalidNodeError struct {
	Expr   Expr
	Reason string
}

func (e *InvalidNodeError) Error() string {
	return fmt.Sprintf("invalid %s node %s: %s", kindName(e.Expr), e.Expr, e.Reason)
}

func (e *InvalidNodeError) Unwrap() error { return ErrInvalidNode }

// EmptyPatternError is returned by Replace when asked to replace an empty Sum or Product.
type EmptyPatternError struct {
	Pattern Expr
}

func (e *EmptyPatternError) Error() string {
	return fmt.Sprintf("cannot replace empty %s pattern", kindName(e.Pattern))
}

func (e *EmptyPatternError) Unwrap() error { return ErrEmptyPattern }

// NegativeDerivativeOrderError is returned by NewSymbolFunction.
type NegativeDerivativeOrderError struct {
	Name  string
	Order int
}

func (e *NegativeDerivativeOrderError) Error() string {
	return fmt.Sprintf("negative derivative order %d for function %s is not supported", e.Order, e.Name)
}

func (e *NegativeDerivativeOrderError) Unwrap() error { return ErrNegativeDerivativeOrder }

// DimensionMismatchError is returned when vector or matrix operands have
// incompatible lengths.
type DimensionMismatchError struct {
	Op        string
	Want, Got int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: want length %d, got %d", e.Op, e.Want, e.Got)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

func kindName(e Expr) string {
	switch v := e.(type) {
	case *Integer:
		return "integer"
	case *Symbol:
		return "symbol"
	case *NamedConstant:
		return "constant"
	case *SymbolFunction:
		return "function"
	case *Sum:
		return "sum"
	case *Product:
		return "product"
	case *Power:
		return "power"
	case *Func:
		return v.op.String()
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", e)
}

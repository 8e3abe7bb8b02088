package derivater

import (
	"math"
	"math/big"
	"strconv"
	"sync/atomic"
)

// NamedConstant is an atomic number known by name, such as e. Unlike
// symbols, two constants are equal only if they are the same constant, so a
// user symbol called "e" never collides with E.
type NamedConstant struct {
	name   string
	approx float64
	id     uint64
}

var constantIDs atomic.Uint64

// NewConstant creates a new constant distinct from every other constant.
// approx is used by Approximate; pass NaN if the value is unknown.
func NewConstant(name string, approx float64) *NamedConstant {
	return &NamedConstant{name: name, approx: approx, id: constantIDs.Add(1)}
}

var (
	// E is the base of the natural logarithm.
	E = NewConstant("e", math.E)
	// Tau is the circle constant 2π.
	Tau = NewConstant("tau", 2*math.Pi)
	// Pi is tau/2.
	Pi = DivOf(Tau, N(2))
)

func lookupConstant(name string) (*NamedConstant, bool) {
	switch name {
	case E.name:
		return E, true
	case Tau.name:
		return Tau, true
	}
	return nil, false
}

func (c *NamedConstant) Name() string                          { return c.name }
func (c *NamedConstant) Approx() float64                       { return c.approx }
func (c *NamedConstant) String() string                        { return c.name }
func (c *NamedConstant) Content() []Expr                       { return nil }
func (c *NamedConstant) MapContent(func(Expr) Expr) Expr       { return c }
func (c *NamedConstant) DependsOn(*Symbol) bool                { return false }
func (c *NamedConstant) Derivative(*Symbol) (Expr, error)      { return zero, nil }
func (c *NamedConstant) GentleSimplify() Expr                  { return c }
func (c *NamedConstant) FractionCoefficient() (*big.Rat, Expr) { return ratOne(), c }
func (c *NamedConstant) Hash() uint64 {
	return hashString("constant", c.name+"#"+strconv.FormatUint(c.id, 10))
}

func (c *NamedConstant) Equal(other Expr) bool {
	o, ok := other.(*NamedConstant)
	return ok && o == c
}

package derivater

// ============================================================
// Operator surface
// ============================================================

// NegOf returns -a, represented as (-1)*a.
func NegOf(a Expr) Expr { return MulOf(minusOne, a) }

// SubOf returns a - b, represented as a + (-1)*b.
func SubOf(a, b Expr) Expr { return AddOf(a, NegOf(b)) }

// DivOf returns a / b, represented as a * b**(-1).
//
// Dividing by the zero node is not rejected: 0**(-1) canonicalizes to 0, so
// DivOf(N(1), N(0)) is 0.
func DivOf(a, b Expr) Expr { return MulOf(a, PowOf(b, minusOne)) }

// InvOf returns 1/a.
func InvOf(a Expr) Expr { return PowOf(a, minusOne) }

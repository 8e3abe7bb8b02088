// Package derivater is a symbolic expression engine with exact arithmetic.
//
// Design goals:
//   - Immutable trees; every constructor returns canonical form
//   - Exact rational coefficients (math/big.Rat), never floats
//   - Syntactic equality: a+b and b+a build the same tree
//   - Derivatives that stay compact (no stray logarithms)
//   - JSON and tool-call APIs for services and agent backends
//
// Nodes are built with S, N, F, AddOf, MulOf, PowOf and the elementary
// functions (Ln, Exp, Sin, ...). NewSum, NewProduct and NewPower build raw,
// non-canonical nodes; Simplify brings them to canonical form.
package derivater

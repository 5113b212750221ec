// Package ad extracts derivatives and gradients from functions written over
// dual numbers.
//
// A differentiable function is written once, generically over dual.Number,
// and instantiated for the representation a combinator needs:
//
//	func g[D dual.Number[D, float64]](v []D) D {
//	    return v[0].Mul(v[0]).Mul(v[1]) // x²y
//	}
//
//	naive := ad.GradientNaive(g[dual.Scalar[float64]], []float64{2, 3})
//	batched := ad.GradientBatched(g[dual.Multi[float64, [2]float64]], [2]float64{2, 3})
//
// Combinators are stateless: every call seeds fresh dual numbers, evaluates
// the function from scratch and reads back the derivative fields. Numeric
// failures (a function undefined at the evaluation point) surface as NaN or
// Inf, never as errors.
//
// Two gradient strategies are provided:
//   - GradientNaive: n evaluations, O(1) work per primitive
//   - GradientBatched: 1 evaluation, O(n) work per primitive
//
// They agree numerically; which is faster depends on the cost of evaluating
// the function body relative to its number of primitives.
package ad

import (
	"errors"

	"github.com/born-ml/dualad/internal/dual"
)

// ErrWidthMismatch is returned when argument vectors of a combinator have
// different lengths.
var ErrWidthMismatch = dual.ErrWidthMismatch

// ErrNoOutputs is returned by Jacobian for a function without outputs.
var ErrNoOutputs = errors.New("function has no outputs")

// Derivative returns f'(x), evaluating f once on a seeded Scalar.
func Derivative[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T], x T) T {
	return f(dual.Variable(x)).Deriv()
}

// ValueAndDerivative returns f(x) and f'(x) from a single evaluation.
func ValueAndDerivative[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T], x T) (value, deriv T) {
	y := f(dual.Variable(x))
	return y.Value(), y.Deriv()
}

// DerivativeFunc returns the derivative of f as a plain function.
//
// The returned closure holds no state: every call re-evaluates f from
// scratch, so DerivativeFunc(f)(x) == Derivative(f, x) for all x.
func DerivativeFunc[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T]) func(T) T {
	return func(x T) T {
		return Derivative(f, x)
	}
}

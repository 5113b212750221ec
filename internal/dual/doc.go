// Package dual implements dual numbers for forward-mode automatic differentiation.
//
// A dual number a + bε (with ε² = 0) carries a value a together with its
// derivative b. Evaluating a function on a dual number seeded with b = 1
// yields f(a) + f'(a)ε, so the derivative falls out of ordinary arithmetic.
//
// Two representations are provided:
//   - Scalar[T]: one derivative, O(1) per operation
//   - Multi[T, V]: a fixed-size array V of partial derivatives, O(len(V)) per
//     operation, used to compute a whole gradient in a single evaluation
//
// Both implement Number, so a function written once against Number can be
// instantiated for either:
//
//	func f[D dual.Number[D, float64]](x D) D {
//	    return x.Mul(x).Add(x.Sin().Exp()).Log() // log(x² + exp(sin(x)))
//	}
//
//	y := f(dual.Variable(1.0))
//	fmt.Println(y.Value(), y.Deriv())
//
// Domain errors (log of a negative number, division by zero) are not
// reported: they propagate as NaN or ±Inf exactly as the underlying float
// arithmetic produces them.
package dual

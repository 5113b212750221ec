// Package chain evaluates a composition of stages and its derivative in two
// orders.
//
// Given stages s₀, s₁, ..., sₙ₋₁ applied in that order, so the result is
// sₙ₋₁(...s₁(s₀(x))), both evaluators return the value and the derivative:
//
//   - Forward carries the current value and the accumulated derivative from
//     the innermost stage outwards. O(1) extra state, independent of depth.
//   - Reverse first runs the whole forward pass, retaining every stage input
//     on a Tape, then multiplies local derivatives from the outermost stage
//     inwards. O(depth) storage.
//
// The results are the same; only the evaluation order and memory footprint
// differ. This is the trade-off behind choosing an AD mode: forward mode
// costs one pass per input, reverse mode one pass per output plus the
// retained intermediates.
package chain

import (
	"github.com/born-ml/dualad/internal/ad"
	"github.com/born-ml/dualad/internal/dual"
)

// Stage is one step of a composition: a function and its analytic derivative.
type Stage[T dual.Float] struct {
	Name string
	F    func(T) T // stage function
	DF   func(T) T // derivative of F
}

// Compose3 returns the chain for f(g(h(x))), innermost stage first.
func Compose3[T dual.Float](h, g, f Stage[T]) []Stage[T] {
	return []Stage[T]{h, g, f}
}

// FromFunc builds a Stage from a function over dual numbers; the derivative
// is computed by forward-mode AD instead of being written by hand.
func FromFunc[T dual.Float](name string, f func(dual.Scalar[T]) dual.Scalar[T]) Stage[T] {
	return Stage[T]{
		Name: name,
		F: func(x T) T {
			return f(dual.Const(x)).Value()
		},
		DF: ad.DerivativeFunc(f),
	}
}

// Forward evaluates the chain at x in forward order. An empty chain is the
// identity: value x, derivative 1.
func Forward[T dual.Float](stages []Stage[T], x T) (value, deriv T) {
	value, deriv = x, 1
	for _, s := range stages {
		// Local derivative at the stage input, before the value advances.
		deriv = s.DF(value) * deriv
		value = s.F(value)
	}
	return value, deriv
}

// Reverse evaluates the chain at x in reverse order.
//
// The value is bitwise equal to Forward's. The derivative multiplies the same
// local derivatives in the opposite association, so it may differ from
// Forward's in the last few ulps; compare with a tolerance, not ==.
func Reverse[T dual.Float](stages []Stage[T], x T) (value, deriv T) {
	value, tape := Record(stages, x)
	return value, tape.Backward(1)
}

// Record runs the forward pass, returning the chain value and a Tape holding
// every stage input.
func Record[T dual.Float](stages []Stage[T], x T) (T, *Tape[T]) {
	tape := NewTape[T](len(stages))
	value := x
	for _, s := range stages {
		tape.Record(s, value)
		value = s.F(value)
	}
	return value, tape
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package chain compares forward and reverse evaluation of a composition of
// differentiable stages.
//
// Example:
//
//	stages := chain.Compose3(
//	    chain.Stage[float64]{Name: "sin", F: math.Sin, DF: math.Cos},
//	    chain.Stage[float64]{Name: "exp", F: math.Exp, DF: math.Exp},
//	    chain.Stage[float64]{Name: "log", F: math.Log, DF: func(x float64) float64 { return 1 / x }},
//	)
//	v, d := chain.Forward(stages, 0.5)
//	v2, d2 := chain.Reverse(stages, 0.5) // same result, O(depth) storage
package chain

import (
	"github.com/born-ml/dualad/internal/chain"
	"github.com/born-ml/dualad/internal/dual"
)

// Stage is one function of a composition with its derivative.
type Stage[T dual.Float] = chain.Stage[T]

// Tape retains the forward values needed by the reverse pass.
type Tape[T dual.Float] = chain.Tape[T]

// Compose3 returns the chain for f(g(h(x))).
func Compose3[T dual.Float](h, g, f Stage[T]) []Stage[T] {
	return chain.Compose3(h, g, f)
}

// FromFunc builds a Stage whose derivative is computed by forward-mode AD.
func FromFunc[T dual.Float](name string, f func(dual.Scalar[T]) dual.Scalar[T]) Stage[T] {
	return chain.FromFunc(name, f)
}

// Forward evaluates the chain innermost stage first, with O(1) state.
func Forward[T dual.Float](stages []Stage[T], x T) (T, T) {
	return chain.Forward(stages, x)
}

// Reverse evaluates the chain by recording a tape and walking it backwards.
// The value equals Forward's exactly; the derivative may differ from it in the
// last few ulps because the product is associated the other way.
func Reverse[T dual.Float](stages []Stage[T], x T) (T, T) {
	return chain.Reverse(stages, x)
}

// Record runs the forward pass and returns the value with its tape.
func Record[T dual.Float](stages []Stage[T], x T) (T, *Tape[T]) {
	return chain.Record(stages, x)
}

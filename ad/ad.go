// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ad provides derivative and gradient combinators over dual numbers.
//
// Example:
//
//	import (
//	    "github.com/born-ml/dualad/ad"
//	    "github.com/born-ml/dualad/dual"
//	)
//
//	func g[D dual.Number[D, float64]](v []D) D {
//	    return v[0].Mul(v[0]).Mul(v[1]) // x²y
//	}
//
//	func main() {
//	    naive := ad.GradientNaive(g[dual.Scalar[float64]], []float64{2, 3})
//	    batched := ad.GradientBatched(g[dual.Multi[float64, [2]float64]], [2]float64{2, 3})
//	    fmt.Println(naive, batched) // [12 4] [12 4]
//	}
package ad

import (
	"github.com/born-ml/dualad/internal/ad"
	"github.com/born-ml/dualad/internal/dual"
	"github.com/born-ml/dualad/internal/parallel"
)

// ParallelConfig controls the parallel combinators.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// Common errors.
var (
	ErrWidthMismatch = ad.ErrWidthMismatch
	ErrNoOutputs     = ad.ErrNoOutputs
)

// Derivative returns f'(x).
func Derivative[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T], x T) T {
	return ad.Derivative(f, x)
}

// ValueAndDerivative returns f(x) and f'(x) from one evaluation.
func ValueAndDerivative[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T], x T) (T, T) {
	return ad.ValueAndDerivative(f, x)
}

// DerivativeFunc returns the derivative of f as a function.
func DerivativeFunc[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T]) func(T) T {
	return ad.DerivativeFunc(f)
}

// GradientNaive returns ∇f(xs) using one evaluation per variable.
func GradientNaive[T dual.Float](f func([]dual.Scalar[T]) dual.Scalar[T], xs []T) []T {
	return ad.GradientNaive(f, xs)
}

// GradientNaiveParallel is GradientNaive with the passes run concurrently.
func GradientNaiveParallel[T dual.Float](f func([]dual.Scalar[T]) dual.Scalar[T], xs []T, cfg ParallelConfig) []T {
	return ad.GradientNaiveParallel(f, xs, cfg)
}

// GradientBatched returns ∇f(xs) from a single evaluation.
func GradientBatched[T dual.Float, V dual.Vec[T]](f func([]dual.Multi[T, V]) dual.Multi[T, V], xs V) V {
	return ad.GradientBatched(f, xs)
}

// ValueAndGradient returns f(xs) and ∇f(xs) from a single evaluation.
func ValueAndGradient[T dual.Float, V dual.Vec[T]](f func([]dual.Multi[T, V]) dual.Multi[T, V], xs V) (T, V) {
	return ad.ValueAndGradient(f, xs)
}

// DirectionalDerivative returns ∇f(xs)·dir.
func DirectionalDerivative[T dual.Float](f func([]dual.Scalar[T]) dual.Scalar[T], xs, dir []T) (T, error) {
	return ad.DirectionalDerivative(f, xs, dir)
}

// Jacobian returns the matrix of partials of a vector-valued f.
func Jacobian[T dual.Float](f func([]dual.Scalar[T]) []dual.Scalar[T], xs []T) ([][]T, error) {
	return ad.Jacobian(f, xs)
}

// DerivativeAt returns f'(x) at every point, in parallel.
func DerivativeAt[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T], points []T, cfg ParallelConfig) []T {
	return ad.DerivativeAt(f, points, cfg)
}

// Agree reports whether a and b are elementwise equal within tol.
func Agree[T dual.Float](a, b []T, tol float64) bool {
	return ad.Agree(a, b, tol)
}

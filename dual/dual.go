// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dual provides dual numbers for forward-mode automatic differentiation.
//
// A dual number carries a value and its derivative through ordinary
// arithmetic. Write a function once against Number and evaluate it on a
// seeded Scalar to get its derivative, or on seeded Multi values to get a
// whole gradient in one pass.
//
// Example:
//
//	import "github.com/born-ml/dualad/dual"
//
//	func f[D dual.Number[D, float64]](x D) D {
//	    return x.Mul(x).Add(x.Sin().Exp()).Log()
//	}
//
//	func main() {
//	    y := f(dual.Variable(1.0))
//	    fmt.Println(y.Value(), y.Deriv())
//	}
package dual

import "github.com/born-ml/dualad/internal/dual"

// Float is a constraint for the real types a dual number can be built on.
type Float = dual.Float

// Vec is a constraint for fixed-size partial derivative arrays.
type Vec[T Float] = dual.Vec[T]

// Number is the set of differentiable primitives.
type Number[D any, T Float] = dual.Number[D, T]

// Scalar is a dual number with one derivative.
type Scalar[T Float] = dual.Scalar[T]

// Multi is a dual number with a fixed-size vector of partial derivatives.
type Multi[T Float, V Vec[T]] = dual.Multi[T, V]

// MaxWidth is the largest number of partials a Multi can carry.
const MaxWidth = dual.MaxWidth

// ErrWidthMismatch is returned when partials do not fit the Multi width.
var ErrWidthMismatch = dual.ErrWidthMismatch

// New creates a Scalar with an explicit derivative.
func New[T Float](value, deriv T) Scalar[T] {
	return dual.New(value, deriv)
}

// Variable seeds x as the variable of differentiation.
func Variable[T Float](x T) Scalar[T] {
	return dual.Variable(x)
}

// Const lifts r to a constant Scalar.
func Const[T Float](r T) Scalar[T] {
	return dual.Const(r)
}

// NewMulti creates a Multi with explicit partials.
func NewMulti[T Float, V Vec[T]](value T, partials V) Multi[T, V] {
	return dual.NewMulti(value, partials)
}

// MultiFromSlice creates a Multi from a slice of partials.
func MultiFromSlice[T Float, V Vec[T]](value T, partials []T) (Multi[T, V], error) {
	return dual.MultiFromSlice[T, V](value, partials)
}

// MultiConst lifts r to a constant Multi.
func MultiConst[T Float, V Vec[T]](r T) Multi[T, V] {
	return dual.MultiConst[T, V](r)
}

// OneHot seeds x as the i-th of len(V) variables.
func OneHot[T Float, V Vec[T]](x T, i int) Multi[T, V] {
	return dual.OneHot[T, V](x, i)
}

// Seeds returns one-hot seeded Multi values for every element of xs.
func Seeds[T Float, V Vec[T]](xs V) []Multi[T, V] {
	return dual.Seeds[T](xs)
}

// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package expr parses infix expressions and evaluates them over dual numbers.
//
// Example:
//
//	e, err := expr.Parse("x^2 * y")
//	if err != nil {
//	    return err
//	}
//	grad := ad.GradientNaive(expr.Func[dual.Scalar[float64], float64](e), []float64{2, 3})
package expr

import (
	"github.com/born-ml/dualad/internal/dual"
	"github.com/born-ml/dualad/internal/expr"
)

// Expr is a parsed expression.
type Expr = expr.Expr

// SyntaxError reports a malformed expression.
type SyntaxError = expr.SyntaxError

// Common errors.
var (
	ErrUnknownFunction = expr.ErrUnknownFunction
	ErrUnknownVariable = expr.ErrUnknownVariable
	ErrArity           = expr.ErrArity
	ErrDuplicateVar    = expr.ErrDuplicateVar
)

// Parse parses src, ordering variables by first appearance.
func Parse(src string) (*Expr, error) {
	return expr.Parse(src)
}

// ParseWithVars parses src with an explicit variable ordering.
func ParseWithVars(src string, vars []string) (*Expr, error) {
	return expr.ParseWithVars(src, vars)
}

// Eval evaluates e with vars bound in order.
func Eval[D dual.Number[D, T], T dual.Float](e *Expr, vars []D) (D, error) {
	return expr.Eval[D, T](e, vars)
}

// Func returns e as a function over a slice of dual numbers.
func Func[D dual.Number[D, T], T dual.Float](e *Expr) func([]D) D {
	return expr.Func[D, T](e)
}

// Func1 returns e as a function of one dual number.
func Func1[D dual.Number[D, T], T dual.Float](e *Expr) func(D) D {
	return expr.Func1[D, T](e)
}

package ad

import (
	"fmt"

	"github.com/born-ml/dualad/internal/dual"
	"github.com/born-ml/dualad/internal/parallel"
)

// GradientNaive returns ∇f(xs) using one Scalar evaluation per variable.
//
// Pass i seeds xs[i] with derivative 1 and lifts every other variable as a
// constant. Cost: len(xs) evaluations of f.
func GradientNaive[T dual.Float](f func([]dual.Scalar[T]) dual.Scalar[T], xs []T) []T {
	grad := make([]T, len(xs))
	for i := range xs {
		grad[i] = partial(f, xs, i)
	}
	return grad
}

// GradientNaiveParallel is GradientNaive with the independent passes spread
// over goroutines according to cfg. f must be safe for concurrent use, which
// holds for any function built only from dual-number primitives.
func GradientNaiveParallel[T dual.Float](f func([]dual.Scalar[T]) dual.Scalar[T], xs []T, cfg parallel.Config) []T {
	grad := make([]T, len(xs))
	parallel.For(len(xs), func(i int) {
		grad[i] = partial(f, xs, i)
	}, cfg)
	return grad
}

// partial evaluates f with only xs[i] seeded.
func partial[T dual.Float](f func([]dual.Scalar[T]) dual.Scalar[T], xs []T, i int) T {
	args := make([]dual.Scalar[T], len(xs))
	for j, x := range xs {
		if j == i {
			args[j] = dual.Variable(x)
		} else {
			args[j] = dual.Const(x)
		}
	}
	return f(args).Deriv()
}

// GradientBatched returns ∇f(xs) from a single evaluation of f on one-hot
// seeded Multi values. The width of V fixes the number of variables.
func GradientBatched[T dual.Float, V dual.Vec[T]](f func([]dual.Multi[T, V]) dual.Multi[T, V], xs V) V {
	return f(dual.Seeds[T](xs)).Partials()
}

// ValueAndGradient returns f(xs) and ∇f(xs) from a single batched evaluation.
func ValueAndGradient[T dual.Float, V dual.Vec[T]](f func([]dual.Multi[T, V]) dual.Multi[T, V], xs V) (T, V) {
	y := f(dual.Seeds[T](xs))
	return y.Value(), y.Partials()
}

// DirectionalDerivative returns ∇f(xs)·dir using one Scalar evaluation, with
// xs[i] seeded by dir[i]. It returns ErrWidthMismatch if the lengths differ.
func DirectionalDerivative[T dual.Float](f func([]dual.Scalar[T]) dual.Scalar[T], xs, dir []T) (T, error) {
	if len(xs) != len(dir) {
		return 0, fmt.Errorf("directional derivative: %w: %d points, %d directions", ErrWidthMismatch, len(xs), len(dir))
	}
	args := make([]dual.Scalar[T], len(xs))
	for i, x := range xs {
		args[i] = dual.New(x, dir[i])
	}
	return f(args).Deriv(), nil
}

// Jacobian returns the m×n matrix of partials of a vector-valued f at xs.
//
// Column j is obtained from one evaluation with xs[j] seeded, so the cost is
// len(xs) evaluations regardless of m. Rows index outputs, columns inputs.
// f must return the same number of outputs on every call.
func Jacobian[T dual.Float](f func([]dual.Scalar[T]) []dual.Scalar[T], xs []T) ([][]T, error) {
	var jac [][]T
	args := make([]dual.Scalar[T], len(xs))
	for j := range xs {
		for k, x := range xs {
			args[k] = dual.Const(x)
		}
		args[j] = dual.Variable(xs[j])

		out := f(args)
		if jac == nil {
			if len(out) == 0 {
				return nil, fmt.Errorf("jacobian: %w", ErrNoOutputs)
			}
			jac = make([][]T, len(out))
			for i := range jac {
				jac[i] = make([]T, len(xs))
			}
		}
		if len(out) != len(jac) {
			return nil, fmt.Errorf("jacobian: %w: output count changed from %d to %d", ErrWidthMismatch, len(jac), len(out))
		}
		for i, y := range out {
			jac[i][j] = y.Deriv()
		}
	}
	if jac == nil {
		out := f(args)
		if len(out) == 0 {
			return nil, fmt.Errorf("jacobian: %w", ErrNoOutputs)
		}
		jac = make([][]T, len(out))
		for i := range jac {
			jac[i] = []T{}
		}
	}
	return jac, nil
}

// DerivativeAt returns f'(x) for every point, evaluating points in parallel
// according to cfg.
func DerivativeAt[T dual.Float](f func(dual.Scalar[T]) dual.Scalar[T], points []T, cfg parallel.Config) []T {
	derivs := make([]T, len(points))
	parallel.For(len(points), func(i int) {
		derivs[i] = Derivative(f, points[i])
	}, cfg)
	return derivs
}

package dual

import "fmt"

// Multi is a dual number carrying a fixed-size vector of partial derivatives.
//
// The width of V is the number of variables differentiated together. Entry i
// of the partials is ∂value/∂xᵢ, where the ordering of the xᵢ is established
// once at seeding time (see OneHot and Seeds) and preserved by every
// operation. Each operation costs O(len(V)) instead of O(1) but computes all
// partials in the same pass.
type Multi[T Float, V Vec[T]] struct {
	value T
	deriv V
}

// NewMulti creates a Multi with explicit partials.
func NewMulti[T Float, V Vec[T]](value T, partials V) Multi[T, V] {
	return Multi[T, V]{value: value, deriv: partials}
}

// MultiFromSlice creates a Multi from a slice of partials.
// It returns ErrWidthMismatch if len(partials) differs from the width of V.
func MultiFromSlice[T Float, V Vec[T]](value T, partials []T) (Multi[T, V], error) {
	var d V
	if len(partials) != len(d) {
		return Multi[T, V]{}, fmt.Errorf("%w: got %d partials, want %d", ErrWidthMismatch, len(partials), len(d))
	}
	for i := 0; i < len(d); i++ {
		d[i] = partials[i]
	}
	return Multi[T, V]{value: value, deriv: d}, nil
}

// MultiConst lifts r to a constant Multi (all partials zero).
func MultiConst[T Float, V Vec[T]](r T) Multi[T, V] {
	return Multi[T, V]{value: r}
}

// OneHot seeds x as the i-th variable: partial i is 1, all others 0.
// It panics if i is outside [0, width).
func OneHot[T Float, V Vec[T]](x T, i int) Multi[T, V] {
	var d V
	if i < 0 || i >= len(d) {
		panic(fmt.Sprintf("dual: one-hot index %d out of range for width %d", i, len(d)))
	}
	d[i] = 1
	return Multi[T, V]{value: x, deriv: d}
}

// Seeds returns one one-hot seeded Multi per element of xs, in order.
// Evaluating a function on the result yields its full gradient in one pass.
func Seeds[T Float, V Vec[T]](xs V) []Multi[T, V] {
	seeds := make([]Multi[T, V], len(xs))
	for i := range seeds {
		seeds[i] = OneHot[T, V](xs[i], i)
	}
	return seeds
}

// Value returns the real part.
func (a Multi[T, V]) Value() T { return a.value }

// Partials returns a copy of the partial derivative vector.
func (a Multi[T, V]) Partials() V { return a.deriv }

// Partial returns ∂value/∂xᵢ.
func (a Multi[T, V]) Partial(i int) T { return a.deriv[i] }

// Width returns the number of partials.
func (a Multi[T, V]) Width() int { return len(a.deriv) }

// Const lifts r to a constant Multi of the same width.
func (a Multi[T, V]) Const(r T) Multi[T, V] { return MultiConst[T, V](r) }

// Add returns a + b.
func (a Multi[T, V]) Add(b Multi[T, V]) Multi[T, V] {
	var d V
	for i := 0; i < len(d); i++ {
		d[i] = a.deriv[i] + b.deriv[i]
	}
	return Multi[T, V]{value: a.value + b.value, deriv: d}
}

// Sub returns a - b.
func (a Multi[T, V]) Sub(b Multi[T, V]) Multi[T, V] {
	var d V
	for i := 0; i < len(d); i++ {
		d[i] = a.deriv[i] - b.deriv[i]
	}
	return Multi[T, V]{value: a.value - b.value, deriv: d}
}

// Mul returns a * b, applying the product rule to every partial.
func (a Multi[T, V]) Mul(b Multi[T, V]) Multi[T, V] {
	var d V
	for i := 0; i < len(d); i++ {
		d[i] = a.value*b.deriv[i] + a.deriv[i]*b.value
	}
	return Multi[T, V]{value: a.value * b.value, deriv: d}
}

// Div returns a / b, applying the quotient rule to every partial.
func (a Multi[T, V]) Div(b Multi[T, V]) Multi[T, V] {
	var d V
	bb := b.value * b.value
	for i := 0; i < len(d); i++ {
		d[i] = (a.deriv[i]*b.value - a.value*b.deriv[i]) / bb
	}
	return Multi[T, V]{value: a.value / b.value, deriv: d}
}

// Neg returns -a.
func (a Multi[T, V]) Neg() Multi[T, V] {
	return Multi[T, V]{value: -a.value, deriv: a.scaled(-1)}
}

// AddConst returns a + r for a real constant r.
func (a Multi[T, V]) AddConst(r T) Multi[T, V] {
	return Multi[T, V]{value: a.value + r, deriv: a.deriv}
}

// MulConst returns a * r for a real constant r.
func (a Multi[T, V]) MulConst(r T) Multi[T, V] {
	return Multi[T, V]{value: a.value * r, deriv: a.scaled(r)}
}

// Log returns the natural logarithm.
func (a Multi[T, V]) Log() Multi[T, V] {
	return Multi[T, V]{value: log(a.value), deriv: a.divided(a.value)}
}

// Exp returns e^a.
func (a Multi[T, V]) Exp() Multi[T, V] {
	e := exp(a.value)
	return Multi[T, V]{value: e, deriv: a.scaled(e)}
}

// Sincos returns sin(a) and cos(a) from a single sincos evaluation.
func (a Multi[T, V]) Sincos() (sin, cos Multi[T, V]) {
	s, c := sincos(a.value)
	sin = Multi[T, V]{value: s, deriv: a.scaled(c)}
	cos = Multi[T, V]{value: c, deriv: a.scaled(-s)}
	return sin, cos
}

// Sin returns sin(a).
func (a Multi[T, V]) Sin() Multi[T, V] {
	s, _ := a.Sincos()
	return s
}

// Cos returns cos(a).
func (a Multi[T, V]) Cos() Multi[T, V] {
	_, c := a.Sincos()
	return c
}

// Tan returns tan(a).
func (a Multi[T, V]) Tan() Multi[T, V] {
	t := tan(a.value)
	return Multi[T, V]{value: t, deriv: a.scaled(1 + t*t)}
}

// Tanh returns tanh(a).
func (a Multi[T, V]) Tanh() Multi[T, V] {
	t := tanh(a.value)
	return Multi[T, V]{value: t, deriv: a.scaled(1 - t*t)}
}

// Sqrt returns √a.
func (a Multi[T, V]) Sqrt() Multi[T, V] {
	s := sqrt(a.value)
	return Multi[T, V]{value: s, deriv: a.divided(2 * s)}
}

// Powi returns a raised to the integer power n.
func (a Multi[T, V]) Powi(n int) Multi[T, V] {
	if n == 0 {
		return MultiConst[T, V](1)
	}
	return Multi[T, V]{
		value: powi(a.value, n),
		deriv: a.scaled(T(n) * powi(a.value, n-1)),
	}
}

// String formats the dual number as "value + [partials]ε".
func (a Multi[T, V]) String() string {
	return fmt.Sprintf("%v + %vε", a.value, a.deriv)
}

// scaled returns the partials multiplied by s (chain rule for unary ops).
func (a Multi[T, V]) scaled(s T) V {
	var d V
	for i := 0; i < len(d); i++ {
		d[i] = a.deriv[i] * s
	}
	return d
}

// divided returns the partials divided by s.
func (a Multi[T, V]) divided(s T) V {
	var d V
	for i := 0; i < len(d); i++ {
		d[i] = a.deriv[i] / s
	}
	return d
}

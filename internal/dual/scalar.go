package dual

import "fmt"

// Scalar is a dual number with a single derivative: value + deriv·ε.
//
// Scalar is an immutable value type. Every operation returns a new Scalar.
type Scalar[T Float] struct {
	value T
	deriv T
}

// New creates a Scalar with an explicit derivative.
func New[T Float](value, deriv T) Scalar[T] {
	return Scalar[T]{value: value, deriv: deriv}
}

// Variable seeds x as the variable of differentiation (derivative 1).
func Variable[T Float](x T) Scalar[T] {
	return Scalar[T]{value: x, deriv: 1}
}

// Const lifts r to a constant (derivative 0).
func Const[T Float](r T) Scalar[T] {
	return Scalar[T]{value: r}
}

// Value returns the real part.
func (a Scalar[T]) Value() T { return a.value }

// Deriv returns the derivative part.
func (a Scalar[T]) Deriv() T { return a.deriv }

// Const lifts r to a constant Scalar.
func (a Scalar[T]) Const(r T) Scalar[T] { return Const(r) }

// Add returns a + b.
func (a Scalar[T]) Add(b Scalar[T]) Scalar[T] {
	return Scalar[T]{value: a.value + b.value, deriv: a.deriv + b.deriv}
}

// Sub returns a - b.
func (a Scalar[T]) Sub(b Scalar[T]) Scalar[T] {
	return Scalar[T]{value: a.value - b.value, deriv: a.deriv - b.deriv}
}

// Mul returns a * b using the product rule: (ab)' = ab' + a'b.
func (a Scalar[T]) Mul(b Scalar[T]) Scalar[T] {
	return Scalar[T]{
		value: a.value * b.value,
		deriv: a.value*b.deriv + a.deriv*b.value,
	}
}

// Div returns a / b using the quotient rule: (a/b)' = (a'b - ab') / b².
func (a Scalar[T]) Div(b Scalar[T]) Scalar[T] {
	return Scalar[T]{
		value: a.value / b.value,
		deriv: (a.deriv*b.value - a.value*b.deriv) / (b.value * b.value),
	}
}

// Neg returns -a.
func (a Scalar[T]) Neg() Scalar[T] {
	return Scalar[T]{value: -a.value, deriv: -a.deriv}
}

// AddConst returns a + r for a real constant r.
func (a Scalar[T]) AddConst(r T) Scalar[T] {
	return Scalar[T]{value: a.value + r, deriv: a.deriv}
}

// MulConst returns a * r for a real constant r.
func (a Scalar[T]) MulConst(r T) Scalar[T] {
	return Scalar[T]{value: a.value * r, deriv: a.deriv * r}
}

// Log returns the natural logarithm. d(log x)/dx = 1/x.
func (a Scalar[T]) Log() Scalar[T] {
	return Scalar[T]{value: log(a.value), deriv: a.deriv / a.value}
}

// Exp returns e^a. d(e^x)/dx = e^x.
func (a Scalar[T]) Exp() Scalar[T] {
	e := exp(a.value)
	return Scalar[T]{value: e, deriv: e * a.deriv}
}

// Sincos returns sin(a) and cos(a) from a single sincos evaluation.
func (a Scalar[T]) Sincos() (sin, cos Scalar[T]) {
	s, c := sincos(a.value)
	sin = Scalar[T]{value: s, deriv: c * a.deriv}
	cos = Scalar[T]{value: c, deriv: -s * a.deriv}
	return sin, cos
}

// Sin returns sin(a). d(sin x)/dx = cos x.
func (a Scalar[T]) Sin() Scalar[T] {
	s, _ := a.Sincos()
	return s
}

// Cos returns cos(a). d(cos x)/dx = -sin x.
func (a Scalar[T]) Cos() Scalar[T] {
	_, c := a.Sincos()
	return c
}

// Tan returns tan(a). d(tan x)/dx = 1 + tan² x.
func (a Scalar[T]) Tan() Scalar[T] {
	t := tan(a.value)
	return Scalar[T]{value: t, deriv: (1 + t*t) * a.deriv}
}

// Tanh returns tanh(a). d(tanh x)/dx = 1 - tanh² x.
func (a Scalar[T]) Tanh() Scalar[T] {
	t := tanh(a.value)
	return Scalar[T]{value: t, deriv: (1 - t*t) * a.deriv}
}

// Sqrt returns √a. d(√x)/dx = 1/(2√x).
func (a Scalar[T]) Sqrt() Scalar[T] {
	s := sqrt(a.value)
	return Scalar[T]{value: s, deriv: a.deriv / (2 * s)}
}

// Powi returns a raised to the integer power n. d(xⁿ)/dx = n·xⁿ⁻¹.
func (a Scalar[T]) Powi(n int) Scalar[T] {
	if n == 0 {
		return Const[T](1)
	}
	return Scalar[T]{
		value: powi(a.value, n),
		deriv: T(n) * powi(a.value, n-1) * a.deriv,
	}
}

// String formats the dual number as "value + derivε".
func (a Scalar[T]) String() string {
	return fmt.Sprintf("%v + %vε", a.value, a.deriv)
}

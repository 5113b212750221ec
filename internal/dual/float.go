package dual

import "math"

// Float is a constraint for the real types a dual number can be built on.
type Float interface {
	~float32 | ~float64
}

// Vec is a constraint for the fixed-size partial derivative arrays of Multi.
//
// The width of the array is the number of independent variables being
// differentiated together. Operands of different widths are different types,
// so mixing them is a compile error rather than a silent truncation.
type Vec[T Float] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[5]T | ~[6]T | ~[7]T | ~[8]T
}

// MaxWidth is the largest partial derivative width supported by Vec.
const MaxWidth = 8

// Elementary functions evaluated in float64 and converted back to T.

func log[T Float](x T) T { return T(math.Log(float64(x))) }

func exp[T Float](x T) T { return T(math.Exp(float64(x))) }

func sqrt[T Float](x T) T { return T(math.Sqrt(float64(x))) }

func tan[T Float](x T) T { return T(math.Tan(float64(x))) }

func tanh[T Float](x T) T { return T(math.Tanh(float64(x))) }

func sincos[T Float](x T) (sin, cos T) {
	s, c := math.Sincos(float64(x))
	return T(s), T(c)
}

func powi[T Float](x T, n int) T { return T(math.Pow(float64(x), float64(n))) }

package dual

// Number is the set of primitives a differentiable function may use.
//
// D is the implementing dual type itself and T its underlying real type.
// Functions written against Number are instantiated statically, so there is
// no interface dispatch at run time:
//
//	func g[D dual.Number[D, float64]](v []D) D {
//	    x, y := v[0], v[1]
//	    return x.Mul(x).Mul(y) // x²y
//	}
//
// Any operation outside this set (comparisons, branching on Value, calls
// into package math) is invisible to the derivative and breaks
// differentiability. That is a usage error the engine cannot detect.
type Number[D any, T Float] interface {
	// Value returns the real part.
	Value() T
	// Const lifts r to a constant of the same dual type (all derivatives zero).
	Const(r T) D

	Add(b D) D
	Sub(b D) D
	Mul(b D) D
	Div(b D) D
	Neg() D

	AddConst(r T) D
	MulConst(r T) D

	Log() D
	Exp() D
	Sin() D
	Cos() D
	Tan() D
	Tanh() D
	Sqrt() D
	Powi(n int) D
}

var _ Number[Scalar[float64], float64] = Scalar[float64]{}

var _ Number[Multi[float64, [2]float64], float64] = Multi[float64, [2]float64]{}

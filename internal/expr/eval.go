package expr

import (
	"fmt"
	"math"

	"github.com/born-ml/dualad/internal/dual"
)

// Eval evaluates e with vars[i] bound to the i-th variable. It returns
// ErrArity if len(vars) differs from e.NumVars().
//
// Non-integer powers a^b are evaluated as exp(b·log(a)), so they are only
// defined for a > 0; elsewhere the result is NaN like any other domain error.
func Eval[D dual.Number[D, T], T dual.Float](e *Expr, vars []D) (D, error) {
	if len(vars) != len(e.vars) {
		var zero D
		return zero, fmt.Errorf("%w: expression has %d, got %d", ErrArity, len(e.vars), len(vars))
	}
	return eval[D, T](e.root, vars), nil
}

// Func returns e as a function over a slice of dual numbers, suitable for
// the gradient combinators. It panics if e and the argument disagree on the
// number of variables.
func Func[D dual.Number[D, T], T dual.Float](e *Expr) func([]D) D {
	return func(vars []D) D {
		y, err := Eval[D, T](e, vars)
		if err != nil {
			panic(fmt.Sprintf("expr: %v", err))
		}
		return y
	}
}

// Func1 returns e as a function of a single dual number, suitable for
// Derivative. It panics if e has more than one variable.
func Func1[D dual.Number[D, T], T dual.Float](e *Expr) func(D) D {
	if len(e.vars) > 1 {
		panic(fmt.Sprintf("expr: %q has %d variables, want at most 1", e.src, len(e.vars)))
	}
	return func(x D) D {
		if len(e.vars) == 0 {
			return eval[D, T](e.root, nil)
		}
		return eval[D, T](e.root, []D{x})
	}
}

// Float evaluates e on plain reals.
func Float(e *Expr, vars []float64) (float64, error) {
	args := make([]dual.Scalar[float64], len(vars))
	for i, v := range vars {
		args[i] = dual.Const(v)
	}
	y, err := Eval[dual.Scalar[float64], float64](e, args)
	if err != nil {
		return math.NaN(), err
	}
	return y.Value(), nil
}

func eval[D dual.Number[D, T], T dual.Float](n Node, vars []D) D {
	var zero D
	switch n := n.(type) {
	case *Num:
		return zero.Const(T(n.Value))

	case *Var:
		return vars[n.Index]

	case *Neg:
		return eval[D, T](n.X, vars).Neg()

	case *Binary:
		if n.Op == '^' {
			return power[D, T](n, vars)
		}
		l, r := eval[D, T](n.L, vars), eval[D, T](n.R, vars)
		switch n.Op {
		case '+':
			return l.Add(r)
		case '-':
			return l.Sub(r)
		case '*':
			return l.Mul(r)
		case '/':
			return l.Div(r)
		}

	case *Call:
		x := eval[D, T](n.Arg, vars)
		switch n.Fn {
		case "log":
			return x.Log()
		case "exp":
			return x.Exp()
		case "sin":
			return x.Sin()
		case "cos":
			return x.Cos()
		case "tan":
			return x.Tan()
		case "tanh":
			return x.Tanh()
		case "sqrt":
			return x.Sqrt()
		}
	}
	panic(fmt.Sprintf("expr: unhandled node %T", n))
}

func power[D dual.Number[D, T], T dual.Float](n *Binary, vars []D) D {
	base := eval[D, T](n.L, vars)
	if k, ok := intExponent(n.R); ok {
		return base.Powi(k)
	}
	// a^b = exp(b·log(a))
	return eval[D, T](n.R, vars).Mul(base.Log()).Exp()
}

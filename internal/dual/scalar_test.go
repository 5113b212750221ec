package dual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	gdual "gonum.org/v1/gonum/num/dual"

	"github.com/born-ml/dualad/internal/dual"
)

const tol = 1e-12

// scenario is log(x² + exp(sin(x))).
func scenario[D dual.Number[D, float64]](x D) D {
	return x.Mul(x).Add(x.Sin().Exp()).Log()
}

func TestScalar_Constructors(t *testing.T) {
	v := dual.Variable(2.5)
	assert.Equal(t, 2.5, v.Value())
	assert.Equal(t, 1.0, v.Deriv())

	c := dual.Const(2.5)
	assert.Equal(t, 2.5, c.Value())
	assert.Equal(t, 0.0, c.Deriv())

	n := dual.New(1.0, -3.0)
	assert.Equal(t, -3.0, n.Deriv())

	// Const on a value lifts with zero derivative regardless of the receiver.
	assert.Equal(t, 0.0, v.Const(7).Deriv())
}

func TestScalar_Arithmetic(t *testing.T) {
	a := dual.New(3.0, 2.0)
	b := dual.New(5.0, -1.0)

	tests := []struct {
		name      string
		got       dual.Scalar[float64]
		wantValue float64
		wantDeriv float64
	}{
		{"add", a.Add(b), 8, 1},
		{"sub", a.Sub(b), -2, 3},
		{"mul", a.Mul(b), 15, 3*-1 + 2*5},
		{"div", a.Div(b), 3.0 / 5.0, (2*5 - 3*-1) / 25.0},
		{"neg", a.Neg(), -3, -2},
		{"add const", a.AddConst(10), 13, 2},
		{"mul const", a.MulConst(10), 30, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantValue, tt.got.Value(), tol)
			assert.InDelta(t, tt.wantDeriv, tt.got.Deriv(), tol)
		})
	}
}

func TestScalar_Elementary(t *testing.T) {
	x := 0.7
	v := dual.Variable(x)

	tests := []struct {
		name      string
		got       dual.Scalar[float64]
		wantValue float64
		wantDeriv float64
	}{
		{"log", v.Log(), math.Log(x), 1 / x},
		{"exp", v.Exp(), math.Exp(x), math.Exp(x)},
		{"sin", v.Sin(), math.Sin(x), math.Cos(x)},
		{"cos", v.Cos(), math.Cos(x), -math.Sin(x)},
		{"tan", v.Tan(), math.Tan(x), 1 / (math.Cos(x) * math.Cos(x))},
		{"tanh", v.Tanh(), math.Tanh(x), 1 - math.Tanh(x)*math.Tanh(x)},
		{"sqrt", v.Sqrt(), math.Sqrt(x), 0.5 / math.Sqrt(x)},
		{"powi 3", v.Powi(3), x * x * x, 3 * x * x},
		{"powi -1", v.Powi(-1), 1 / x, -1 / (x * x)},
		{"powi 0", v.Powi(0), 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantValue, tt.got.Value(), tol)
			assert.InDelta(t, tt.wantDeriv, tt.got.Deriv(), tol)
		})
	}
}

func TestScalar_Sincos(t *testing.T) {
	s, c := dual.Variable(1.2).MulConst(2).Sincos()
	assert.InDelta(t, math.Sin(2.4), s.Value(), tol)
	assert.InDelta(t, 2*math.Cos(2.4), s.Deriv(), tol)
	assert.InDelta(t, math.Cos(2.4), c.Value(), tol)
	assert.InDelta(t, -2*math.Sin(2.4), c.Deriv(), tol)
}

func TestScalar_ScenarioLogExpSin(t *testing.T) {
	x := 1.0
	y := scenario(dual.Variable(x))

	inner := x*x + math.Exp(math.Sin(x))
	want := (1 / inner) * (2*x + math.Exp(math.Sin(x))*math.Cos(x))

	assert.InDelta(t, math.Log(inner), y.Value(), tol)
	assert.InDelta(t, want, y.Deriv(), tol)
}

func TestScalar_SinAtPi(t *testing.T) {
	y := dual.Variable(math.Pi).Sin()
	assert.InDelta(t, 0, y.Value(), 1e-15)
	assert.InDelta(t, -1, y.Deriv(), tol)
}

func TestScalar_ProductRule(t *testing.T) {
	for _, x := range []float64{-2, -0.5, 0.3, 1, 4} {
		v := dual.Variable(x)
		got := v.Sin().Mul(v.Exp()).Deriv()
		want := math.Cos(x)*math.Exp(x) + math.Sin(x)*math.Exp(x)
		assert.InDelta(t, want, got, tol, "x=%v", x)
	}
}

func TestScalar_ChainRule(t *testing.T) {
	for _, x := range []float64{-2, -0.5, 0.3, 1, 4} {
		got := dual.Variable(x).Powi(2).Sin().Deriv()
		want := math.Cos(x*x) * 2 * x
		assert.InDelta(t, want, got, tol, "x=%v", x)
	}
}

func TestScalar_DomainErrorsPropagate(t *testing.T) {
	t.Run("log of negative", func(t *testing.T) {
		y := dual.Variable(-1.0).Log()
		assert.True(t, math.IsNaN(y.Value()))
	})

	t.Run("log of zero", func(t *testing.T) {
		y := dual.Variable(0.0).Log()
		assert.True(t, math.IsInf(y.Value(), -1))
		assert.True(t, math.IsInf(y.Deriv(), 1))
	})

	t.Run("division by zero", func(t *testing.T) {
		y := dual.Const(1.0).Div(dual.Variable(0.0))
		assert.True(t, math.IsInf(y.Value(), 1))
		assert.True(t, math.IsInf(y.Deriv(), -1))
	})

	t.Run("sqrt of negative", func(t *testing.T) {
		y := dual.Variable(-4.0).Sqrt()
		assert.True(t, math.IsNaN(y.Value()))
		assert.True(t, math.IsNaN(y.Deriv()))
	})
}

func TestScalar_Float32(t *testing.T) {
	y := scenario32(dual.Variable[float32](1))
	inner := 1 + math.Exp(math.Sin(1))
	want := (2 + math.Exp(math.Sin(1))*math.Cos(1)) / inner
	assert.InDelta(t, want, float64(y.Deriv()), 1e-5)
}

func scenario32[D dual.Number[D, float32]](x D) D {
	return x.Mul(x).Add(x.Sin().Exp()).Log()
}

func TestScalar_MatchesGonumDual(t *testing.T) {
	for _, x := range []float64{0.1, 0.9, 1.7, 3.2} {
		ours := scenario(dual.Variable(x))

		g := gdual.Number{Real: x, Emag: 1}
		theirs := gdual.Log(gdual.Add(gdual.Mul(g, g), gdual.Exp(gdual.Sin(g))))

		assert.InDelta(t, theirs.Real, ours.Value(), tol, "x=%v", x)
		assert.InDelta(t, theirs.Emag, ours.Deriv(), tol, "x=%v", x)
	}
}

func TestScalar_MatchesFiniteDifferences(t *testing.T) {
	f := func(x float64) float64 {
		return math.Log(x*x + math.Exp(math.Sin(x)))
	}
	settings := &fd.Settings{Formula: fd.Central}

	for _, x := range []float64{-3, -1.1, 0, 0.5, 2.2} {
		numeric := fd.Derivative(f, x, settings)
		exact := scenario(dual.Variable(x)).Deriv()
		require.InDelta(t, numeric, exact, 1e-6, "x=%v", x)
	}
}

func TestScalar_Immutable(t *testing.T) {
	a := dual.New(2.0, 1.0)
	_ = a.Mul(a).Add(a).Log()
	assert.Equal(t, 2.0, a.Value())
	assert.Equal(t, 1.0, a.Deriv())
}

func TestScalar_String(t *testing.T) {
	assert.Equal(t, "2 + 1ε", dual.Variable(2.0).String())
}

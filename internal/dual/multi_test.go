package dual_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dualad/internal/dual"
)

type vec2 = [2]float64

func TestOneHot(t *testing.T) {
	x := dual.OneHot[float64, [3]float64](4, 1)
	assert.Equal(t, 4.0, x.Value())
	assert.Equal(t, [3]float64{0, 1, 0}, x.Partials())
	assert.Equal(t, 3, x.Width())
}

func TestOneHot_OutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { dual.OneHot[float64, vec2](1, 2) })
	assert.Panics(t, func() { dual.OneHot[float64, vec2](1, -1) })
}

func TestSeeds(t *testing.T) {
	seeds := dual.Seeds[float64]([3]float64{1, 2, 3})
	require.Len(t, seeds, 3)
	for i, s := range seeds {
		assert.Equal(t, float64(i+1), s.Value())
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.Equal(t, want, s.Partial(j))
		}
	}
}

func TestMultiFromSlice(t *testing.T) {
	m, err := dual.MultiFromSlice[float64, vec2](1, []float64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, vec2{2, 3}, m.Partials())

	_, err = dual.MultiFromSlice[float64, vec2](1, []float64{2, 3, 4})
	require.ErrorIs(t, err, dual.ErrWidthMismatch)

	_, err = dual.MultiFromSlice[float64, vec2](1, nil)
	require.ErrorIs(t, err, dual.ErrWidthMismatch)
}

func TestMulti_ScenarioProduct(t *testing.T) {
	// g(x, y) = x²y at (2, 3): gradient (2xy, x²) = (12, 4).
	s := dual.Seeds[float64](vec2{2, 3})
	x, y := s[0], s[1]
	g := x.Mul(x).Mul(y)

	assert.Equal(t, 12.0, g.Value())
	assert.Equal(t, vec2{12, 4}, g.Partials())
}

func TestMulti_Arithmetic(t *testing.T) {
	a := dual.NewMulti(3.0, vec2{1, 2})
	b := dual.NewMulti(5.0, vec2{-1, 4})

	assert.Equal(t, vec2{0, 6}, a.Add(b).Partials())
	assert.Equal(t, vec2{2, -2}, a.Sub(b).Partials())
	assert.Equal(t, vec2{3*-1 + 1*5, 3*4 + 2*5}, a.Mul(b).Partials())

	q := a.Div(b)
	assert.InDelta(t, 0.6, q.Value(), tol)
	assert.InDelta(t, (1*5-3*-1)/25.0, q.Partial(0), tol)
	assert.InDelta(t, (2*5-3*4)/25.0, q.Partial(1), tol)

	assert.Equal(t, vec2{-1, -2}, a.Neg().Partials())
	assert.Equal(t, vec2{1, 2}, a.AddConst(7).Partials())
	assert.Equal(t, vec2{2, 4}, a.MulConst(2).Partials())
}

func TestMulti_ElementaryMatchesScalar(t *testing.T) {
	// Each partial of a Multi must equal the Scalar derivative seeded on the
	// same variable.
	xs := vec2{0.4, 1.3}
	s := dual.Seeds[float64](xs)

	multi := func(x, y dual.Multi[float64, vec2]) dual.Multi[float64, vec2] {
		return x.Sin().Mul(y.Cos()).Add(x.Div(y).Exp()).Sub(y.Sqrt().Log()).Add(x.Tanh().Mul(y.Tan())).Add(x.Powi(3))
	}
	scalar := func(x, y dual.Scalar[float64]) dual.Scalar[float64] {
		return x.Sin().Mul(y.Cos()).Add(x.Div(y).Exp()).Sub(y.Sqrt().Log()).Add(x.Tanh().Mul(y.Tan())).Add(x.Powi(3))
	}

	m := multi(s[0], s[1])
	dx := scalar(dual.Variable(xs[0]), dual.Const(xs[1]))
	dy := scalar(dual.Const(xs[0]), dual.Variable(xs[1]))

	assert.InDelta(t, dx.Value(), m.Value(), tol)
	assert.InDelta(t, dx.Deriv(), m.Partial(0), tol)
	assert.InDelta(t, dy.Deriv(), m.Partial(1), tol)
}

func TestMulti_ConstHasZeroPartials(t *testing.T) {
	x := dual.OneHot[float64, [4]float64](2, 3)
	c := x.Const(9)
	assert.Equal(t, 9.0, c.Value())
	assert.Equal(t, [4]float64{}, c.Partials())
	assert.Equal(t, [4]float64{}, x.Powi(0).Partials())
}

func TestMulti_DomainErrorsPropagate(t *testing.T) {
	x := dual.OneHot[float64, vec2](-1, 0)
	y := x.Log()
	assert.True(t, math.IsNaN(y.Value()))
	assert.Equal(t, -1.0, y.Partial(0))
	assert.Equal(t, 0.0, y.Partial(1))
}

func TestMulti_Immutable(t *testing.T) {
	x := dual.OneHot[float64, vec2](2, 0)
	_ = x.Mul(x).Exp()
	assert.Equal(t, vec2{1, 0}, x.Partials())
}

func TestMulti_String(t *testing.T) {
	x := dual.OneHot[float64, vec2](2, 0)
	assert.Equal(t, "2 + [1 0]ε", x.String())
}

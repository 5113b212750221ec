package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/born-ml/dualad/internal/ad"
	"github.com/born-ml/dualad/internal/chain"
	"github.com/born-ml/dualad/internal/dual"
	"github.com/born-ml/dualad/internal/expr"
	"github.com/born-ml/dualad/internal/parallel"
)

// Gradient modes.
const (
	ModeNaive   = "naive"
	ModeBatched = "batched"
	ModeBoth    = "both"
)

// Modes lists the valid gradient modes.
var Modes = []string{ModeNaive, ModeBatched, ModeBoth}

// Common errors.
var (
	ErrTooManyVars   = errors.New("too many variables")
	ErrNotUnivariate = errors.New("expression must have at most one variable")
)

type scalar = dual.Scalar[float64]

// DerivResult is the output of the deriv command.
type DerivResult struct {
	Expr   string       `json:"expr"`
	Var    string       `json:"var"`
	Points []DerivPoint `json:"points"`
}

// DerivPoint is f and f' at one point.
type DerivPoint struct {
	X     Number `json:"x"`
	Value Number `json:"value"`
	Deriv Number `json:"deriv"`
}

func (r *DerivResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "f(%s) = %s", r.Var, r.Expr)
	for _, p := range r.Points {
		fmt.Fprintf(&b, "\n%s=%s  value=%s  deriv=%s", r.Var, p.X, p.Value, p.Deriv)
	}
	return b.String()
}

// GradResult is the output of the grad command.
type GradResult struct {
	Expr   string      `json:"expr"`
	Vars   []string    `json:"vars"`
	Mode   string      `json:"mode"`
	Points []GradPoint `json:"points"`
}

// GradPoint is f and its gradient at one point.
type GradPoint struct {
	At      []Number `json:"at"`
	Value   Number   `json:"value"`
	Naive   []Number `json:"naive,omitempty"`
	Batched []Number `json:"batched,omitempty"`
	Agree   *bool    `json:"agree,omitempty"`
}

// Agrees reports whether every point compared equal. Results computed in a
// single mode always agree.
func (r *GradResult) Agrees() bool {
	for _, p := range r.Points {
		if p.Agree != nil && !*p.Agree {
			return false
		}
	}
	return true
}

func (r *GradResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "f(%s) = %s", strings.Join(r.Vars, ", "), r.Expr)
	for _, p := range r.Points {
		coords := make([]string, len(p.At))
		for i, x := range p.At {
			coords[i] = r.Vars[i] + "=" + x.String()
		}
		fmt.Fprintf(&b, "\nat (%s)  value=%s", strings.Join(coords, ", "), p.Value)
		if p.Naive != nil {
			fmt.Fprintf(&b, "\n  naive    %s", formatVector(p.Naive))
		}
		if p.Batched != nil {
			fmt.Fprintf(&b, "\n  batched  %s", formatVector(p.Batched))
		}
		if p.Agree != nil {
			fmt.Fprintf(&b, "\n  agree    %t", *p.Agree)
		}
	}
	return b.String()
}

// ChainResult is the output of the chain command.
type ChainResult struct {
	Stages []string     `json:"stages"`
	Points []ChainPoint `json:"points"`
}

// ChainPoint compares forward and reverse evaluation at one point.
type ChainPoint struct {
	X            Number `json:"x"`
	ForwardValue Number `json:"forward_value"`
	ForwardDeriv Number `json:"forward_deriv"`
	ReverseValue Number `json:"reverse_value"`
	ReverseDeriv Number `json:"reverse_deriv"`
	TapeLen      int    `json:"tape_len"`
	Agree        bool   `json:"agree"`
}

// Agrees reports whether forward and reverse agreed at every point.
func (r *ChainResult) Agrees() bool {
	for _, p := range r.Points {
		if !p.Agree {
			return false
		}
	}
	return true
}

func (r *ChainResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "stages: %s", strings.Join(r.Stages, " -> "))
	for _, p := range r.Points {
		fmt.Fprintf(&b, "\nx=%s", p.X)
		fmt.Fprintf(&b, "\n  forward  value=%s  deriv=%s", p.ForwardValue, p.ForwardDeriv)
		fmt.Fprintf(&b, "\n  reverse  value=%s  deriv=%s  tape=%d", p.ReverseValue, p.ReverseDeriv, p.TapeLen)
		fmt.Fprintf(&b, "\n  agree    %t", p.Agree)
	}
	return b.String()
}

// parseUnivariate parses src and checks it has at most one variable.
// The variable name defaults to "x" for constant expressions.
func parseUnivariate(src string) (*expr.Expr, string, error) {
	e, err := expr.Parse(src)
	if err != nil {
		return nil, "", err
	}
	switch e.NumVars() {
	case 0:
		return e, "x", nil
	case 1:
		return e, e.Vars()[0], nil
	default:
		return nil, "", fmt.Errorf("%w: %q uses %s", ErrNotUnivariate, src, strings.Join(e.Vars(), ", "))
	}
}

func evalDeriv(e *expr.Expr, name string, points []float64, cfg parallel.Config) *DerivResult {
	f := expr.Func1[scalar, float64](e)
	derivs := ad.DerivativeAt(f, points, cfg)

	res := &DerivResult{Expr: e.Source(), Var: name, Points: make([]DerivPoint, len(points))}
	for i, x := range points {
		res.Points[i] = DerivPoint{
			X:     Number(x),
			Value: Number(f(dual.Const(x)).Value()),
			Deriv: Number(derivs[i]),
		}
	}
	return res
}

func evalGrad(e *expr.Expr, points [][]float64, mode string, tol float64, cfg parallel.Config) (*GradResult, error) {
	res := &GradResult{Expr: e.Source(), Vars: e.Vars(), Mode: mode, Points: make([]GradPoint, len(points))}
	f := expr.Func[scalar, float64](e)

	for i, xs := range points {
		value, err := expr.Float(e, xs)
		if err != nil {
			return nil, err
		}
		p := GradPoint{At: Numbers(xs), Value: Number(value)}

		var naive, batched []float64
		if mode == ModeNaive || mode == ModeBoth {
			naive = ad.GradientNaiveParallel(f, xs, cfg)
			p.Naive = Numbers(naive)
		}
		if mode == ModeBatched || mode == ModeBoth {
			batched, err = batchedGradient(e, xs)
			if err != nil {
				return nil, err
			}
			p.Batched = Numbers(batched)
		}
		if mode == ModeBoth {
			agree := ad.Agree(naive, batched, tol)
			p.Agree = &agree
		}
		res.Points[i] = p
	}
	return res, nil
}

// batchedGradient instantiates the batched gradient for the width of xs.
func batchedGradient(e *expr.Expr, xs []float64) ([]float64, error) {
	switch len(xs) {
	case 0:
		return []float64{}, nil
	case 1:
		return batched[[1]float64](e, xs), nil
	case 2:
		return batched[[2]float64](e, xs), nil
	case 3:
		return batched[[3]float64](e, xs), nil
	case 4:
		return batched[[4]float64](e, xs), nil
	case 5:
		return batched[[5]float64](e, xs), nil
	case 6:
		return batched[[6]float64](e, xs), nil
	case 7:
		return batched[[7]float64](e, xs), nil
	case 8:
		return batched[[8]float64](e, xs), nil
	default:
		return nil, fmt.Errorf("%w: batched mode supports at most %d, got %d", ErrTooManyVars, dual.MaxWidth, len(xs))
	}
}

func batched[V dual.Vec[float64]](e *expr.Expr, xs []float64) []float64 {
	var at V
	for i := range xs {
		at[i] = xs[i]
	}
	grad := ad.GradientBatched(expr.Func[dual.Multi[float64, V], float64](e), at)

	out := make([]float64, len(xs))
	for i := range out {
		out[i] = grad[i]
	}
	return out
}

// buildStages parses each stage expression into a chain stage whose
// derivative comes from forward-mode AD.
func buildStages(srcs []string) ([]chain.Stage[float64], error) {
	stages := make([]chain.Stage[float64], len(srcs))
	for i, src := range srcs {
		e, _, err := parseUnivariate(src)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		stages[i] = chain.FromFunc(src, expr.Func1[scalar, float64](e))
	}
	return stages, nil
}

func evalChain(stages []chain.Stage[float64], points []float64, tol float64) *ChainResult {
	res := &ChainResult{Stages: make([]string, len(stages)), Points: make([]ChainPoint, len(points))}
	for i, s := range stages {
		res.Stages[i] = s.Name
	}

	for i, x := range points {
		fv, fd := chain.Forward(stages, x)
		rv, tape := chain.Record(stages, x)
		rd := tape.Backward(1)

		res.Points[i] = ChainPoint{
			X:            Number(x),
			ForwardValue: Number(fv),
			ForwardDeriv: Number(fd),
			ReverseValue: Number(rv),
			ReverseDeriv: Number(rd),
			TapeLen:      tape.NumOps(),
			Agree:        ad.Agree([]float64{fv, fd}, []float64{rv, rd}, tol),
		}
	}
	return res
}

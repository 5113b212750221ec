// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ad_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/born-ml/dualad/ad"
	"github.com/born-ml/dualad/chain"
	"github.com/born-ml/dualad/dual"
	"github.com/born-ml/dualad/expr"
)

func xxy[D dual.Number[D, float64]](v []D) D {
	return v[0].Mul(v[0]).Mul(v[1])
}

// TestPublicAPI verifies that the re-exported packages work together.
func TestPublicAPI(t *testing.T) {
	naive := ad.GradientNaive(xxy[dual.Scalar[float64]], []float64{2, 3})
	batched := ad.GradientBatched(xxy[dual.Multi[float64, [2]float64]], [2]float64{2, 3})
	if !ad.Agree(naive, batched[:], 1e-12) {
		t.Errorf("naive %v and batched %v disagree", naive, batched)
	}

	e, err := expr.Parse("x^2 * y")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	fromExpr := ad.GradientNaive(expr.Func[dual.Scalar[float64], float64](e), []float64{2, 3})
	if !ad.Agree(naive, fromExpr, 0) {
		t.Errorf("expression gradient %v, want %v", fromExpr, naive)
	}

	stages := chain.Compose3(
		chain.Stage[float64]{Name: "sin", F: math.Sin, DF: math.Cos},
		chain.Stage[float64]{Name: "exp", F: math.Exp, DF: math.Exp},
		chain.FromFunc("square", func(x dual.Scalar[float64]) dual.Scalar[float64] { return x.Powi(2) }),
	)
	fv, fd := chain.Forward(stages, 0.5)
	rv, rd := chain.Reverse(stages, 0.5)
	if !ad.Agree([]float64{fv, fd}, []float64{rv, rd}, 1e-12) {
		t.Errorf("forward (%v, %v) and reverse (%v, %v) disagree", fv, fd, rv, rd)
	}
}

func Example() {
	f := func(x dual.Scalar[float64]) dual.Scalar[float64] {
		return x.Mul(x).MulConst(3)
	}
	value, deriv := ad.ValueAndDerivative(f, 2.0)
	fmt.Println(value, deriv)
	// Output: 12 12
}

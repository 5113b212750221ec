package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/born-ml/dualad/internal/config"
	"github.com/born-ml/dualad/internal/expr"
	"github.com/born-ml/dualad/internal/parallel"
)

// GradOptions holds flags for the grad command.
type GradOptions struct {
	*RootOptions
	At        []string
	Vars      []string
	Mode      string
	Tolerance float64
}

// NewGradCommand creates the grad command.
func NewGradCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GradOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "grad <expr>",
		Short: "Compute the gradient of a multi-variable expression",
		Long: `Evaluate an expression and its gradient at one or more points.

Variables are ordered by first appearance unless --vars is given. The
naive mode evaluates the expression once per variable; the batched mode
evaluates it once, carrying every partial together (at most 8 variables).

Example:
  dualad grad "x^2 * y" --at x=2,y=3
  dualad grad "sin(x*y) + z" --vars x,y,z --at 1,2,3 --mode naive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrad(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.At, "at", nil, "evaluation point, e.g. 2,3 or x=2,y=3 (repeatable)")
	cmd.Flags().StringSliceVar(&opts.Vars, "vars", nil, "variable order, e.g. x,y")
	cmd.Flags().StringVar(&opts.Mode, "mode", ModeBoth, "gradient mode (naive|batched|both)")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", config.DefaultTolerance, "agreement tolerance between naive and batched")

	return cmd
}

func runGrad(cmd *cobra.Command, opts *GradOptions, src string) error {
	if !slices.Contains(Modes, opts.Mode) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid mode %q: must be one of %v", opts.Mode, Modes))
	}

	var e *expr.Expr
	var err error
	if opts.Vars != nil {
		e, err = expr.ParseWithVars(src, opts.Vars)
	} else {
		e, err = expr.Parse(src)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid expression", err)
	}

	points, err := parsePoints(opts.At, e.Vars())
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid point", err)
	}
	opts.Logger.Debug("computing gradient", "expr", e.String(), "vars", e.Vars(), "mode", opts.Mode)

	res, err := evalGrad(e, points, opts.Mode, opts.Tolerance, parallel.DefaultConfig())
	if err != nil {
		return WrapExitError(ExitCommandError, "gradient failed", err)
	}
	if err := formatter(cmd, opts.RootOptions).Success(res); err != nil {
		return err
	}
	if !res.Agrees() {
		return NewExitError(ExitFailure, "naive and batched gradients disagree")
	}
	return nil
}

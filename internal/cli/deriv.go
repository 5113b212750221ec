package cli

import (
	"github.com/spf13/cobra"

	"github.com/born-ml/dualad/internal/parallel"
)

// DerivOptions holds flags for the deriv command.
type DerivOptions struct {
	*RootOptions
	At []string
}

// NewDerivCommand creates the deriv command.
func NewDerivCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DerivOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "deriv <expr>",
		Short: "Differentiate a one-variable expression",
		Long: `Evaluate an expression and its derivative at one or more points.

Example:
  dualad deriv "log(x^2 + exp(sin(x)))" --at 1
  dualad deriv "sin(t)" --at t=3.14159 --at t=0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeriv(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringArrayVar(&opts.At, "at", nil, "evaluation point, e.g. 1.5 or x=1.5 (repeatable)")

	return cmd
}

func runDeriv(cmd *cobra.Command, opts *DerivOptions, src string) error {
	e, name, err := parseUnivariate(src)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid expression", err)
	}
	points, err := parsePoints(opts.At, []string{name})
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid point", err)
	}
	opts.Logger.Debug("differentiating", "expr", e.String(), "var", name, "points", len(points))

	res := evalDeriv(e, name, firstCoords(points), parallel.DefaultConfig())
	return formatter(cmd, opts.RootOptions).Success(res)
}

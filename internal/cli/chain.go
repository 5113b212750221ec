package cli

import (
	"github.com/spf13/cobra"

	"github.com/born-ml/dualad/internal/config"
)

// ChainOptions holds flags for the chain command.
type ChainOptions struct {
	*RootOptions
	Stages    []string
	At        []string
	Tolerance float64
}

// NewChainCommand creates the chain command.
func NewChainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ChainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Compare forward and reverse evaluation of a composition",
		Long: `Evaluate a composition of one-variable stages, innermost first, in
forward order and in reverse order, and report both results.

Example:
  dualad chain --stage "sin(x)" --stage "exp(x)" --stage "x^2" --at 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChain(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Stages, "stage", nil, "stage expression in one variable, innermost first (repeatable)")
	cmd.Flags().StringArrayVar(&opts.At, "at", nil, "evaluation point (repeatable)")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", config.DefaultTolerance, "agreement tolerance between forward and reverse")
	_ = cmd.MarkFlagRequired("stage")

	return cmd
}

func runChain(cmd *cobra.Command, opts *ChainOptions) error {
	stages, err := buildStages(opts.Stages)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid stage", err)
	}
	points, err := parsePoints(opts.At, []string{"x"})
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid point", err)
	}
	opts.Logger.Debug("evaluating chain", "stages", len(stages), "points", len(points))

	res := evalChain(stages, firstCoords(points), opts.Tolerance)
	if err := formatter(cmd, opts.RootOptions).Success(res); err != nil {
		return err
	}
	if !res.Agrees() {
		return NewExitError(ExitFailure, "forward and reverse evaluation disagree")
	}
	return nil
}

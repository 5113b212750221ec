package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/dualad/internal/config"
	"github.com/born-ml/dualad/internal/expr"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate a batch of jobs from a YAML file",
		Long: `Evaluate every job listed in a YAML config file.

Example:
  dualad run --config jobs.yaml
  dualad run --config jobs.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJobs(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "path to YAML config (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// RunResult is the output of the run command.
type RunResult struct {
	Jobs []JobResult `json:"jobs"`
}

// JobResult is the outcome of one job.
type JobResult struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Result any    `json:"result"`
}

func (r *RunResult) String() string {
	parts := make([]string, len(r.Jobs))
	for i, j := range r.Jobs {
		parts[i] = fmt.Sprintf("== %s (%s)\n%v", j.Name, j.Kind, j.Result)
	}
	return strings.Join(parts, "\n")
}

type agreer interface {
	Agrees() bool
}

func runJobs(cmd *cobra.Command, opts *RunOptions) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	pcfg := cfg.ParallelConfig()
	opts.Logger.Info("config loaded", "path", opts.Config, "jobs", len(cfg.Jobs), "parallel", pcfg.Enabled, "workers", pcfg.NumWorkers)

	out := &RunResult{Jobs: make([]JobResult, 0, len(cfg.Jobs))}
	var failed []string

	for _, job := range cfg.Jobs {
		opts.Logger.Debug("running job", "name", job.Name, "kind", job.Kind)

		result, err := runJob(job, cfg)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("job %q", job.Name), err)
		}
		if a, ok := result.(agreer); ok && !a.Agrees() {
			opts.Logger.Error("results disagree", "job", job.Name)
			failed = append(failed, job.Name)
		}
		out.Jobs = append(out.Jobs, JobResult{Name: job.Name, Kind: job.Kind, Result: result})
	}

	if err := formatter(cmd, opts.RootOptions).Success(out); err != nil {
		return err
	}
	if len(failed) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("results disagree in jobs: %s", strings.Join(failed, ", ")))
	}
	return nil
}

func runJob(job config.Job, cfg *config.Config) (any, error) {
	switch job.Kind {
	case config.KindDeriv:
		e, name, err := parseUnivariate(job.Expr)
		if err != nil {
			return nil, err
		}
		return evalDeriv(e, name, firstCoords(job.Points), cfg.ParallelConfig()), nil

	case config.KindGrad:
		var e *expr.Expr
		var err error
		if job.Vars != nil {
			e, err = expr.ParseWithVars(job.Expr, job.Vars)
		} else {
			e, err = expr.Parse(job.Expr)
		}
		if err != nil {
			return nil, err
		}
		return evalGrad(e, job.Points, ModeBoth, cfg.AgreementTolerance(), cfg.ParallelConfig())

	case config.KindChain:
		stages, err := buildStages(job.Stages)
		if err != nil {
			return nil, err
		}
		return evalChain(stages, firstCoords(job.Points), cfg.AgreementTolerance()), nil

	default:
		return nil, fmt.Errorf("unknown job kind %q", job.Kind)
	}
}

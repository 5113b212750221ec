// Package config loads batch evaluation files for the dualad CLI.
//
// A config file lists jobs, each naming an expression and the points to
// differentiate it at:
//
//	tolerance: 1e-12
//	parallel:
//	  enabled: true
//	  workers: 4
//	  min_chunk: 1
//	jobs:
//	  - name: scenario
//	    kind: deriv
//	    expr: log(x^2 + exp(sin(x)))
//	    points: [[1.0], [2.0]]
//	  - name: product
//	    kind: grad
//	    expr: x^2 * y
//	    vars: [x, y]
//	    points: [[2, 3]]
//	  - name: composition
//	    kind: chain
//	    stages: [sin(x), exp(x), x^2]
//	    points: [[0.5]]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/dualad/internal/parallel"
)

// DefaultTolerance is used to compare naive and batched gradients when the
// file does not set one.
const DefaultTolerance = 1e-12

// Job kinds.
const (
	KindDeriv = "deriv"
	KindGrad  = "grad"
	KindChain = "chain"
)

// Kinds lists the valid job kinds.
var Kinds = []string{KindDeriv, KindGrad, KindChain}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of a batch file.
type Config struct {
	Tolerance *float64 `yaml:"tolerance"` // nil means DefaultTolerance; 0 demands exact agreement
	Parallel  Parallel `yaml:"parallel"`
	Jobs      []Job    `yaml:"jobs"`
}

// Parallel mirrors parallel.Config. Unset fields take the defaults of
// parallel.DefaultConfig.
type Parallel struct {
	Enabled  *bool `yaml:"enabled"`
	Workers  int   `yaml:"workers"`
	MinChunk int   `yaml:"min_chunk"`
}

// Job is one expression to differentiate at one or more points.
type Job struct {
	Name   string      `yaml:"name"`
	Kind   string      `yaml:"kind"`
	Expr   string      `yaml:"expr"`
	Vars   []string    `yaml:"vars,omitempty"`
	Stages []string    `yaml:"stages,omitempty"`
	Points [][]float64 `yaml:"points"`
}

// Load reads and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the structural rules of the config. Expressions are
// parsed later, by the command that runs them.
func (c *Config) Validate() error {
	if c.Tolerance != nil && *c.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance must not be negative", ErrInvalidConfig)
	}
	if c.Parallel.Workers < 0 || c.Parallel.MinChunk < 0 {
		return fmt.Errorf("%w: parallel settings must not be negative", ErrInvalidConfig)
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("%w: no jobs", ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i, job := range c.Jobs {
		if job.Name == "" {
			return fmt.Errorf("%w: job %d: missing name", ErrInvalidConfig, i)
		}
		if seen[job.Name] {
			return fmt.Errorf("%w: job %q: duplicate name", ErrInvalidConfig, job.Name)
		}
		seen[job.Name] = true

		if err := job.validate(); err != nil {
			return fmt.Errorf("%w: job %q: %v", ErrInvalidConfig, job.Name, err)
		}
	}
	return nil
}

func (j *Job) validate() error {
	if !slices.Contains(Kinds, j.Kind) {
		return fmt.Errorf("kind %q must be one of %v", j.Kind, Kinds)
	}
	if j.Kind == KindChain {
		if len(j.Stages) == 0 {
			return errors.New("chain job needs stages")
		}
		if j.Expr != "" {
			return errors.New("chain job takes stages, not expr")
		}
	} else if j.Expr == "" {
		return errors.New("missing expr")
	}
	for i, v := range j.Vars {
		if slices.Contains(j.Vars[:i], v) {
			return fmt.Errorf("duplicate variable %q", v)
		}
	}
	if len(j.Points) == 0 {
		return errors.New("no points")
	}
	for k, p := range j.Points {
		if len(p) == 0 {
			return fmt.Errorf("point %d is empty", k)
		}
		if j.Kind != KindGrad && len(p) != 1 {
			return fmt.Errorf("point %d: %s job takes one coordinate, got %d", k, j.Kind, len(p))
		}
		if j.Vars != nil && len(p) != len(j.Vars) {
			return fmt.Errorf("point %d has %d coordinates for %d vars", k, len(p), len(j.Vars))
		}
	}
	return nil
}

// AgreementTolerance returns the tolerance for comparing naive and batched
// gradients and forward and reverse chains.
func (c *Config) AgreementTolerance() float64 {
	if c.Tolerance == nil {
		return DefaultTolerance
	}
	return *c.Tolerance
}

// ParallelConfig returns the execution settings for parallel combinators.
func (c *Config) ParallelConfig() parallel.Config {
	cfg := parallel.DefaultConfig()
	if c.Parallel.Enabled != nil {
		cfg.Enabled = *c.Parallel.Enabled
	}
	if c.Parallel.Workers > 0 {
		cfg.NumWorkers = c.Parallel.Workers
	}
	if c.Parallel.MinChunk > 0 {
		cfg.MinChunkSize = c.Parallel.MinChunk
	}
	return cfg
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/dualad/internal/parallel"
)

func TestLoad(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "jobs.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1e-10, cfg.AgreementTolerance())
	require.Len(t, cfg.Jobs, 3)

	assert.Equal(t, Job{
		Name:   "scenario",
		Kind:   KindDeriv,
		Expr:   "log(x^2 + exp(sin(x)))",
		Points: [][]float64{{1}, {2}},
	}, cfg.Jobs[0])
	assert.Equal(t, []string{"x", "y"}, cfg.Jobs[1].Vars)
	assert.Equal(t, []string{"sin(x)", "exp(x)", "x^2"}, cfg.Jobs[2].Stages)

	pc := cfg.ParallelConfig()
	assert.False(t, pc.Enabled)
	assert.Equal(t, 2, pc.NumWorkers)
	assert.Equal(t, parallel.DefaultConfig().MinChunkSize, pc.MinChunkSize)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
jobs:
  - name: a
    kind: deriv
    expr: x
    points: [[1]]
`))
	require.NoError(t, err)
	assert.Nil(t, cfg.Tolerance)
	assert.Equal(t, DefaultTolerance, cfg.AgreementTolerance())
	assert.Equal(t, parallel.DefaultConfig(), cfg.ParallelConfig())
}

func TestParse_ZeroTolerance(t *testing.T) {
	cfg, err := Parse([]byte(`
tolerance: 0
jobs:
  - name: a
    kind: deriv
    expr: x
    points: [[1]]
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Tolerance)
	assert.Equal(t, 0.0, cfg.AgreementTolerance())
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{"empty", ``, "invalid config"},
		{"no jobs", `tolerance: 1e-9`, "no jobs"},
		{"unknown field", "jobs: []\nbogus: 1", "bogus"},
		{"negative tolerance", "tolerance: -1\njobs: [{name: a, kind: deriv, expr: x, points: [[1]]}]", "tolerance"},
		{"negative workers", "parallel: {workers: -2}\njobs: [{name: a, kind: deriv, expr: x, points: [[1]]}]", "parallel"},
		{"missing name", "jobs: [{kind: deriv, expr: x, points: [[1]]}]", "missing name"},
		{"duplicate name", "jobs: [{name: a, kind: deriv, expr: x, points: [[1]]}, {name: a, kind: deriv, expr: x, points: [[1]]}]", "duplicate"},
		{"bad kind", "jobs: [{name: a, kind: hessian, expr: x, points: [[1]]}]", "kind"},
		{"missing expr", "jobs: [{name: a, kind: grad, points: [[1]]}]", "missing expr"},
		{"chain without stages", "jobs: [{name: a, kind: chain, points: [[1]]}]", "stages"},
		{"chain with expr", "jobs: [{name: a, kind: chain, expr: x, stages: [x], points: [[1]]}]", "not expr"},
		{"no points", "jobs: [{name: a, kind: deriv, expr: x}]", "no points"},
		{"empty point", "jobs: [{name: a, kind: grad, expr: x, points: [[]]}]", "empty"},
		{"deriv with two coords", "jobs: [{name: a, kind: deriv, expr: x, points: [[1, 2]]}]", "one coordinate"},
		{"duplicate var", "jobs: [{name: a, kind: grad, expr: x, vars: [x, x], points: [[1, 2]]}]", "duplicate variable"},
		{"vars mismatch", "jobs: [{name: a, kind: grad, expr: x*y, vars: [x, y], points: [[1]]}]", "2 vars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

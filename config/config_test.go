// SPDX-License-Identifier: MIT

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvlik/config"
	"github.com/katalvlaran/lvlik/linesearch"
	"github.com/katalvlaran/lvlik/solver"
)

func TestLoad_EmptyGivesDefaults(t *testing.T) {
	got, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), *got)
}

func TestLoad_YAML(t *testing.T) {
	doc := []byte(`
solver:
  error_threshold: 1e-6
  max_iterations: 40
  last_is_optional: true
line_search:
  policy: fixed_sequence
  decay: 0.5
`)
	got, err := config.Load(doc)
	require.NoError(t, err)

	assert.Equal(t, 1e-6, got.Solver.ErrorThreshold)
	assert.Equal(t, 40, got.Solver.MaxIterations)
	assert.True(t, got.Solver.LastIsOptional)
	assert.Equal(t, solver.DefaultRankThreshold, got.Solver.RankThreshold)
	assert.Equal(t, "fixed_sequence", got.LineSearch.Policy)
	assert.Equal(t, 0.5, got.LineSearch.Decay)
	assert.Equal(t, linesearch.DefaultAlphaMax, got.LineSearch.AlphaMax)
}

func TestLoad_EnvironmentOverridesYAML(t *testing.T) {
	t.Setenv("IKSOLVE_SOLVER_MAX_ITERATIONS", "75")
	t.Setenv("IKSOLVE_LINE_SEARCH_POLICY", "error_norm_based")
	t.Setenv("IKSOLVE_LINE_SEARCH_HALF_RESIDUAL", "1000")
	t.Setenv("IKSOLVE_UNRELATED", "ignored")

	got, err := config.Load([]byte("solver:\n  max_iterations: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 75, got.Solver.MaxIterations)
	assert.Equal(t, "error_norm_based", got.LineSearch.Policy)
	assert.Equal(t, 1000.0, got.LineSearch.HalfResidual)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"threshold":   "solver:\n  error_threshold: 0\n",
		"iterations":  "solver:\n  max_iterations: -2\n",
		"rank":        "solver:\n  rank_threshold: 1\n",
		"policy":      "line_search:\n  policy: wolfe\n",
		"shrink":      "line_search:\n  shrink_ratio: 1.5\n",
		"delta":       "line_search:\n  alpha_min: 0.5\n  delta: 0.6\n",
		"half_resid":  "line_search:\n  half_residual: 0.5\n",
		"decay":       "line_search:\n  decay: 1\n",
		"small_alpha": "line_search:\n  small_alpha: 0\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load([]byte(doc))
			require.ErrorIs(t, err, config.ErrInvalidTuning)
		})
	}

	_, err := config.Load([]byte("solver: [unterminated"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrInvalidTuning)
}

func TestTuning_Builds(t *testing.T) {
	tuning := config.Defaults()
	opts := tuning.SolverOptions(zap.NewNop())
	o := solver.DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	assert.Equal(t, solver.DefaultErrorThreshold, o.ErrorThreshold)
	assert.Equal(t, solver.DefaultMaxIterations, o.MaxIterations)

	for kind, want := range map[linesearch.Kind]any{
		linesearch.KindConstant:       linesearch.Constant{},
		linesearch.KindBacktracking:   &linesearch.Backtracking{},
		linesearch.KindFixedSequence:  &linesearch.FixedSequence{},
		linesearch.KindErrorNormBased: &linesearch.ErrorNormBased{},
	} {
		tuning.LineSearch.Policy = kind.String()
		p, err := tuning.Policy(nil)
		require.NoError(t, err)
		assert.IsType(t, want, p, kind.String())
	}

	tuning.LineSearch.Policy = "armijo"
	_, err := tuning.Policy(nil)
	require.ErrorIs(t, err, linesearch.ErrUnknownPolicy)
}

func TestTuning_PolicyReadsLineSearchSection(t *testing.T) {
	tuning, err := config.Load([]byte("line_search:\n  policy: fixed_sequence\n  initial_alpha: 0.3\n"))
	require.NoError(t, err)

	p, err := tuning.Policy(zap.NewNop())
	require.NoError(t, err)
	fs, ok := p.(*linesearch.FixedSequence)
	require.True(t, ok)
	assert.Equal(t, 0.3, fs.Alpha())
}

// SPDX-License-Identifier: MIT

package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvlik/linesearch"
	"github.com/katalvlaran/lvlik/solver"
)

// Tuning holds every tunable of a solve.
type Tuning struct {
	Solver     SolverTuning     `koanf:"solver" yaml:"solver"`
	LineSearch LineSearchTuning `koanf:"line_search" yaml:"line_search"`
}

// SolverTuning mirrors solver.Options.
type SolverTuning struct {
	ErrorThreshold      float64 `koanf:"error_threshold" yaml:"error_threshold"`
	MaxIterations       int     `koanf:"max_iterations" yaml:"max_iterations"`
	RankThreshold       float64 `koanf:"rank_threshold" yaml:"rank_threshold"`
	SaturationThreshold float64 `koanf:"saturation_threshold" yaml:"saturation_threshold"`
	LastIsOptional      bool    `koanf:"last_is_optional" yaml:"last_is_optional"`
}

// LineSearchTuning selects a policy and holds the constants of all of them;
// only those of the selected policy are used.
type LineSearchTuning struct {
	Policy string `koanf:"policy" yaml:"policy"`

	// backtracking
	SufficientDecrease float64 `koanf:"sufficient_decrease" yaml:"sufficient_decrease"`
	ShrinkRatio        float64 `koanf:"shrink_ratio" yaml:"shrink_ratio"`
	SmallAlpha         float64 `koanf:"small_alpha" yaml:"small_alpha"`

	// fixed_sequence
	InitialAlpha float64 `koanf:"initial_alpha" yaml:"initial_alpha"`
	AlphaMax     float64 `koanf:"alpha_max" yaml:"alpha_max"`
	Decay        float64 `koanf:"decay" yaml:"decay"`

	// error_norm_based
	AlphaMin     float64 `koanf:"alpha_min" yaml:"alpha_min"`
	Delta        float64 `koanf:"delta" yaml:"delta"`
	HalfResidual float64 `koanf:"half_residual" yaml:"half_residual"`
}

// Defaults returns the tuning used for every key no source sets.
func Defaults() Tuning {
	return Tuning{
		Solver: SolverTuning{
			ErrorThreshold:      solver.DefaultErrorThreshold,
			MaxIterations:       solver.DefaultMaxIterations,
			RankThreshold:       solver.DefaultRankThreshold,
			SaturationThreshold: solver.DefaultSaturationThreshold,
		},
		LineSearch: LineSearchTuning{
			Policy:             linesearch.KindBacktracking.String(),
			SufficientDecrease: linesearch.DefaultSufficientDecrease,
			ShrinkRatio:        linesearch.DefaultShrinkRatio,
			SmallAlpha:         linesearch.DefaultSmallAlpha,
			InitialAlpha:       linesearch.DefaultInitialAlpha,
			AlphaMax:           linesearch.DefaultAlphaMax,
			Decay:              linesearch.DefaultDecay,
			AlphaMin:           linesearch.DefaultAlphaMin,
			Delta:              linesearch.DefaultDelta,
			HalfResidual:       linesearch.DefaultHalfResidual,
		},
	}
}

// Validate checks every value against the domain of its option.
func (t *Tuning) Validate() error {
	s, l := t.Solver, t.LineSearch
	checks := []struct {
		ok   bool
		key  string
		want string
	}{
		{s.ErrorThreshold > 0, "solver.error_threshold", "> 0"},
		{s.MaxIterations >= 0, "solver.max_iterations", ">= 0"},
		{s.RankThreshold >= 0 && s.RankThreshold < 1, "solver.rank_threshold", "in [0, 1)"},
		{s.SaturationThreshold >= 0, "solver.saturation_threshold", ">= 0"},
		{open01(l.SufficientDecrease), "line_search.sufficient_decrease", "in (0, 1)"},
		{open01(l.ShrinkRatio), "line_search.shrink_ratio", "in (0, 1)"},
		{open01(l.SmallAlpha), "line_search.small_alpha", "in (0, 1)"},
		{l.InitialAlpha > 0 && l.InitialAlpha <= 1, "line_search.initial_alpha", "in (0, 1]"},
		{l.AlphaMax > 0 && l.AlphaMax <= 1, "line_search.alpha_max", "in (0, 1]"},
		{l.Decay >= 0 && l.Decay < 1, "line_search.decay", "in [0, 1)"},
		{open01(l.AlphaMin), "line_search.alpha_min", "in (0, 1)"},
		{open01(l.Delta) && l.Delta < 1-l.AlphaMin, "line_search.delta", "in (0, 1 - alpha_min)"},
		{l.HalfResidual > 1, "line_search.half_residual", "> 1"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s must be %s", ErrInvalidTuning, c.key, c.want)
		}
	}
	if _, err := linesearch.Parse(l.Policy); err != nil {
		return fmt.Errorf("%w: line_search.policy: %w", ErrInvalidTuning, err)
	}
	return nil
}

func open01(v float64) bool { return v > 0 && v < 1 }

// SolverOptions returns the solver options of t, logging to logger.
func (t *Tuning) SolverOptions(logger *zap.Logger) []solver.Option {
	s := t.Solver
	return []solver.Option{
		solver.WithErrorThreshold(s.ErrorThreshold),
		solver.WithMaxIterations(s.MaxIterations),
		solver.WithRankThreshold(s.RankThreshold),
		solver.WithSaturationThreshold(s.SaturationThreshold),
		solver.WithLastIsOptional(s.LastIsOptional),
		solver.WithLogger(logger),
	}
}

// Policy builds the selected line search. Only Backtracking logs.
func (t *Tuning) Policy(logger *zap.Logger) (linesearch.Policy, error) {
	l := t.LineSearch
	kind, err := linesearch.Parse(l.Policy)
	if err != nil {
		return nil, err
	}
	switch kind {
	case linesearch.KindBacktracking:
		return linesearch.NewBacktracking(
			linesearch.WithSufficientDecrease(l.SufficientDecrease),
			linesearch.WithShrinkRatio(l.ShrinkRatio),
			linesearch.WithSmallAlpha(l.SmallAlpha),
			linesearch.WithLogger(logger),
		), nil
	case linesearch.KindFixedSequence:
		return linesearch.NewFixedSequence(
			linesearch.WithInitialAlpha(l.InitialAlpha),
			linesearch.WithAlphaMax(l.AlphaMax),
			linesearch.WithDecay(l.Decay),
		), nil
	case linesearch.KindErrorNormBased:
		return linesearch.NewErrorNormBased(
			linesearch.WithAlphaMin(l.AlphaMin),
			linesearch.WithDelta(l.Delta),
			linesearch.WithHalfResidual(l.HalfResidual),
		), nil
	default:
		return linesearch.Constant{}, nil
	}
}

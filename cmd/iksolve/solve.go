// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlik/solver"
)

type solveFlags struct {
	problem string
	verbose bool
}

// result is printed as YAML on stdout.
type result struct {
	Status        string    `yaml:"status"`
	Iterations    int       `yaml:"iterations"`
	Residual      float64   `yaml:"residual"`
	Configuration []float64 `yaml:"configuration,flow"`
}

func newSolveCmd() *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve the constraints of a problem file",
		Long: `Solve reads a problem file, drives its configuration toward the
constraints and prints the status, the iteration count, the residual norm and
the final configuration.

Examples:
  # Solve with the tuning of the file
  iksolve solve --problem arm.yaml

  # Log every iteration, with a tighter cap
  IKSOLVE_SOLVER_MAX_ITERATIONS=10 iksolve solve --problem arm.yaml --verbose`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSolve(cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}
	cmd.Flags().StringVarP(&f.problem, "problem", "p", "", "problem file (YAML)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log every iteration")
	_ = cmd.MarkFlagRequired("problem")
	return cmd
}

func runSolve(stdout, stderr io.Writer, f solveFlags) error {
	logger := newLogger(stderr, f.verbose)
	defer func() { _ = logger.Sync() }()

	data, err := os.ReadFile(f.problem)
	if err != nil {
		return fmt.Errorf("read problem: %w", err)
	}
	p, err := parseProblem(data)
	if err != nil {
		return err
	}
	s, err := p.build(logger)
	if err != nil {
		return err
	}

	status := s.solver.Solve(s.q, s.policy)
	logger.Info("solve finished",
		zap.String("problem", f.problem),
		zap.Stringer("status", status),
		zap.Int("iterations", s.solver.Iterations()))

	out := result{
		Status:        status.String(),
		Iterations:    s.solver.Iterations(),
		Residual:      math.Sqrt(s.solver.ResidualError()),
		Configuration: s.q,
	}
	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if status != solver.Success {
		return fmt.Errorf("solve ended with %s", status)
	}
	return nil
}

// newLogger logs to w: everything down to Debug in development format when
// verbose, warnings and above as JSON otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	level := zapcore.WarnLevel
	if verbose {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

// SPDX-License-Identifier: MIT

// Command iksolve runs the hierarchical solver on a problem described in YAML.
//
//	iksolve solve --problem arm.yaml [--verbose]
//
// The problem file holds the serial chain, the constraints with their
// priorities, optional explicit couplings, free variables and initial
// configuration, and a tuning section read by package config. IKSOLVE_*
// environment variables override the tuning.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "iksolve",
		Short:   "Hierarchical inverse kinematics solver",
		Version: version,
	}
	root.AddCommand(newSolveCmd())
	return root
}

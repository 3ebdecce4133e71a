// SPDX-License-Identifier: MIT

// Package cli implements the tspbb command-line interface.
//
// Commands:
//   - solve: find an optimal tour for an instance file
//   - verify: solve and cross-check against an exhaustive oracle
//   - gen: write random Euclidean instances
//
// Logs go to stderr through charmbracelet/log; results go to stdout.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "tspbb"

// Version is reported by --version; overridden at link time.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Out    io.Writer
}

// New creates a CLI writing results to out and logs to errw.
func New(out, errw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errw, level),
		Out:    out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Exact branch-and-bound solver for the symmetric TSP",
		Long: `tspbb finds a shortest closed tour through every city of a symmetric cost
matrix. It searches edge decisions depth first, propagates their consequences
and prunes with a degree lower bound, so the returned tour is proven optimal
unless a time or node limit stops the search first.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.genCommand())

	return root
}

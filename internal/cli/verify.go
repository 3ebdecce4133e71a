// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/tspbb/instance"
	"github.com/katalvlaran/tspbb/matrix"
	"github.com/katalvlaran/tspbb/oracle"
	"github.com/katalvlaran/tspbb/tsp"
)

// ErrMismatch is returned by verify when the solver and the oracle disagree.
var ErrMismatch = errors.New("verify: solver and oracle disagree")

// verifyTol is the largest accepted length difference.
const verifyTol = 1e-9

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [instance...]",
		Short: "Cross-check the solver against an exhaustive oracle",
		Long: fmt.Sprintf(`Cross-check the solver against an exhaustive oracle.

Each instance is solved by branch and bound and, concurrently, by brute force
(up to %d cities) or Held-Karp (up to %d cities). The command fails if the
optimal lengths differ.`, oracle.MaxBruteForce, oracle.MaxHeldKarp),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				if err := c.runVerify(cmd.Context(), path); err != nil {
					if !errors.Is(err, ErrMismatch) {
						return err
					}
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d instances", ErrMismatch, failed, len(args))
			}
			return nil
		},
	}

	return cmd
}

// verdict is the outcome of one cross-check.
type verdict struct {
	solverLength float64
	oracleLength float64
	oracleName   string
	solverTour   []int
	oracleTour   []int
}

// runVerify checks one instance file and prints the verdict.
func (c *CLI) runVerify(ctx context.Context, path string) error {
	file, err := instance.Load(path)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	dist, err := file.Matrix()
	if err != nil {
		return err
	}
	logger := c.Logger.With("run", uuid.NewString(), "instance", file.Name)

	v, err := crossCheck(ctx, dist)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	ok := math.Abs(v.solverLength-v.oracleLength) <= verifyTol
	fmt.Fprintf(c.Out, "%s: solver %g (%s), %s %g (%s)", file.Name,
		v.solverLength, tsp.FormatTour(v.solverTour),
		v.oracleName, v.oracleLength, tsp.FormatTour(v.oracleTour))
	if !ok {
		fmt.Fprintln(c.Out, " MISMATCH")
		logger.Error("lengths differ", "solver", v.solverLength, "oracle", v.oracleLength)
		return fmt.Errorf("%s: %w", path, ErrMismatch)
	}
	fmt.Fprintln(c.Out, " ok")
	logger.Debug("lengths agree", "length", v.solverLength)

	return nil
}

// crossCheck runs the solver and an oracle concurrently.
func crossCheck(ctx context.Context, dist matrix.Matrix) (*verdict, error) {
	var (
		v     = new(verdict)
		solve func(matrix.Matrix) ([]int, float64, error)
		n     = dist.Rows()
	)
	switch {
	case n <= oracle.MaxBruteForce:
		solve, v.oracleName = oracle.BruteForce, "brute force"
	case n <= oracle.MaxHeldKarp:
		solve, v.oracleName = oracle.HeldKarp, "held-karp"
	default:
		return nil, fmt.Errorf("%w: n=%d", oracle.ErrTooLarge, n)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := tsp.Solve(gCtx, dist, tsp.DefaultOptions())
		if err != nil {
			return fmt.Errorf("solver: %w", err)
		}
		if !res.Optimal {
			return fmt.Errorf("solver stopped early: %s", res.Stop)
		}
		v.solverTour, v.solverLength = res.Tour, res.Length
		return nil
	})
	g.Go(func() error {
		tour, length, err := solve(dist)
		if err != nil {
			return fmt.Errorf("%s: %w", v.oracleName, err)
		}
		v.oracleTour, v.oracleLength = tour, length
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return v, nil
}

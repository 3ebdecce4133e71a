// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/tspbb/instance"
	"github.com/katalvlaran/tspbb/metrics"
	"github.com/katalvlaran/tspbb/oracle"
	"github.com/katalvlaran/tspbb/tsp"
)

// solveFlags are the tuning flags shared by solve and verify.
type solveFlags struct {
	timeLimit      time.Duration
	maxNodes       int64
	upperBound     float64
	seedBruteForce bool
	noBound        bool
	progressEvery  int64
	metricsAddr    string
	check          bool
	jsonOut        bool
}

// register binds the flags to cmd.
func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "stop the search after this long (0 = no limit)")
	cmd.Flags().Int64Var(&f.maxNodes, "max-nodes", 0, "stop after creating this many nodes (0 = no limit)")
	cmd.Flags().Float64Var(&f.upperBound, "upper-bound", 0, "only report tours shorter than this (default: from file, else none)")
	cmd.Flags().BoolVar(&f.seedBruteForce, "seed-bruteforce", false, "seed the incumbent with an exhaustive search (small instances)")
	cmd.Flags().BoolVar(&f.noBound, "no-bound", false, "disable lower-bound pruning")
	cmd.Flags().Int64Var(&f.progressEvery, "progress-every", tsp.DefaultProgressEvery, "log progress every N created nodes (0 = never)")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while solving")
	cmd.Flags().BoolVar(&f.check, "check", false, "verify constraint invariants on every node")
	cmd.Flags().BoolVar(&f.jsonOut, "json", false, "print the result as JSON")
}

// options turns the flags into solver options for file f.
func (f *solveFlags) options(file *instance.File, obs tsp.Observer) tsp.Options {
	ub := f.upperBound
	if ub == 0 {
		ub = file.UpperBound
	}
	opts := []tsp.Option{
		tsp.WithUpperBound(ub),
		tsp.WithTimeLimit(f.timeLimit),
		tsp.WithMaxNodes(f.maxNodes),
		tsp.WithProgressEvery(f.progressEvery),
		tsp.WithCheckInvariants(f.check),
		tsp.WithObserver(obs),
	}
	if f.noBound {
		opts = append(opts, tsp.WithBound(tsp.NoBound))
	}

	return tsp.NewOptions(opts...)
}

// solveCommand creates the solve command.
func (c *CLI) solveCommand() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve [instance]",
		Short: "Find a shortest tour for an instance file",
		Long: `Find a shortest tour for an instance file.

The instance is read as JSON, YAML or TOML by extension, or as plain text:
the number of cities N followed by the N×N cost matrix.

The tour is printed as a city sequence starting and ending at city 0.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], flags)
		},
	}
	flags.register(cmd)

	return cmd
}

// solveReport is the printed result of one run.
type solveReport struct {
	RunID        string  `json:"run_id"`
	Instance     string  `json:"instance"`
	Cities       int     `json:"cities"`
	Tour         []int   `json:"tour,omitempty"`
	Length       float64 `json:"length"`
	Optimal      bool    `json:"optimal"`
	Stop         string  `json:"stop"`
	NodesCreated int64   `json:"nodes_created"`
	NodesPruned  int64   `json:"nodes_pruned"`
	ElapsedSec   float64 `json:"elapsed_seconds"`
	BestAtSec    float64 `json:"best_found_at_seconds"`
}

// runSolve loads the instance, solves it and prints the report.
func (c *CLI) runSolve(ctx context.Context, path string, flags solveFlags) error {
	file, err := instance.Load(path)
	if err != nil {
		return fmt.Errorf("load instance: %w", err)
	}
	report, err := c.solveFile(ctx, file, flags)
	if report != nil {
		if perr := c.printReport(report, flags.jsonOut); perr != nil {
			return perr
		}
	}
	if err == nil && ctx.Err() != nil {
		return ctx.Err()
	}

	return err
}

// solveFile runs the solver on file with logging, optional metrics and
// optional brute-force seeding.
func (c *CLI) solveFile(ctx context.Context, file *instance.File, flags solveFlags) (*solveReport, error) {
	dist, err := file.Matrix()
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	logger := c.Logger.With("run", runID)
	observers := tsp.MultiObserver{newLogObserver(c.Logger, runID)}

	if flags.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		col, err := metrics.New(reg)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		stop, err := serveMetrics(flags.metricsAddr, reg)
		if err != nil {
			return nil, fmt.Errorf("metrics: %w", err)
		}
		defer stop()
		logger.Info("serving metrics", "addr", flags.metricsAddr)
		observers = append(observers, col.Observer())
	}

	opts := flags.options(file, observers)
	if flags.seedBruteForce {
		tour, length, err := oracle.BruteForce(dist)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		logger.Info("seeded incumbent", "tour", tsp.FormatTour(tour), "length", length)
		opts.InitialTour = tour
	}

	res, err := tsp.Solve(ctx, dist, opts)
	report := &solveReport{
		RunID:        runID,
		Instance:     file.Name,
		Cities:       file.N(),
		Tour:         res.Tour,
		Length:       res.Length,
		Optimal:      res.Optimal,
		Stop:         res.Stop.String(),
		NodesCreated: res.Stats.NodesCreated,
		NodesPruned:  res.Stats.NodesPruned,
		ElapsedSec:   res.Stats.Elapsed.Seconds(),
		BestAtSec:    res.Stats.BestFoundAt.Seconds(),
	}
	if err != nil {
		if errors.Is(err, tsp.ErrOptionViolation) || res.Stats.NodesCreated == 0 {
			return nil, err
		}
		return report, err
	}

	return report, nil
}

// printReport writes the result in the chosen format.
func (c *CLI) printReport(r *solveReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(c.Out)
		enc.SetIndent("", "  ")
		if r.Tour == nil {
			// +Inf is not valid JSON.
			r.Length = 0
		}
		return enc.Encode(r)
	}
	if r.Tour == nil {
		fmt.Fprintln(c.Out, "No tour found")
	} else {
		fmt.Fprintf(c.Out, "The shortest tour is: %s\n", tsp.FormatTour(r.Tour))
		fmt.Fprintf(c.Out, "Length: %g\n", r.Length)
	}
	fmt.Fprintf(c.Out, "Optimal: %t (%s)\n", r.Optimal, r.Stop)
	fmt.Fprintf(c.Out, "Found in %.4f seconds\n", r.ElapsedSec)
	fmt.Fprintf(c.Out, "Best tour time: %.4f seconds\n", r.BestAtSec)
	fmt.Fprintf(c.Out, "Nodes created: %d\n", r.NodesCreated)
	fmt.Fprintf(c.Out, "Nodes pruned: %d\n", r.NodesPruned)

	return nil
}

// serveMetrics exposes reg on addr until the returned stop func is called.
func serveMetrics(addr string, reg *prometheus.Registry) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() { _ = srv.Serve(ln) }()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

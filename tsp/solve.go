// SPDX-License-Identifier: MIT
// Package tsp — public entry points.
//
// Solve validates the input once, prepares the engine (cost prefetch,
// neighbor and edge orderings, incumbent seeding), scores the root and runs
// the depth-first search.
//
// Outcomes:
//   - search exhausted: Result.Optimal=true, Stop=StopCompleted;
//   - limit or cancellation with an incumbent: the best tour so far,
//     Optimal=false, Stop names the limit, nil error;
//   - limit or cancellation without any tour: ErrTimeLimit, ErrNodeLimit or
//     the context error, together with the partial Stats;
//   - UpperBound seeded without InitialTour and nothing shorter found:
//     ErrNoTourBelowBound;
//   - broken invariant: ErrInvariant.
package tsp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/tspbb/matrix"
)

// Solve finds a minimum-cost closed tour over the symmetric cost matrix dist.
//
// Contracts:
//   - dist is square, n ≥ 3, finite, non-negative, zero-diagonal and
//     symmetric within 1e-9; violations fail before any search.
//   - opts come from DefaultOptions/NewOptions (a zero Options is accepted).
//
// Complexity: exponential in the worst case; per node O(n³) propagation plus
// O(n²) bound. Memory O(depth·n²).
func Solve(ctx context.Context, dist matrix.Matrix, opts Options) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validateOptions(&opts); err != nil {
		return Result{}, err
	}
	n, err := validateCostMatrix(dist)
	if err != nil {
		return Result{}, err
	}
	tab, err := newCostTable(dist)
	if err != nil {
		return Result{}, err
	}

	e := &bbEngine{
		ctx:           ctx,
		tab:           tab,
		n:             n,
		eps:           opts.Eps,
		useBound:      opts.Bound != NoBound,
		check:         opts.CheckInvariants,
		maxNodes:      opts.MaxNodes,
		obs:           opts.Observer,
		progressEvery: opts.ProgressEvery,
		nextProgress:  opts.ProgressEvery,
		bestCost:      opts.UpperBound,
	}
	if err = e.seedInitialTour(dist, opts.InitialTour); err != nil {
		return Result{}, err
	}

	e.started = time.Now()
	if opts.TimeLimit > 0 {
		e.useDeadline = true
		e.deadline = e.started.Add(opts.TimeLimit)
	}
	e.obs.OnStart(n)

	// Root: every edge undecided; scored once before the search starts.
	root := NewConstraints(n)
	e.count()
	switch {
	case ctx.Err() != nil:
		e.halt(StopCanceled, nil)
	case e.prune(root):
		e.pruned++
	default:
		e.dfs(root, 0)
	}

	res := e.result()
	e.obs.OnFinish(res)

	return res, e.finalError(res, opts.UpperBound)
}

// SolveRows is Solve over a [][]float64 cost table.
func SolveRows(ctx context.Context, rows [][]float64, opts Options) (Result, error) {
	d, err := matrix.NewDenseFromRows(rows)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNonSquare, err)
	}

	return Solve(ctx, d, opts)
}

// seedInitialTour installs a caller-provided incumbent.
func (e *bbEngine) seedInitialTour(dist matrix.Matrix, tour []int) error {
	if len(tour) == 0 {
		return nil
	}
	t, err := normalizeTour(tour, e.n)
	if err != nil {
		return fmt.Errorf("%w: InitialTour: %w", ErrOptionViolation, err)
	}
	cost, err := TourCost(dist, t)
	if err != nil {
		return fmt.Errorf("%w: InitialTour: %w", ErrOptionViolation, err)
	}
	// A seeded tour no shorter than UpperBound is dropped: the bound is stricter.
	if cost >= e.bestCost {
		return nil
	}
	e.bestTour = t
	e.bestCost = cost
	e.foundAny = true

	return nil
}

// result assembles the public Result from the engine state.
func (e *bbEngine) result() Result {
	res := Result{
		Stop:    StopCompleted,
		Optimal: !e.stopped,
		Stats: Stats{
			NodesCreated: e.created,
			NodesPruned:  e.pruned,
			Improvements: e.improvements,
			Elapsed:      time.Since(e.started),
			BestFoundAt:  e.bestAt,
		},
	}
	if e.stopped {
		res.Stop = e.stop
	}
	if e.foundAny {
		res.Tour = append([]int(nil), e.bestTour...)
		res.Length = round1e9(e.tab.tourLength(res.Tour))
	} else {
		res.Length = math.Inf(1)
	}

	return res
}

// finalError maps the termination state to the documented error.
func (e *bbEngine) finalError(res Result, ub float64) error {
	if e.err != nil {
		return e.err
	}
	if e.foundAny {
		return nil
	}
	switch res.Stop {
	case StopTimeLimit:
		return ErrTimeLimit
	case StopNodeLimit:
		return ErrNodeLimit
	case StopCanceled:
		if err := e.ctx.Err(); err != nil {
			return err
		}
		return context.Canceled
	}
	if !math.IsInf(ub, 1) {
		return ErrNoTourBelowBound
	}

	// A complete graph on n ≥ 3 cities always has a tour.
	return errors.Join(ErrInvariant, errors.New("tsp: search exhausted without a tour"))
}

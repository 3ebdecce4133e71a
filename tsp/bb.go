// SPDX-License-Identifier: MIT
// Package tsp — Branch-and-Bound over edge constraints.
//
// The search is a depth-first recursion over Constraints values. Each call:
//
//  1. If the node is a tour, extracts it and replaces the incumbent when it
//     is shorter by more than Eps.
//  2. Otherwise picks the cheapest Undecided edge from the global edge order
//     and creates two children via Propagate: edge Included, then Excluded.
//     The Excluded child is built only after the Included subtree returns,
//     so it is scored against the freshest incumbent.
//  3. A child is pruned when its Included edges contain a subtour, when its
//     degree bound is +Inf (infeasible), or when the bound reaches twice the
//     incumbent: LB ≥ 2·(best − eps). LB counts every edge twice, hence the
//     factor 2; equality cannot yield an improvement.
//
// Nodes live only in their stack frame, so memory is O(depth·n²) and depth is
// at most n(n−1)/2. Every branching decides at least one more edge, so the
// recursion terminates.
//
// Branching cursor: all edges before the chosen one are already decided in
// the parent and stay decided in both children, so each child resumes the
// scan at k+1.
//
// Limits (time, nodes, context) are inspected before every child is built.
// Time and context are checked sparsely (every 1024 node events) to keep the
// overhead negligible.
package tsp

import (
	"context"
	"fmt"
	"math"
	"time"
)

// checkMask sets the sparse deadline/context check interval (1024 events).
const checkMask = 1023

// bbEngine holds all search data and policies for one Solve call.
type bbEngine struct {
	// Configuration / policy
	ctx      context.Context
	tab      *costTable
	n        int
	eps      float64
	useBound bool
	check    bool
	maxNodes int64

	// Time budget
	useDeadline bool
	deadline    time.Time
	steps       int // sparse deadline checks counter

	// Progress reporting
	obs           Observer
	progressEvery int64
	nextProgress  int64
	started       time.Time

	// Current best incumbent (UB)
	bestTour []int
	bestCost float64
	bestAt   time.Duration
	foundAny bool

	// Counters
	created      int64
	pruned       int64
	improvements int

	// Termination
	stopped bool
	stop    StopReason
	err     error
}

// halt records the first stop reason; later calls are ignored.
func (e *bbEngine) halt(reason StopReason, err error) {
	if e.stopped {
		return
	}
	e.stopped = true
	e.stop = reason
	e.err = err
}

// shouldStop inspects node, time and context limits.
func (e *bbEngine) shouldStop() bool {
	if e.stopped {
		return true
	}
	if e.maxNodes > 0 && e.created >= e.maxNodes {
		e.halt(StopNodeLimit, nil)
		return true
	}
	e.steps++
	if e.steps&checkMask != 0 {
		return false
	}
	if e.ctx.Err() != nil {
		e.halt(StopCanceled, nil)
		return true
	}
	if e.useDeadline && time.Now().After(e.deadline) {
		e.halt(StopTimeLimit, nil)
		return true
	}

	return false
}

// snapshot captures the current counters.
func (e *bbEngine) snapshot() Snapshot {
	return Snapshot{
		N:            e.n,
		NodesCreated: e.created,
		NodesPruned:  e.pruned,
		BestLength:   e.bestCost,
		Elapsed:      time.Since(e.started),
	}
}

// count registers a created node and emits OnProgress at each milestone.
func (e *bbEngine) count() {
	e.created++
	if e.progressEvery > 0 && e.created >= e.nextProgress {
		e.obs.OnProgress(e.snapshot())
		e.nextProgress += e.progressEvery
	}
}

// prune reports whether a freshly propagated child must be discarded.
func (e *bbEngine) prune(c *Constraints) bool {
	if c.ContainsSubtour() {
		return true
	}
	lb := e.tab.lowerBound(c)
	if math.IsInf(lb, 1) {
		return true
	}

	return e.useBound && lb >= 2*(e.bestCost-e.eps)
}

// nextBranch returns the index in tab.edges of the cheapest Undecided edge
// at or after from, or -1.
func (e *bbEngine) nextBranch(c *Constraints, from int) int {
	var k int
	for k = from; k < len(e.tab.edges); k++ {
		if c.At(e.tab.edges[k].i, e.tab.edges[k].j) == Undecided {
			return k
		}
	}

	return -1
}

// consider extracts a tour node and commits it when it improves the incumbent.
func (e *bbEngine) consider(c *Constraints) {
	tour, length, err := e.tab.extract(c)
	if err != nil {
		e.halt(StopInvariant, fmt.Errorf("%w: %w", ErrInvariant, err))
		return
	}
	if length >= e.bestCost-e.eps {
		return
	}
	e.bestTour = tour
	e.bestCost = length
	e.bestAt = time.Since(e.started)
	e.foundAny = true
	e.improvements++
	e.obs.OnImprovement(Improvement{
		Snapshot: e.snapshot(),
		Tour:     append([]int(nil), tour...),
		Length:   round1e9(length),
	})
}

// dfs explores the subtree rooted at c; from is the branching cursor.
func (e *bbEngine) dfs(c *Constraints, from int) {
	if c.IsTour() {
		e.consider(c)
		return
	}
	k := e.nextBranch(c, from)
	if k < 0 {
		return // fully decided but not a tour: dead end
	}
	var (
		ed    = e.tab.edges[k]
		child *Constraints
		err   error
	)
	for _, v := range [2]State{Included, Excluded} {
		if e.shouldStop() {
			return
		}
		child, err = Propagate(c, Decision{I: ed.i, J: ed.j, State: v})
		if err != nil {
			e.halt(StopInvariant, fmt.Errorf("%w: %w", ErrInvariant, err))
			return
		}
		e.count()
		if e.check {
			if err = child.CheckInvariants(); err != nil {
				e.halt(StopInvariant, err)
				return
			}
		}
		if e.prune(child) {
			e.pruned++
			continue
		}
		e.dfs(child, k+1)
		if e.stopped {
			return
		}
	}
}

// SPDX-License-Identifier: MIT

package tsp

import (
	"errors"
	"time"
)

// Sentinel errors. Validation errors are wrapped with the offending cell or
// option; callers match them with errors.Is.
var (
	// ErrTooFewCities is returned when the cost matrix has fewer than 3 cities.
	ErrTooFewCities = errors.New("tsp: at least 3 cities are required")

	// ErrNonSquare is returned when the cost matrix is nil, empty or not square.
	ErrNonSquare = errors.New("tsp: cost matrix is not square")

	// ErrNonFinite is returned for NaN or ±Inf costs.
	ErrNonFinite = errors.New("tsp: cost is NaN or Inf")

	// ErrNegativeWeight is returned for a negative cost.
	ErrNegativeWeight = errors.New("tsp: negative cost")

	// ErrNonZeroDiagonal is returned when cost[i][i] is not zero.
	ErrNonZeroDiagonal = errors.New("tsp: diagonal cost is not zero")

	// ErrAsymmetry is returned when cost[i][j] and cost[j][i] differ beyond tolerance.
	ErrAsymmetry = errors.New("tsp: cost matrix is not symmetric")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("tsp: invalid option supplied")

	// ErrInvalidTour is returned when a tour slice is not a closed Hamiltonian
	// cycle over 0..n-1 (wrong length, out-of-range or repeated city).
	ErrInvalidTour = errors.New("tsp: invalid tour")

	// ErrInvalidDecision is returned by Propagate for an out-of-range,
	// diagonal or unknown-state edge decision.
	ErrInvalidDecision = errors.New("tsp: invalid edge decision")

	// ErrSizeMismatch is returned when constraints and cost matrix disagree on n.
	ErrSizeMismatch = errors.New("tsp: constraints and cost matrix sizes differ")

	// ErrNotATour is returned by ExtractTour on constraints that are not a
	// complete Hamiltonian cycle.
	ErrNotATour = errors.New("tsp: constraints do not describe a tour")

	// ErrInvariant marks a broken internal invariant of the search. It always
	// indicates a defect, never bad input.
	ErrInvariant = errors.New("tsp: internal invariant violated")

	// ErrNoTourBelowBound is returned when a finite UpperBound was seeded
	// without an InitialTour and the exhausted search found nothing strictly
	// shorter. The bound itself is then the optimum (or the instance admits
	// no tour below it).
	ErrNoTourBelowBound = errors.New("tsp: no tour shorter than the upper bound")

	// ErrTimeLimit is returned when the time budget ran out before any tour was found.
	ErrTimeLimit = errors.New("tsp: time limit exceeded")

	// ErrNodeLimit is returned when the node budget ran out before any tour was found.
	ErrNodeLimit = errors.New("tsp: node limit exceeded")
)

// BoundAlgo selects the pruning bound used by the search.
type BoundAlgo int

const (
	// DegreeBound is the two-cheapest-edges-per-node relaxation.
	DegreeBound BoundAlgo = iota

	// NoBound disables bound pruning; subtour pruning stays on. Testing only.
	NoBound
)

// String implements fmt.Stringer.
func (b BoundAlgo) String() string {
	switch b {
	case DegreeBound:
		return "degree"
	case NoBound:
		return "none"
	default:
		return "unknown"
	}
}

// StopReason tells why the search ended.
type StopReason int

const (
	// StopCompleted means the tree was exhausted; the result is optimal.
	StopCompleted StopReason = iota
	// StopTimeLimit means Options.TimeLimit elapsed.
	StopTimeLimit
	// StopNodeLimit means Options.MaxNodes nodes were created.
	StopNodeLimit
	// StopCanceled means the context was canceled or its deadline passed.
	StopCanceled
	// StopInvariant means the search hit ErrInvariant.
	StopInvariant
)

// String implements fmt.Stringer.
func (s StopReason) String() string {
	switch s {
	case StopCompleted:
		return "completed"
	case StopTimeLimit:
		return "time_limit"
	case StopNodeLimit:
		return "node_limit"
	case StopCanceled:
		return "canceled"
	case StopInvariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// Stats are the search counters of one Solve call.
type Stats struct {
	// NodesCreated counts the root plus both children of every branching.
	NodesCreated int64

	// NodesPruned counts children discarded by the subtour or bound test.
	NodesPruned int64

	// Improvements counts how often the incumbent was replaced.
	Improvements int

	// Elapsed is the wall-clock duration of the search.
	Elapsed time.Duration

	// BestFoundAt is the time since start at which the returned tour was found.
	// Zero when the returned tour is the seeded InitialTour.
	BestFoundAt time.Duration
}

// Result holds the outcome of Solve.
type Result struct {
	// Tour is the sequence of city indices, starting and ending at 0.
	// For n cities, len(Tour) == n+1 and Tour[0]==Tour[n]==0.
	Tour []int

	// Length is the total cost of the cycle.
	Length float64

	// Optimal is true when the search tree was exhausted.
	Optimal bool

	// Stop tells why the search ended.
	Stop StopReason

	// Stats carries the search counters.
	Stats Stats
}

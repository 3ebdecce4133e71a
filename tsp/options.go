// SPDX-License-Identifier: MIT

package tsp

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultEps is the improvement tolerance: a tour replaces the incumbent
	// only if it is shorter by more than Eps.
	DefaultEps = 1e-9

	// DefaultProgressEvery is the node-count interval between OnProgress events.
	DefaultProgressEvery = 4096

	// symTol is the structural tolerance for symmetry/diagonal checks.
	symTol = 1e-9
)

// Options configures Solve.
type Options struct {
	// UpperBound seeds the incumbent length. Only tours strictly shorter are
	// reported. 0 (the zero value) and +Inf both mean "no bound".
	UpperBound float64

	// InitialTour optionally seeds the incumbent tour (permutation of length n
	// or closed tour of length n+1). It becomes the incumbent only when its
	// cost is below UpperBound.
	InitialTour []int

	// Eps is the improvement tolerance (≥ 0).
	Eps float64

	// Bound selects the pruning bound.
	Bound BoundAlgo

	// TimeLimit bounds wall-clock search time; 0 means unlimited.
	TimeLimit time.Duration

	// MaxNodes bounds the number of created nodes; 0 means unlimited.
	MaxNodes int64

	// ProgressEvery is the node interval between OnProgress events; 0 disables them.
	ProgressEvery int64

	// Observer receives search events. Nil means NoopObserver.
	Observer Observer

	// CheckInvariants verifies every propagated node and stops the search
	// with ErrInvariant on violation.
	CheckInvariants bool

	// internal error recorded during option parsing
	err error
}

// Option configures Options via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation by Solve.
type Option func(*Options)

// DefaultOptions returns:
//   - UpperBound: +Inf, no InitialTour
//   - Eps: DefaultEps, Bound: DegreeBound
//   - no time or node limit
//   - ProgressEvery: DefaultProgressEvery, Observer: NoopObserver{}
func DefaultOptions() Options {
	return Options{
		UpperBound:    math.Inf(1),
		Eps:           DefaultEps,
		Bound:         DegreeBound,
		ProgressEvery: DefaultProgressEvery,
		Observer:      NoopObserver{},
	}
}

// NewOptions applies opts on top of DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// WithUpperBound seeds the incumbent length. ub must be ≥ 0; 0 and +Inf
// mean no bound.
func WithUpperBound(ub float64) Option {
	return func(o *Options) {
		if math.IsNaN(ub) || ub < 0 {
			o.err = fmt.Errorf("%w: UpperBound must be non-negative (%v)", ErrOptionViolation, ub)
			return
		}
		o.UpperBound = ub
	}
}

// WithInitialTour seeds the incumbent tour. The slice is copied.
func WithInitialTour(tour []int) Option {
	return func(o *Options) {
		o.InitialTour = append([]int(nil), tour...)
	}
}

// WithEps sets the improvement tolerance.
func WithEps(eps float64) Option {
	return func(o *Options) {
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
			o.err = fmt.Errorf("%w: Eps must be finite and non-negative (%v)", ErrOptionViolation, eps)
			return
		}
		o.Eps = eps
	}
}

// WithBound selects the pruning bound.
func WithBound(b BoundAlgo) Option {
	return func(o *Options) {
		if b != DegreeBound && b != NoBound {
			o.err = fmt.Errorf("%w: unknown bound %d", ErrOptionViolation, int(b))
			return
		}
		o.Bound = b
	}
}

// WithTimeLimit bounds the search time.
//
//	d > 0: stop after d
//	d == 0: explicit no limit
//	d < 0: invalid option → ErrOptionViolation
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: TimeLimit cannot be negative (%v)", ErrOptionViolation, d)
			return
		}
		o.TimeLimit = d
	}
}

// WithMaxNodes bounds the number of created nodes; 0 means unlimited.
func WithMaxNodes(n int64) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxNodes cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxNodes = n
	}
}

// WithProgressEvery sets the OnProgress interval; 0 disables progress events.
func WithProgressEvery(n int64) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: ProgressEvery cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.ProgressEvery = n
	}
}

// WithObserver registers the event sink.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		if obs != nil {
			o.Observer = obs
		}
	}
}

// WithCheckInvariants toggles per-node invariant verification.
func WithCheckInvariants(on bool) Option {
	return func(o *Options) {
		o.CheckInvariants = on
	}
}

// validateOptions checks Options set directly on the struct as well as any
// error recorded by an Option. Complexity: O(1).
func validateOptions(o *Options) error {
	if o.err != nil {
		return o.err
	}
	switch {
	case math.IsNaN(o.UpperBound) || o.UpperBound < 0:
		return fmt.Errorf("%w: UpperBound must be non-negative (%v)", ErrOptionViolation, o.UpperBound)
	case math.IsNaN(o.Eps) || math.IsInf(o.Eps, 0) || o.Eps < 0:
		return fmt.Errorf("%w: Eps must be finite and non-negative (%v)", ErrOptionViolation, o.Eps)
	case o.Bound != DegreeBound && o.Bound != NoBound:
		return fmt.Errorf("%w: unknown bound %d", ErrOptionViolation, int(o.Bound))
	case o.TimeLimit < 0:
		return fmt.Errorf("%w: TimeLimit cannot be negative (%v)", ErrOptionViolation, o.TimeLimit)
	case o.MaxNodes < 0:
		return fmt.Errorf("%w: MaxNodes cannot be negative (%d)", ErrOptionViolation, o.MaxNodes)
	case o.ProgressEvery < 0:
		return fmt.Errorf("%w: ProgressEvery cannot be negative (%d)", ErrOptionViolation, o.ProgressEvery)
	}
	if o.UpperBound == 0 {
		o.UpperBound = math.Inf(1)
	}
	if o.Observer == nil {
		o.Observer = NoopObserver{}
	}

	return nil
}

// SPDX-License-Identifier: MIT

package tsp_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/tspbb/matrix"
	"github.com/katalvlaran/tspbb/oracle"
	"github.com/katalvlaran/tspbb/tsp"
)

// SolveSuite exercises Solve end to end.
type SolveSuite struct {
	suite.Suite
	ctx context.Context
}

func (s *SolveSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *SolveSuite) solve(rows [][]float64, opts ...tsp.Option) (tsp.Result, error) {
	return tsp.SolveRows(s.ctx, rows, tsp.NewOptions(opts...))
}

// TestFourCities checks the known optimum 0-2-1-3-0 of length 73.
func (s *SolveSuite) TestFourCities() {
	res, err := s.solve(fourCities)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 73.0, res.Length)
	require.Equal(s.T(), []int{0, 2, 1, 3, 0}, res.Tour)
	require.True(s.T(), res.Optimal)
	require.Equal(s.T(), tsp.StopCompleted, res.Stop)
	require.GreaterOrEqual(s.T(), res.Stats.NodesCreated, int64(1))
	require.GreaterOrEqual(s.T(), res.Stats.Improvements, 1)
}

// TestTriangle checks the only Hamiltonian cycle on three cities.
func (s *SolveSuite) TestTriangle() {
	res, err := s.solve(triangle)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3.0, res.Length)
	require.Equal(s.T(), []int{0, 1, 2, 0}, res.Tour)
	require.True(s.T(), res.Optimal)
}

// TestMatchesOracles compares the optimum against brute force and Held–Karp.
func (s *SolveSuite) TestMatchesOracles() {
	var (
		n    int
		seed int64
	)
	for n = 3; n <= 11; n++ {
		for seed = 1; seed <= 3; seed++ {
			d := randomSym(s.T(), n, seed*97+int64(n))
			res, err := tsp.Solve(s.ctx, d, tsp.DefaultOptions())
			require.NoError(s.T(), err)
			require.True(s.T(), res.Optimal)
			require.NoError(s.T(), tsp.ValidateTour(res.Tour, n, 0))

			cost, err := tsp.TourCost(d, res.Tour)
			require.NoError(s.T(), err)
			require.Equal(s.T(), res.Length, cost, "reported length is the tour's cost")

			var want float64
			if n <= 9 {
				_, want, err = oracle.BruteForce(d)
			} else {
				_, want, err = oracle.HeldKarp(d)
			}
			require.NoError(s.T(), err)
			require.Equal(s.T(), want, res.Length, "n=%d seed=%d", n, seed)
		}
	}
}

// TestBoundDoesNotChangeOptimum checks that pruning only saves work.
func (s *SolveSuite) TestBoundDoesNotChangeOptimum() {
	var n int
	for n = 4; n <= 8; n++ {
		d := randomSym(s.T(), n, int64(7*n))
		with, err := tsp.Solve(s.ctx, d, tsp.DefaultOptions())
		require.NoError(s.T(), err)
		without, err := tsp.Solve(s.ctx, d, tsp.NewOptions(tsp.WithBound(tsp.NoBound)))
		require.NoError(s.T(), err)
		require.Equal(s.T(), with.Length, without.Length, "n=%d", n)
		require.LessOrEqual(s.T(), with.Stats.NodesCreated, without.Stats.NodesCreated)
	}
}

// TestCircleOrder checks that cities on a convex ring are visited in order.
func (s *SolveSuite) TestCircleOrder() {
	const n = 10
	d := rippledCircle(s.T(), n)
	res, err := tsp.Solve(s.ctx, d, tsp.DefaultOptions())
	require.NoError(s.T(), err)
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 0}
	require.True(s.T(), tsp.EqualToursModuloDirection(want, res.Tour), "got %v", res.Tour)
}

// TestImprovementsDecrease checks the observer sees strictly shorter tours.
func (s *SolveSuite) TestImprovementsDecrease() {
	var (
		lengths  []float64
		started  int
		finished int
	)
	obs := tsp.ObserverFuncs{
		Start:       func(int) { started++ },
		Improvement: func(imp tsp.Improvement) { lengths = append(lengths, imp.Length) },
		Finish:      func(tsp.Result) { finished++ },
	}
	d := randomSym(s.T(), 9, 2024)
	res, err := tsp.Solve(s.ctx, d, tsp.NewOptions(tsp.WithObserver(obs)))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, started)
	require.Equal(s.T(), 1, finished)
	require.Len(s.T(), lengths, res.Stats.Improvements)
	require.NotEmpty(s.T(), lengths)
	var i int
	for i = 1; i < len(lengths); i++ {
		require.Less(s.T(), lengths[i], lengths[i-1])
	}
	require.Equal(s.T(), res.Length, lengths[len(lengths)-1])
}

// TestProgressEvents checks that progress fires at the configured interval.
func (s *SolveSuite) TestProgressEvents() {
	var snaps []tsp.Snapshot
	obs := tsp.ObserverFuncs{Progress: func(sn tsp.Snapshot) { snaps = append(snaps, sn) }}
	d := randomSym(s.T(), 10, 5)
	res, err := tsp.Solve(s.ctx, d, tsp.NewOptions(tsp.WithObserver(obs), tsp.WithProgressEvery(1)))
	require.NoError(s.T(), err)
	require.Len(s.T(), snaps, int(res.Stats.NodesCreated))
	require.Equal(s.T(), int64(1), snaps[0].NodesCreated)
	require.True(s.T(), math.IsInf(snaps[0].BestLength, 1))
	require.Equal(s.T(), 10, snaps[0].N)
}

// TestDeterministic checks that two runs agree on tour and node counts.
func (s *SolveSuite) TestDeterministic() {
	d := randomSym(s.T(), 10, 77)
	a, err := tsp.Solve(s.ctx, d, tsp.DefaultOptions())
	require.NoError(s.T(), err)
	b, err := tsp.Solve(s.ctx, d.Clone(), tsp.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), a.Tour, b.Tour)
	require.Equal(s.T(), a.Length, b.Length)
	require.Equal(s.T(), a.Stats.NodesCreated, b.Stats.NodesCreated)
	require.Equal(s.T(), a.Stats.NodesPruned, b.Stats.NodesPruned)
}

// TestCheckInvariants runs with per-node verification enabled.
func (s *SolveSuite) TestCheckInvariants() {
	d := randomSym(s.T(), 8, 3)
	res, err := tsp.Solve(s.ctx, d, tsp.NewOptions(tsp.WithCheckInvariants(true)))
	require.NoError(s.T(), err)
	require.True(s.T(), res.Optimal)
}

// TestUpperBound covers seeded bounds with and without a tour.
func (s *SolveSuite) TestUpperBound() {
	res, err := s.solve(fourCities, tsp.WithUpperBound(74))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 73.0, res.Length)

	res, err = s.solve(fourCities, tsp.WithUpperBound(73))
	require.ErrorIs(s.T(), err, tsp.ErrNoTourBelowBound)
	require.True(s.T(), res.Optimal, "search exhausted")
	require.Nil(s.T(), res.Tour)

	_, err = s.solve(fourCities, tsp.WithUpperBound(10))
	require.ErrorIs(s.T(), err, tsp.ErrNoTourBelowBound)

	res, err = s.solve(fourCities, tsp.WithUpperBound(0))
	require.NoError(s.T(), err, "0 means no bound")
	require.Equal(s.T(), 73.0, res.Length)
}

// TestInitialTour seeds the incumbent with the optimum and a worse tour.
func (s *SolveSuite) TestInitialTour() {
	res, err := s.solve(fourCities, tsp.WithInitialTour([]int{0, 3, 1, 2}))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 73.0, res.Length)
	require.Equal(s.T(), []int{0, 2, 1, 3, 0}, res.Tour)
	require.Equal(s.T(), 0, res.Stats.Improvements)
	require.Equal(s.T(), time.Duration(0), res.Stats.BestFoundAt)
	require.True(s.T(), res.Optimal)

	res, err = s.solve(fourCities, tsp.WithInitialTour([]int{0, 1, 2, 3, 0}))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 73.0, res.Length)
	require.GreaterOrEqual(s.T(), res.Stats.Improvements, 1)

	_, err = s.solve(fourCities, tsp.WithInitialTour([]int{0, 1, 1, 3}))
	require.ErrorIs(s.T(), err, tsp.ErrOptionViolation)
	require.ErrorIs(s.T(), err, tsp.ErrInvalidTour)
}

// TestNodeLimit stops before the first child is created.
func (s *SolveSuite) TestNodeLimit() {
	res, err := s.solve(fourCities, tsp.WithMaxNodes(1))
	require.ErrorIs(s.T(), err, tsp.ErrNodeLimit)
	require.Equal(s.T(), tsp.StopNodeLimit, res.Stop)
	require.False(s.T(), res.Optimal)
	require.Equal(s.T(), int64(1), res.Stats.NodesCreated)

	// With an incumbent the limit is not an error.
	res, err = s.solve(fourCities, tsp.WithMaxNodes(1), tsp.WithInitialTour([]int{0, 1, 2, 3}))
	require.NoError(s.T(), err)
	require.Equal(s.T(), tsp.StopNodeLimit, res.Stop)
	require.Equal(s.T(), 93.0, res.Length)
	require.False(s.T(), res.Optimal)
}

// TestCanceled returns immediately on a context that is already done.
func (s *SolveSuite) TestCanceled() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := tsp.SolveRows(ctx, fourCities, tsp.DefaultOptions())
	require.ErrorIs(s.T(), err, context.Canceled)
	require.Equal(s.T(), tsp.StopCanceled, res.Stop)
	require.False(s.T(), res.Optimal)
}

// TestTimeLimit runs a larger instance with a budget that expires at once.
func (s *SolveSuite) TestTimeLimit() {
	d := randomSym(s.T(), 30, 11)
	res, err := tsp.Solve(s.ctx, d, tsp.NewOptions(tsp.WithTimeLimit(time.Nanosecond)))
	require.Equal(s.T(), tsp.StopTimeLimit, res.Stop)
	require.False(s.T(), res.Optimal)
	if err != nil {
		require.ErrorIs(s.T(), err, tsp.ErrTimeLimit)
		require.Nil(s.T(), res.Tour)
	} else {
		require.NoError(s.T(), tsp.ValidateTour(res.Tour, 30, 0))
	}
}

// TestNilContext treats a nil context as Background.
func (s *SolveSuite) TestNilContext() {
	//nolint:staticcheck // nil context is accepted on purpose
	res, err := tsp.SolveRows(nil, triangle, tsp.DefaultOptions())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3.0, res.Length)
}

// TestInvalidInput covers every validation failure.
func (s *SolveSuite) TestInvalidInput() {
	nan := math.NaN()
	cases := []struct {
		name string
		rows [][]float64
		want []error
	}{
		{"ragged", [][]float64{{0, 1, 2}, {1, 0}, {2, 1, 0}}, []error{tsp.ErrNonSquare}},
		{"empty", nil, []error{tsp.ErrNonSquare}},
		{"two cities", [][]float64{{0, 1}, {1, 0}}, []error{tsp.ErrTooFewCities}},
		{"nan", [][]float64{{0, 1, nan}, {1, 0, 1}, {nan, 1, 0}}, []error{tsp.ErrNonFinite, matrix.ErrNaNInf}},
		{"inf", [][]float64{{0, 1, math.Inf(1)}, {1, 0, 1}, {math.Inf(1), 1, 0}}, []error{tsp.ErrNonFinite}},
		{"negative", [][]float64{{0, -1, 1}, {-1, 0, 1}, {1, 1, 0}}, []error{tsp.ErrNegativeWeight, matrix.ErrNegative}},
		{"diagonal", [][]float64{{1, 1, 1}, {1, 0, 1}, {1, 1, 0}}, []error{tsp.ErrNonZeroDiagonal, matrix.ErrNonZeroDiagonal}},
		{"asymmetric", [][]float64{{0, 1, 2}, {1, 0, 3}, {2, 4, 0}}, []error{tsp.ErrAsymmetry, matrix.ErrAsymmetry}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.solve(tc.rows)
			for _, w := range tc.want {
				require.ErrorIs(s.T(), err, w)
			}
		})
	}

	_, err := tsp.Solve(s.ctx, nil, tsp.DefaultOptions())
	require.ErrorIs(s.T(), err, tsp.ErrNonSquare)

	// Symmetry within 1e-9 is accepted.
	res, err := s.solve([][]float64{{0, 1, 1}, {1 + 1e-12, 0, 1}, {1, 1, 0}})
	require.NoError(s.T(), err)
	require.InDelta(s.T(), 3.0, res.Length, 1e-9)
}

// TestInvalidOptions covers options recorded by With* and set directly.
func (s *SolveSuite) TestInvalidOptions() {
	for _, opt := range []tsp.Option{
		tsp.WithEps(-1),
		tsp.WithEps(math.Inf(1)),
		tsp.WithUpperBound(-5),
		tsp.WithUpperBound(math.NaN()),
		tsp.WithTimeLimit(-time.Second),
		tsp.WithMaxNodes(-1),
		tsp.WithProgressEvery(-1),
		tsp.WithBound(tsp.BoundAlgo(42)),
	} {
		_, err := s.solve(triangle, opt)
		require.ErrorIs(s.T(), err, tsp.ErrOptionViolation)
	}

	o := tsp.DefaultOptions()
	o.MaxNodes = -3
	_, err := tsp.SolveRows(s.ctx, triangle, o)
	require.ErrorIs(s.T(), err, tsp.ErrOptionViolation)

	// A zero Options value is usable.
	res, err := tsp.SolveRows(s.ctx, fourCities, tsp.Options{})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 73.0, res.Length)
}

func TestSolveSuite(t *testing.T) {
	suite.Run(t, new(SolveSuite))
}

// SPDX-License-Identifier: MIT

package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tspbb/matrix"
	"github.com/katalvlaran/tspbb/tsp"
)

// Shared fixtures.
var (
	// fourCities has the unique optimum 0-2-1-3-0 of length 73.
	fourCities = [][]float64{
		{0, 29, 20, 21},
		{29, 0, 15, 17},
		{20, 15, 0, 28},
		{21, 17, 28, 0},
	}

	// triangle is the unit triangle: every tour has length 3.
	triangle = [][]float64{
		{0, 1, 1},
		{1, 0, 1},
		{1, 1, 0},
	}
)

// dense builds a *matrix.Dense from rows or fails the test.
func dense(t testing.TB, rows [][]float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)

	return d
}

// randomSym returns a symmetric matrix with integer costs in [1, 99].
func randomSym(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	var (
		r    = rand.New(rand.NewSource(seed))
		i, j int
	)
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			require.NoError(t, d.SetSym(i, j, float64(1+r.Intn(99))))
		}
	}

	return d
}

// rippledCircle places n cities on a slightly perturbed circle and returns
// their Euclidean distances. The optimum is the circle order.
func rippledCircle(t testing.TB, n int) *matrix.Dense {
	t.Helper()
	var (
		pts  = make([][2]float64, n)
		i, j int
		th   float64
		r    float64
	)
	for i = 0; i < n; i++ {
		th = 2 * math.Pi * float64(i) / float64(n)
		r = 100 + float64((i*5)%7)
		pts[i] = [2]float64{r * math.Cos(th), r * math.Sin(th)}
	}
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			require.NoError(t, d.SetSym(i, j, math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])))
		}
	}

	return d
}

// force applies a sequence of decisions and fails the test on any error.
func force(t *testing.T, c *tsp.Constraints, ds ...tsp.Decision) *tsp.Constraints {
	t.Helper()
	var err error
	for _, d := range ds {
		c, err = tsp.Propagate(c, d)
		require.NoError(t, err, "decision %+v", d)
	}

	return c
}

// inc and exc are shorthands for Included / Excluded decisions.
func inc(i, j int) tsp.Decision { return tsp.Decision{I: i, J: j, State: tsp.Included} }
func exc(i, j int) tsp.Decision { return tsp.Decision{I: i, J: j, State: tsp.Excluded} }

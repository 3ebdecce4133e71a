// SPDX-License-Identifier: MIT
// Package tsp — cost table and the degree lower bound.
//
// The cost matrix is prefetched once into a dense buffer (w[u*n+v]) to remove
// interface overhead from the hot loops, together with two orderings:
//
//   - order[u]: every v≠u sorted by ascending w[u][v] (index tiebreak), used by
//     the bound to pick the cheapest open edges of a city;
//   - edges: every undirected edge {i<j} sorted by ascending cost (then by i,
//     then j), used by the search to pick the branching edge.
//
// Lower bound. In a tour every city has degree exactly 2. For each city we
// take the cost of its Included edges and, if fewer than 2, top up with its
// cheapest Undecided edges. Summing over all cities counts every tour edge
// twice, so
//
//	LB = Σ_i (cost of the 2 edges charged at i) ≤ 2·OPT(completion).
//
// The search therefore compares LB with twice the incumbent length. A city
// that cannot reach 2 edges (or already has more than 2 Included) makes the
// node infeasible: LB = +Inf.
package tsp

import (
	"math"
	"sort"

	"github.com/katalvlaran/tspbb/matrix"
)

// edge is an undirected city pair with i < j.
type edge struct {
	i, j int
	w    float64
}

// costTable is the immutable, prefetched view of the cost matrix shared by
// every node of one search.
type costTable struct {
	n     int
	w     []float64
	order [][]int
	edges []edge
}

// at is a fast accessor into the dense weight buffer.
func (t *costTable) at(u, v int) float64 { return t.w[u*t.n+v] }

// tourLength sums the prefetched costs along a closed tour.
func (t *costTable) tourLength(tour []int) float64 {
	var (
		sum float64
		i   int
	)
	for i = 0; i+1 < len(tour); i++ {
		sum += t.at(tour[i], tour[i+1])
	}

	return sum
}

// newCostTable prefetches dist and builds both orderings. It does not
// validate values; Solve validates before calling it.
// Complexity: O(n² log n).
func newCostTable(dist matrix.Matrix) (*costTable, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return nil, ErrNonSquare
	}
	var (
		n    = dist.Rows()
		u, v int
		x    float64
		err  error
	)
	t := &costTable{n: n, w: make([]float64, n*n)}
	for u = 0; u < n; u++ {
		for v = 0; v < n; v++ {
			if x, err = dist.At(u, v); err != nil {
				return nil, ErrNonSquare
			}
			t.w[u*n+v] = x
		}
	}
	t.buildNeighborOrder()
	t.buildEdgeOrder()

	return t, nil
}

// buildNeighborOrder produces, for each u, the list of v≠u sorted by
// ascending w[u][v] and then by v.
func (t *costTable) buildNeighborOrder() {
	var u, v int
	t.order = make([][]int, t.n)
	for u = 0; u < t.n; u++ {
		row := make([]int, 0, t.n-1)
		for v = 0; v < t.n; v++ {
			if v != u {
				row = append(row, v)
			}
		}
		uu := u
		sort.SliceStable(row, func(a, b int) bool {
			wa, wb := t.at(uu, row[a]), t.at(uu, row[b])
			if wa == wb {
				return row[a] < row[b]
			}

			return wa < wb
		})
		t.order[u] = row
	}
}

// buildEdgeOrder lists all n(n−1)/2 edges by ascending cost, ties broken by
// (i, j) so the branching order is fully deterministic.
func (t *costTable) buildEdgeOrder() {
	var i, j int
	t.edges = make([]edge, 0, t.n*(t.n-1)/2)
	for i = 0; i < t.n; i++ {
		for j = i + 1; j < t.n; j++ {
			t.edges = append(t.edges, edge{i: i, j: j, w: t.at(i, j)})
		}
	}
	sort.SliceStable(t.edges, func(a, b int) bool {
		ea, eb := t.edges[a], t.edges[b]
		if ea.w != eb.w {
			return ea.w < eb.w
		}
		if ea.i != eb.i {
			return ea.i < eb.i
		}

		return ea.j < eb.j
	})
}

// lowerBound returns the doubled degree bound of c, or +Inf if c is infeasible.
// Complexity: O(n²).
func (t *costTable) lowerBound(c *Constraints) float64 {
	var (
		inf   = math.Inf(1)
		total float64
		i, j  int
		k     int
		sum   float64
		st    State
	)
	for i = 0; i < t.n; i++ {
		sum, k = 0, 0
		for j = 0; j < t.n; j++ {
			if c.s[i*t.n+j] == Included {
				sum += t.at(i, j)
				k++
			}
		}
		if k > 2 {
			return inf
		}
		for _, j = range t.order[i] {
			if k >= 2 {
				break
			}
			st = c.s[i*t.n+j]
			if st == Undecided {
				sum += t.at(i, j)
				k++
			}
		}
		if k < 2 {
			return inf
		}
		total += sum
	}

	return total
}

// LowerBound computes the degree relaxation bound of c over dist. The value
// counts every edge from both endpoints, so it is compared against twice a
// tour length; +Inf means no tour completes c.
//
// It builds a fresh cost table per call; the search reuses one table.
// Errors: ErrNonSquare, or ErrSizeMismatch when c and dist disagree on n.
func LowerBound(c *Constraints, dist matrix.Matrix) (float64, error) {
	t, err := newCostTable(dist)
	if err != nil {
		return 0, err
	}
	if c == nil || c.n != t.n {
		return 0, ErrSizeMismatch
	}

	return t.lowerBound(c), nil
}

// SPDX-License-Identifier: MIT

package oracle

import (
	"math"

	"github.com/katalvlaran/tspbb/matrix"
)

// BruteForce enumerates every ordering of cities 1..n-1 behind city 0 and
// keeps the first shortest one. Partial paths already at least as long as
// the best tour are cut, which changes nothing about the answer.
//
// Errors: ErrBadMatrix, ErrTooFewCities, ErrTooLarge (n > MaxBruteForce).
// Complexity: O(n!) time, O(n) memory.
func BruteForce(dist matrix.Matrix) ([]int, float64, error) {
	w, n, err := load(dist, MaxBruteForce)
	if err != nil {
		return nil, 0, err
	}
	e := &enumerator{
		n:    n,
		w:    w,
		path: make([]int, n+1),
		used: make([]bool, n),
		best: math.Inf(1),
		tour: make([]int, n+1),
	}
	e.used[0] = true
	e.walk(1, 0)

	return finish(dist, e.tour)
}

// enumerator is the recursion state of BruteForce.
type enumerator struct {
	n    int
	w    []float64
	path []int
	used []bool
	best float64
	tour []int
}

// walk fills path[depth..] given the cost so far.
func (e *enumerator) walk(depth int, cost float64) {
	if cost >= e.best {
		return
	}
	prev := e.path[depth-1]
	if depth == e.n {
		total := cost + e.w[prev*e.n]
		if total < e.best {
			e.best = total
			copy(e.tour, e.path)
			e.tour[e.n] = 0
		}
		return
	}
	var v int
	for v = 1; v < e.n; v++ {
		if e.used[v] {
			continue
		}
		e.used[v] = true
		e.path[depth] = v
		e.walk(depth+1, cost+e.w[prev*e.n+v])
		e.used[v] = false
	}
}

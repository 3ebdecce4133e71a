// SPDX-License-Identifier: MIT

package tsp

import (
	"fmt"

	"github.com/katalvlaran/tspbb/matrix"
)

// extract walks the Included edges of a tour node from city 0 for exactly n
// steps and returns the closed, canonically oriented tour with its length.
// Any dead end or early return to 0 is reported as ErrNotATour.
// Complexity: O(n²).
func (t *costTable) extract(c *Constraints) ([]int, float64, error) {
	if c.n != t.n {
		return nil, 0, ErrSizeMismatch
	}
	if !c.IsTour() {
		return nil, 0, ErrNotATour
	}
	var (
		n      = t.n
		tour   = make([]int, n+1)
		seen   = make([]bool, n)
		prev   = -1
		cur    = 0
		next   int
		step   int
		length float64
	)
	tour[0] = 0
	seen[0] = true
	for step = 1; step <= n; step++ {
		next = c.nextIncluded(cur, prev)
		if next < 0 {
			return nil, 0, fmt.Errorf("%w: dead end at city %d", ErrNotATour, cur)
		}
		length += t.at(cur, next)
		tour[step] = next
		if step < n {
			if seen[next] {
				return nil, 0, fmt.Errorf("%w: city %d revisited after %d steps", ErrNotATour, next, step)
			}
			seen[next] = true
		}
		prev, cur = cur, next
	}
	if tour[n] != 0 {
		return nil, 0, fmt.Errorf("%w: walk ends at %d", ErrNotATour, tour[n])
	}
	_ = CanonicalizeOrientationInPlace(tour)

	return tour, length, nil
}

// ExtractTour converts a tour-complete Constraints into a closed city
// sequence starting and ending at 0, plus its total cost over dist.
//
// Calling it on anything but a complete Hamiltonian cycle is a programming
// error and yields ErrNotATour.
func ExtractTour(c *Constraints, dist matrix.Matrix) ([]int, float64, error) {
	t, err := newCostTable(dist)
	if err != nil {
		return nil, 0, err
	}
	if c == nil {
		return nil, 0, ErrNotATour
	}

	return t.extract(c)
}

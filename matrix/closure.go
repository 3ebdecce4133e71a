// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Complete a sparse cost table into a metric one: every missing edge gets
//     the length of the shortest path between its endpoints (metric closure).
//   - In-place Floyd–Warshall with a fixed k → i → j loop order, O(n³) time,
//     O(1) extra space.
//
// Contract:
//   - Square *Dense; a negative off-diagonal entry marks a missing edge.
//   - The diagonal is reset to 0.

package matrix

import (
	"fmt"
	"math"
)

// MetricClosure replaces every missing (negative) off-diagonal entry of d by
// the shortest-path distance between its endpoints, and shortens any present
// edge that a detour beats.
//
// Errors: ErrNilMatrix, ErrNonSquare, ErrNaNInf, or ErrDisconnected.
// Complexity: O(n³) time, O(1) extra space.
func MetricClosure(d *Dense) error {
	if d == nil {
		return validatorErrorf("MetricClosure", ErrNilMatrix)
	}
	if err := ValidateSquare(d); err != nil {
		return err
	}
	if err := ValidateFinite(d); err != nil {
		return err
	}
	var (
		n    = d.r
		i, j int
		inf  = math.Inf(1)
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			switch {
			case i == j:
				d.data[i*n+j] = 0
			case d.data[i*n+j] < 0:
				d.data[i*n+j] = inf
			}
		}
	}
	floydWarshallInPlace(d)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if math.IsInf(d.data[i*n+j], 1) {
				return fmt.Errorf("MetricClosure: no path %d→%d: %w", i, j, ErrDisconnected)
			}
		}
	}

	return nil
}

// floydWarshallInPlace runs the all-pairs shortest path relaxation.
// +Inf means "no path"; the diagonal must already be 0.
func floydWarshallInPlace(d *Dense) {
	var (
		n            = d.r
		data         = d.data
		k, i, j      int
		baseK, baseI int
		ik, kj       float64
		cand         float64
	)
	for k = 0; k < n; k++ {
		baseK = k * n
		for i = 0; i < n; i++ {
			ik = data[i*n+k]
			if math.IsInf(ik, 1) {
				continue // i cannot reach k
			}
			baseI = i * n
			for j = 0; j < n; j++ {
				kj = data[baseK+j]
				if math.IsInf(kj, 1) {
					continue
				}
				cand = ik + kj
				if cand < data[baseI+j] {
					data[baseI+j] = cand
				}
			}
		}
	}
}

// SPDX-License-Identifier: MIT

package oracle

import (
	"fmt"

	"github.com/katalvlaran/tspbb/matrix"
	"github.com/katalvlaran/tspbb/tsp"
)

// symTol matches the symmetry tolerance of tsp.Solve.
const symTol = 1e-9

// load copies dist into row-major storage after the shape checks.
func load(dist matrix.Matrix, max int) ([]float64, int, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrBadMatrix, err)
	}
	for _, check := range []func(matrix.Matrix) error{
		matrix.ValidateFinite,
		matrix.ValidateNonNegative,
		func(m matrix.Matrix) error { return matrix.ValidateSymmetric(m, symTol) },
	} {
		if err := check(dist); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrBadMatrix, err)
		}
	}
	n := dist.Rows()
	if n < 3 {
		return nil, 0, ErrTooFewCities
	}
	if n > max {
		return nil, 0, fmt.Errorf("%w: n=%d, limit %d", ErrTooLarge, n, max)
	}
	var (
		w    = make([]float64, n*n)
		u, v int
		err  error
	)
	for u = 0; u < n; u++ {
		for v = 0; v < n; v++ {
			if w[u*n+v], err = dist.At(u, v); err != nil {
				return nil, 0, fmt.Errorf("%w: %w", ErrBadMatrix, err)
			}
		}
	}

	return w, n, nil
}

// finish canonicalizes a closed tour and recomputes its stabilized length.
func finish(dist matrix.Matrix, tour []int) ([]int, float64, error) {
	if err := tsp.CanonicalizeOrientationInPlace(tour); err != nil {
		return nil, 0, err
	}
	length, err := tsp.TourCost(dist, tour)
	if err != nil {
		return nil, 0, err
	}

	return tour, length, nil
}

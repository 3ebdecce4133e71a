// SPDX-License-Identifier: MIT
// Package tsp — input validation.
//
// validateCostMatrix runs once, before any search, in a fixed order:
// shape → size → finiteness → sign → diagonal → symmetry. The first failure
// is returned as a tsp sentinel joined with the matrix sentinel that carries
// the offending cell, so both errors.Is(err, tsp.ErrX) and
// errors.Is(err, matrix.ErrY) hold.
package tsp

import (
	"fmt"

	"github.com/katalvlaran/tspbb/matrix"
)

// minCities is the smallest instance with a non-degenerate tour.
const minCities = 3

// validateCostMatrix verifies dist and returns its order n.
// Complexity: O(n²).
func validateCostMatrix(dist matrix.Matrix) (int, error) {
	if err := matrix.ValidateSquare(dist); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNonSquare, err)
	}
	n := dist.Rows()
	if n < minCities {
		return 0, fmt.Errorf("%w: got %d", ErrTooFewCities, n)
	}
	if err := matrix.ValidateFinite(dist); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNonFinite, err)
	}
	if err := matrix.ValidateNonNegative(dist); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNegativeWeight, err)
	}
	if err := matrix.ValidateZeroDiagonal(dist, symTol); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNonZeroDiagonal, err)
	}
	if err := matrix.ValidateSymmetric(dist, symTol); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrAsymmetry, err)
	}

	return n, nil
}

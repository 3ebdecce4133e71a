// SPDX-License-Identifier: MIT

package oracle

import "errors"

var (
	// ErrTooFewCities is returned when the matrix has fewer than 3 cities.
	ErrTooFewCities = errors.New("oracle: at least 3 cities are required")

	// ErrTooLarge is returned when n exceeds the solver's size cap.
	ErrTooLarge = errors.New("oracle: instance too large")

	// ErrBadMatrix is returned when the matrix is nil, not square, asymmetric,
	// negative or non-finite.
	ErrBadMatrix = errors.New("oracle: invalid cost matrix")
)

const (
	// MaxBruteForce caps BruteForce: (n−1)! orderings are enumerated.
	MaxBruteForce = 11

	// MaxHeldKarp caps HeldKarp: the table holds n·2ⁿ float64 entries.
	MaxHeldKarp = 18
)

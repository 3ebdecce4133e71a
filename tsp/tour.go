// SPDX-License-Identifier: MIT
// Package tsp — tour utilities.
//
// Compact helpers that operate on tour structure (index sequences):
//   - ValidateTour: enforce closed Hamiltonian-cycle invariants.
//   - MakeTourFromPermutation: close a permutation into a tour rotated to a start.
//   - CanonicalizeOrientationInPlace: canonical direction under a fixed start.
//   - TourCost: sum of edge costs along a closed tour.
//   - FormatTour: "0-2-1-3-0" rendering used by logs and the CLI.
//   - EqualToursModuloDirection: same cycle regardless of orientation.
//
// No logging and no panics on user input; failures are sentinel errors from types.go.
package tsp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/tspbb/matrix"
)

const roundScale = 1e9

// round1e9 stabilizes a cost to 1e−9 so equal tours compare equal across
// summation orders.
func round1e9(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}

	return math.Round(x*roundScale) / roundScale
}

// ValidateTour enforces:
//
//	len(tour) == n+1, tour[0]==tour[n]==start,
//	each city v∈[0..n-1] appears exactly once in positions [0..n-1].
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int, start int) error {
	if n <= 0 || len(tour) != n+1 {
		return fmt.Errorf("%w: length %d for n=%d", ErrInvalidTour, len(tour), n)
	}
	if start < 0 || start >= n || tour[0] != start || tour[n] != start {
		return fmt.Errorf("%w: must start and end at %d", ErrInvalidTour, start)
	}
	var (
		seen = make([]bool, n)
		i, v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n || seen[v] {
			return fmt.Errorf("%w: city %d at position %d", ErrInvalidTour, v, i)
		}
		seen[v] = true
	}

	return nil
}

// MakeTourFromPermutation builds a closed tour from a permutation of
// {0..n-1}, rotated so that it starts and ends at start.
// Complexity: O(n).
func MakeTourFromPermutation(perm []int, start int) ([]int, error) {
	var (
		n     = len(perm)
		i     int
		pivot = -1
		seen  = make([]bool, n)
	)
	if n == 0 {
		return nil, ErrInvalidTour
	}
	for i = 0; i < n; i++ {
		if perm[i] < 0 || perm[i] >= n || seen[perm[i]] {
			return nil, fmt.Errorf("%w: not a permutation at position %d", ErrInvalidTour, i)
		}
		seen[perm[i]] = true
		if perm[i] == start {
			pivot = i
		}
	}
	if pivot < 0 {
		return nil, fmt.Errorf("%w: start %d not present", ErrInvalidTour, start)
	}
	tour := make([]int, n+1)
	for i = 0; i < n; i++ {
		tour[i] = perm[(pivot+i)%n]
	}
	tour[n] = start

	return tour, nil
}

// normalizeTour accepts either a permutation (len n) or a closed tour
// (len n+1) and returns a validated closed tour starting at 0 in canonical
// orientation.
func normalizeTour(tour []int, n int) ([]int, error) {
	var perm []int
	switch len(tour) {
	case n:
		perm = tour
	case n + 1:
		if tour[0] != tour[n] {
			return nil, fmt.Errorf("%w: closed tour must end where it starts", ErrInvalidTour)
		}
		perm = tour[:n]
	default:
		return nil, fmt.Errorf("%w: length %d for n=%d", ErrInvalidTour, len(tour), n)
	}
	out, err := MakeTourFromPermutation(perm, 0)
	if err != nil {
		return nil, err
	}
	_ = CanonicalizeOrientationInPlace(out)

	return out, nil
}

// CanonicalizeOrientationInPlace fixes the tour direction under a fixed
// start: if tour[1] > tour[n-1] the interior [1..n-1] is reversed.
// Requires a closed tour (len ≥ 3, tour[0]==tour[n]).
// Complexity: O(n) time, O(1) space.
func CanonicalizeOrientationInPlace(tour []int) error {
	if len(tour) < 3 {
		return ErrInvalidTour
	}
	n := len(tour) - 1
	if tour[0] != tour[n] {
		return ErrInvalidTour
	}
	if tour[1] > tour[n-1] {
		reverseArcInPlace(tour, 1, n-1)
	}

	return nil
}

// reverseArcInPlace reverses the inclusive segment tour[i..k].
func reverseArcInPlace(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// TourCost sums dist along consecutive pairs of a closed tour and returns
// the stabilized total.
// Errors: ErrInvalidTour for out-of-range cities or a too-short slice.
// Complexity: O(len(tour)).
func TourCost(dist matrix.Matrix, tour []int) (float64, error) {
	if dist == nil || len(tour) < 2 {
		return 0, ErrInvalidTour
	}
	var (
		sum float64
		w   float64
		err error
		i   int
	)
	for i = 0; i+1 < len(tour); i++ {
		if w, err = dist.At(tour[i], tour[i+1]); err != nil {
			return 0, fmt.Errorf("%w: edge (%d,%d): %v", ErrInvalidTour, tour[i], tour[i+1], err)
		}
		sum += w
	}

	return round1e9(sum), nil
}

// FormatTour renders a tour as "0-2-1-3-0".
func FormatTour(tour []int) string {
	parts := make([]string, len(tour))
	var i int
	for i = range tour {
		parts[i] = strconv.Itoa(tour[i])
	}

	return strings.Join(parts, "-")
}

// EqualToursModuloDirection reports whether two closed tours with the same
// start describe the same cycle, in either direction.
// Complexity: O(n).
func EqualToursModuloDirection(a, b []int) bool {
	if len(a) != len(b) || len(a) < 3 || a[0] != b[0] {
		return false
	}
	var (
		n       = len(a) - 1
		i       int
		forward = true
		reverse = true
	)
	for i = 0; i <= n; i++ {
		if a[i] != b[i] {
			forward = false
		}
		if a[i] != b[n-i] {
			reverse = false
		}
	}

	return forward || reverse
}

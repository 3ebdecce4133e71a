// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide a single, canonical source of truth for cost-table validation.
//   - Each validator wraps a plain sentinel with its tag and, where relevant,
//     the offending cell, so call sites can report precisely and still match
//     with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure and deterministic; they scan in fixed i→j order and
//     stop at the first violation.
//   - Symmetry runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// cellErrorf wraps an underlying error with the validator tag and the cell.
func cellErrorf(tag string, i, j int, v float64, err error) error {
	return fmt.Errorf("%s: a[%d][%d]=%g: %w", tag, i, j, v, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil, non-empty and square.
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() <= 0 {
		return validatorErrorf("ValidateSquare", ErrInvalidDimensions)
	}
	if m.Rows() != m.Cols() {
		return fmt.Errorf("ValidateSquare: %dx%d: %w", m.Rows(), m.Cols(), ErrNonSquare)
	}

	return nil
}

// ValidateFinite rejects NaN and ±Inf anywhere in m.
// Assumes m is non-nil. Complexity: O(r*c).
func ValidateFinite(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateFinite", err)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return cellErrorf("ValidateFinite", i, j, v, ErrNaNInf)
			}
		}
	}

	return nil
}

// ValidateNonNegative rejects any entry below zero.
// Assumes m is non-nil. Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return validatorErrorf("ValidateNonNegative", err)
			}
			if v < 0 {
				return cellErrorf("ValidateNonNegative", i, j, v, ErrNegative)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal requires |a_ii| ≤ tol for every i.
// Assumes m is square. Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, tol float64) error {
	var (
		i   int
		v   float64
		err error
	)
	for i = 0; i < m.Rows(); i++ {
		if v, err = m.At(i, i); err != nil {
			return validatorErrorf("ValidateZeroDiagonal", err)
		}
		if math.Abs(v) > math.Abs(tol) {
			return cellErrorf("ValidateZeroDiagonal", i, i, v, ErrNonZeroDiagonal)
		}
	}

	return nil
}

// ValidateSymmetric requires |a_ij − a_ji| ≤ tol for all i<j.
// Returns ErrNilMatrix/ErrNonSquare on structural issues, ErrNaNInf on a bad
// tolerance and ErrAsymmetry on violation.
// Complexity: O(n²) where n = Rows(m). Space: O(1).
func ValidateSymmetric(m Matrix, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	var (
		n        = m.Rows()
		i, j     int
		aij, aji float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, _ = m.At(i, j) // in range after ValidateSquare
			aji, _ = m.At(j, i)
			if math.Abs(aij-aji) > tol {
				return cellErrorf("ValidateSymmetric", i, j, aij, ErrAsymmetry)
			}
		}
	}

	return nil
}

// SPDX-License-Identifier: MIT

// Package matrix provides the square cost-table abstraction consumed by the
// TSP solver.
//
// The package offers:
//
//   - Matrix: a minimal read/write interface over a two-dimensional float64
//     table (Rows, Cols, At, Set, Clone).
//   - Dense: a row-major implementation backed by a single flat slice.
//   - Validators: shape, finiteness, sign, zero-diagonal and symmetry checks
//     that return package sentinels wrapped with the offending cell.
//   - MetricClosure: in-place Floyd–Warshall that fills missing edges of a
//     sparse table with shortest-path lengths.
//
// Matrices are best for dense or small graphs where O(n²) memory is
// acceptable, which is exactly the regime an exact TSP search lives in.
package matrix

// SPDX-License-Identifier: MIT

// Package oracle holds small exact TSP solvers used to cross-check the
// branch-and-bound search in tsp.
//
//   - BruteForce enumerates every tour through city 0. O(n!) time, O(n) memory.
//   - HeldKarp is the subset dynamic program. O(n²·2ⁿ) time, O(n·2ⁿ) memory.
//
// Both accept the same symmetric cost matrices as tsp.Solve and return a
// closed tour starting at 0 in canonical orientation, with its length
// stabilized to 1e-9. They refuse instances beyond MaxBruteForce and
// MaxHeldKarp cities instead of running for hours.
package oracle

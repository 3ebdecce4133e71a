// SPDX-License-Identifier: MIT

// Package tsp provides an exact branch-and-bound solver for the symmetric
// Travelling Salesman Problem.
//
// A search node is a Constraints value: an n×n symmetric table in which every
// undirected edge is Included, Excluded or Undecided. The solver repeatedly
// fixes the cheapest Undecided edge both ways (Included first), propagates
// the consequences to a fixpoint, and discards nodes that:
//
//   - contain a cycle over fewer than n cities (subtour);
//   - cannot give every city degree 2 (infeasible);
//   - have a degree lower bound not below twice the incumbent length.
//
// Propagation (Propagate, Closure) applies three rules until nothing changes:
//
//   - saturation: a city with two Included edges has every other edge Excluded;
//   - subtour prevention: an Undecided edge that would close a short cycle is Excluded;
//   - forced completion: a city with exactly two non-excluded edges has both Included.
//
// Entry points:
//
//   - Solve(ctx, dist, opts) on any matrix.Matrix;
//   - SolveRows(ctx, rows, opts) on a [][]float64.
//
// Inputs are validated once (square, n ≥ 3, finite, non-negative, zero
// diagonal, symmetric within 1e-9). Results report a closed tour starting and
// ending at city 0, its length stabilized to 1e-9, whether it is proven
// optimal, and why the search stopped. Time, node and context limits return
// the best tour found so far.
//
// Observers (Observer, ObserverFuncs, MultiObserver) receive start, progress,
// improvement and finish events synchronously from the search goroutine.
//
// Complexity: exponential in the worst case. Each node costs O(n³) for
// propagation and O(n²) for the bound; memory is O(depth·n²).
package tsp

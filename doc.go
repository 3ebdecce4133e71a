// SPDX-License-Identifier: MIT

// Package tspbb is an exact solver for the symmetric Travelling Salesman
// Problem built on branch-and-bound over ternary edge constraints.
//
// Layout:
//
//	tsp/       constraint model, propagation, degree bound, DFS search, Solve
//	matrix/    dense cost tables, validators, metric closure
//	oracle/    brute force and Held–Karp reference solvers
//	instance/  instance files (JSON, YAML, TOML, text) and generators
//	metrics/   Prometheus collector fed by the search observer
//	cmd/tspbb  command-line front end (solve, verify, gen)
//
// Quick start:
//
//	res, err := tsp.SolveRows(ctx, [][]float64{
//		{0, 29, 20, 21},
//		{29, 0, 15, 17},
//		{20, 15, 0, 28},
//		{21, 17, 28, 0},
//	}, tsp.DefaultOptions())
//	// res.Tour == [0 2 1 3 0], res.Length == 73, res.Optimal == true
//
// The search is single-threaded and deterministic: equal inputs and options
// give identical tours and node counts.
package tspbb

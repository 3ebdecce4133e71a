// SPDX-License-Identifier: MIT

package oracle

import (
	"math"

	"github.com/katalvlaran/tspbb/matrix"
)

// HeldKarp solves the instance exactly with the Held–Karp dynamic program.
//
// dp[mask][j] is the cheapest path that starts at 0, visits exactly the
// cities in mask (mask always contains 0) and ends at j. The tour is closed
// by returning from the best j to 0 and rebuilt from the parent table.
//
// Errors: ErrBadMatrix, ErrTooFewCities, ErrTooLarge (n > MaxHeldKarp).
// Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) memory.
func HeldKarp(dist matrix.Matrix) ([]int, float64, error) {
	w, n, err := load(dist, MaxHeldKarp)
	if err != nil {
		return nil, 0, err
	}
	var (
		full     = 1<<n - 1
		size     = 1 << n
		dp       = make([]float64, size*n)
		parent   = make([]int, size*n)
		mask     int
		prevMask int
		j, k     int
		cand     float64
		inf      = math.Inf(1)
	)
	for k = range dp {
		dp[k] = inf
		parent[k] = -1
	}
	dp[1*n+0] = 0

	for mask = 1; mask <= full; mask += 2 { // odd masks contain city 0
		for j = 1; j < n; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			prevMask = mask ^ (1 << j)
			for k = 0; k < n; k++ {
				if prevMask&(1<<k) == 0 || math.IsInf(dp[prevMask*n+k], 1) {
					continue
				}
				cand = dp[prevMask*n+k] + w[k*n+j]
				if cand < dp[mask*n+j] {
					dp[mask*n+j] = cand
					parent[mask*n+j] = k
				}
			}
		}
	}

	var (
		best = inf
		last = -1
	)
	for j = 1; j < n; j++ {
		cand = dp[full*n+j] + w[j*n]
		if cand < best {
			best = cand
			last = j
		}
	}

	tour := make([]int, n+1)
	mask, j = full, last
	for k = n - 1; k >= 1; k-- {
		tour[k] = j
		prevMask = parent[mask*n+j]
		mask ^= 1 << j
		j = prevMask
	}

	return finish(dist, tour)
}

// SPDX-License-Identifier: MIT

package instance

import (
	"fmt"
)

// GridSize bounds generated coordinates to [0, GridSize).
const GridSize = 1000

// Generate returns a random Euclidean instance with n cities on an integer
// grid. The same (n, seed) always yields the same File.
//
// Errors: ErrInvalidInstance for n < 3.
// Complexity: O(n).
func Generate(n int, seed int64) (*File, error) {
	if n < 3 {
		return nil, fmt.Errorf("%w: need at least 3 cities, got %d", ErrInvalidInstance, n)
	}
	var (
		r = rngFromSeed(seed)
		f = &File{
			Name:    fmt.Sprintf("rand%d-s%d", n, seed),
			Comment: fmt.Sprintf("%d random cities on a %dx%d grid, seed %d", n, GridSize, GridSize, seed),
			Points:  make([][2]float64, n),
		}
		i int
	)
	for i = 0; i < n; i++ {
		f.Points[i] = [2]float64{float64(r.Intn(GridSize)), float64(r.Intn(GridSize))}
	}

	return f, nil
}

// SPDX-License-Identifier: MIT

package tsp

// ContainsSubtour reports whether the Included edges form a cycle that visits
// fewer than n cities. Each component is walked once from its first unvisited
// city along the unique next Included edge.
// Complexity: O(n²).
func (c *Constraints) ContainsSubtour() bool {
	var (
		visited = make([]bool, c.n)
		start   int
		prev    int
		cur     int
		next    int
		nodes   int
	)
	for start = 0; start < c.n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		prev, cur, nodes = -1, start, 1
		for {
			next = c.nextIncluded(cur, prev)
			if next < 0 {
				break // open path
			}
			if next == start {
				if nodes < c.n {
					return true
				}
				break
			}
			if visited[next] {
				break // ran into a path walked from an earlier start
			}
			visited[next] = true
			nodes++
			prev, cur = cur, next
		}
	}

	return false
}

// IsTour reports whether every row has exactly 2 Included and n−2 Excluded
// entries (diagonal counted), i.e. no Undecided edge is left and every city
// has degree 2. Combined with ContainsSubtour()==false this is a single
// Hamiltonian cycle.
// Complexity: O(n²).
func (c *Constraints) IsTour() bool {
	if c.n < 3 {
		return false
	}
	var i int
	for i = 0; i < c.n; i++ {
		if c.Count(i, Included) != 2 || c.Count(i, Excluded) != c.n-2 {
			return false
		}
	}

	return true
}

// SPDX-License-Identifier: MIT
// Package tsp — ternary edge-constraint model.
//
// Every search node owns one Constraints value: an n×n table whose entries
// say, per undirected edge, whether the tour must use it (Included), must not
// use it (Excluded) or has not been decided yet (Undecided).
//
// Invariants maintained by construction:
//   - c[i][j] == c[j][i] (set always writes both cells);
//   - c[i][i] == Excluded;
//   - after Propagate reaches its fixpoint, every row has at most 2 Included
//     entries, and a row with exactly 2 has no Undecided entry left.
//
// Storage is a flat []State of length n*n so cloning a node is one copy.
package tsp

import (
	"fmt"
	"strings"
)

// State is the decision recorded for one edge.
type State int8

const (
	// Excluded marks an edge the tour must not use. Zero value on purpose:
	// the diagonal and freshly allocated cells are Excluded.
	Excluded State = 0
	// Included marks an edge the tour must use.
	Included State = 1
	// Undecided marks an edge still open for branching.
	Undecided State = 2
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Excluded:
		return "excluded"
	case Included:
		return "included"
	case Undecided:
		return "undecided"
	default:
		return fmt.Sprintf("State(%d)", int8(s))
	}
}

// Decision forces the edge {I, J} to State.
type Decision struct {
	I, J  int
	State State
}

// Constraints is the ternary edge-state matrix of one search node.
type Constraints struct {
	n int
	s []State // row-major, len n*n
}

// NewConstraints returns the root constraints for n cities: every
// off-diagonal edge Undecided. A negative n is treated as 0.
// Complexity: O(n²).
func NewConstraints(n int) *Constraints {
	if n < 0 {
		n = 0
	}
	c := &Constraints{n: n, s: make([]State, n*n)}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				c.s[i*n+j] = Undecided
			}
		}
	}

	return c
}

// N returns the number of cities.
func (c *Constraints) N() int { return c.n }

// At returns the state of edge {i, j}. Out-of-range indices read as Excluded.
func (c *Constraints) At(i, j int) State {
	if i < 0 || j < 0 || i >= c.n || j >= c.n {
		return Excluded
	}

	return c.s[i*c.n+j]
}

// set writes v to both (i,j) and (j,i).
func (c *Constraints) set(i, j int, v State) {
	c.s[i*c.n+j] = v
	c.s[j*c.n+i] = v
}

// Clone returns an independent copy.
// Complexity: O(n²).
func (c *Constraints) Clone() *Constraints {
	cp := &Constraints{n: c.n, s: make([]State, len(c.s))}
	copy(cp.s, c.s)

	return cp
}

// Count returns how many entries of row i hold v (diagonal included).
// Complexity: O(n).
func (c *Constraints) Count(i int, v State) int {
	var (
		k   int
		cnt int
		row = c.s[i*c.n : (i+1)*c.n]
	)
	for k = 0; k < c.n; k++ {
		if row[k] == v {
			cnt++
		}
	}

	return cnt
}

// Undecided returns the number of undecided undirected edges.
// Complexity: O(n²).
func (c *Constraints) Undecided() int {
	var (
		i, j int
		cnt  int
	)
	for i = 0; i < c.n; i++ {
		for j = i + 1; j < c.n; j++ {
			if c.s[i*c.n+j] == Undecided {
				cnt++
			}
		}
	}

	return cnt
}

// Equal reports whether both tables have the same size and entries.
func (c *Constraints) Equal(o *Constraints) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.n != o.n {
		return false
	}
	var k int
	for k = range c.s {
		if c.s[k] != o.s[k] {
			return false
		}
	}

	return true
}

// nextIncluded returns the first city k != prev joined to cur by an Included
// edge, or -1 when there is none.
func (c *Constraints) nextIncluded(cur, prev int) int {
	var (
		k   int
		row = c.s[cur*c.n : (cur+1)*c.n]
	)
	for k = 0; k < c.n; k++ {
		if k != prev && row[k] == Included {
			return k
		}
	}

	return -1
}

// CheckInvariants verifies symmetry, the Excluded diagonal, the degree bound
// and row saturation. A violation is wrapped in ErrInvariant.
// Complexity: O(n²).
func (c *Constraints) CheckInvariants() error {
	var (
		i, j int
		inc  int
		und  int
		v    State
	)
	for i = 0; i < c.n; i++ {
		if c.s[i*c.n+i] != Excluded {
			return fmt.Errorf("%w: diagonal (%d,%d) is %v", ErrInvariant, i, i, c.s[i*c.n+i])
		}
		inc, und = 0, 0
		for j = 0; j < c.n; j++ {
			v = c.s[i*c.n+j]
			if v != c.s[j*c.n+i] {
				return fmt.Errorf("%w: asymmetric edge (%d,%d): %v vs %v", ErrInvariant, i, j, v, c.s[j*c.n+i])
			}
			switch v {
			case Included:
				inc++
			case Undecided:
				und++
			case Excluded:
			default:
				return fmt.Errorf("%w: unknown state %d at (%d,%d)", ErrInvariant, int8(v), i, j)
			}
		}
		if inc > 2 {
			return fmt.Errorf("%w: row %d has %d included edges", ErrInvariant, i, inc)
		}
		if inc == 2 && und > 0 {
			return fmt.Errorf("%w: row %d is saturated but has %d undecided edges", ErrInvariant, i, und)
		}
	}

	return nil
}

// String renders the table one row per line: 'x' Excluded, '1' Included,
// '.' Undecided, '\' on the diagonal.
func (c *Constraints) String() string {
	var (
		sb   strings.Builder
		i, j int
	)
	for i = 0; i < c.n; i++ {
		for j = 0; j < c.n; j++ {
			switch {
			case i == j:
				sb.WriteByte('\\')
			case c.s[i*c.n+j] == Included:
				sb.WriteByte('1')
			case c.s[i*c.n+j] == Undecided:
				sb.WriteByte('.')
			default:
				sb.WriteByte('x')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

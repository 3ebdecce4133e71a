// SPDX-License-Identifier: MIT
// Package tsp — constraint propagation.
//
// Propagate derives a child node: it copies the parent, forces one edge and
// then applies three rules until a full pass changes nothing:
//
//  1. Saturation: a row with 2 Included entries excludes all its Undecided ones.
//  2. Subtour prevention: an Undecided edge whose inclusion would close a
//     cycle shorter than n through Included edges becomes Excluded.
//  3. Forced completion: a row with exactly n−2 Excluded entries (diagonal
//     counted) has only two candidates left, so its Undecided entries become
//     Included. An entry is skipped while its other endpoint is saturated or
//     while it would close a short cycle; the next pass then excludes it via
//     rules 1–2 and the node surfaces as infeasible (+Inf bound).
//
// Every change moves an entry out of Undecided, so the loop runs at most
// n(n−1)/2 passes.
//
// Complexity: O(n³) per pass (rule 2 walks an O(n) chain per open edge, each
// step scanning a row).
package tsp

import "fmt"

// Propagate returns a new Constraints: parent plus decision d, closed under
// the propagation rules. parent is not modified.
//
// Errors: ErrInvalidDecision when d names an out-of-range or diagonal edge,
// a state other than Included/Excluded, or contradicts an edge already decided
// the other way.
func Propagate(parent *Constraints, d Decision) (*Constraints, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: nil parent", ErrInvalidDecision)
	}
	n := parent.n
	if d.I < 0 || d.J < 0 || d.I >= n || d.J >= n || d.I == d.J {
		return nil, fmt.Errorf("%w: edge (%d,%d) for n=%d", ErrInvalidDecision, d.I, d.J, n)
	}
	if d.State != Included && d.State != Excluded {
		return nil, fmt.Errorf("%w: cannot force %v", ErrInvalidDecision, d.State)
	}
	if cur := parent.At(d.I, d.J); cur != Undecided && cur != d.State {
		return nil, fmt.Errorf("%w: edge (%d,%d) already %v", ErrInvalidDecision, d.I, d.J, cur)
	}

	c := parent.Clone()
	c.set(d.I, d.J, d.State)
	c.settle()

	return c, nil
}

// Closure returns a copy of c closed under the propagation rules without
// forcing any new edge. On a fixpoint it returns an identical copy.
func Closure(c *Constraints) *Constraints {
	cp := c.Clone()
	cp.settle()

	return cp
}

// settle applies the three rules in place until nothing changes.
func (c *Constraints) settle() {
	var changed = true
	for changed {
		changed = c.saturate()
		if c.preventSubtours() {
			changed = true
		}
		if c.completeRows() {
			changed = true
		}
	}
}

// saturate excludes the open edges of every row that already has 2 Included.
func (c *Constraints) saturate() bool {
	var (
		i, j    int
		changed bool
	)
	for i = 0; i < c.n; i++ {
		if c.Count(i, Included) < 2 {
			continue
		}
		for j = 0; j < c.n; j++ {
			if c.s[i*c.n+j] == Undecided {
				c.set(i, j, Excluded)
				changed = true
			}
		}
	}

	return changed
}

// preventSubtours excludes every open edge that would close a short cycle.
func (c *Constraints) preventSubtours() bool {
	var (
		i, j    int
		changed bool
	)
	for i = 0; i < c.n; i++ {
		for j = i + 1; j < c.n; j++ {
			if c.s[i*c.n+j] == Undecided && c.closesSubtour(i, j) {
				c.set(i, j, Excluded)
				changed = true
			}
		}
	}

	return changed
}

// completeRows includes the remaining open edges of rows left with exactly
// two non-excluded candidates.
func (c *Constraints) completeRows() bool {
	var (
		i, j    int
		changed bool
	)
	for i = 0; i < c.n; i++ {
		if c.Count(i, Excluded) != c.n-2 {
			continue
		}
		for j = 0; j < c.n; j++ {
			if c.s[i*c.n+j] != Undecided {
				continue
			}
			if c.Count(j, Included) >= 2 || c.closesSubtour(i, j) {
				continue // left for the next pass to exclude
			}
			c.set(i, j, Included)
			changed = true
		}
	}

	return changed
}

// closesSubtour reports whether including {i, j} would close a cycle of fewer
// than n cities. It follows the Included chain from j (arriving from i) and
// checks whether it returns to i early.
func (c *Constraints) closesSubtour(i, j int) bool {
	var (
		prev  = i
		cur   = j
		nodes = 1
		next  int
	)
	for nodes <= c.n {
		next = c.nextIncluded(cur, prev)
		if next < 0 {
			return false
		}
		nodes++
		if next == i {
			return nodes < c.n
		}
		prev, cur = cur, next
	}

	return false
}

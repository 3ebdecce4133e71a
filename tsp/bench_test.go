// SPDX-License-Identifier: MIT

package tsp_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/tspbb/tsp"
)

// BenchmarkSolve_Random12 measures an exact solve on random integer costs.
func BenchmarkSolve_Random12(b *testing.B) {
	d := randomSym(b, 12, 12)
	opts := tsp.DefaultOptions()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	var it int
	for it = 0; it < b.N; it++ {
		if _, err := tsp.Solve(ctx, d, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSolve_Circle14 measures a geometric instance where the bound is tight.
func BenchmarkSolve_Circle14(b *testing.B) {
	d := rippledCircle(b, 14)
	opts := tsp.DefaultOptions()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	var it int
	for it = 0; it < b.N; it++ {
		if _, err := tsp.Solve(ctx, d, opts); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPropagate measures one child derivation on a mid-size root.
func BenchmarkPropagate(b *testing.B) {
	root := tsp.NewConstraints(40)
	d := tsp.Decision{I: 3, J: 17, State: tsp.Included}

	b.ReportAllocs()
	b.ResetTimer()
	var it int
	for it = 0; it < b.N; it++ {
		if _, err := tsp.Propagate(root, d); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkLowerBound measures the degree bound including table setup.
func BenchmarkLowerBound(b *testing.B) {
	d := randomSym(b, 40, 40)
	root := tsp.NewConstraints(40)

	b.ReportAllocs()
	b.ResetTimer()
	var it int
	for it = 0; it < b.N; it++ {
		if _, err := tsp.LowerBound(root, d); err != nil {
			b.Fatal(err)
		}
	}
}

// SPDX-License-Identifier: MIT
// Package tsp — search progress hooks.
//
// The solver never prints. It reports through an Observer, invoked
// synchronously from the search goroutine:
//
//	OnStart        once, before the root is scored
//	OnProgress     every Options.ProgressEvery created nodes
//	OnImprovement  each time the incumbent tour is replaced
//	OnFinish       once, with the final Result
//
// Observers must be quick: the search is paused while they run.
package tsp

import "time"

// Snapshot is a point-in-time view of the search counters.
type Snapshot struct {
	N            int
	NodesCreated int64
	NodesPruned  int64
	BestLength   float64 // +Inf until a tour is known
	Elapsed      time.Duration
}

// Improvement describes a new incumbent tour.
type Improvement struct {
	Snapshot

	// Tour is a private copy; observers may keep it.
	Tour   []int
	Length float64
}

// Observer receives search events.
type Observer interface {
	OnStart(n int)
	OnProgress(s Snapshot)
	OnImprovement(imp Improvement)
	OnFinish(res Result)
}

// NoopObserver ignores every event.
type NoopObserver struct{}

func (NoopObserver) OnStart(int)               {}
func (NoopObserver) OnProgress(Snapshot)       {}
func (NoopObserver) OnImprovement(Improvement) {}
func (NoopObserver) OnFinish(Result)           {}

// ObserverFuncs adapts plain functions to Observer; nil fields are skipped.
type ObserverFuncs struct {
	Start       func(n int)
	Progress    func(s Snapshot)
	Improvement func(imp Improvement)
	Finish      func(res Result)
}

func (f ObserverFuncs) OnStart(n int) {
	if f.Start != nil {
		f.Start(n)
	}
}

func (f ObserverFuncs) OnProgress(s Snapshot) {
	if f.Progress != nil {
		f.Progress(s)
	}
}

func (f ObserverFuncs) OnImprovement(imp Improvement) {
	if f.Improvement != nil {
		f.Improvement(imp)
	}
}

func (f ObserverFuncs) OnFinish(res Result) {
	if f.Finish != nil {
		f.Finish(res)
	}
}

// MultiObserver fans every event out to each observer in order.
type MultiObserver []Observer

func (m MultiObserver) OnStart(n int) {
	for _, o := range m {
		o.OnStart(n)
	}
}

func (m MultiObserver) OnProgress(s Snapshot) {
	for _, o := range m {
		o.OnProgress(s)
	}
}

func (m MultiObserver) OnImprovement(imp Improvement) {
	for _, o := range m {
		o.OnImprovement(imp)
	}
}

func (m MultiObserver) OnFinish(res Result) {
	for _, o := range m {
		o.OnFinish(res)
	}
}

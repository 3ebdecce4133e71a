// SPDX-License-Identifier: MIT

// Package metrics exports branch-and-bound search counters to Prometheus.
//
// A Collector owns the metric vectors and is registered once. Each solve gets
// its own observer from Collector.Observer, which turns the cumulative
// counters of tsp.Snapshot into counter increments, so concurrent runs sharing
// one Collector add up correctly.
package metrics

import (
	"errors"
	"math"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/tspbb/tsp"
)

const (
	namespace = "tspbb"
	subsystem = "search"
)

// Collector holds the Prometheus metrics of the solver.
type Collector struct {
	// NodesCreated counts search nodes created across runs.
	NodesCreated prometheus.Counter

	// NodesPruned counts nodes discarded by the subtour or bound test.
	NodesPruned prometheus.Counter

	// Improvements counts incumbent replacements.
	Improvements prometheus.Counter

	// BestLength is the incumbent length of the most recently updated run.
	BestLength prometheus.Gauge

	// Cities is the size of the most recently started run.
	Cities prometheus.Gauge

	// Runs counts finished runs by stop reason.
	// Labels: stop (completed, time_limit, node_limit, canceled, invariant)
	Runs *prometheus.CounterVec

	// Duration measures wall-clock time per run.
	Duration prometheus.Histogram
}

// New creates the metrics and registers them with reg. A nil reg uses
// prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		NodesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "nodes_created_total",
			Help:      "Search nodes created",
		}),
		NodesPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "nodes_pruned_total",
			Help:      "Search nodes discarded by subtour or bound tests",
		}),
		Improvements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "improvements_total",
			Help:      "Incumbent tour replacements",
		}),
		BestLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "best_length",
			Help:      "Length of the current best tour",
		}),
		Cities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cities",
			Help:      "Number of cities of the current run",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Finished runs by stop reason",
		}, []string{"stop"}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "duration_seconds",
			Help:      "Wall-clock time per run in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	var err error
	if c.NodesCreated, err = register(reg, c.NodesCreated); err != nil {
		return nil, err
	}
	if c.NodesPruned, err = register(reg, c.NodesPruned); err != nil {
		return nil, err
	}
	if c.Improvements, err = register(reg, c.Improvements); err != nil {
		return nil, err
	}
	if c.BestLength, err = register(reg, c.BestLength); err != nil {
		return nil, err
	}
	if c.Cities, err = register(reg, c.Cities); err != nil {
		return nil, err
	}
	if c.Runs, err = register(reg, c.Runs); err != nil {
		return nil, err
	}
	if c.Duration, err = register(reg, c.Duration); err != nil {
		return nil, err
	}

	return c, nil
}

// register adds m to reg, or returns the collector already registered under
// the same descriptor.
func register[T prometheus.Collector](reg prometheus.Registerer, m T) (T, error) {
	err := reg.Register(m)
	if err == nil {
		return m, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}

	return m, err
}

// Observer returns a fresh per-run observer feeding c.
func (c *Collector) Observer() tsp.Observer {
	return &runObserver{c: c}
}

// runObserver converts cumulative snapshots into counter deltas.
type runObserver struct {
	c *Collector

	mu      sync.Mutex
	created int64
	pruned  int64
}

func (o *runObserver) OnStart(n int) {
	o.c.Cities.Set(float64(n))
}

func (o *runObserver) OnProgress(s tsp.Snapshot) {
	o.advance(s.NodesCreated, s.NodesPruned)
	if !math.IsInf(s.BestLength, 1) {
		o.c.BestLength.Set(s.BestLength)
	}
}

func (o *runObserver) OnImprovement(imp tsp.Improvement) {
	o.c.Improvements.Inc()
	o.c.BestLength.Set(imp.Length)
}

func (o *runObserver) OnFinish(res tsp.Result) {
	o.advance(res.Stats.NodesCreated, res.Stats.NodesPruned)
	if res.Tour != nil {
		o.c.BestLength.Set(res.Length)
	}
	o.c.Runs.WithLabelValues(res.Stop.String()).Inc()
	o.c.Duration.Observe(res.Stats.Elapsed.Seconds())
}

// advance adds the growth since the last event.
func (o *runObserver) advance(created, pruned int64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if created > o.created {
		o.c.NodesCreated.Add(float64(created - o.created))
		o.created = created
	}
	if pruned > o.pruned {
		o.c.NodesPruned.Add(float64(pruned - o.pruned))
		o.pruned = pruned
	}
}

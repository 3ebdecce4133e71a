// SPDX-License-Identifier: MIT

package cli

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/katalvlaran/tspbb/tsp"
)

// newLogger creates a timestamped logger. Output that is not a terminal
// (pipes, files, CI) is written as JSON lines.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	}
	if !isTerminal(w) {
		opts.Formatter = log.JSONFormatter
	}

	return log.NewWithOptions(w, opts)
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// logObserver reports search events through a logger. Progress milestones
// go to debug, improvements and the final summary to info.
type logObserver struct {
	logger *log.Logger
}

// newLogObserver tags every line with the run id.
func newLogObserver(l *log.Logger, runID string) *logObserver {
	return &logObserver{logger: l.With("run", runID)}
}

func (o *logObserver) OnStart(n int) {
	o.logger.Info("search started", "cities", n)
}

func (o *logObserver) OnProgress(s tsp.Snapshot) {
	kv := []interface{}{
		"created", s.NodesCreated,
		"pruned", s.NodesPruned,
		"elapsed", s.Elapsed.Round(time.Millisecond),
	}
	if !math.IsInf(s.BestLength, 1) {
		kv = append(kv, "best", s.BestLength)
	}
	o.logger.Debug("progress", kv...)
}

func (o *logObserver) OnImprovement(imp tsp.Improvement) {
	o.logger.Info("found better tour",
		"tour", tsp.FormatTour(imp.Tour),
		"length", imp.Length,
		"created", imp.NodesCreated,
		"elapsed", imp.Elapsed.Round(time.Millisecond),
	)
}

func (o *logObserver) OnFinish(res tsp.Result) {
	o.logger.Info("search finished",
		"stop", res.Stop,
		"optimal", res.Optimal,
		"created", res.Stats.NodesCreated,
		"pruned", res.Stats.NodesPruned,
		"elapsed", res.Stats.Elapsed.Round(time.Millisecond),
	)
}

// Package analyzer runs the fetch, filter and build pipeline that turns an
// item source into a scheduled graph.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joshharrison/beadpert/internal/pert"
	"github.com/joshharrison/beadpert/internal/state"
)

// Source supplies the work items to analyse.
type Source interface {
	List(ctx context.Context) ([]pert.Item, error)
}

// Recorder persists a snapshot of each analysis.
type Recorder interface {
	Save(ctx context.Context, snap state.Snapshot) error
}

// Analyzer builds graphs from a Source and remembers the latest one.
type Analyzer struct {
	Source   Source
	Options  pert.Options
	Statuses []pert.Status // empty keeps every item
	Recorder Recorder      // optional
	Logger   *slog.Logger

	now func() time.Time

	mu   sync.RWMutex
	last *pert.Graph
}

// New creates an Analyzer with the default logger.
func New(src Source, opts pert.Options) *Analyzer {
	return &Analyzer{
		Source:  src,
		Options: opts,
		Logger:  slog.Default(),
		now:     time.Now,
	}
}

// Analyze fetches items, drops those whose status is not selected, and builds
// the graph. A dependency on a dropped item is treated as satisfied. A cyclic
// graph is a valid result, not an error.
func (a *Analyzer) Analyze(ctx context.Context) (*pert.Graph, error) {
	items, err := a.Source.List(ctx)
	if err != nil {
		analyzeTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("list items: %w", err)
	}
	items = FilterStatus(items, a.Statuses)

	start := a.now()
	g := pert.Build(items, a.Options)
	buildDuration.Observe(a.now().Sub(start).Seconds())

	a.observe(g)
	a.mu.Lock()
	a.last = g
	a.mu.Unlock()

	if a.Recorder != nil {
		if err := a.Recorder.Save(ctx, state.FromGraph(g, a.now())); err != nil {
			a.Logger.Warn("failed to record snapshot", "err", err)
		}
	}
	return g, nil
}

// Latest returns the most recently built graph, or nil before the first run.
func (a *Analyzer) Latest() *pert.Graph {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.last
}

func (a *Analyzer) observe(g *pert.Graph) {
	graphNodes.Set(float64(g.Len()))
	graphEdges.Set(float64(len(g.Edges)))
	graphCycleEdges.Set(float64(len(g.CycleDetection.CycleEdges)))
	graphCritical.Set(float64(len(g.CriticalPath)))
	graphDuration.Set(g.ProjectDuration)

	if g.CycleDetection.HasCycle {
		analyzeTotal.WithLabelValues("cyclic").Inc()
		a.Logger.Warn("dependency cycle detected",
			"nodes", g.Len(), "edges", len(g.Edges),
			"cycle_edges", len(g.CycleDetection.CycleEdges))
		return
	}
	analyzeTotal.WithLabelValues("acyclic").Inc()
	a.Logger.Info("graph analysed",
		"nodes", g.Len(), "edges", len(g.Edges),
		"critical", len(g.CriticalPath), "duration_hours", g.ProjectDuration)
}

// FilterStatus keeps the items whose status is in statuses. An empty list
// keeps everything.
func FilterStatus(items []pert.Item, statuses []pert.Status) []pert.Item {
	if len(statuses) == 0 {
		return items
	}
	keep := make(map[pert.Status]bool, len(statuses))
	for _, s := range statuses {
		keep[s] = true
	}
	out := make([]pert.Item, 0, len(items))
	for _, it := range items {
		if keep[it.Status] {
			out = append(out, it)
		}
	}
	return out
}

// ParseStatuses converts status names, rejecting unknown ones.
func ParseStatuses(names []string) ([]pert.Status, error) {
	out := make([]pert.Status, 0, len(names))
	for _, n := range names {
		s := pert.Status(n)
		switch s {
		case pert.StatusOpen, pert.StatusInProgress, pert.StatusBlocked, pert.StatusClosed:
			out = append(out, s)
		default:
			return nil, fmt.Errorf("unknown status %q", n)
		}
	}
	return out, nil
}

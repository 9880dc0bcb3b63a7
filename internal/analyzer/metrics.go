package analyzer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "beadpert",
		Subsystem: "analyzer",
		Name:      "build_duration_seconds",
		Help:      "Time to build and schedule the dependency network",
		Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	})

	analyzeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "beadpert",
		Subsystem: "analyzer",
		Name:      "runs_total",
		Help:      "Analysis runs by outcome (acyclic, cyclic, error)",
	}, []string{"outcome"})

	graphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "beadpert",
		Subsystem: "graph",
		Name:      "nodes",
		Help:      "Nodes in the most recent graph",
	})

	graphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "beadpert",
		Subsystem: "graph",
		Name:      "edges",
		Help:      "Edges in the most recent graph",
	})

	graphCritical = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "beadpert",
		Subsystem: "graph",
		Name:      "critical_nodes",
		Help:      "Critical nodes in the most recent graph",
	})

	graphDuration = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "beadpert",
		Subsystem: "graph",
		Name:      "project_duration_hours",
		Help:      "Project completion time of the most recent graph",
	})

	graphCycleEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "beadpert",
		Subsystem: "graph",
		Name:      "cycle_edges",
		Help:      "Back edges found in the most recent graph",
	})
)

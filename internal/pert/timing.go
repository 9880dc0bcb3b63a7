package pert

import "math"

// computeTiming runs the CPM forward and backward passes over g.order.
func (g *Graph) computeTiming() {
	// Forward pass: ES = max EF of predecessors.
	for _, idx := range g.order {
		n := g.nodes[idx]
		es := 0.0
		for _, p := range g.pred[idx] {
			es = math.Max(es, g.nodes[p].EarliestFinish)
		}
		n.EarliestStart = es
		n.EarliestFinish = es + n.Duration
	}

	completion := 0.0
	for _, n := range g.nodes {
		completion = math.Max(completion, n.EarliestFinish)
	}
	g.ProjectDuration = completion

	for _, n := range g.nodes {
		n.LatestFinish = completion
		n.LatestStart = completion - n.Duration
	}

	// Backward pass: LF = min LS of successors, or completion for sinks.
	for i := len(g.order) - 1; i >= 0; i-- {
		idx := g.order[i]
		n := g.nodes[idx]
		lf := completion
		for _, s := range g.succ[idx] {
			lf = math.Min(lf, g.nodes[s].LatestStart)
		}
		n.LatestFinish = lf
		n.LatestStart = lf - n.Duration
		n.Slack = n.LatestStart - n.EarliestStart
	}
}

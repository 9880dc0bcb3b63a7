package pert

import (
	"fmt"
	"sort"
)

// Direction selects which side of a focus node Subgraph explores.
type Direction string

const (
	Upstream   Direction = "upstream"   // dependencies
	Downstream Direction = "downstream" // dependents
	Both       Direction = "both"
)

// ParseDirection validates a direction name.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Upstream, Downstream, Both:
		return d, nil
	default:
		return "", fmt.Errorf("unknown direction %q (want upstream, downstream or both)", s)
	}
}

// Subgraph returns the ids within depth hops of focus in the given direction,
// sorted, and the edges between them. An unknown focus yields nothing; an
// unknown direction or a depth of zero yields just the focus.
func (g *Graph) Subgraph(focus string, depth int, dir Direction) ([]string, []Edge) {
	start, ok := g.index[focus]
	if !ok {
		return nil, nil
	}

	included := map[int]bool{start: true}
	if dir == Upstream || dir == Both {
		g.traverse(included, start, depth, g.pred)
	}
	if dir == Downstream || dir == Both {
		g.traverse(included, start, depth, g.succ)
	}

	ids := make([]string, 0, len(included))
	for idx := range included {
		ids = append(ids, g.nodes[idx].ID)
	}
	sort.Strings(ids)

	var edges []Edge
	for _, e := range g.Edges {
		if included[g.index[e.From]] && included[g.index[e.To]] {
			edges = append(edges, e)
		}
	}
	return ids, edges
}

// traverse is a breadth-first walk along adj, stopping depth hops from start.
func (g *Graph) traverse(included map[int]bool, start, depth int, adj [][]int) {
	type hop struct {
		node  int
		depth int
	}
	queue := []hop{{node: start}}
	for head := 0; head < len(queue); head++ {
		h := queue[head]
		if h.depth >= depth {
			continue
		}
		for _, nb := range adj[h.node] {
			if !included[nb] {
				included[nb] = true
				queue = append(queue, hop{node: nb, depth: h.depth + 1})
			}
		}
	}
}

// Filter returns a graph holding only the named nodes and the edges between
// them. Schedules are copied rather than recomputed, and the topological
// order and critical path keep the parent's ordering.
func (g *Graph) Filter(ids []string) *Graph {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}

	f := newGraph(len(ids), g.opts)
	for _, n := range g.nodes {
		if keep[n.ID] {
			clone := *n
			f.addNode(&clone)
		}
	}
	for _, e := range g.Edges {
		from, okFrom := f.index[e.From]
		to, okTo := f.index[e.To]
		if okFrom && okTo {
			f.addEdge(from, to)
		}
	}

	for _, id := range g.TopologicalOrder {
		if idx, ok := f.index[id]; ok {
			f.order = append(f.order, idx)
			f.TopologicalOrder = append(f.TopologicalOrder, id)
		}
	}
	for _, id := range g.CriticalPath {
		if keep[id] {
			f.CriticalPath = append(f.CriticalPath, id)
		}
	}
	for _, n := range f.nodes {
		if n.EarliestFinish > f.ProjectDuration {
			f.ProjectDuration = n.EarliestFinish
		}
	}

	for i, e := range g.CycleDetection.CycleEdges {
		if !keep[e.From] || !keep[e.To] {
			continue
		}
		f.CycleDetection.CycleEdges = append(f.CycleDetection.CycleEdges, e)
		if i < len(g.CycleDetection.Cycles) {
			f.CycleDetection.Cycles = append(f.CycleDetection.Cycles, g.CycleDetection.Cycles[i])
		}
	}
	f.CycleDetection.HasCycle = len(f.CycleDetection.CycleEdges) > 0
	return f
}

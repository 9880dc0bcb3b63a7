package pert

import "math"

// computeCriticalPath marks nodes whose slack is within tolerance of zero and
// collects them in topological order. With parallel branches of equal length
// the result is the critical set, not a single contiguous path; use
// CriticalPaths when adjacency between entries matters.
func (g *Graph) computeCriticalPath() {
	g.CriticalPath = nil
	for _, idx := range g.order {
		n := g.nodes[idx]
		n.IsCritical = math.Abs(n.Slack) < g.opts.Tolerance
		if n.IsCritical {
			g.CriticalPath = append(g.CriticalPath, n.ID)
		}
	}
}

// CriticalPaths enumerates the contiguous critical paths: chains of critical
// nodes joined by edges on which no time is lost, running from a critical
// node with no such predecessor to one with no such successor. At most limit
// paths are returned; limit <= 0 returns all of them, which can grow
// exponentially on wide diamond lattices.
func (g *Graph) CriticalPaths(limit int) [][]string {
	var paths [][]string
	for _, start := range g.order {
		if !g.nodes[start].IsCritical || g.hasTight(g.pred[start], start, true) {
			continue
		}

		stack := []frame{{node: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.succ[top.node]

			pushed := false
			for top.next < len(succ) {
				s := succ[top.next]
				top.next++
				if g.tight(top.node, s) {
					stack = append(stack, frame{node: s})
					pushed = true
					break
				}
			}
			if pushed {
				continue
			}

			if !g.hasTight(succ, top.node, false) {
				path := make([]string, len(stack))
				for i, f := range stack {
					path[i] = g.nodes[f.node].ID
				}
				paths = append(paths, path)
				if limit > 0 && len(paths) >= limit {
					return paths
				}
			}
			stack = stack[:len(stack)-1]
		}
	}
	return paths
}

// tight reports whether from -> to is an edge between critical nodes with no
// gap between from finishing and to starting.
func (g *Graph) tight(from, to int) bool {
	a, b := g.nodes[from], g.nodes[to]
	return a.IsCritical && b.IsCritical &&
		math.Abs(b.EarliestStart-a.EarliestFinish) < g.opts.Tolerance
}

func (g *Graph) hasTight(neighbours []int, idx int, upstream bool) bool {
	for _, nb := range neighbours {
		if upstream && g.tight(nb, idx) || !upstream && g.tight(idx, nb) {
			return true
		}
	}
	return false
}

package pert

// frame is one level of the explicit DFS stack: a node and the position of
// the next successor to visit.
type frame struct {
	node int
	next int
}

// detectCycles walks the graph depth-first from every unvisited node and
// records each edge that closes back onto the current DFS stack. Traversal
// continues after a back edge, so several may be reported. Recursion is
// replaced by an explicit stack so deep chains cannot exhaust the goroutine
// stack.
func (g *Graph) detectCycles() CycleDetection {
	const (
		white = iota // unvisited
		gray         // on the DFS stack
		black        // finished
	)

	color := make([]uint8, len(g.nodes))
	var stack []frame
	var det CycleDetection

	for root := range g.nodes {
		if color[root] != white {
			continue
		}
		color[root] = gray
		stack = append(stack[:0], frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.succ[top.node]
			if top.next == len(succ) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}

			next := succ[top.next]
			top.next++

			switch color[next] {
			case white:
				color[next] = gray
				stack = append(stack, frame{node: next})
			case gray:
				det.CycleEdges = append(det.CycleEdges, Edge{
					From: g.nodes[top.node].ID,
					To:   g.nodes[next].ID,
				})
				det.Cycles = append(det.Cycles, g.trail(stack, next))
			}
		}
	}

	det.HasCycle = len(det.CycleEdges) > 0
	return det
}

// trail returns the ids on the DFS stack from target up to the top, which is
// the membership of the cycle closed by an edge from the top back to target.
func (g *Graph) trail(stack []frame, target int) []string {
	i := len(stack) - 1
	for i > 0 && stack[i].node != target {
		i--
	}
	members := make([]string, 0, len(stack)-i)
	for _, f := range stack[i:] {
		members = append(members, g.nodes[f.node].ID)
	}
	return members
}

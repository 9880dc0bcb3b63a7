package pert

// topoSort orders nodes with Kahn's algorithm. The queue is seeded in item
// order and successors are released in edge insertion order, so the result
// is deterministic for a given input. Must only be called on an acyclic graph.
func (g *Graph) topoSort() []int {
	inDegree := make([]int, len(g.nodes))
	queue := make([]int, 0, len(g.nodes))
	for idx := range g.nodes {
		inDegree[idx] = len(g.pred[idx])
		if inDegree[idx] == 0 {
			queue = append(queue, idx)
		}
	}

	// The queue doubles as the output: every node is appended exactly once
	// and popped in FIFO order.
	for head := 0; head < len(queue); head++ {
		for _, s := range g.succ[queue[head]] {
			inDegree[s]--
			if inDegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	return queue
}

package pert

import "encoding/json"

// Graph is the dependency network of a set of items together with its
// schedule. Nodes live in an arena indexed by insertion order; the adjacency
// lists hold arena indices.
//
// When CycleDetection.HasCycle is set, TopologicalOrder, CriticalPath,
// ProjectDuration and every node's timing and layout fields are left at their
// zero values.
type Graph struct {
	Edges            []Edge
	TopologicalOrder []string
	CriticalPath     []string
	CycleDetection   CycleDetection
	ProjectDuration  float64

	nodes []*Node
	index map[string]int
	succ  [][]int // node -> nodes it blocks
	pred  [][]int // node -> nodes blocking it
	order []int   // topological order as arena indices
	edges map[[2]int]struct{}
	opts  Options
}

// New builds a graph with default options and the given node duration.
func New(items []Item, duration float64) *Graph {
	opts := DefaultOptions()
	opts.DefaultDuration = duration
	return Build(items, opts)
}

// Build constructs the dependency network for items and, if it is acyclic,
// schedules and lays it out. Dependency ids that do not name an item are
// dropped. A repeated item id keeps the first occurrence. A missing or
// unknown status becomes StatusOpen.
func Build(items []Item, opts Options) *Graph {
	g := newGraph(len(items), opts.withDefaults())

	accepted := make([]bool, len(items))
	for i := range items {
		if _, dup := g.index[items[i].ID]; dup {
			continue
		}
		accepted[i] = true
		g.addNode(&Node{
			ID:       items[i].ID,
			Title:    items[i].Title,
			Status:   ParseStatus(string(items[i].Status)),
			Duration: g.opts.DefaultDuration,
		})
	}

	// item depends on dep, so dep blocks item: dep -> item
	for i := range items {
		if !accepted[i] {
			continue
		}
		to := g.index[items[i].ID]
		for _, dep := range items[i].DependsOn {
			if from, ok := g.index[dep]; ok {
				g.addEdge(from, to)
			}
		}
	}

	g.analyze()
	return g
}

func newGraph(size int, opts Options) *Graph {
	return &Graph{
		nodes: make([]*Node, 0, size),
		index: make(map[string]int, size),
		succ:  make([][]int, 0, size),
		pred:  make([][]int, 0, size),
		edges: make(map[[2]int]struct{}),
		opts:  opts,
	}
}

func (g *Graph) addNode(n *Node) int {
	idx := len(g.nodes)
	g.nodes = append(g.nodes, n)
	g.index[n.ID] = idx
	g.succ = append(g.succ, nil)
	g.pred = append(g.pred, nil)
	return idx
}

func (g *Graph) addEdge(from, to int) {
	key := [2]int{from, to}
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = struct{}{}
	g.succ[from] = append(g.succ[from], to)
	g.pred[to] = append(g.pred[to], from)
	g.Edges = append(g.Edges, Edge{From: g.nodes[from].ID, To: g.nodes[to].ID})
}

// analyze runs the passes in dependency order. Only cycle detection runs on a
// cyclic graph.
func (g *Graph) analyze() {
	g.CycleDetection = g.detectCycles()
	if g.CycleDetection.HasCycle {
		return
	}
	g.order = g.topoSort()
	g.TopologicalOrder = g.idsOf(g.order)
	g.computeTiming()
	g.computeCriticalPath()
	g.computeLayout()
}

// Options returns the options the graph was built with, defaults applied.
func (g *Graph) Options() Options {
	return g.opts
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns all nodes in item order.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// Node looks up a node by id.
func (g *Graph) Node(id string) (*Node, bool) {
	idx, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[idx], true
}

// Successors returns the ids of the nodes id blocks.
func (g *Graph) Successors(id string) []string {
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.idsOf(g.succ[idx])
}

// Predecessors returns the ids of the nodes blocking id.
func (g *Graph) Predecessors(id string) []string {
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.idsOf(g.pred[idx])
}

// NodesInOrder returns nodes in topological order. Empty if the graph is cyclic.
func (g *Graph) NodesInOrder() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, idx := range g.order {
		out = append(out, g.nodes[idx])
	}
	return out
}

// CriticalPathNodes returns the critical nodes in topological order.
func (g *Graph) CriticalPathNodes() []*Node {
	out := make([]*Node, 0, len(g.CriticalPath))
	for _, id := range g.CriticalPath {
		if n, ok := g.Node(id); ok {
			out = append(out, n)
		}
	}
	return out
}

func (g *Graph) idsOf(idxs []int) []string {
	if len(idxs) == 0 {
		return nil
	}
	ids := make([]string, len(idxs))
	for i, idx := range idxs {
		ids[i] = g.nodes[idx].ID
	}
	return ids
}

type graphJSON struct {
	Nodes            []*Node        `json:"nodes"`
	Edges            []Edge         `json:"edges"`
	TopologicalOrder []string       `json:"topological_order"`
	CriticalPath     []string       `json:"critical_path"`
	CycleDetection   CycleDetection `json:"cycle_detection"`
	ProjectDuration  float64        `json:"project_duration"`
}

// MarshalJSON encodes the graph with empty lists instead of nulls.
func (g *Graph) MarshalJSON() ([]byte, error) {
	cd := g.CycleDetection
	if cd.CycleEdges == nil {
		cd.CycleEdges = []Edge{}
	}
	if cd.Cycles == nil {
		cd.Cycles = [][]string{}
	}
	return json.Marshal(graphJSON{
		Nodes:            orEmpty(g.nodes),
		Edges:            orEmpty(g.Edges),
		TopologicalOrder: orEmpty(g.TopologicalOrder),
		CriticalPath:     orEmpty(g.CriticalPath),
		CycleDetection:   cd,
		ProjectDuration:  g.ProjectDuration,
	})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

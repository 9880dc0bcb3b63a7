package pert

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func item(id string, deps ...string) Item {
	return Item{ID: id, Title: "Task " + id, Status: StatusOpen, DependsOn: deps}
}

func mustNode(t *testing.T, g *Graph, id string) *Node {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %s not found", id)
	}
	return n
}

func assertTiming(t *testing.T, n *Node, es, ef, ls, lf, slack float64, critical bool) {
	t.Helper()
	if n.EarliestStart != es || n.EarliestFinish != ef {
		t.Errorf("%s: ES/EF = %.1f/%.1f, want %.1f/%.1f", n.ID, n.EarliestStart, n.EarliestFinish, es, ef)
	}
	if n.LatestStart != ls || n.LatestFinish != lf {
		t.Errorf("%s: LS/LF = %.1f/%.1f, want %.1f/%.1f", n.ID, n.LatestStart, n.LatestFinish, ls, lf)
	}
	if n.Slack != slack {
		t.Errorf("%s: slack = %.1f, want %.1f", n.ID, n.Slack, slack)
	}
	if n.IsCritical != critical {
		t.Errorf("%s: critical = %v, want %v", n.ID, n.IsCritical, critical)
	}
}

func TestBuild_Chain(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A"), item("C", "B")}, 1.0)

	if !reflect.DeepEqual(g.TopologicalOrder, []string{"A", "B", "C"}) {
		t.Fatalf("topological order = %v, want [A B C]", g.TopologicalOrder)
	}
	assertTiming(t, mustNode(t, g, "A"), 0, 1, 0, 1, 0, true)
	assertTiming(t, mustNode(t, g, "B"), 1, 2, 1, 2, 0, true)
	assertTiming(t, mustNode(t, g, "C"), 2, 3, 2, 3, 0, true)

	if !reflect.DeepEqual(g.CriticalPath, []string{"A", "B", "C"}) {
		t.Errorf("critical path = %v, want [A B C]", g.CriticalPath)
	}
	if g.ProjectDuration != 3 {
		t.Errorf("project duration = %.1f, want 3", g.ProjectDuration)
	}
}

func TestBuild_Diamond(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A"), item("C", "A"), item("D", "B", "C")}, 1.0)

	d := mustNode(t, g, "D")
	if d.EarliestFinish != 3 {
		t.Errorf("EF(D) = %.1f, want 3", d.EarliestFinish)
	}
	for _, id := range []string{"A", "B", "C", "D"} {
		n := mustNode(t, g, id)
		if !n.IsCritical || n.Slack != 0 {
			t.Errorf("%s: expected critical with zero slack, got critical=%v slack=%.2f", id, n.IsCritical, n.Slack)
		}
	}
	if len(g.CriticalPath) != 4 {
		t.Errorf("expected 4 critical nodes, got %v", g.CriticalPath)
	}
}

func TestBuild_Cycle(t *testing.T) {
	g := New([]Item{item("A", "C"), item("B", "A"), item("C", "B")}, 8.0)

	if !g.CycleDetection.HasCycle {
		t.Fatal("expected cycle")
	}
	if len(g.CycleDetection.CycleEdges) == 0 {
		t.Fatal("expected at least one cycle edge")
	}
	if len(g.TopologicalOrder) != 0 {
		t.Errorf("expected empty topological order, got %v", g.TopologicalOrder)
	}
	if len(g.CriticalPath) != 0 {
		t.Errorf("expected empty critical path, got %v", g.CriticalPath)
	}
	if g.ProjectDuration != 0 {
		t.Errorf("expected zero project duration, got %.1f", g.ProjectDuration)
	}
	for _, n := range g.Nodes() {
		if n.EarliestFinish != 0 || n.LatestFinish != 0 || n.Slack != 0 || n.IsCritical || n.X != 0 || n.Y != 0 {
			t.Errorf("%s: expected default timing and layout on cyclic graph, got %+v", n.ID, *n)
		}
	}
	if len(g.NodesInOrder()) != 0 {
		t.Error("expected NodesInOrder to be empty on cyclic graph")
	}
}

func TestBuild_CycleMembership(t *testing.T) {
	g := New([]Item{item("A", "C"), item("B", "A"), item("C", "B")}, 1.0)

	want := []Edge{{From: "C", To: "A"}}
	if !reflect.DeepEqual(g.CycleDetection.CycleEdges, want) {
		t.Errorf("cycle edges = %v, want %v", g.CycleDetection.CycleEdges, want)
	}
	if !reflect.DeepEqual(g.CycleDetection.Cycles, [][]string{{"A", "B", "C"}}) {
		t.Errorf("cycles = %v, want [[A B C]]", g.CycleDetection.Cycles)
	}
}

func TestBuild_SelfLoop(t *testing.T) {
	g := New([]Item{item("A", "A"), item("B")}, 1.0)

	if !g.CycleDetection.HasCycle {
		t.Fatal("expected self-dependency to be a cycle")
	}
	if !reflect.DeepEqual(g.CycleDetection.Cycles, [][]string{{"A"}}) {
		t.Errorf("cycles = %v, want [[A]]", g.CycleDetection.Cycles)
	}
}

func TestBuild_MultipleCycles(t *testing.T) {
	g := New([]Item{
		item("A", "B"), item("B", "A"),
		item("C", "D"), item("D", "C"),
		item("E"),
	}, 1.0)

	if got := len(g.CycleDetection.CycleEdges); got != 2 {
		t.Errorf("expected 2 back edges, got %d: %v", got, g.CycleDetection.CycleEdges)
	}
}

func TestBuild_CycleInPartOfGraph(t *testing.T) {
	// A -> B is fine, C <-> D is not; the whole graph stays unscheduled.
	g := New([]Item{item("A"), item("B", "A"), item("C", "D"), item("D", "C")}, 1.0)

	if !g.CycleDetection.HasCycle {
		t.Fatal("expected cycle")
	}
	if b := mustNode(t, g, "B"); b.EarliestStart != 0 {
		t.Errorf("expected B unscheduled, got ES=%.1f", b.EarliestStart)
	}
}

func TestBuild_IndependentItems(t *testing.T) {
	g := New([]Item{item("A"), item("B"), item("C"), item("D")}, 8.0)

	for _, n := range g.Nodes() {
		if n.EarliestStart != 0 {
			t.Errorf("%s: ES = %.1f, want 0", n.ID, n.EarliestStart)
		}
		if !n.IsCritical {
			t.Errorf("%s: expected critical", n.ID)
		}
	}
	if !reflect.DeepEqual(g.TopologicalOrder, []string{"A", "B", "C", "D"}) {
		t.Errorf("expected item order for independent nodes, got %v", g.TopologicalOrder)
	}
}

func TestBuild_UnequalPaths(t *testing.T) {
	// A -> B -> C and D -> C, every duration 2.
	g := New([]Item{item("A"), item("B", "A"), item("C", "B", "D"), item("D")}, 2.0)

	assertTiming(t, mustNode(t, g, "A"), 0, 2, 0, 2, 0, true)
	assertTiming(t, mustNode(t, g, "B"), 2, 4, 2, 4, 0, true)
	assertTiming(t, mustNode(t, g, "C"), 4, 6, 4, 6, 0, true)
	assertTiming(t, mustNode(t, g, "D"), 0, 2, 2, 4, 2, false)

	if !reflect.DeepEqual(g.CriticalPath, []string{"A", "B", "C"}) {
		t.Errorf("critical path = %v, want [A B C]", g.CriticalPath)
	}
}

func TestBuild_ToleranceIsConfigurable(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultDuration = 2.0
	opts.Tolerance = 5
	g := Build([]Item{item("A"), item("B", "A"), item("C", "B", "D"), item("D")}, opts)

	if d := mustNode(t, g, "D"); !d.IsCritical {
		t.Errorf("expected D critical with tolerance 5 and slack %.1f", d.Slack)
	}
	if len(g.CriticalPath) != 4 {
		t.Errorf("expected all 4 nodes critical, got %v", g.CriticalPath)
	}
}

func TestBuild_Empty(t *testing.T) {
	g := New(nil, 1.0)

	if g.Len() != 0 {
		t.Errorf("expected no nodes, got %d", g.Len())
	}
	if g.CycleDetection.HasCycle {
		t.Error("empty graph should be acyclic")
	}
	if g.ProjectDuration != 0 {
		t.Errorf("expected zero duration, got %.1f", g.ProjectDuration)
	}
	if len(g.TopologicalOrder) != 0 || len(g.CriticalPath) != 0 {
		t.Errorf("expected empty order and path, got %v / %v", g.TopologicalOrder, g.CriticalPath)
	}
}

func TestBuild_SingleItem(t *testing.T) {
	g := New([]Item{item("A")}, 4.0)

	assertTiming(t, mustNode(t, g, "A"), 0, 4, 0, 4, 0, true)
	if !reflect.DeepEqual(g.CriticalPath, []string{"A"}) {
		t.Errorf("critical path = %v, want [A]", g.CriticalPath)
	}
}

func TestBuild_DefaultDuration(t *testing.T) {
	g := New([]Item{item("A"), item("B")}, 8.0)

	if a := mustNode(t, g, "A"); a.Duration != 8.0 {
		t.Errorf("duration = %.1f, want 8", a.Duration)
	}
}

func TestBuild_ZeroDuration(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A")}, 0)

	for _, n := range g.Nodes() {
		if n.EarliestFinish != 0 || !n.IsCritical {
			t.Errorf("%s: expected zero-length critical node, got %+v", n.ID, *n)
		}
	}
}

func TestBuild_MissingDependencyDropped(t *testing.T) {
	g := New([]Item{item("A", "ghost"), item("B", "A")}, 1.0)

	if len(g.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %v", g.Edges)
	}
	if g.Edges[0] != (Edge{From: "A", To: "B"}) {
		t.Errorf("unexpected edge %v", g.Edges[0])
	}
	if g.CycleDetection.HasCycle {
		t.Error("dangling dependency must not be a cycle")
	}
}

func TestBuild_DuplicatesCollapsed(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A", "A"), item("A", "B")}, 1.0)

	if g.Len() != 2 {
		t.Errorf("expected 2 nodes, got %d", g.Len())
	}
	if len(g.Edges) != 1 {
		t.Errorf("expected duplicate references to produce one edge, got %v", g.Edges)
	}
	if g.CycleDetection.HasCycle {
		t.Error("second A must be ignored, not wired into a cycle")
	}
}

func TestBuild_StatusNormalised(t *testing.T) {
	g := New([]Item{
		{ID: "a"},
		{ID: "b", Status: "deferred"},
		{ID: "c", Status: StatusInProgress},
	}, 1)

	for id, want := range map[string]Status{"a": StatusOpen, "b": StatusOpen, "c": StatusInProgress} {
		if got := mustNode(t, g, id).Status; got != want {
			t.Errorf("%s: status = %q, want %q", id, got, want)
		}
	}
}

func TestAdjacency_MutualInverse(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A"), item("C", "A"), item("D", "B", "C")}, 1.0)

	if got := g.Successors("A"); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("successors(A) = %v", got)
	}
	if got := g.Predecessors("D"); !reflect.DeepEqual(got, []string{"B", "C"}) {
		t.Errorf("predecessors(D) = %v", got)
	}
	for _, n := range g.Nodes() {
		for _, s := range g.Successors(n.ID) {
			found := false
			for _, p := range g.Predecessors(s) {
				if p == n.ID {
					found = true
				}
			}
			if !found {
				t.Errorf("%s -> %s missing from predecessors of %s", n.ID, s, s)
			}
		}
	}
	if g.Successors("nope") != nil || g.Predecessors("nope") != nil {
		t.Error("expected nil adjacency for unknown id")
	}
}

func TestTopologicalOrder_MultipleStartNodes(t *testing.T) {
	g := New([]Item{item("A"), item("B"), item("C", "A", "B")}, 1.0)

	if !reflect.DeepEqual(g.TopologicalOrder, []string{"A", "B", "C"}) {
		t.Errorf("topological order = %v", g.TopologicalOrder)
	}
}

func TestTopologicalOrder_DeepChain(t *testing.T) {
	const n = 20000
	items := make([]Item, n)
	items[0] = item("n0")
	for i := 1; i < n; i++ {
		items[i] = item(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i-1))
	}

	g := New(items, 1.0)
	if g.CycleDetection.HasCycle {
		t.Fatal("unexpected cycle")
	}
	if len(g.TopologicalOrder) != n {
		t.Fatalf("expected %d nodes in order, got %d", n, len(g.TopologicalOrder))
	}
	if g.ProjectDuration != n {
		t.Errorf("project duration = %.0f, want %d", g.ProjectDuration, n)
	}
}

func TestProperties_RandomDAG(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 25; trial++ {
		size := 5 + rng.Intn(40)
		items := make([]Item, size)
		for i := range items {
			items[i] = item(fmt.Sprintf("t%02d", i))
			// Only depend on lower indices so the graph stays acyclic.
			for j := 0; j < i; j++ {
				if rng.Float64() < 0.15 {
					items[i].DependsOn = append(items[i].DependsOn, items[j].ID)
				}
			}
		}
		// Shuffle item order so topological order is not just item order.
		rng.Shuffle(len(items), func(a, b int) { items[a], items[b] = items[b], items[a] })

		g := New(items, 1.5)
		if g.CycleDetection.HasCycle {
			t.Fatalf("trial %d: unexpected cycle", trial)
		}
		if len(g.TopologicalOrder) != size {
			t.Fatalf("trial %d: order has %d of %d nodes", trial, len(g.TopologicalOrder), size)
		}

		pos := make(map[string]int, size)
		for i, id := range g.TopologicalOrder {
			if _, dup := pos[id]; dup {
				t.Fatalf("trial %d: %s appears twice in order", trial, id)
			}
			pos[id] = i
		}
		for _, e := range g.Edges {
			if pos[e.From] >= pos[e.To] {
				t.Errorf("trial %d: edge %s -> %s violates order", trial, e.From, e.To)
			}
		}

		tol := g.Options().Tolerance
		for _, n := range g.Nodes() {
			if n.EarliestFinish < n.EarliestStart || n.LatestFinish < n.LatestStart {
				t.Errorf("trial %d: %s has finish before start: %+v", trial, n.ID, *n)
			}
			if n.Slack < -tol {
				t.Errorf("trial %d: %s has negative slack %.4f", trial, n.ID, n.Slack)
			}
			if n.IsCritical != (math.Abs(n.Slack) < tol) {
				t.Errorf("trial %d: %s critical flag disagrees with slack %.4f", trial, n.ID, n.Slack)
			}
		}
		if len(g.CriticalPath) == 0 {
			t.Errorf("trial %d: non-empty acyclic graph must have a critical node", trial)
		}
	}
}

func TestIdempotent(t *testing.T) {
	items := []Item{item("A"), item("B", "A"), item("C", "A"), item("D", "B"), item("E", "C", "D")}

	first := New(items, 3.0)
	second := New(items, 3.0)

	if !reflect.DeepEqual(first.TopologicalOrder, second.TopologicalOrder) {
		t.Errorf("order differs: %v vs %v", first.TopologicalOrder, second.TopologicalOrder)
	}
	if !reflect.DeepEqual(first.CriticalPath, second.CriticalPath) {
		t.Errorf("critical path differs: %v vs %v", first.CriticalPath, second.CriticalPath)
	}
	for _, n := range first.Nodes() {
		m := mustNode(t, second, n.ID)
		if *n != *m {
			t.Errorf("%s differs between runs: %+v vs %+v", n.ID, *n, *m)
		}
	}
}

func TestCriticalPathNodes(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A"), item("C", "B")}, 8.0)

	nodes := g.CriticalPathNodes()
	if len(nodes) != 3 {
		t.Fatalf("expected 3 critical nodes, got %d", len(nodes))
	}
	for i, id := range []string{"A", "B", "C"} {
		if nodes[i].ID != id {
			t.Errorf("critical node %d = %s, want %s", i, nodes[i].ID, id)
		}
	}
}

func TestCriticalPaths_Diamond(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A"), item("C", "A"), item("D", "B", "C")}, 1.0)

	want := [][]string{{"A", "B", "D"}, {"A", "C", "D"}}
	if got := g.CriticalPaths(0); !reflect.DeepEqual(got, want) {
		t.Errorf("critical paths = %v, want %v", got, want)
	}
	if got := g.CriticalPaths(1); len(got) != 1 {
		t.Errorf("expected limit to cap result at 1, got %v", got)
	}
}

func TestCriticalPaths_SkipsSlackBranch(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A"), item("C", "B", "D"), item("D")}, 2.0)

	want := [][]string{{"A", "B", "C"}}
	if got := g.CriticalPaths(0); !reflect.DeepEqual(got, want) {
		t.Errorf("critical paths = %v, want %v", got, want)
	}
}

func TestCriticalPaths_Cyclic(t *testing.T) {
	g := New([]Item{item("A", "B"), item("B", "A")}, 1.0)

	if got := g.CriticalPaths(0); got != nil {
		t.Errorf("expected no paths on cyclic graph, got %v", got)
	}
}

func TestLayout_Coordinates(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A")}, 8.0)

	a, b := mustNode(t, g, "A"), mustNode(t, g, "B")
	if b.X <= a.X {
		t.Errorf("expected B right of A, got A.x=%d B.x=%d", a.X, b.X)
	}
	// 16h total -> bucket size 1 -> B starts in bucket 8.
	if b.X != 8*DefaultXSpacing {
		t.Errorf("B.x = %d, want %d", b.X, 8*DefaultXSpacing)
	}
}

func TestLayout_SameBucketGetsLanes(t *testing.T) {
	g := New([]Item{item("A"), item("B"), item("C")}, 8.0)

	for i, id := range []string{"A", "B", "C"} {
		n := mustNode(t, g, id)
		if n.X != 0 {
			t.Errorf("%s.x = %d, want 0", id, n.X)
		}
		if n.Y != i*DefaultYSpacing {
			t.Errorf("%s.y = %d, want %d", id, n.Y, i*DefaultYSpacing)
		}
	}
}

func TestLayout_BucketsScaleWithDuration(t *testing.T) {
	// 40 chained nodes of 1h: bucket size 2, so pairs share a column.
	items := make([]Item, 40)
	items[0] = item("n0")
	for i := 1; i < len(items); i++ {
		items[i] = item(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i-1))
	}
	g := New(items, 1.0)

	if n := mustNode(t, g, "n3"); n.X != 1*DefaultXSpacing {
		t.Errorf("n3.x = %d, want %d", n.X, DefaultXSpacing)
	}
	if n := mustNode(t, g, "n2"); n.Y != 0 {
		t.Errorf("n2.y = %d, want 0", n.Y)
	}
	if n := mustNode(t, g, "n3"); n.Y != DefaultYSpacing {
		t.Errorf("n3.y = %d, want %d", n.Y, DefaultYSpacing)
	}
}

func chain(ids ...string) []Item {
	items := []Item{item(ids[0])}
	for i := 1; i < len(ids); i++ {
		items = append(items, item(ids[i], ids[i-1]))
	}
	return items
}

func TestSubgraph(t *testing.T) {
	g := New(chain("A", "B", "C", "D"), 1.0)

	tests := []struct {
		name  string
		focus string
		depth int
		dir   Direction
		ids   []string
		edges int
	}{
		{"upstream", "C", 1, Upstream, []string{"B", "C"}, 1},
		{"downstream", "B", 1, Downstream, []string{"B", "C"}, 1},
		{"both", "B", 1, Both, []string{"A", "B", "C"}, 2},
		{"large depth", "A", 10, Downstream, []string{"A", "B", "C", "D"}, 3},
		{"depth zero", "B", 0, Both, []string{"B"}, 0},
		{"unknown direction", "B", 2, Direction("sideways"), []string{"B"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, edges := g.Subgraph(tt.focus, tt.depth, tt.dir)
			if !reflect.DeepEqual(ids, tt.ids) {
				t.Errorf("ids = %v, want %v", ids, tt.ids)
			}
			if len(edges) != tt.edges {
				t.Errorf("edges = %v, want %d", edges, tt.edges)
			}
		})
	}
}

func TestSubgraph_UnknownFocus(t *testing.T) {
	g := New(chain("A", "B"), 1.0)

	ids, edges := g.Subgraph("Z", 3, Both)
	if ids != nil || edges != nil {
		t.Errorf("expected nothing for unknown focus, got %v %v", ids, edges)
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"upstream", "downstream", "both"} {
		if d, err := ParseDirection(s); err != nil || string(d) != s {
			t.Errorf("ParseDirection(%q) = %q, %v", s, d, err)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestFilter(t *testing.T) {
	g := New([]Item{item("A"), item("B", "A"), item("C", "B"), item("D", "A")}, 1.0)

	f := g.Filter([]string{"A", "B", "ghost"})
	if f.Len() != 2 {
		t.Fatalf("expected 2 nodes, got %d", f.Len())
	}
	if len(f.Edges) != 1 || f.Edges[0] != (Edge{From: "A", To: "B"}) {
		t.Errorf("edges = %v, want [A->B]", f.Edges)
	}
	if !reflect.DeepEqual(f.TopologicalOrder, []string{"A", "B"}) {
		t.Errorf("order = %v, want [A B]", f.TopologicalOrder)
	}
	if !reflect.DeepEqual(f.CriticalPath, []string{"A", "B"}) {
		t.Errorf("critical path = %v, want [A B]", f.CriticalPath)
	}
	if b := mustNode(t, f, "B"); b.EarliestStart != 1 {
		t.Errorf("expected timing copied, B.ES = %.1f", b.EarliestStart)
	}

	// Mutating the filtered copy must not touch the parent.
	mustNode(t, f, "A").Title = "changed"
	if mustNode(t, g, "A").Title == "changed" {
		t.Error("filter shares nodes with parent graph")
	}
}

func TestFilter_EmptyAndAll(t *testing.T) {
	g := New(chain("A", "B", "C"), 1.0)

	if f := g.Filter(nil); f.Len() != 0 || len(f.Edges) != 0 {
		t.Errorf("expected empty filter, got %d nodes", f.Len())
	}
	f := g.Filter([]string{"A", "B", "C"})
	if f.Len() != 3 || len(f.Edges) != 2 {
		t.Errorf("expected full copy, got %d nodes %d edges", f.Len(), len(f.Edges))
	}
	if f.ProjectDuration != g.ProjectDuration {
		t.Errorf("project duration %.1f, want %.1f", f.ProjectDuration, g.ProjectDuration)
	}
}

func TestFilter_KeepsCycleInfo(t *testing.T) {
	g := New([]Item{item("A", "B"), item("B", "A"), item("C")}, 1.0)

	if f := g.Filter([]string{"A", "B"}); !f.CycleDetection.HasCycle {
		t.Error("expected cycle retained when both ends kept")
	}
	if f := g.Filter([]string{"A", "C"}); f.CycleDetection.HasCycle {
		t.Error("expected cycle dropped when an end is filtered out")
	}
}

func TestMarshalJSON(t *testing.T) {
	data, err := json.Marshal(New(nil, 1.0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, want := range []string{`"nodes":[]`, `"critical_path":[]`, `"cycle_edges":[]`, `"has_cycle":false`} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %s in %s", want, s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"open":        StatusOpen,
		"in_progress": StatusInProgress,
		"blocked":     StatusBlocked,
		"closed":      StatusClosed,
		"deferred":    StatusOpen,
		"":            StatusOpen,
	}
	for in, want := range cases {
		if got := ParseStatus(in); got != want {
			t.Errorf("ParseStatus(%q) = %q, want %q", in, got, want)
		}
	}
}

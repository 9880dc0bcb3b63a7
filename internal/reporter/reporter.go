// Package reporter formats computed schedules for the terminal and for
// machine consumption.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/joshharrison/beadpert/internal/pert"
	"github.com/joshharrison/beadpert/internal/ui"
)

// Wave is a set of nodes that can start at the same earliest time.
type Wave struct {
	Index      int      `json:"index"`
	Start      float64  `json:"start"`
	NodeIDs    []string `json:"node_ids"`
	IsCritical bool     `json:"is_critical"`
}

// Waves groups nodes by earliest start. Critical nodes come first within a
// wave, the rest keep topological order. Empty for a cyclic graph.
func Waves(g *pert.Graph) []Wave {
	groups := make(map[float64][]*pert.Node)
	for _, n := range g.NodesInOrder() {
		groups[n.EarliestStart] = append(groups[n.EarliestStart], n)
	}

	starts := make([]float64, 0, len(groups))
	for es := range groups {
		starts = append(starts, es)
	}
	sort.Float64s(starts)

	waves := make([]Wave, len(starts))
	for i, es := range starts {
		nodes := groups[es]
		sort.SliceStable(nodes, func(a, b int) bool {
			return nodes[a].IsCritical && !nodes[b].IsCritical
		})

		wave := Wave{Index: i, Start: es, NodeIDs: make([]string, len(nodes))}
		for j, n := range nodes {
			wave.NodeIDs[j] = n.ID
			if n.IsCritical {
				wave.IsCritical = true
			}
		}
		waves[i] = wave
	}
	return waves
}

// Summary returns a one-line description of the graph.
func Summary(g *pert.Graph) string {
	if g.CycleDetection.HasCycle {
		return fmt.Sprintf("%d nodes, %d edges, %s",
			g.Len(), len(g.Edges),
			ui.BoldRed(fmt.Sprintf("%d cycle edge(s), no schedule", len(g.CycleDetection.CycleEdges))))
	}
	return fmt.Sprintf("%d nodes, %d edges, duration %s, %d critical",
		g.Len(), len(g.Edges), ui.Bold(ui.Hours(g.ProjectDuration)), len(g.CriticalPath))
}

// PrintSchedule writes the per-node schedule as a table in topological order.
func PrintSchedule(w io.Writer, g *pert.Graph) {
	if g.CycleDetection.HasCycle {
		PrintCycles(w, g)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "ID", "Title", "ES", "EF", "LS", "LF", "Slack", ""})
	for _, n := range g.NodesInOrder() {
		id := n.ID
		if n.IsCritical {
			id = ui.BoldYellow(id)
		} else {
			id = ui.BoldMagenta(id)
		}
		t.AppendRow(table.Row{
			ui.StatusIcon(n.Status), id, truncate(n.Title, 40),
			hours(n.EarliestStart), hours(n.EarliestFinish),
			hours(n.LatestStart), hours(n.LatestFinish),
			hours(n.Slack), ui.Critical(n.IsCritical),
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})
	t.AppendFooter(table.Row{"", "", "Project duration", "", hours(g.ProjectDuration)})
	t.Render()
	fmt.Fprintln(w, Summary(g))
}

// PrintWaves writes the waves with their nodes.
func PrintWaves(w io.Writer, g *pert.Graph) {
	for _, wave := range Waves(g) {
		label := ui.BoldWhite(fmt.Sprintf("WAVE %d", wave.Index+1))
		if wave.IsCritical {
			label += " " + ui.BoldYellow("⚡")
		}
		fmt.Fprintf(w, "  %s %s\n", label, ui.Dim("starts at "+ui.Hours(wave.Start)))
		for _, id := range wave.NodeIDs {
			n, _ := g.Node(id)
			fmt.Fprintf(w, "    %s %s %s %s\n",
				ui.StatusIcon(n.Status), ui.BoldMagenta(n.ID), truncate(n.Title, 50), ui.Critical(n.IsCritical))
		}
	}
}

// PrintCritical writes the critical set and up to limit contiguous critical
// paths.
func PrintCritical(w io.Writer, g *pert.Graph, limit int) {
	if g.CycleDetection.HasCycle {
		PrintCycles(w, g)
		return
	}
	if len(g.CriticalPath) == 0 {
		fmt.Fprintln(w, ui.Dim("No critical nodes."))
		return
	}

	fmt.Fprintf(w, "%s %s\n", ui.BoldYellow("Critical:"), strings.Join(g.CriticalPath, ", "))
	fmt.Fprintf(w, "%s %s\n", ui.Bold("Duration:"), ui.Hours(g.ProjectDuration))
	for i, path := range g.CriticalPaths(limit) {
		fmt.Fprintf(w, "  %d. %s\n", i+1, ui.BoldYellow(strings.Join(path, " → ")))
	}
}

// PrintCycles writes the cycle report. Acyclic graphs get a single line.
func PrintCycles(w io.Writer, g *pert.Graph) {
	cd := g.CycleDetection
	if !cd.HasCycle {
		fmt.Fprintln(w, ui.Green("✓ No dependency cycles."))
		return
	}

	fmt.Fprintf(w, "%s %s\n", ui.BoldRed("⚠ Dependency cycle detected."),
		ui.Dim("Timing and layout are unavailable until it is broken."))
	fmt.Fprintln(w, ui.Bold("Closing edges:"))
	for _, e := range cd.CycleEdges {
		fmt.Fprintf(w, "  %s → %s\n", ui.BoldMagenta(e.From), ui.BoldMagenta(e.To))
	}
	fmt.Fprintln(w, ui.Bold("Cycles:"))
	for _, members := range cd.Cycles {
		loop := append(append([]string{}, members...), members[0])
		fmt.Fprintf(w, "  %s\n", ui.Red(strings.Join(loop, " → ")))
	}
}

// Report is the JSON document for a computed graph.
type Report struct {
	Graph         *pert.Graph `json:"graph"`
	Waves         []Wave      `json:"waves"`
	CriticalPaths [][]string  `json:"critical_paths"`
}

// JSON returns the machine-readable report.
func JSON(g *pert.Graph, limit int) ([]byte, error) {
	r := Report{
		Graph:         g,
		Waves:         Waves(g),
		CriticalPaths: g.CriticalPaths(limit),
	}
	if r.Waves == nil {
		r.Waves = []Wave{}
	}
	if r.CriticalPaths == nil {
		r.CriticalPaths = [][]string{}
	}
	return json.MarshalIndent(r, "", "  ")
}

func hours(h float64) string {
	return fmt.Sprintf("%.1f", h)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/joshharrison/beadpert/internal/pert"
)

// DOT writes g in Graphviz format. Critical nodes and the edges between them
// are drawn bold red; cycle edges dashed.
func DOT(w io.Writer, g *pert.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph beadpert {")
	fmt.Fprintln(bw, "  rankdir=LR;")
	fmt.Fprintln(bw, "  node [shape=box, style=rounded];")
	fmt.Fprintln(bw)

	for _, n := range g.Nodes() {
		label := fmt.Sprintf("%s\\n%s", n.ID, dotEscape(n.Title))
		if !g.CycleDetection.HasCycle {
			label += fmt.Sprintf("\\nES %.1f  slack %.1f", n.EarliestStart, n.Slack)
		}
		attrs := fmt.Sprintf(`label="%s"`, label)
		if n.IsCritical {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Fprintf(bw, "  %q [%s];\n", n.ID, attrs)
	}

	fmt.Fprintln(bw)

	back := make(map[pert.Edge]bool, len(g.CycleDetection.CycleEdges))
	for _, e := range g.CycleDetection.CycleEdges {
		back[e] = true
	}
	for _, e := range g.Edges {
		style := ""
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		switch {
		case back[e]:
			style = ` [color=orange, style=dashed]`
		case from.IsCritical && to.IsCritical:
			style = ` [color=red, penwidth=2]`
		}
		fmt.Fprintf(bw, "  %q -> %q%s;\n", e.From, e.To, style)
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotEscape(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch r {
		case '"', '\\':
			out = append(out, '\\', r)
		case '\n':
			out = append(out, ' ')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

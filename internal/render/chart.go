// Package render draws computed graphs as terminal PERT charts and as
// Graphviz DOT.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joshharrison/beadpert/internal/pert"
)

// Config controls chart drawing.
type Config struct {
	NodeWidth  int // box width including borders
	NodeHeight int // box height including borders
	ColGap     int // columns between boxes in adjacent buckets
	RowGap     int // rows between lanes

	ShowCritical bool
	ShowLegend   bool
	Selected     string // node drawn with a highlighted border

	Focus          string // when set, only the subgraph around this node is drawn
	FocusDepth     int
	FocusDirection pert.Direction
}

// DefaultConfig returns the chart settings used by the CLI.
func DefaultConfig() Config {
	return Config{
		NodeWidth:      20,
		NodeHeight:     5,
		ColGap:         6,
		RowGap:         1,
		ShowCritical:   true,
		ShowLegend:     true,
		FocusDepth:     1,
		FocusDirection: pert.Both,
	}
}

type borders struct {
	tl, tr, bl, br, h, v rune
}

var (
	lightBox  = borders{'┌', '┐', '└', '┘', '─', '│'}
	heavyBox  = borders{'┏', '┓', '┗', '┛', '━', '┃'}
	doubleBox = borders{'╔', '╗', '╚', '╝', '═', '║'}
)

type chart struct {
	g      *pert.Graph
	cfg    Config
	canvas *Canvas
	top    int // first canvas row of the diagram
	pos    map[string][2]int
}

// Chart draws g. Nodes sit on a grid derived from their layout cells, with
// empty buckets and lanes squeezed out. A cyclic graph has no layout, so only
// the warning and the cycles are drawn.
func Chart(g *pert.Graph, cfg Config) *Canvas {
	if cfg.NodeWidth < 4 {
		cfg.NodeWidth = 4
	}
	if cfg.NodeHeight < 3 {
		cfg.NodeHeight = 3
	}
	c := &chart{g: g, cfg: cfg, canvas: &Canvas{}}

	if g.CycleDetection.HasCycle {
		c.drawCycles()
		c.drawStatus()
		return c.canvas
	}

	if cfg.ShowLegend {
		c.drawLegend()
		c.canvas.appendLine("", clsNone)
	}
	c.top = c.canvas.Height()

	ids, edges := c.visible()
	c.place(ids)
	for _, e := range edges {
		c.drawEdge(e)
	}
	for _, id := range ids {
		n, _ := g.Node(id)
		c.drawNode(n)
	}
	c.drawStatus()
	return c.canvas
}

func (c *chart) visible() ([]string, []pert.Edge) {
	if c.cfg.Focus != "" {
		return c.g.Subgraph(c.cfg.Focus, c.cfg.FocusDepth, c.cfg.FocusDirection)
	}
	ids := make([]string, 0, c.g.Len())
	for _, n := range c.g.NodesInOrder() {
		ids = append(ids, n.ID)
	}
	return ids, c.g.Edges
}

// place maps layout cells to canvas positions, keeping only the columns and
// rows that hold a visible node.
func (c *chart) place(ids []string) {
	var xs, ys []int
	seenX, seenY := map[int]bool{}, map[int]bool{}
	for _, id := range ids {
		n, _ := c.g.Node(id)
		if !seenX[n.X] {
			seenX[n.X] = true
			xs = append(xs, n.X)
		}
		if !seenY[n.Y] {
			seenY[n.Y] = true
			ys = append(ys, n.Y)
		}
	}
	sort.Ints(xs)
	sort.Ints(ys)
	col, row := rank(xs), rank(ys)

	c.pos = make(map[string][2]int, len(ids))
	for _, id := range ids {
		n, _ := c.g.Node(id)
		c.pos[id] = [2]int{
			col[n.X] * (c.cfg.NodeWidth + c.cfg.ColGap),
			c.top + row[n.Y]*(c.cfg.NodeHeight+c.cfg.RowGap),
		}
	}
}

func rank(sorted []int) map[int]int {
	m := make(map[int]int, len(sorted))
	for i, v := range sorted {
		m[v] = i
	}
	return m
}

func (c *chart) drawNode(n *pert.Node) {
	p := c.pos[n.ID]
	x, y := p[0], p[1]
	w, h := c.cfg.NodeWidth, c.cfg.NodeHeight

	cls, b := clsNode, lightBox
	switch {
	case n.ID == c.cfg.Selected:
		cls, b = clsSelected, doubleBox
	case n.IsCritical && c.cfg.ShowCritical:
		cls, b = clsCritical, heavyBox
	}

	c.canvas.set(x, y, b.tl, cls)
	c.canvas.set(x+w-1, y, b.tr, cls)
	c.canvas.set(x, y+h-1, b.bl, cls)
	c.canvas.set(x+w-1, y+h-1, b.br, cls)
	for dx := 1; dx < w-1; dx++ {
		c.canvas.set(x+dx, y, b.h, cls)
		c.canvas.set(x+dx, y+h-1, b.h, cls)
	}

	content := []string{
		n.ID,
		n.Title,
		fmt.Sprintf("ES:%.1f", n.EarliestStart),
	}
	for dy := 1; dy < h-1; dy++ {
		c.canvas.set(x, y+dy, b.v, cls)
		line := ""
		if dy-1 < len(content) {
			line = truncate(content[dy-1], w-2)
		}
		line += strings.Repeat(" ", w-2-len([]rune(line)))
		c.canvas.text(x+1, y+dy, line, cls)
		c.canvas.set(x+w-1, y+dy, b.v, cls)
	}
}

// drawEdge connects the middle of from's right side to the middle of to's
// left side, turning halfway when the two sit in different lanes. Edges that
// would run backwards or vertically are skipped.
func (c *chart) drawEdge(e pert.Edge) {
	from, okFrom := c.pos[e.From]
	to, okTo := c.pos[e.To]
	if !okFrom || !okTo {
		return
	}
	fx, fy := from[0]+c.cfg.NodeWidth, from[1]+c.cfg.NodeHeight/2
	tx, ty := to[0], to[1]+c.cfg.NodeHeight/2
	if fx >= tx {
		return
	}

	cls, h, v := clsEdge, '─', '│'
	down, up := [2]rune{'┐', '└'}, [2]rune{'┘', '┌'}
	if c.cfg.ShowCritical && c.isCritical(e.From) && c.isCritical(e.To) {
		cls, h, v = clsCriticalEdge, '━', '┃'
		down, up = [2]rune{'┓', '┗'}, [2]rune{'┛', '┏'}
	}

	if fy == ty {
		for x := fx; x < tx-1; x++ {
			c.canvas.set(x, fy, h, cls)
		}
		c.canvas.set(tx-1, ty, '→', cls)
		return
	}

	turn := fx + (tx-fx)/2
	for x := fx; x < turn; x++ {
		c.canvas.set(x, fy, h, cls)
	}
	lo, hi := fy, ty
	corners := down
	if fy > ty {
		lo, hi = ty, fy
		corners = up
	}
	for y := lo + 1; y < hi; y++ {
		c.canvas.set(turn, y, v, cls)
	}
	c.canvas.set(turn, fy, corners[0], cls)
	c.canvas.set(turn, ty, corners[1], cls)
	for x := turn + 1; x < tx-1; x++ {
		c.canvas.set(x, ty, h, cls)
	}
	c.canvas.set(tx-1, ty, '→', cls)
}

func (c *chart) isCritical(id string) bool {
	n, ok := c.g.Node(id)
	return ok && n.IsCritical
}

func (c *chart) drawLegend() {
	y := c.canvas.Height()
	x := 2
	for _, item := range []struct {
		text string
		cls  class
	}{
		{"─→ Dependency", clsEdge},
		{"━→ Critical path", clsCriticalEdge},
		{"┌┐ Normal", clsNode},
		{"┏┓ Critical", clsCritical},
		{"╔╗ Selected", clsSelected},
	} {
		c.canvas.text(x, y, item.text, item.cls)
		x += len([]rune(item.text)) + 2
	}
}

func (c *chart) drawCycles() {
	cd := c.g.CycleDetection
	c.canvas.appendLine(fmt.Sprintf("⚠ %d cycle(s) detected", len(cd.CycleEdges)), clsWarning)
	for _, members := range cd.Cycles {
		loop := append(append([]string{}, members...), members[0])
		c.canvas.appendLine("  "+strings.Join(loop, " → "), clsCriticalEdge)
	}
}

func (c *chart) drawStatus() {
	var status string
	if n, ok := c.g.Node(c.cfg.Selected); ok {
		status = fmt.Sprintf("Selected: %s | ES: %.1f LS: %.1f Slack: %.1f",
			n.ID, n.EarliestStart, n.LatestStart, n.Slack)
	} else {
		onOff := "OFF"
		if c.cfg.ShowCritical {
			onOff = "ON"
		}
		status = fmt.Sprintf("%d nodes, %d edges | duration %.1fh | critical: %s",
			c.g.Len(), len(c.g.Edges), c.g.ProjectDuration, onOff)
	}
	if c.cfg.Focus != "" {
		status += fmt.Sprintf(" | Focus: %s on %s (depth %d)",
			c.cfg.FocusDirection, c.cfg.Focus, c.cfg.FocusDepth)
	}
	c.canvas.appendLine("", clsNone)
	c.canvas.appendLine(status, clsDim)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

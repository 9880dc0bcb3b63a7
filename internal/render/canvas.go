package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type class uint8

const (
	clsNone class = iota
	clsNode
	clsCritical
	clsSelected
	clsEdge
	clsCriticalEdge
	clsWarning
	clsDim
)

var styles = map[class]lipgloss.Style{
	clsNode:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	clsCritical:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	clsSelected:     lipgloss.NewStyle().Background(lipgloss.Color("8")).Foreground(lipgloss.Color("15")).Bold(true),
	clsEdge:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	clsCriticalEdge: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	clsWarning:      lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	clsDim:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

type cell struct {
	r   rune
	cls class
}

// Canvas is a grid of styled runes that grows as it is drawn on.
type Canvas struct {
	rows [][]cell
}

func (c *Canvas) set(x, y int, r rune, cls class) {
	if x < 0 || y < 0 {
		return
	}
	for len(c.rows) <= y {
		c.rows = append(c.rows, nil)
	}
	row := c.rows[y]
	for len(row) <= x {
		row = append(row, cell{r: ' '})
	}
	row[x] = cell{r: r, cls: cls}
	c.rows[y] = row
}

func (c *Canvas) text(x, y int, s string, cls class) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, cls)
	}
}

// appendLine writes s on a new row below everything drawn so far.
func (c *Canvas) appendLine(s string, cls class) {
	y := len(c.rows)
	c.rows = append(c.rows, nil)
	c.text(0, y, s, cls)
}

// Height returns the number of rows.
func (c *Canvas) Height() int {
	return len(c.rows)
}

// Plain returns the canvas text without styling.
func (c *Canvas) Plain() string {
	var b strings.Builder
	for _, row := range c.rows {
		line := make([]rune, len(row))
		for i, cl := range row {
			line[i] = cl.r
		}
		b.WriteString(strings.TrimRight(string(line), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// String renders the canvas with lipgloss styles applied to each run of
// same-class cells.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.rows {
		end := len(row)
		for end > 0 && row[end-1].r == ' ' && row[end-1].cls == clsNone {
			end--
		}
		for start := 0; start < end; {
			cls := row[start].cls
			stop := start
			var run []rune
			for stop < end && row[stop].cls == cls {
				run = append(run, row[stop].r)
				stop++
			}
			if st, ok := styles[cls]; ok {
				b.WriteString(st.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			start = stop
		}
		b.WriteByte('\n')
	}
	return b.String()
}

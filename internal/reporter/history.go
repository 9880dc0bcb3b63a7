package reporter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/joshharrison/beadpert/internal/state"
	"github.com/joshharrison/beadpert/internal/ui"
)

// PrintHistory writes recorded snapshots, newest first, with the change in
// project duration against the next older one.
func PrintHistory(w io.Writer, snaps []state.Snapshot) {
	if len(snaps) == 0 {
		fmt.Fprintln(w, ui.Dim("No snapshots recorded. Run with --record or enable history in the config."))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"When", "Nodes", "Edges", "Duration", "Δ", "Critical path"})
	for i, s := range snaps {
		delta := ""
		if i+1 < len(snaps) && !s.HasCycle && !snaps[i+1].HasCycle {
			delta = formatDelta(s.ProjectDuration - snaps[i+1].ProjectDuration)
		}
		duration := hours(s.ProjectDuration)
		path := truncate(strings.Join(s.CriticalPath, " → "), 50)
		if s.HasCycle {
			duration = ui.Red("cycle")
			path = ui.Red(fmt.Sprintf("%d cycle edge(s)", s.CycleEdges))
		}
		t.AppendRow(table.Row{
			s.CreatedAt.Local().Format(time.DateTime), s.Nodes, s.Edges, duration, delta, path,
		})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

func formatDelta(d float64) string {
	switch {
	case d > 0:
		return ui.Red(fmt.Sprintf("+%.1f", d))
	case d < 0:
		return ui.Green(fmt.Sprintf("%.1f", d))
	default:
		return ui.Dim("0")
	}
}

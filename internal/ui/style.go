package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/joshharrison/beadpert/internal/pert"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	Yellow      = color.New(color.FgYellow).SprintFunc()
	Magenta     = color.New(color.FgMagenta).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldGreen   = color.New(color.Bold, color.FgGreen).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
	BoldWhite   = color.New(color.Bold, color.FgWhite).SprintFunc()
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor turns colored output on or off for both the message helpers and
// the lipgloss chart styles. Color is also off whenever stdout is not a
// terminal.
func SetColor(enabled bool) {
	color.NoColor = !enabled || !IsTerminal(os.Stdout)
	if color.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// ColorEnabled reports the current color setting.
func ColorEnabled() bool {
	return !color.NoColor
}

// PrintLogo renders the colored beadpert logo to w.
func PrintLogo(w io.Writer) {
	frame := color.New(color.FgCyan)
	beads := color.New(color.FgYellow)
	threads := color.New(color.FgCyan, color.Faint)
	brand := color.New(color.Bold, color.FgMagenta)

	fmt.Fprintln(w)
	frame.Fprintln(w, "   +--------------------------+")
	beads.Fprintln(w, "   |  o--o--o     o--o--o     |")
	threads.Fprintln(w, "   |         \\   /           |")
	brand.Fprintln(w, "   |  B  E  A  D  P  E  R  T  |")
	threads.Fprintln(w, "   |         /   \\           |")
	beads.Fprintln(w, "   |  o--o--o     o--o--o     |")
	frame.Fprintln(w, "   +--------------------------+")
	fmt.Fprintf(w, "   %s\n", Dim("Critical path analysis for beads"))
	fmt.Fprintln(w)
}

// StatusIcon returns a colored status icon for compact table display.
func StatusIcon(status pert.Status) string {
	switch status {
	case pert.StatusClosed:
		return Green("✓")
	case pert.StatusInProgress:
		return Cyan("●")
	case pert.StatusBlocked:
		return Red("⊘")
	default:
		return Dim("◌")
	}
}

// Critical marks critical nodes in tables and lists.
func Critical(isCritical bool) string {
	if isCritical {
		return BoldYellow("⚡")
	}
	return " "
}

// Hours formats a time in hours the way the charts and tables show it.
func Hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

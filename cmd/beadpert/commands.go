package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshharrison/beadpert/internal/pert"
	"github.com/joshharrison/beadpert/internal/render"
	"github.com/joshharrison/beadpert/internal/reporter"
	"github.com/joshharrison/beadpert/internal/state"
	"github.com/joshharrison/beadpert/internal/ui"
)

// chartFlags are shared by chart and watch.
type chartFlags struct {
	focus      string
	depth      int
	direction  string
	selected   string
	noCritical bool
	noLegend   bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.focus, "focus", "", "Only draw the neighbourhood of this issue")
	cmd.Flags().IntVar(&f.depth, "depth", 1, "Hops to include around --focus")
	cmd.Flags().StringVar(&f.direction, "direction", string(pert.Both), "Focus direction: upstream, downstream or both")
	cmd.Flags().StringVar(&f.selected, "select", "", "Highlight this issue and show its timing")
	cmd.Flags().BoolVar(&f.noCritical, "no-critical", false, "Do not highlight the critical path")
	cmd.Flags().BoolVar(&f.noLegend, "no-legend", false, "Hide the legend")
}

func (f *chartFlags) config(g *pert.Graph) (render.Config, error) {
	rc := render.DefaultConfig()
	rc.ShowCritical = !f.noCritical
	rc.ShowLegend = !f.noLegend
	rc.Selected = f.selected
	if f.focus == "" {
		return rc, nil
	}
	if _, ok := g.Node(f.focus); !ok {
		return rc, fmt.Errorf("unknown issue %q", f.focus)
	}
	dir, err := pert.ParseDirection(f.direction)
	if err != nil {
		return rc, err
	}
	if f.depth < 0 {
		return rc, fmt.Errorf("--depth must be >= 0")
	}
	rc.Focus, rc.FocusDepth, rc.FocusDirection = f.focus, f.depth, dir
	return rc, nil
}

// chartText renders the canvas styled, or as plain text when colour is off.
func chartText(c *render.Canvas) string {
	if !ui.ColorEnabled() {
		return c.Plain()
	}
	return c.String()
}

func chartCmd() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Draw the PERT chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := analyze(cmd.Context())
			if err != nil {
				return err
			}
			if flagJSON {
				return printReport(g, 0)
			}
			rc, err := flags.config(g)
			if err != nil {
				return err
			}
			fmt.Print(chartText(render.Chart(g, rc)))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func scheduleCmd() *cobra.Command {
	var flagWaves bool

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print earliest/latest start and finish, slack and criticality per issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := analyze(cmd.Context())
			if err != nil {
				return err
			}
			if flagJSON {
				return printReport(g, 0)
			}
			reporter.PrintSchedule(os.Stdout, g)
			if flagWaves && !g.CycleDetection.HasCycle {
				fmt.Println()
				reporter.PrintWaves(os.Stdout, g)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagWaves, "waves", false, "Also group issues by earliest start")
	return cmd
}

func criticalCmd() *cobra.Command {
	var flagLimit int

	cmd := &cobra.Command{
		Use:   "critical",
		Short: "Show the critical path",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := analyze(cmd.Context())
			if err != nil {
				return err
			}
			if flagJSON {
				paths := g.CriticalPaths(flagLimit)
				if paths == nil {
					paths = [][]string{}
				}
				return outputJSON(struct {
					CriticalPath    []string   `json:"critical_path"`
					CriticalPaths   [][]string `json:"critical_paths"`
					ProjectDuration float64    `json:"project_duration"`
					HasCycle        bool       `json:"has_cycle"`
				}{
					CriticalPath:    orEmpty(g.CriticalPath),
					CriticalPaths:   paths,
					ProjectDuration: g.ProjectDuration,
					HasCycle:        g.CycleDetection.HasCycle,
				})
			}
			reporter.PrintCritical(os.Stdout, g, flagLimit)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum number of distinct critical paths to list (0 for all)")
	return cmd
}

func cyclesCmd() *cobra.Command {
	var flagFail bool

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Report dependency cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := analyze(cmd.Context())
			if err != nil {
				return err
			}
			if flagJSON {
				if err := outputJSON(g.CycleDetection); err != nil {
					return err
				}
			} else {
				reporter.PrintCycles(os.Stdout, g)
			}
			if flagFail && g.CycleDetection.HasCycle {
				return fmt.Errorf("%d dependency cycle(s)", len(g.CycleDetection.Cycles))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagFail, "fail", false, "Exit non-zero when a cycle exists")
	return cmd
}

func focusCmd() *cobra.Command {
	var (
		flagDepth     int
		flagDirection string
	)

	cmd := &cobra.Command{
		Use:   "focus <issue-id>",
		Short: "Show the schedule of the issues around one issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := analyze(cmd.Context())
			if err != nil {
				return err
			}
			if _, ok := g.Node(args[0]); !ok {
				return fmt.Errorf("unknown issue %q", args[0])
			}
			dir, err := pert.ParseDirection(flagDirection)
			if err != nil {
				return err
			}

			ids, _ := g.Subgraph(args[0], flagDepth, dir)
			sub := g.Filter(ids)
			if flagJSON {
				return printReport(sub, 0)
			}
			fmt.Printf("%s %s %s\n\n", ui.BoldCyan("Focus:"), ui.BoldMagenta(args[0]),
				ui.Dim(fmt.Sprintf("(%s, depth %d, %d issues)", dir, flagDepth, len(ids))))
			reporter.PrintSchedule(os.Stdout, sub)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagDepth, "depth", 1, "Hops to include")
	cmd.Flags().StringVar(&flagDirection, "direction", string(pert.Both), "upstream, downstream or both")
	return cmd
}

func dotCmd() *cobra.Command {
	var flagOutput string

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Write the dependency network in Graphviz DOT format",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := analyze(cmd.Context())
			if err != nil {
				return err
			}
			if flagOutput == "" {
				return render.DOT(os.Stdout, g)
			}
			f, err := os.Create(flagOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := render.DOT(f, g); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %s\n", flagOutput)
			return nil
		},
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func jsonCmd() *cobra.Command {
	var flagLimit int

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Print the full analysis as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagJSON = true
			g, err := analyze(cmd.Context())
			if err != nil {
				return err
			}
			return printReport(g, flagLimit)
		},
	}
	cmd.Flags().IntVar(&flagLimit, "limit", 10, "Maximum number of critical paths to include (0 for all)")
	return cmd
}

func historyCmd() *cobra.Command {
	var flagLimit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded analysis snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := state.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			snaps, err := store.List(cmd.Context(), flagLimit)
			if err != nil {
				return err
			}
			if flagJSON {
				if snaps == nil {
					snaps = []state.Snapshot{}
				}
				return outputJSON(snaps)
			}
			reporter.PrintHistory(os.Stdout, snaps)
			return nil
		},
	}
	cmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of snapshots to show (0 for all)")
	return cmd
}

func printReport(g *pert.Graph, limit int) error {
	data, err := reporter.JSON(g, limit)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

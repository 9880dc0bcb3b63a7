package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshharrison/beadpert/internal/analyzer"
	"github.com/joshharrison/beadpert/internal/bd"
	"github.com/joshharrison/beadpert/internal/claude"
	"github.com/joshharrison/beadpert/internal/pert"
	"github.com/joshharrison/beadpert/internal/ui"
)

func inferDepsCmd() *cobra.Command {
	var (
		flagApply    bool
		flagModel    string
		flagOutput   string
		flagFromFile string
	)

	cmd := &cobra.Command{
		Use:   "infer-deps",
		Short: "Use Claude to infer missing dependencies from issue titles",
		Long: `Sends issue titles and their existing dependencies to Claude and infers
missing dependency edges. Edges that name unknown issues, repeat an existing
dependency or would close a cycle are dropped. By default runs in dry-run
mode; use --apply to write the edges to beads with bd dep add.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := checkApply(flagApply, flagFrom); err != nil {
				return err
			}
			a, closeFn, err := newAnalyzer()
			if err != nil {
				return err
			}
			defer closeFn()

			items, err := a.Source.List(ctx)
			if err != nil {
				return fmt.Errorf("list issues: %w", err)
			}
			items = analyzer.FilterStatus(items, a.Statuses)
			if len(items) == 0 {
				return fmt.Errorf("no issues found")
			}

			var result *claude.InferDepsResult
			if flagFromFile != "" {
				if result, err = loadInferred(flagFromFile); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "📂 Loaded %s edges from %s\n", ui.Bold(len(result.Edges)), ui.Dim(flagFromFile))
			} else {
				fmt.Fprintf(os.Stderr, "🔍 Sending %s issues to Claude for dependency inference...\n", ui.Bold(len(items)))

				claudeClient, err := claude.NewClient("", flagModel)
				if err != nil {
					return err
				}
				stopSpin := ui.Spin("Waiting for Claude...")
				result, err = claudeClient.InferDeps(ctx, claude.NetworkOf(items, pert.Build(items, a.Options)))
				stopSpin()
				if err != nil {
					return fmt.Errorf("infer deps: %w", err)
				}
			}

			accepted, skipped := claude.Validate(items, result.Edges)
			for _, s := range skipped {
				fmt.Fprintf(os.Stderr, "  %s %s: %s -> %s\n", ui.Yellow("⏭️  SKIP:"), s.Reason, s.Edge.BlockerID, s.Edge.BlockedID)
			}

			if flagJSON {
				if accepted == nil {
					accepted = []claude.DepEdge{}
				}
				out := struct {
					Edges   []claude.DepEdge `json:"edges"`
					Summary string           `json:"summary"`
				}{
					Edges:   accepted,
					Summary: result.Summary,
				}
				if flagOutput != "" {
					data, err := json.MarshalIndent(out, "", "  ")
					if err != nil {
						return err
					}
					if err := os.WriteFile(flagOutput, data, 0644); err != nil {
						return err
					}
					fmt.Fprintf(os.Stderr, "Wrote %d edges to %s\n", len(accepted), flagOutput)
				} else if err := outputJSON(out); err != nil {
					return err
				}
			} else {
				fmt.Printf("\n🔗 Inferred %s dependencies (%d from Claude, %d after validation):\n\n",
					ui.Bold(len(accepted)), len(result.Edges), len(accepted))
				for _, e := range accepted {
					fmt.Printf("  %s %s blocked by %s  %s\n", ui.Cyan("→"), ui.BoldMagenta(e.BlockedID), ui.BoldMagenta(e.BlockerID), ui.Dim(e.Reason))
				}
				if result.Summary != "" {
					fmt.Printf("\n💡 %s %s\n", ui.BoldWhite("Summary:"), result.Summary)
				}
			}

			if !flagApply {
				if !flagJSON {
					fmt.Printf("\n🎯 %s\n", ui.Yellow("Dry run. Use --apply to write these dependencies to beads."))
				}
				return nil
			}
			client := bd.NewClient(cfg.BdBin, cfg.DB)
			fmt.Fprintf(os.Stderr, "\n📝 Applying %s dependencies...\n", ui.Bold(len(accepted)))
			applied := 0
			for _, e := range accepted {
				if err := client.AddDep(ctx, e.BlockedID, e.BlockerID); err != nil {
					fmt.Fprintf(os.Stderr, "  %s dep add %s %s: %v\n", ui.Red("❌ ERROR:"), e.BlockedID, e.BlockerID, err)
					continue
				}
				applied++
				fmt.Fprintf(os.Stderr, "  %s %s blocked by %s\n", ui.Green("✅ OK:"), ui.BoldMagenta(e.BlockedID), ui.BoldMagenta(e.BlockerID))
			}
			fmt.Fprintf(os.Stderr, "\n🏁 Applied %s/%d dependencies.\n", ui.BoldGreen(applied), len(accepted))
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagApply, "apply", false, "Write inferred deps to beads (default: dry-run)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Claude model to use (default: Sonnet)")
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Save JSON output to file (use with --json)")
	cmd.Flags().StringVar(&flagFromFile, "from-file", "", "Load inferred deps from a JSON file instead of calling Claude")

	return cmd
}

// checkApply rejects --apply when issues come from an export file, since
// the edges could not be written back.
func checkApply(apply bool, from string) error {
	if apply && from != "" {
		return fmt.Errorf("--apply needs a bd database, not --from")
	}
	return nil
}

// loadInferred reads a saved infer-deps result, fenced or not.
func loadInferred(path string) (*claude.InferDepsResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read from-file: %w", err)
	}
	result, err := claude.ParseResult(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse from-file: %w", err)
	}
	return result, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joshharrison/beadpert/internal/analyzer"
	"github.com/joshharrison/beadpert/internal/bd"
	"github.com/joshharrison/beadpert/internal/config"
	"github.com/joshharrison/beadpert/internal/logging"
	"github.com/joshharrison/beadpert/internal/pert"
	"github.com/joshharrison/beadpert/internal/state"
	"github.com/joshharrison/beadpert/internal/ui"
)

var (
	flagDB        string
	flagBdBin     string
	flagConfig    string
	flagFrom      string
	flagDuration  float64
	flagTolerance float64
	flagStatus    []string
	flagAll       bool
	flagFilter    string
	flagJSON      bool
	flagRecord    bool
	flagNoColor   bool
	flagLogLevel  string
	flagLogFormat string

	cfg config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "beadpert",
		Short: "Critical path analysis for beads issues",
		Long: `Beadpert reads issues and their dependencies from a Beads database,
builds the dependency network, schedules it with the critical path method and
draws it as a PERT chart. Cycles are reported instead of scheduled.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Beads database path")
	rootCmd.PersistentFlags().StringVar(&flagBdBin, "bd", "", "bd binary (default: bd on PATH)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&flagFrom, "from", "", "Read issues from a bd export (JSON or JSONL) instead of running bd")
	rootCmd.PersistentFlags().Float64Var(&flagDuration, "duration", pert.DefaultDuration, "Hours assumed for every issue")
	rootCmd.PersistentFlags().Float64Var(&flagTolerance, "tolerance", pert.DefaultTolerance, "Slack below which an issue is critical")
	rootCmd.PersistentFlags().StringSliceVar(&flagStatus, "status", nil, "Statuses to include (default: open,in_progress,blocked)")
	rootCmd.PersistentFlags().BoolVar(&flagAll, "all", false, "Include issues in every status")
	rootCmd.PersistentFlags().StringVar(&flagFilter, "filter", "", "Filter issues (priority<=N, priority=N, label=X, type=X)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&flagRecord, "record", false, "Record a snapshot in the history database")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")

	rootCmd.AddCommand(chartCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(criticalCmd())
	rootCmd.AddCommand(cyclesCmd())
	rootCmd.AddCommand(focusCmd())
	rootCmd.AddCommand(dotCmd())
	rootCmd.AddCommand(jsonCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(inferDepsCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ui.BoldRed("error:"), err)
		stop()
		os.Exit(1)
	}
}

// setup loads the config file, applies flag overrides and installs the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DB = flagDB
	}
	if flags.Changed("bd") {
		cfg.BdBin = flagBdBin
	}
	if flags.Changed("duration") {
		cfg.DefaultDuration = flagDuration
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = flagTolerance
	}
	if flags.Changed("status") {
		cfg.Statuses = flagStatus
	}
	if flagAll {
		cfg.Statuses = nil
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	slog.SetDefault(logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr))
	ui.SetColor(!flagNoColor && !flagJSON)
	return nil
}

// newAnalyzer wires the item source, status filter and optional history store.
// The returned close function releases the store.
func newAnalyzer() (*analyzer.Analyzer, func(), error) {
	keep, err := bd.ParseFilter(flagFilter)
	if err != nil {
		return nil, nil, fmt.Errorf("apply filter: %w", err)
	}

	var src analyzer.Source
	if flagFrom != "" {
		src = bd.FileSource{Path: flagFrom, Keep: keep}
	} else {
		src = bd.CLISource{Client: bd.NewClient(cfg.BdBin, cfg.DB), Statuses: cfg.Statuses, Keep: keep}
	}

	statuses, err := analyzer.ParseStatuses(cfg.Statuses)
	if err != nil {
		return nil, nil, err
	}

	a := analyzer.New(src, cfg.Options())
	a.Statuses = statuses

	closeFn := func() {}
	if flagRecord || cfg.History.Enabled {
		store, err := state.Open(cfg.History.Path)
		if err != nil {
			return nil, nil, err
		}
		a.Recorder = store
		closeFn = func() { store.Close() }
	}
	return a, closeFn, nil
}

// analyze runs one analysis with a spinner on interactive terminals.
func analyze(ctx context.Context) (*pert.Graph, error) {
	a, closeFn, err := newAnalyzer()
	if err != nil {
		return nil, err
	}
	defer closeFn()

	stopSpin := func() {}
	if !flagJSON {
		stopSpin = ui.Spin("Reading issues...")
	}
	g, err := a.Analyze(ctx)
	stopSpin()
	if err != nil {
		return nil, err
	}
	if g.Len() == 0 {
		slog.Warn("no issues matched", "statuses", cfg.Statuses, "filter", flagFilter)
	}
	return g, nil
}

// watchDir is the directory whose changes should trigger a recompute.
func watchDir() (string, error) {
	if flagFrom != "" {
		return filepath.Dir(flagFrom), nil
	}
	return bd.NewClient(cfg.BdBin, cfg.DB).BeadsDir(".")
}

func outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

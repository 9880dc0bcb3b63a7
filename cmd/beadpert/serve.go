package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshharrison/beadpert/internal/render"
	"github.com/joshharrison/beadpert/internal/ui"
	"github.com/joshharrison/beadpert/internal/viewer"
	"github.com/joshharrison/beadpert/internal/watch"
)

func serveCmd() *cobra.Command {
	var (
		flagPort  int
		flagWatch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis over HTTP (JSON graph, text chart, Prometheus metrics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ui.IsTerminal(os.Stderr) {
				ui.PrintLogo(os.Stderr)
			}
			if cmd.Flags().Changed("port") {
				cfg.Viewer.Port = flagPort
			}
			addr := fmt.Sprintf("localhost:%d", cfg.Viewer.Port)
			if viewer.IsPortOpen(addr) {
				return fmt.Errorf("something is already listening on %s", addr)
			}

			a, closeFn, err := newAnalyzer()
			if err != nil {
				return err
			}
			defer closeFn()

			srv := viewer.New(a.Analyze, cfg.Options())
			g, err := a.Analyze(ctx)
			if err != nil {
				return err
			}
			srv.Set(g)

			ln, err := viewer.Listen(cfg.Viewer.Port)
			if err != nil {
				return err
			}
			fmt.Printf("🌐 Serving %s on %s\n", ui.Bold(fmt.Sprintf("%d issues", g.Len())), ui.Cyan("http://"+addr))

			if flagWatch {
				dir, err := watchDir()
				if err != nil {
					return err
				}
				w := watch.New(dir, func(ctx context.Context) {
					g, err := a.Analyze(ctx)
					if err != nil {
						slog.Error("recompute failed", "err", err)
						return
					}
					srv.Set(g)
				})
				w.Debounce = cfg.Watch.Debounce
				go func() {
					if err := w.Run(ctx); err != nil {
						slog.Error("watcher stopped", "err", err)
					}
				}()
			}

			return srv.Serve(ctx, ln)
		},
	}
	cmd.Flags().IntVar(&flagPort, "port", 7272, "Port to listen on")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Recompute when the beads directory changes")
	return cmd
}

func watchCmd() *cobra.Command {
	var flags chartFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Redraw the chart whenever the beads directory changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, closeFn, err := newAnalyzer()
			if err != nil {
				return err
			}
			defer closeFn()

			draw := func(ctx context.Context) {
				g, err := a.Analyze(ctx)
				if err != nil {
					slog.Error("recompute failed", "err", err)
					return
				}
				rc, err := flags.config(g)
				if err != nil {
					slog.Error("chart settings", "err", err)
					return
				}
				if ui.IsTerminal(os.Stdout) {
					fmt.Print("\033[H\033[2J")
				}
				fmt.Print(chartText(render.Chart(g, rc)))
				fmt.Println(ui.Dim("updated " + time.Now().Format(time.TimeOnly) + ", Ctrl-C to stop"))
			}

			dir, err := watchDir()
			if err != nil {
				return err
			}
			draw(ctx)

			w := watch.New(dir, draw)
			w.Debounce = cfg.Watch.Debounce
			return w.Run(ctx)
		},
	}
	flags.register(cmd)
	return cmd
}

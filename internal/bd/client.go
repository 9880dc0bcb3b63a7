package bd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when no .beads directory can be located.
var ErrNotFound = errors.New("beads directory not found")

// depFetchLimit bounds concurrent `bd dep list` invocations.
const depFetchLimit = 8

// runner executes a command and returns its stdout.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client wraps the bd CLI binary for reading issues and their dependencies.
type Client struct {
	BdBin  string // path to bd binary (default: "bd")
	DbPath string // --db flag value (optional)
	Logger *slog.Logger

	run runner
}

// NewClient creates a Client using the given bd binary path and database path.
func NewClient(bdBin, dbPath string) *Client {
	if bdBin == "" {
		bdBin = "bd"
	}
	return &Client{BdBin: bdBin, DbPath: dbPath, Logger: slog.Default(), run: execRunner}
}

func (c *Client) baseArgs() []string {
	if c.DbPath != "" {
		return []string{"--db", c.DbPath}
	}
	return nil
}

func (c *Client) exec(ctx context.Context, args ...string) ([]byte, error) {
	all := append(c.baseArgs(), args...)
	out, err := c.run(ctx, c.BdBin, all...)
	if err != nil {
		return nil, fmt.Errorf("bd %s: %w", strings.Join(args, " "), err)
	}
	return out, nil
}

// execRunner keeps stderr out of the JSON on stdout; it is only reported on failure.
func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w\n%s", err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// List returns issues in any of the given statuses, or bd's default listing
// when statuses is empty. Issues whose JSON carries no dependency list get
// one from `bd dep list`, fetched concurrently.
func (c *Client) List(ctx context.Context, statuses []string) ([]Issue, error) {
	var issues []Issue
	if len(statuses) == 0 {
		out, err := c.exec(ctx, "list", "--json", "--limit", "0")
		if err != nil {
			return nil, err
		}
		if issues, err = parseIssues(out); err != nil {
			return nil, fmt.Errorf("parse bd list output: %w", err)
		}
	} else {
		for _, status := range statuses {
			out, err := c.exec(ctx, "list", "--json", "--status", status, "--limit", "0")
			if err != nil {
				return nil, err
			}
			batch, err := parseIssues(out)
			if err != nil {
				return nil, fmt.Errorf("parse bd list output (%s): %w", status, err)
			}
			issues = append(issues, batch...)
		}
	}

	if err := c.fillDeps(ctx, issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (c *Client) fillDeps(ctx context.Context, issues []Issue) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(depFetchLimit)

	for i := range issues {
		if issues[i].depsKnown {
			continue
		}
		i := i
		g.Go(func() error {
			deps, err := c.Deps(gctx, issues[i].ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				c.Logger.Warn("failed to fetch deps", "issue", issues[i].ID, "err", err)
				return nil
			}
			issues[i].DependsOn = deps
			issues[i].depsKnown = true
			return nil
		})
	}
	return g.Wait()
}

// Deps returns the ids the issue depends on (bd dep list <id> --direction=down).
func (c *Client) Deps(ctx context.Context, id string) ([]string, error) {
	out, err := c.exec(ctx, "dep", "list", id, "--direction=down", "--json")
	if err != nil {
		return nil, err
	}
	deps, err := parseDepList(out)
	if err != nil {
		return nil, fmt.Errorf("parse bd dep list: %w", err)
	}
	return deps, nil
}

// AddDep adds a dependency edge: blockedID is blocked by blockerID.
func (c *Client) AddDep(ctx context.Context, blockedID, blockerID string) error {
	_, err := c.exec(ctx, "dep", "add", blockedID, blockerID)
	return err
}

// BeadsDir returns the directory holding the beads database: the parent of
// DbPath when set, otherwise the nearest .beads directory at or above start.
func (c *Client) BeadsDir(start string) (string, error) {
	if c.DbPath != "" {
		return filepath.Dir(c.DbPath), nil
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ".beads")
		if fi, err := os.Stat(candidate); err == nil && fi.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w above %s", ErrNotFound, start)
		}
		dir = parent
	}
}

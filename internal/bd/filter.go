package bd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Predicate selects issues.
type Predicate func(Issue) bool

// ParseFilter parses a simple filter expression: priority<=N, priority=N,
// label=X or type=X. An empty expression matches everything.
func ParseFilter(expr string) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	switch {
	case expr == "":
		return nil, nil
	case strings.HasPrefix(expr, "priority<="):
		n, err := strconv.Atoi(strings.TrimPrefix(expr, "priority<="))
		if err != nil {
			return nil, fmt.Errorf("invalid priority value: %w", err)
		}
		return func(is Issue) bool { return is.Priority <= n }, nil
	case strings.HasPrefix(expr, "priority="):
		n, err := strconv.Atoi(strings.TrimPrefix(expr, "priority="))
		if err != nil {
			return nil, fmt.Errorf("invalid priority value: %w", err)
		}
		return func(is Issue) bool { return is.Priority == n }, nil
	case strings.HasPrefix(expr, "label="):
		label := strings.TrimPrefix(expr, "label=")
		return func(is Issue) bool { return slices.Contains(is.Labels, label) }, nil
	case strings.HasPrefix(expr, "type="):
		typ := strings.TrimPrefix(expr, "type=")
		return func(is Issue) bool { return is.Type == typ }, nil
	}
	return nil, fmt.Errorf("unsupported filter: %s (use priority<=N, priority=N, label=X, or type=X)", expr)
}

// Select returns the issues keep accepts. A nil predicate keeps everything.
func Select(issues []Issue, keep Predicate) []Issue {
	if keep == nil {
		return issues
	}
	out := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if keep(is) {
			out = append(out, is)
		}
	}
	return out
}

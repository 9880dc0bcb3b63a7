// Package claude asks Claude for dependency edges missing from an issue
// network.
package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joshharrison/beadpert/internal/pert"
)

// DefaultModel is used when no model is named.
const DefaultModel = anthropic.Model("claude-sonnet-4-5") // same value as anthropic.ModelClaudeSonnet4_5 in newer SDK releases

const maxTokens = 4096

// ItemSummary is what Claude sees of one issue.
type ItemSummary struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	DependsOn []string `json:"depends_on,omitempty"`
}

// Summaries converts items into prompt input.
func Summaries(items []pert.Item) []ItemSummary {
	out := make([]ItemSummary, len(items))
	for i, it := range items {
		out[i] = ItemSummary{
			ID:        it.ID,
			Title:     it.Title,
			Status:    string(it.Status),
			DependsOn: it.DependsOn,
		}
	}
	return out
}

// Network is the inference request: the issues plus the schedule they
// currently produce.
type Network struct {
	Items         []ItemSummary `json:"items"`
	CriticalPath  []string      `json:"critical_path,omitempty"`
	ProjectHours  float64       `json:"project_hours,omitempty"`
	HoursPerIssue float64       `json:"hours_per_issue"`
}

// NetworkOf describes g, built from items, for inference. A cyclic graph
// contributes no schedule.
func NetworkOf(items []pert.Item, g *pert.Graph) Network {
	return Network{
		Items:         Summaries(items),
		CriticalPath:  g.CriticalPath,
		ProjectHours:  g.ProjectDuration,
		HoursPerIssue: g.Options().DefaultDuration,
	}
}

// DepEdge is one inferred dependency: BlockerID must finish before BlockedID
// can start.
type DepEdge struct {
	BlockedID string `json:"blocked_id"`
	BlockerID string `json:"blocker_id"`
	Reason    string `json:"reason"`
}

// InferDepsResult is Claude's answer.
type InferDepsResult struct {
	Edges   []DepEdge `json:"edges"`
	Summary string    `json:"summary"`
}

// Client calls the Messages API.
type Client struct {
	api   anthropic.Client
	model anthropic.Model
}

// NewClient creates a client. An empty apiKey falls back to
// ANTHROPIC_API_KEY; an empty model to DefaultModel.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
	}

	c := &Client{
		api:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model: DefaultModel,
	}
	if model != "" {
		c.model = anthropic.Model(model)
	}
	return c, nil
}

const networkPrompt = `The JSON below describes a PERT network of issues from a beads tracker.
Every issue is scheduled to take hours_per_issue hours. An issue starts only
when everything in its depends_on list is finished, so issues without
dependencies are assumed to run in parallel from time zero. critical_path and
project_hours show the schedule those dependencies currently produce.

A missing dependency makes the schedule look shorter and more parallel than the
work really is. Find the dependencies that are missing.

Rules:
- Add an edge only when the blocked issue genuinely cannot start before the
  blocker is done, judging from the titles.
- Keep the list short. Skip edges already implied through other issues.
- Never repeat an existing depends_on entry.
- Never introduce a cycle, counting existing dependencies.
- Use only ids from the list, and never make an issue depend on itself.

Answer with one JSON object and nothing else:
{
  "edges": [
    {"blocked_id": "<issue that waits>", "blocker_id": "<issue that must finish first>", "reason": "<why, in a few words>"}
  ],
  "summary": "<a short paragraph on how the added edges change the critical path>"
}

Network:
`

// buildPrompt renders the request for net.
func buildPrompt(net Network) (string, error) {
	data, err := json.MarshalIndent(net, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal network: %w", err)
	}
	return networkPrompt + string(data), nil
}

// InferDeps asks Claude for the edges missing from net.
func (c *Client) InferDeps(ctx context.Context, net Network) (*InferDepsResult, error) {
	prompt, err := buildPrompt(net)
	if err != nil {
		return nil, err
	}

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("claude API call: %w", err)
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			reply.WriteString(block.Text)
		}
	}
	return ParseResult(reply.String())
}

// ParseResult decodes a reply. Markdown fences and text around the JSON
// object are ignored.
func ParseResult(text string) (*InferDepsResult, error) {
	body := extractObject(text)

	var result InferDepsResult
	if err := json.Unmarshal([]byte(body), &result); err != nil {
		return nil, fmt.Errorf("parse claude response: %w\nraw: %s", err, text)
	}
	return &result, nil
}

// extractObject returns the span from the first '{' to the last '}', or the
// trimmed text when there is no such span.
func extractObject(s string) string {
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return strings.TrimSpace(s)
	}
	return s[start : end+1]
}

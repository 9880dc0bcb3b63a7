package bd

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"

	"github.com/joshharrison/beadpert/internal/pert"
)

// IssuesFile is the JSONL export bd keeps inside the .beads directory.
const IssuesFile = "issues.jsonl"

// LoadFile reads issues from a bd export: JSONL when the name ends in
// .jsonl, otherwise the JSON array printed by bd list --json.
func LoadFile(path string) ([]Issue, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open issues file: %w", err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".jsonl" {
		issues, err := ReadJSONL(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return issues, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	issues, err := parseIssues(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return issues, nil
}

// ReadJSONL decodes one issue object per line. Blank lines are skipped.
func ReadJSONL(r io.Reader) ([]Issue, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	first := true

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for line := 1; sc.Scan(); line++ {
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		if text[0] != '{' {
			return nil, fmt.Errorf("line %d: expected a JSON object", line)
		}
		if !gjson.ValidBytes(text) {
			return nil, fmt.Errorf("line %d: invalid JSON", line)
		}
		if !first {
			buf.WriteByte(',')
		}
		buf.Write(text)
		first = false
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	buf.WriteByte(']')
	return parseIssues(buf.Bytes())
}

// FileSource reads items from a bd export instead of running bd.
type FileSource struct {
	Path string
	Keep Predicate // optional
}

// List implements the analyzer item source.
func (s FileSource) List(_ context.Context) ([]pert.Item, error) {
	issues, err := LoadFile(s.Path)
	if err != nil {
		return nil, err
	}
	return ToItems(Select(issues, s.Keep)), nil
}

// CLISource lists items through the bd binary.
type CLISource struct {
	Client   *Client
	Statuses []string
	Keep     Predicate // optional
}

// List implements the analyzer item source.
func (s CLISource) List(ctx context.Context) ([]pert.Item, error) {
	issues, err := s.Client.List(ctx, s.Statuses)
	if err != nil {
		return nil, err
	}
	return ToItems(Select(issues, s.Keep)), nil
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckApply(t *testing.T) {
	assert.NoError(t, checkApply(false, "issues.jsonl"))
	assert.NoError(t, checkApply(true, ""))
	assert.ErrorContains(t, checkApply(true, "issues.jsonl"), "--apply")
}

func TestLoadInferred(t *testing.T) {
	dir := t.TempDir()
	fenced := filepath.Join(dir, "fenced.json")
	body := "```json\n{\"edges\": [{\"blocked_id\": \"b\", \"blocker_id\": \"a\", \"reason\": \"api first\"}], \"summary\": \"one\"}\n```\n"
	require.NoError(t, os.WriteFile(fenced, []byte(body), 0644))

	result, err := loadInferred(fenced)
	require.NoError(t, err)
	require.Len(t, result.Edges, 1)
	assert.Equal(t, "b", result.Edges[0].BlockedID)
	assert.Equal(t, "a", result.Edges[0].BlockerID)
	assert.Equal(t, "one", result.Summary)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = loadInferred(bad)
	assert.ErrorContains(t, err, "parse from-file")

	_, err = loadInferred(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "read from-file")
}

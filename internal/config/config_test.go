package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
default_duration: 8
tolerance: 0.01
statuses: [open]
viewer:
  port: 9000
log:
  level: debug
  format: json
watch:
  debounce: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8.0, cfg.DefaultDuration)
	assert.Equal(t, 0.01, cfg.Tolerance)
	assert.Equal(t, []string{"open"}, cfg.Statuses)
	assert.Equal(t, 9000, cfg.Viewer.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
	assert.Equal(t, Default().BucketTarget, cfg.BucketTarget, "unset fields keep defaults")
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"negative duration": "default_duration: -1\n",
		"zero tolerance":    "tolerance: 0\n",
		"unknown status":    "statuses: [open, someday]\n",
		"bad log level":     "log:\n  level: loud\n",
		"port out of range": "viewer:\n  port: 70000\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "default_duration: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.DefaultDuration = 0
	cfg.Tolerance = 0.5

	opts := cfg.Options()
	assert.Equal(t, 0.0, opts.DefaultDuration)
	assert.Equal(t, 0.5, opts.Tolerance)
	assert.Equal(t, cfg.BucketTarget, opts.BucketTarget)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadParsesHostsAndFilters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
hosts:
  - name: prod
    host: "ssh://prod.example.com"
    filters:
      - "label=env=prod"
logs_buffer_length: 5000
show_all: true
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Hosts, 1)
	assert.Equal(t, "ssh://prod.example.com", cfg.Hosts[0].Host)
	assert.Equal(t, []string{"label=env=prod"}, cfg.Hosts[0].Filters)
	assert.Equal(t, 5000, cfg.LogsBufferLength)
	assert.True(t, cfg.ShowAll)
}

func TestLoadAppliesDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hosts: []\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []HostEntry{{Host: "local"}}, cfg.Hosts)
	assert.Equal(t, 10000, cfg.LogsBufferLength)
	assert.Equal(t, 5, cfg.RefreshSeconds)
	assert.Equal(t, "unicode", cfg.IconSet)
}

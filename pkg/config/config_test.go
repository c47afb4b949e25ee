package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "campusnav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CAMPUS_DATA", "/srv/campus")
	path := writeConfig(t, `
server:
  listen_addr: ":8080"
  rate_limit: true
data:
  nodes_csv: ${CAMPUS_DATA}/nodes.csv
  edges_csv: ${CAMPUS_DATA}/edges.csv
kv:
  backend: pebble
  in_memory: true
routing:
  default_algorithm: dijkstra
  search_timeout: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.ListenAddr)
	assert.True(t, cfg.Server.RateLimit)
	assert.Equal(t, 10.0, cfg.Server.RatePerSecond)
	assert.Equal(t, "/srv/campus/nodes.csv", cfg.Data.NodesCSV)
	assert.Equal(t, "/srv/campus/edges.csv", cfg.Data.EdgesCSV)
	assert.Equal(t, "pebble", cfg.KV.Backend)
	assert.True(t, cfg.KV.InMemory)
	assert.Equal(t, "dijkstra", cfg.Routing.DefaultAlgorithm)
	assert.Equal(t, 250*time.Millisecond, cfg.Routing.SearchTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, 8, cfg.Routing.BatchWorkers)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not, a, map"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "kv:\n  backend: bolt\n"))
	assert.ErrorContains(t, err, "kv.backend")

	_, err = Load(writeConfig(t, "routing:\n  batch_workers: 0\n"))
	assert.ErrorContains(t, err, "batch_workers")
}

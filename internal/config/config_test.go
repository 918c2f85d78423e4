package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hexplane.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  host: 127.0.0.1\n"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8089, cfg.Server.Port)
	assert.Equal(t, int64(11), cfg.Render.IMax)
	assert.Equal(t, int64(11), cfg.Render.JMax)
	assert.Equal(t, 24.0, cfg.Render.Size)
	assert.Equal(t, "palette", cfg.Render.Mode)
	assert.Equal(t, "hexplane:tile:", cfg.Redis.CachePrefix)
	assert.Equal(t, 300, cfg.Redis.CacheTTLSeconds)
	assert.Empty(t, cfg.Redis.Address)
	assert.Empty(t, cfg.Auth.TokenSecret)
}

func TestLoadKeepsExplicitValues(t *testing.T) {
	body := `
render:
  i_min: -4
  i_max: 4
  j_min: -2
  j_max: 6
  size: 12
  mode: hash
server:
  port: 9000
redis:
  address: localhost:6379
  cache_ttl_seconds: 60
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)

	assert.Equal(t, int64(-4), cfg.Render.IMin)
	assert.Equal(t, int64(4), cfg.Render.IMax)
	assert.Equal(t, int64(-2), cfg.Render.JMin)
	assert.Equal(t, int64(6), cfg.Render.JMax)
	assert.Equal(t, 12.0, cfg.Render.Size)
	assert.Equal(t, "hash", cfg.Render.Mode)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 60, cfg.Redis.CacheTTLSeconds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "render: ["))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(11), cfg.Render.IMax)
	assert.Equal(t, 8089, cfg.Server.Port)
}

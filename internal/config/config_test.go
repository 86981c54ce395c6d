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
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Applies defaults to a minimal config", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, "upstreams:\n  - 127.0.0.1:5001\n"))
		require.NoError(t, err)

		assert.Equal(t, ":4000", cfg.ListenAddr)
		assert.Equal(t, ":9090", cfg.MetricsAddr)
		assert.Equal(t, 3*time.Second, cfg.DialTimeout)
		assert.False(t, cfg.LogDebug)
		assert.Equal(t, []string{"127.0.0.1:5001"}, cfg.UpstreamAddrs)
	})
	t.Run("Overrides every default", func(t *testing.T) {
		cfg, err := LoadFile(writeConfig(t, `
listen_addr: 127.0.0.1:7000
metrics_addr: ""
dial_timeout: 500ms
log_debug: true
upstreams:
  - 127.0.0.1:5001
  - 127.0.0.1:5002
`))
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:7000", cfg.ListenAddr)
		assert.Equal(t, "", cfg.MetricsAddr)
		assert.Equal(t, 500*time.Millisecond, cfg.DialTimeout)
		assert.True(t, cfg.LogDebug)

		addrs, err := cfg.Upstreams()
		require.NoError(t, err)
		require.Len(t, addrs, 2)
		assert.Equal(t, 5002, addrs[1].Port)
	})
	t.Run("Rejects a config without upstreams", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "listen_addr: \":4000\"\n"))
		assert.ErrorContains(t, err, "upstreams")
	})
	t.Run("Rejects an empty file", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, ""))
		assert.ErrorContains(t, err, "upstreams")
	})
	t.Run("Rejects malformed upstream addresses", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "upstreams:\n  - localhost\n"))
		assert.ErrorContains(t, err, "localhost")
	})
	t.Run("Rejects a non-positive dial timeout", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "dial_timeout: -1s\nupstreams:\n  - 127.0.0.1:5001\n"))
		assert.ErrorContains(t, err, "dial_timeout")
	})
	t.Run("Rejects unknown fields", func(t *testing.T) {
		_, err := LoadFile(writeConfig(t, "listen_adr: \":4000\"\nupstreams:\n  - 127.0.0.1:5001\n"))
		assert.ErrorContains(t, err, "unknown fields in config: listen_adr")
	})
	t.Run("Returns an error for a missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"server_endpoint_addr":  "www.example:9000",
		"online_check_interval": "10s",
		"scope":                 "family",
		"remote":                "memory",
		"push_concurrency":      3,
		"sync_timeout":          "1m",
		"log_max_backups":       7,
	})
	pathEnv := writeTempJSON(t, dir, "env.json", map[string]any{
		"workspace": "from-env",
	})

	t.Run("loads from flags", func(t *testing.T) {
		setArgs(t, "-config", pathFlag)
		t.Setenv("GOPHRECORDS_CONFIG", pathEnv)

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, 10*time.Second, cfg.OnlineCheckInterval)
		assert.Equal(t, records.ScopeFamily, cfg.Scope)
		assert.Equal(t, RemoteMemory, cfg.Remote)
		assert.Equal(t, 3, cfg.PushConcurrency)
		assert.Equal(t, time.Minute, cfg.SyncTimeout)
		assert.Equal(t, 7, cfg.LogMaxBackups)
		assert.Equal(t, 10, cfg.LogMaxSizeMB, "absent keeps default")
		assert.Equal(t, "default", cfg.Workspace, "flag wins over environment")
	})

	t.Run("loads from environment", func(t *testing.T) {
		setArgs(t)
		t.Setenv("GOPHRECORDS_CONFIG", pathEnv)

		cfg := &Config{Workspace: "w"}
		require.NoError(t, parseJson(cfg))
		assert.Equal(t, "from-env", cfg.Workspace)
	})

	t.Run("no CONFIG and no flags → no changes", func(t *testing.T) {
		setArgs(t)
		t.Setenv("GOPHRECORDS_CONFIG", "")

		cfg := &Config{
			ServerEndpointAddr:  "defaults:1234",
			OnlineCheckInterval: 42 * time.Second,
		}
		require.NoError(t, parseJson(cfg))

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, 42*time.Second, cfg.OnlineCheckInterval)
	})

	t.Run("broken file", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"sync_timeout": true}`), 0o600))
		setArgs(t, "-c", bad)
		require.Error(t, parseJson(&Config{}))
	})

	t.Run("missing file", func(t *testing.T) {
		setArgs(t, "-c", filepath.Join(dir, "absent.json"))
		require.Error(t, parseJson(&Config{}))
	})
}

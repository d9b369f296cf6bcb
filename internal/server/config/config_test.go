package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"server"}, args...)
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	want := Config{
		EndpointAddrGRPC:            ":50051",
		EndpointAddrHTTP:            ":8080",
		SecretKey:                   "secretKey",
		AccessTokenValidityDuration: 30 * 24 * time.Hour,
		QueryPageSize:               500,
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags(t *testing.T) {
	setArgs(t, "-a", "127.0.0.1:9090", "-h", ":9091", "-d", "postgres://x", "-s", "secret", "-t", "5", "-l", "10", "-x", "ignored")

	c := &Config{}
	require.NoError(t, parseFlags(c))

	want := &Config{
		EndpointAddrGRPC:            "127.0.0.1:9090",
		EndpointAddrHTTP:            ":9091",
		DatabaseDSN:                 "postgres://x",
		SecretKey:                   "secret",
		AccessTokenValidityDuration: 5 * time.Minute,
		QueryPageSize:               10,
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func TestParseFlags_BadValue(t *testing.T) {
	setArgs(t, "-l", "many")
	require.Error(t, parseFlags(&Config{}))
}

func TestParseJson(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc":             "www.example:9000",
		"database_dsn":                   "postgres://y",
		"access_token_validity_duration": "1h",
		"query_page_size":                25,
	})

	t.Run("overlays present fields", func(t *testing.T) {
		setArgs(t, "-config", path)
		c := &Config{}
		c.LoadDefaults()
		require.NoError(t, parseJson(c))

		assert.Equal(t, "www.example:9000", c.EndpointAddrGRPC)
		assert.Equal(t, ":8080", c.EndpointAddrHTTP, "absent keeps default")
		assert.Equal(t, "postgres://y", c.DatabaseDSN)
		assert.Equal(t, "secretKey", c.SecretKey)
		assert.Equal(t, time.Hour, c.AccessTokenValidityDuration)
		assert.Equal(t, 25, c.QueryPageSize)
	})

	t.Run("no file", func(t *testing.T) {
		setArgs(t)
		t.Setenv("GOPHRECORDS_CONFIG", "")
		c := &Config{SecretKey: "keep"}
		require.NoError(t, parseJson(c))
		assert.Equal(t, "keep", c.SecretKey)
	})

	t.Run("missing file", func(t *testing.T) {
		setArgs(t, "-c", filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, parseJson(&Config{}))
	})

	t.Run("broken file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
		setArgs(t, "-c", bad)
		require.Error(t, parseJson(&Config{}))
	})
}

func TestLoadConfig_FlagsWinOverJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"endpoint_addr_grpc": ":1", "secret_key": "from-json"})
	setArgs(t, "-c", path, "-a", ":2")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":2", c.EndpointAddrGRPC)
	assert.Equal(t, "from-json", c.SecretKey)
}

package config

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/common"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, records.ScopePets, c.Scope)
	assert.Equal(t, RemoteGRPC, c.Remote)
	assert.Equal(t, 30*time.Second, c.SyncTimeout)
	assert.NotEmpty(t, c.DataDir)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	setArgs(t)
	t.Setenv("GOPHRECORDS_CONFIG", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("GOPHRECORDS_CONFIG", "")

	setArgs(t, "-S", "boats")
	_, err := LoadConfig()
	require.ErrorIs(t, err, common.ErrInvalidScope)

	setArgs(t, "-r", "ftp")
	_, err = LoadConfig()
	var ive *InvalidValueError
	require.ErrorAs(t, err, &ive)
	assert.Equal(t, "remote", ive.Name)

	setArgs(t, "-w", "")
	_, err = LoadConfig()
	require.ErrorAs(t, err, &ive)
}

func TestValidate_S3NeedsBucket(t *testing.T) {
	var c Config
	c.LoadDefaults()
	c.Remote = RemoteS3
	c.S3Bucket = ""
	require.Error(t, c.Validate())
}

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/records"
)

const (
	RemoteGRPC   = "grpc"
	RemoteS3     = "s3"
	RemoteMemory = "memory"
)

// Config holds runtime settings for the gophrecords CLI.
type Config struct {
	ServerEndpointAddr string
	DataDir            string
	Owner              string
	Workspace          string
	Scope              records.Scope
	AccessToken        string
	Remote             string

	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string

	PushConcurrency     int
	SyncTimeout         time.Duration
	AutoSync            string
	OnlineCheckInterval time.Duration

	LogMaxSizeMB  int
	LogMaxBackups int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = defaultDataDir()
	c.Owner = "local"
	c.Workspace = "default"
	c.Scope = records.ScopePets
	c.AccessToken = ""
	c.Remote = RemoteGRPC

	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.S3Bucket = "gophrecords"
	c.S3Region = "us-east-1"
	c.S3Endpoint = ""

	c.PushConcurrency = 8
	c.SyncTimeout = 30 * time.Second
	c.AutoSync = ""
	c.OnlineCheckInterval = 3 * time.Second

	c.LogMaxSizeMB = 10
	c.LogMaxBackups = 3
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gophrecords"
	}
	return filepath.Join(home, ".gophrecords")
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := records.ParseScope(string(c.Scope)); err != nil {
		return err
	}
	switch c.Remote {
	case RemoteGRPC, RemoteS3, RemoteMemory:
	default:
		return &InvalidValueError{Name: "remote", Value: c.Remote}
	}
	if c.Workspace == "" {
		return &InvalidValueError{Name: "workspace", Value: c.Workspace}
	}
	if c.Remote == RemoteS3 && c.S3Bucket == "" {
		return &InvalidValueError{Name: "s3 bucket", Value: c.S3Bucket}
	}
	return nil
}

// InvalidValueError reports a configuration value out of range.
type InvalidValueError struct {
	Name  string
	Value string
}

func (e *InvalidValueError) Error() string {
	return "invalid " + e.Name + ": " + `"` + e.Value + `"`
}

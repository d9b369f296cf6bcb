package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophrecords/internal/flagx"
	"github.com/dmitrijs2005/gophrecords/internal/records"
	"github.com/dmitrijs2005/gophrecords/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After
// parsing, present values are copied into the runtime Config.
type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	DataDir             string         `json:"data_dir"`
	Owner               string         `json:"owner"`
	Workspace           string         `json:"workspace"`
	Scope               string         `json:"scope"`
	AccessToken         string         `json:"access_token"`
	Remote              string         `json:"remote"`
	S3AccessKey         string         `json:"s3_access_key"`
	S3SecretKey         string         `json:"s3_secret_key"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3Endpoint          string         `json:"s3_endpoint"`
	PushConcurrency     int            `json:"push_concurrency"`
	SyncTimeout         timex.Duration `json:"sync_timeout"`
	AutoSync            string         `json:"auto_sync"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogMaxSizeMB        int            `json:"log_max_size_mb"`
	LogMaxBackups       int            `json:"log_max_backups"`
}

// parseJson overlays cfg with values loaded from the JSON file named by
// flagx.ConfigPath. Absent or empty fields keep their current value.
func parseJson(cfg *Config) error {
	path := flagx.ConfigPath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerEndpointAddr, jc.ServerEndpointAddr)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.Owner, jc.Owner)
	setString(&cfg.Workspace, jc.Workspace)
	if jc.Scope != "" {
		cfg.Scope = records.Scope(jc.Scope)
	}
	setString(&cfg.AccessToken, jc.AccessToken)
	setString(&cfg.Remote, jc.Remote)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.AutoSync, jc.AutoSync)

	if jc.PushConcurrency > 0 {
		cfg.PushConcurrency = jc.PushConcurrency
	}
	if jc.SyncTimeout.Duration > 0 {
		cfg.SyncTimeout = jc.SyncTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogMaxSizeMB > 0 {
		cfg.LogMaxSizeMB = jc.LogMaxSizeMB
	}
	if jc.LogMaxBackups > 0 {
		cfg.LogMaxBackups = jc.LogMaxBackups
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

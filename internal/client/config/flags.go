package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/gophrecords/internal/flagx"
	"github.com/dmitrijs2005/gophrecords/internal/records"
)

var knownFlags = []string{
	"-a", "-D", "-o", "-w", "-S", "-k", "-r",
	"-u", "-p", "-b", "-g", "-e",
	"-n", "-T", "-A", "-i",
}

// parseFlags populates Config fields from command-line flags. os.Args is
// filtered with flagx.FilterArgs first, so flags owned by other components
// (-c/-config) do not trip the parser.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DataDir, "D", cfg.DataDir, "data directory")
	fs.StringVar(&cfg.Owner, "o", cfg.Owner, "owner id")
	fs.StringVar(&cfg.Workspace, "w", cfg.Workspace, "workspace")
	scope := fs.String("S", string(cfg.Scope), "scope: pets, cars, family or house")
	fs.StringVar(&cfg.AccessToken, "k", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.Remote, "r", cfg.Remote, "remote store: grpc, s3 or memory")

	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3 endpoint")

	fs.IntVar(&cfg.PushConcurrency, "n", cfg.PushConcurrency, "push concurrency")
	syncTimeout := fs.Int("T", int(cfg.SyncTimeout.Seconds()), "sync timeout (in seconds)")
	fs.StringVar(&cfg.AutoSync, "A", cfg.AutoSync, "auto-sync cron schedule")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg.Scope = records.Scope(*scope)
	cfg.SyncTimeout = time.Duration(*syncTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	return nil
}

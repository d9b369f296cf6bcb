// Package config loads runtime configuration for the gophrecords CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c/-config or
//     $GOPHRECORDS_CONFIG.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the gophrecords gRPC server
//	-D string   data directory holding records.db and client.log
//	-o string   owner id (used for new records and the S3 key prefix)
//	-w string   workspace
//	-S string   scope selected at start (pets, cars, family, house)
//	-k string   access token for the gRPC server
//	-r string   remote kind: grpc, s3 or memory
//	-u -p -b -g -e string   S3 access key, secret, bucket, region, endpoint
//	-n int      push concurrency
//	-T int      sync timeout (seconds)
//	-A string   auto-sync cron schedule, empty disables
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "data_dir": "/home/me/.gophrecords",
//	  "owner": "me",
//	  "workspace": "home",
//	  "scope": "pets",
//	  "remote": "s3",
//	  "s3_bucket": "records",
//	  "sync_timeout": "30s",
//	  "auto_sync": "@every 5m",
//	  "online_check_interval": "3s",
//	  "log_max_size_mb": 10,
//	  "log_max_backups": 3
//	}
package config

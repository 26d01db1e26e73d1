// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables,
// and an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// RedisAddr is the host:port of the Redis session store.
	RedisAddr string

	// RedisPassword is the Redis password, empty for none.
	RedisPassword string

	// AdminID is the identifier of the administrator identity. A resolved
	// identity is granted admin-page access only when its id equals this.
	AdminID string

	// SessionTTLHours is the session lifetime in hours.
	SessionTTLHours int

	// MediaBucket is the S3 bucket for hero media uploads.
	MediaBucket string

	// MediaPrefix is the S3 key prefix for hero media uploads.
	MediaPrefix string

	// LogLevel is the zap log level ("Debug", "Info", "Warn", "Error").
	LogLevel string

	// Config is the path to the config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.RedisAddr, "r", "localhost:6379", "redis address")
	flag.StringVar(&options.AdminID, "admin", "", "administrator identity id")
	flag.IntVar(&options.SessionTTLHours, "session-ttl", 24, "session lifetime in hours")
	flag.StringVar(&options.MediaBucket, "media-bucket", "", "s3 bucket for hero media")
	flag.StringVar(&options.MediaPrefix, "media-prefix", "hero/", "s3 key prefix for hero media")
	flag.StringVar(&options.LogLevel, "log-level", "Info", "log level")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		options.RedisAddr = redisAddr
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		options.RedisPassword = redisPassword
	}
	if adminID := os.Getenv("ADMIN_ID"); adminID != "" {
		options.AdminID = adminID
	}
	if bucket := os.Getenv("MEDIA_BUCKET"); bucket != "" {
		options.MediaBucket = bucket
	}

	return options
}

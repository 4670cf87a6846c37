package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything main needs to wire the engine and its HTTP
// surface. Values come from the environment so main stays lean.
type Config struct {
	Addr string

	// Upstream compliance API serving the four sources.
	UpstreamBaseURL string
	RequestTimeout  time.Duration

	// Evaluation cadence.
	PollInterval time.Duration
	CycleTimeout time.Duration

	// Optional shared snapshot cache. Empty means in-process memory only.
	RedisURL    string
	SnapshotTTL time.Duration
}

// FromEnv builds a Config from environment variables with development
// defaults for everything but the upstream URL.
func FromEnv() Config {
	return Config{
		Addr:            envString("TRANSFERGUARD_ADDR", ":8080"),
		UpstreamBaseURL: envString("TRANSFERGUARD_UPSTREAM_URL", "http://localhost:9000"),
		RequestTimeout:  envDuration("TRANSFERGUARD_REQUEST_TIMEOUT", 10*time.Second),
		PollInterval:    envDuration("TRANSFERGUARD_POLL_INTERVAL", 5*time.Second),
		CycleTimeout:    envDuration("TRANSFERGUARD_CYCLE_TIMEOUT", 30*time.Second),
		RedisURL:        os.Getenv("TRANSFERGUARD_REDIS_URL"),
		SnapshotTTL:     envDuration("TRANSFERGUARD_SNAPSHOT_TTL", time.Hour),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	// Bare integers are seconds.
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

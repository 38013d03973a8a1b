package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	StorageFile string        // path to the storages.yaml file describing storage roots
	LockTimeout time.Duration // max wait for a record's file lock (default: 5s)

	RescanInterval time.Duration // interval to rebuild indices from disk (default: 24h)
	TrashInterval  time.Duration // interval to run the trash collector (default: 24h)
	TrashRetention time.Duration // purge soft-deleted bookmarks older than this (0 = keep forever)

	// Access control. Empty lists mean passthrough.
	TrustProxy     bool     // resolve client IPs from proxy headers
	AllowedCIDRs   []string // restrict access to these IPs/CIDRs
	AllowedHosts   []string // restrict access to these Host headers
	RateLimitBurst int      // per-IP token bucket capacity (0 = disabled)
	RateLimitRPM   int      // per-IP refill rate, requests per minute
}

func Load() *Config {
	return &Config{
		// Server settings
		ListenPort:      getenv("HOARD_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("HOARD_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("HOARD_LOG_LEVEL", "info"),
		PrettyLog: mustBool("HOARD_PRETTY_LOG", true),

		// Storage engine
		StorageFile: requireEnv("HOARD_STORAGE_FILE"),
		LockTimeout: mustDuration("HOARD_LOCK_TIMEOUT", 5*time.Second),

		// Background maintenance
		RescanInterval: mustDuration("HOARD_RESCAN_INTERVAL", 24*time.Hour),
		TrashInterval:  mustDuration("HOARD_TRASH_INTERVAL", 24*time.Hour),
		TrashRetention: mustDuration("HOARD_TRASH_RETENTION", 0),

		// Access control
		TrustProxy:     mustBool("HOARD_TRUST_PROXY", false),
		AllowedCIDRs:   splitList(os.Getenv("HOARD_ALLOWED_CIDRS")),
		AllowedHosts:   splitList(os.Getenv("HOARD_ALLOWED_HOSTS")),
		RateLimitBurst: mustInt("HOARD_RATE_LIMIT_BURST", 0),
		RateLimitRPM:   mustInt("HOARD_RATE_LIMIT_RPM", 60),
	}
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// splitList parses a comma-separated env value, dropping empty entries.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

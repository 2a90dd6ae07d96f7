package config

import (
	"fmt"
	"log"
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

	SidebarFile    string        // sidebar file (yaml, json or sidebars.js); empty = serve the authored default
	ReloadInterval time.Duration // interval to re-read the sidebar file (default: 1h)
	Watch          bool          // reload on file change (fsnotify)
	WatchDebounce  time.Duration // quiet period before a change triggers a reload
	KeepRevisions  int           // sidebar revisions kept in redis
	PruneInterval  time.Duration // interval to prune old revisions (default: 24h)

	// Redis (optional, empty address = disabled)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict /reload to specific Host headers
	AllowedCIDRS []string // optional, restrict operational endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	ReloadBurst     int // manual reloads allowed in a burst per client IP
	ReloadPerMinute int // manual reload refill rate per client IP
}

// RedisEnabled reports whether a Redis address was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("DOCNAV_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("DOCNAV_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("DOCNAV_LOG_LEVEL", "info"),
		PrettyLog: mustBool("DOCNAV_PRETTY_LOG", true),

		// Sidebar source
		SidebarFile:    getenv("DOCNAV_SIDEBAR_FILE", ""),
		ReloadInterval: mustDuration("DOCNAV_RELOAD_INTERVAL", time.Hour),
		Watch:          mustBool("DOCNAV_WATCH", true),
		WatchDebounce:  mustDuration("DOCNAV_WATCH_DEBOUNCE", 500*time.Millisecond),
		KeepRevisions:  getenvInt("DOCNAV_KEEP_REVISIONS", 20),
		PruneInterval:  mustDuration("DOCNAV_PRUNE_INTERVAL", 24*time.Hour),

		// Redis settings
		RedisAddr:           getenv("DOCNAV_REDIS_ADDR", ""),
		RedisUser:           getenv("DOCNAV_REDIS_USERNAME", ""),
		RedisPassword:       getenv("DOCNAV_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("DOCNAV_REDIS_DB", 0),
		RedisDT:             mustDuration("DOCNAV_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("DOCNAV_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("DOCNAV_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("DOCNAV_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("DOCNAV_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("DOCNAV_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("DOCNAV_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("DOCNAV_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("DOCNAV_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("DOCNAV_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("DOCNAV_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("DOCNAV_TRUST_PROXY", false),

		ReloadBurst:     getenvInt("DOCNAV_RELOAD_BURST", 3),
		ReloadPerMinute: getenvInt("DOCNAV_RELOAD_PER_MINUTE", 6),
	}

	if err := cfg.validate(); err != nil {
		panic(fmt.Sprintf("❌ FATAL: %v", err))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func (c *Config) validate() error {
	if c.ReloadInterval <= 0 {
		return fmt.Errorf("DOCNAV_RELOAD_INTERVAL must be > 0, got %v", c.ReloadInterval)
	}
	if c.PruneInterval <= 0 {
		return fmt.Errorf("DOCNAV_PRUNE_INTERVAL must be > 0, got %v", c.PruneInterval)
	}
	if c.KeepRevisions < 1 {
		return fmt.Errorf("DOCNAV_KEEP_REVISIONS must be >= 1, got %d", c.KeepRevisions)
	}
	if c.Watch && c.SidebarFile == "" {
		// Nothing to watch; the authored default never changes.
		c.Watch = false
	}
	return nil
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
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

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ListenPort != ":8080" {
		t.Errorf("ListenPort = %v, want :8080", cfg.ListenPort)
	}
	if cfg.SidebarFile != "" {
		t.Errorf("SidebarFile = %v, want empty (authored default)", cfg.SidebarFile)
	}
	if cfg.ReloadInterval != time.Hour {
		t.Errorf("ReloadInterval = %v, want 1h", cfg.ReloadInterval)
	}
	if cfg.Watch {
		t.Error("Watch should be disabled when no sidebar file is configured")
	}
	if cfg.RedisEnabled() {
		t.Error("RedisEnabled() should be false without DOCNAV_REDIS_ADDR")
	}
	if cfg.KeepRevisions != 20 {
		t.Errorf("KeepRevisions = %v, want 20", cfg.KeepRevisions)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DOCNAV_LISTEN_PORT", ":9090")
	t.Setenv("DOCNAV_SIDEBAR_FILE", "/docs/sidebars.js")
	t.Setenv("DOCNAV_RELOAD_INTERVAL", "10m")
	t.Setenv("DOCNAV_REDIS_ADDR", "redis:6379")
	t.Setenv("DOCNAV_REDIS_DB", "2")
	t.Setenv("DOCNAV_ALLOWED_HOSTS", `"docs.cylondata.org", nav.cylondata.org`)
	t.Setenv("DOCNAV_ALLOWED_CIDRS", "10.0.0.0/8, 127.0.0.1")

	cfg := Load()

	if cfg.ListenPort != ":9090" {
		t.Errorf("ListenPort = %v, want :9090", cfg.ListenPort)
	}
	if !cfg.Watch {
		t.Error("Watch should default to true when a sidebar file is configured")
	}
	if cfg.ReloadInterval != 10*time.Minute {
		t.Errorf("ReloadInterval = %v, want 10m", cfg.ReloadInterval)
	}
	if !cfg.RedisEnabled() || cfg.RedisDB != 2 {
		t.Errorf("redis config = (%v, db %v), want enabled db 2", cfg.RedisAddr, cfg.RedisDB)
	}
	if len(cfg.AllowedHosts) != 2 || cfg.AllowedHosts[0] != "docs.cylondata.org" {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	if len(cfg.AllowedCIDRS) != 2 || cfg.AllowedCIDRS[1] != "127.0.0.1" {
		t.Errorf("AllowedCIDRS = %v", cfg.AllowedCIDRS)
	}
}

func TestLoadRedisTuningFromEnv(t *testing.T) {
	t.Setenv("DOCNAV_REDIS_ADDR", "redis:6379")
	t.Setenv("DOCNAV_REDIS_DIAL_TIMEOUT", "7s")
	t.Setenv("DOCNAV_REDIS_POOL_SIZE", "4")
	t.Setenv("DOCNAV_REDIS_RETRY_INTERVAL", "250ms")
	t.Setenv("DOCNAV_REDIS_WARN_THRESHOLD", "9")
	// Unprefixed names belong to other services sharing the environment.
	t.Setenv("REDIS_DIAL_TIMEOUT", "1m")
	t.Setenv("REDIS_POOL_SIZE", "99")

	cfg := Load()

	if cfg.RedisDT != 7*time.Second {
		t.Errorf("RedisDT = %v, want 7s", cfg.RedisDT)
	}
	if cfg.RedisPoolSize != 4 {
		t.Errorf("RedisPoolSize = %v, want 4", cfg.RedisPoolSize)
	}
	if cfg.RedisRetryInterval != 250*time.Millisecond {
		t.Errorf("RedisRetryInterval = %v, want 250ms", cfg.RedisRetryInterval)
	}
	if cfg.RedisWarnThreshold != 9 {
		t.Errorf("RedisWarnThreshold = %v, want 9", cfg.RedisWarnThreshold)
	}
	if cfg.RedisRT != 3*time.Second {
		t.Errorf("RedisRT = %v, want default 3s", cfg.RedisRT)
	}
}

func TestLoadPanicsOnInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "zero reload interval", key: "DOCNAV_RELOAD_INTERVAL", value: "0s"},
		{name: "negative prune interval", key: "DOCNAV_PRUNE_INTERVAL", value: "-1h"},
		{name: "no revisions kept", key: "DOCNAV_KEEP_REVISIONS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			defer func() {
				if r := recover(); r == nil {
					t.Errorf("Load() should have panicked for %s=%s", tt.key, tt.value)
				}
			}()
			Load()
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single value", input: "value1", expected: []string{"value1"}},
		{name: "multiple values", input: "value1, value2, value3", expected: []string{"value1", "value2", "value3"}},
		{name: "quoted and blank parts", input: `'a', , "b"`, expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() length = %v, want %v", len(result), len(tt.expected))
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGetenvInt(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_INT_INVALID", "not_a_number")

	if got := getenvInt("TEST_INT", 1); got != 42 {
		t.Errorf("getenvInt() = %v, want 42", got)
	}
	if got := getenvInt("TEST_INT_INVALID", 7); got != 7 {
		t.Errorf("getenvInt() with invalid value = %v, want default 7", got)
	}
	if got := getenvInt("TEST_INT_MISSING", 3); got != 3 {
		t.Errorf("getenvInt() with missing value = %v, want default 3", got)
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{
			name:     "valid duration",
			key:      "TEST_DURATION",
			value:    "5s",
			def:      1 * time.Second,
			expected: 5 * time.Second,
		},
		{
			name:     "invalid duration uses default",
			key:      "TEST_DURATION_INVALID",
			value:    "invalid",
			def:      10 * time.Second,
			expected: 10 * time.Second,
		},
		{
			name:     "missing variable uses default",
			key:      "TEST_DURATION_MISSING",
			value:    "",
			def:      15 * time.Second,
			expected: 15 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustDuration(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", key: "TEST_BOOL", value: "true", def: false, expected: true},
		{name: "false value", key: "TEST_BOOL_FALSE", value: "false", def: true, expected: false},
		{name: "invalid value uses default", key: "TEST_BOOL_INVALID", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", key: "TEST_BOOL_MISSING", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv(tt.key, tt.value)
			}

			result := mustBool(tt.key, tt.def)
			if result != tt.expected {
				t.Errorf("mustBool() = %v, want %v", result, tt.expected)
			}
		})
	}
}

package deps

import (
	"context"
	"time"

	"github.com/cylondata/docnav/internal/index"
	"github.com/cylondata/docnav/internal/logger"
	"github.com/cylondata/docnav/internal/metrics"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// WatchStatus reports whether file watching is active.
type WatchStatus interface {
	Running() bool
}

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time   // for testing, defaults to time.Now
	AllowedHosts    []string           // Host headers allowed to trigger reloads
	AllowedCIDRS    []string           // IPs allowed to reach operational endpoints
	TrustProxy      bool               // true if running behind a trusted reverse proxy
	SidebarFile     string             // Path to the sidebar file, empty when serving the authored default
	Index           *index.MemoryIndex // Sidebar being served
	Store           Pinger             // Redis snapshot store (nil if disabled)
	Watcher         WatchStatus        // File watcher (nil if disabled)
	Metrics         *metrics.Metrics   // Prometheus collectors
	ReloadTrigger   chan<- struct{}    // Channel to trigger manual sidebar reload
	ReloadBurst     int                // manual reloads allowed in a burst per client
	ReloadPerMinute int                // manual reload refill rate per client
}

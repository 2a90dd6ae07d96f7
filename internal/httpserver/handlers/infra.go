package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cylondata/docnav/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Sections   *int   `json:"sections,omitempty"`
	Digest     string `json:"digest,omitempty"`
	Source     string `json:"source,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	LastError  string `json:"last_error,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"sidebar": sidebarStatus(d),
			"redis":   checkRedis(r.Context(), d),
			"watcher": watcherStatus(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServingMode: determineServingMode(components),
			Components:  components,
		})
	}
}

func sidebarStatus(d deps.Deps) componentStatus {
	spec, digest, ok := d.Index.Current()
	if !ok {
		return componentStatus{OK: false, LastReload: "never"}
	}

	sections := len(spec.Sections)
	status := componentStatus{
		OK:         true,
		Sections:   &sections,
		Digest:     digest,
		Source:     d.Index.Source(),
		LastReload: d.Index.GetLastReload().Format("2006-01-02 15:04:05"),
	}
	if at, err := d.Index.LastFailure(); err != nil {
		status.LastError = at.Format("2006-01-02 15:04:05") + ": " + err.Error()
	}
	return status
}

func determineServingMode(components map[string]componentStatus) string {
	if sb, exists := components["sidebar"]; exists && !sb.OK {
		return "critical" // Nothing to serve
	}
	if sb := components["sidebar"]; sb.LastError != "" {
		return "stale" // Serving the last good sidebar, newer one was rejected
	}
	if redis, exists := components["redis"]; exists && !redis.OK && redis.Mode != "disabled" {
		return "degraded" // Snapshots are not persisted
	}
	return "ok"
}

func checkRedis(parent context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{OK: false, Mode: "disabled"}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{OK: false, Mode: "degraded", Error: err.Error()}
	}
	return componentStatus{OK: true, Mode: "snapshots"}
}

func watcherStatus(d deps.Deps) componentStatus {
	if d.Watcher == nil {
		return componentStatus{OK: false, Mode: "disabled"}
	}
	if !d.Watcher.Running() {
		return componentStatus{OK: false, Mode: "stopped"}
	}
	return componentStatus{OK: true, Mode: "fsnotify"}
}

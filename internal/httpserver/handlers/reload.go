package handlers

import (
	"net/http"

	"github.com/cylondata/docnav/internal/httpserver/deps"
	"github.com/cylondata/docnav/internal/logger"
	"github.com/cylondata/docnav/internal/utils"
)

type reloadResponse struct {
	Status string `json:"status"`
	Source string `json:"source"`
}

// Reload queues a sidebar reload. Only one reload can be pending; further
// requests get 409 until the reloader has picked it up.
func Reload(d deps.Deps) http.HandlerFunc {
	source := d.SidebarFile
	if source == "" {
		source = "authored"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ip := utils.ClientIP(r, d.TrustProxy)

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual sidebar reload triggered via endpoint",
				logger.String("client_ip", ip))
			writeJSON(w, http.StatusAccepted, reloadResponse{Status: "queued", Source: source})
		default:
			d.Logger.Warn("sidebar reload already pending",
				logger.String("client_ip", ip))
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusConflict, reloadResponse{Status: "pending", Source: source})
		}
	}
}

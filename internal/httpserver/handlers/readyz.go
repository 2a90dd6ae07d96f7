package handlers

import (
	"net/http"

	"github.com/cylondata/docnav/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Digest string `json:"digest,omitempty"`
}

// Readyz is ready once a sidebar is being served.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Index.Loaded() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Digest: d.Index.Digest()})
	}
}

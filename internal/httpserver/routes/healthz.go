package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cylondata/docnav/internal/httpserver/deps"
	"github.com/cylondata/docnav/internal/httpserver/handlers"
)

func init() { Register("healthz", registerHealthz) }

func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}

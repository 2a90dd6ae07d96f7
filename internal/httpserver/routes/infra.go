package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cylondata/docnav/internal/httpserver/deps"
	"github.com/cylondata/docnav/internal/httpserver/handlers"
	"github.com/cylondata/docnav/internal/httpserver/mw"
)

func init() { Register("infra", registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/infra", handlers.Infra(d))
}

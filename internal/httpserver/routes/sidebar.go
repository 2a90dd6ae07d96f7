package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/cylondata/docnav/internal/httpserver/deps"
	"github.com/cylondata/docnav/internal/httpserver/handlers"
)

func init() { Register("sidebar", registerSidebar) }

func registerSidebar(r chi.Router, d deps.Deps) {
	r.Get("/sidebar", handlers.Sidebar(d))
	r.Get("/sidebar/sections/{name}", handlers.Section(d))
	r.Get("/sidebars.js", handlers.SidebarsJS(d))
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/cylondata/docnav/internal/domain"
	"github.com/cylondata/docnav/internal/httpserver/deps"
	"github.com/cylondata/docnav/internal/logger"
	"github.com/cylondata/docnav/internal/sources/docusaurus"
)

type sectionResponse struct {
	Sidebar string         `json:"sidebar"`
	Section string         `json:"section"`
	Entries []domain.Entry `json:"entries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Sidebar serves the current sidebar in the shape the documentation site
// reads. ?format=json|yaml|js selects the encoding, JSON by default.
func Sidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format := docusaurus.FormatJSON
		if v := r.URL.Query().Get("format"); v != "" {
			f, err := docusaurus.ParseFormat(v)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			format = f
		}
		serveEncoded(w, r, d, docusaurus.EncodeOptions{Format: format})
	}
}

// SidebarsJS serves the sidebar as a sidebars.js module. ?minify=1 minifies it.
func SidebarsJS(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minify, _ := strconv.ParseBool(r.URL.Query().Get("minify"))
		serveEncoded(w, r, d, docusaurus.EncodeOptions{Format: docusaurus.FormatJS, Minify: minify})
	}
}

// Section serves the entries of one section in display order.
func Section(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// chi matches on RawPath when the request carried escapes that
		// Path cannot represent, so only then is the parameter still encoded.
		name := chi.URLParam(r, "name")
		if r.URL.RawPath != "" {
			if unescaped, err := url.PathUnescape(name); err == nil {
				name = unescaped
			}
		}

		spec, _, ok := d.Index.Current()
		if !ok {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "sidebar not loaded"})
			return
		}

		section, found := spec.Section(name)
		if !found {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown section: " + name})
			return
		}

		writeJSON(w, http.StatusOK, sectionResponse{
			Sidebar: spec.Name,
			Section: section.Name,
			Entries: section.Entries,
		})
	}
}

func serveEncoded(w http.ResponseWriter, r *http.Request, d deps.Deps, opts docusaurus.EncodeOptions) {
	spec, digest, ok := d.Index.Current()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "sidebar not loaded"})
		return
	}

	etag := strconv.Quote(etagValue(digest, opts))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	var buf bytes.Buffer
	if err := docusaurus.Encode(&buf, spec, opts); err != nil {
		d.Logger.Error("failed to encode sidebar",
			logger.String("format", string(opts.Format)),
			logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to encode sidebar"})
		return
	}

	w.Header().Set("Content-Type", opts.Format.ContentType())
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		d.Logger.Debug("failed to write response", logger.Error(err))
	}
}

// etagValue keys the digest by representation so caches never mix formats.
func etagValue(digest string, opts docusaurus.EncodeOptions) string {
	v := digest + "-" + string(opts.Format)
	if opts.Minify {
		v += "-min"
	}
	return v
}

// etagMatches applies the weak comparison If-None-Match calls for to a
// possibly comma separated header value.
func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quillworks/quill/internal/processor"
	"github.com/quillworks/quill/internal/template"
	"github.com/quillworks/quill/internal/usagelog"
)

// NewRouter creates a chi router with all API routes mounted.
// eventsHandler, if non-nil, is mounted at GET /events for the SSE stream.
// The docs endpoint is only registered in development.
func NewRouter(svc *processor.Service, registry *template.Registry, usage *usagelog.Log, info Info, eventsHandler http.Handler) chi.Router {
	h := NewHandler(svc, registry, usage, info)

	r := chi.NewRouter()
	r.Use(CORSMiddleware(info.AllowedOrigins))

	r.Get("/", h.Status)
	r.Get("/health", h.Health)
	r.Get("/config", h.Config)

	// Template registry.
	r.Get("/templates", h.ListTemplates)
	r.Post("/templates", h.CreateTemplate)

	// Processing entry point.
	r.Post("/process", h.Process)

	// Diagnostics.
	r.Get("/logs", h.Logs)

	if eventsHandler != nil {
		r.Get("/events", eventsHandler.ServeHTTP)
	}

	if h.development() {
		r.Get("/docs", h.Docs)
	}

	return r
}

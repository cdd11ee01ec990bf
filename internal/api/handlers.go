package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/quillworks/quill/internal/apperr"
	"github.com/quillworks/quill/internal/processor"
	"github.com/quillworks/quill/internal/template"
	"github.com/quillworks/quill/internal/usagelog"
)

// EnvDevelopment gates verbose error detail and the docs endpoint.
const EnvDevelopment = "development"

// Info is the non-secret configuration snapshot the API exposes.
type Info struct {
	Environment    string
	AllowedOrigins []string
	AIConfigured   bool
}

// Handler holds API route handlers.
type Handler struct {
	svc      *processor.Service
	registry *template.Registry
	usage    *usagelog.Log
	info     Info
}

// NewHandler creates a new Handler.
func NewHandler(svc *processor.Service, registry *template.Registry, usage *usagelog.Log, info Info) *Handler {
	return &Handler{svc: svc, registry: registry, usage: usage, info: info}
}

func (h *Handler) development() bool {
	return h.info.Environment == EnvDevelopment
}

// Status handles GET /.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Service:     "quill",
		Status:      "ok",
		Environment: h.info.Environment,
	})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Config handles GET /config. Secrets never appear here; the AI credential
// is echoed only as a boolean.
func (h *Handler) Config(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ConfigResponse{
		Environment:    h.info.Environment,
		AllowedOrigins: h.info.AllowedOrigins,
		AIConfigured:   h.info.AIConfigured,
	})
}

// ListTemplates handles GET /templates.
func (h *Handler) ListTemplates(w http.ResponseWriter, _ *http.Request) {
	items := h.registry.List()
	writeJSON(w, http.StatusOK, TemplatesResponse{
		Templates: items,
		Total:     len(items),
	})
}

// CreateTemplate handles POST /templates.
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "name and content are required")
		return
	}

	rec, err := h.registry.Create(req.Name, req.Content, req.Variables)
	if err != nil {
		if errors.Is(err, apperr.ErrBadRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("create template failed", slog.String("name", req.Name), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// Process handles POST /process, the dispatcher entry point.
func (h *Handler) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req processor.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	env, err := h.svc.Process(r.Context(), req)
	if err != nil {
		status, body := processor.ErrorEnvelopeFor(err, h.development())
		if status == http.StatusInternalServerError {
			slog.Error("process failed", slog.String("action", req.Action), slog.String("error", err.Error()))
		}
		writeJSON(w, status, body)
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// Logs handles GET /logs?limit=N.
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries := h.usage.Recent(limit)
	writeJSON(w, http.StatusOK, LogsResponse{
		Logs:  entries,
		Count: len(entries),
	})
}

// Docs handles GET /docs, exposed only in development.
func (h *Handler) Docs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service": "quill",
		"endpoints": []map[string]string{
			{"method": "GET", "path": "/", "description": "service status"},
			{"method": "GET", "path": "/health", "description": "liveness check"},
			{"method": "GET", "path": "/config", "description": "non-secret configuration"},
			{"method": "GET", "path": "/templates", "description": "list templates"},
			{"method": "POST", "path": "/templates", "description": "create a template"},
			{"method": "POST", "path": "/process", "description": "run a processing action"},
			{"method": "GET", "path": "/logs", "description": "recent usage entries"},
			{"method": "GET", "path": "/events", "description": "usage event stream (SSE)"},
		},
		"actions": []string{
			processor.ActionAutocorrect,
			processor.ActionSummarize,
			processor.ActionAnalyze,
			processor.ActionTemplate,
			processor.ActionAutofill,
		},
	})
}

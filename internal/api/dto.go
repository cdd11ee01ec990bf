package api

import (
	"github.com/quillworks/quill/internal/template"
	"github.com/quillworks/quill/internal/usagelog"
)

// CreateTemplateRequest is the request body for registering a template.
type CreateTemplateRequest struct {
	Name      string   `json:"name"`
	Content   string   `json:"content"`
	Variables []string `json:"variables"`
}

// StatusResponse is the service identity record served at GET /.
type StatusResponse struct {
	Service     string `json:"service"`
	Status      string `json:"status"`
	Environment string `json:"environment"`
}

// ConfigResponse echoes non-secret configuration.
type ConfigResponse struct {
	Environment    string   `json:"environment"`
	AllowedOrigins []string `json:"allowed_origins"`
	AIConfigured   bool     `json:"ai_configured"`
}

// TemplatesResponse wraps a registry listing.
type TemplatesResponse struct {
	Templates []template.Record `json:"templates"`
	Total     int               `json:"total"`
}

// LogsResponse wraps a usage-log query.
type LogsResponse struct {
	Logs  []usagelog.Entry `json:"logs"`
	Count int              `json:"count"`
}

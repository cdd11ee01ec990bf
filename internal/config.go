package internal

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/quillworks/quill/internal/template"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config represents the application configuration.
type Config struct {
	App       ApplicationConfig `yaml:"app"`
	Server    ServerConfig      `yaml:"server"`
	Templates TemplatesConfig   `yaml:"templates"`
	Logs      LogsConfig        `yaml:"logs"`
	AI        AIConfig          `yaml:"ai"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Logs.Validate(); err != nil {
		return err
	}
	return c.AI.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ServerConfig holds the environment name and the CORS origin policy.
//
// Environment gates verbose error detail and the docs endpoint:
//   - "development" (default): errors carry full detail, GET /docs is served.
//   - "production": internal error detail is suppressed, no docs endpoint.
//
// AllowedOrigins is a comma-separated list; "*" allows any origin.
type ServerConfig struct {
	Environment    string `yaml:"environment"`
	AllowedOrigins string `yaml:"allowed_origins"`
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	// Normalise empty environment to development.
	if c.Environment == "" {
		c.Environment = EnvDevelopment
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.Required, validation.In(EnvDevelopment, EnvProduction)),
	)
}

// OriginList splits the comma-separated origin list, trimming whitespace and
// dropping empty segments.
func (c *ServerConfig) OriginList() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// TemplatesConfig holds the template seed settings. SeedPath is optional;
// when empty the built-in seed set is used and no watcher is started.
type TemplatesConfig struct {
	SeedPath  string `yaml:"seed_path"`
	DefaultID string `yaml:"default_id"`
}

// LogsConfig bounds the in-memory usage log.
type LogsConfig struct {
	Capacity int `yaml:"capacity"`
}

// Validate validates the usage-log configuration.
func (c *LogsConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Capacity, validation.Required, validation.Min(1)),
	)
}

// AIConfig holds the optional external completion service settings. An empty
// APIKey disables the external path entirely; all actions then run on the
// deterministic transformers.
type AIConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Validate validates the AI configuration.
func (c *AIConfig) Validate() error {
	if c.APIKey == "" {
		return nil
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Model, validation.Required),
		validation.Field(&c.TimeoutSeconds, validation.Min(1)),
	)
}

// Timeout returns the per-attempt timeout for external calls.
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Enabled reports whether the external path is configured.
func (c *AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Server: ServerConfig{
			Environment:    EnvDevelopment,
			AllowedOrigins: "*",
		},
		Templates: TemplatesConfig{
			DefaultID: template.DefaultTemplateID,
		},
		Logs: LogsConfig{
			Capacity: 1000,
		},
		AI: AIConfig{
			BaseURL:        "https://api.openai.com/v1",
			Model:          "gpt-4o-mini",
			TimeoutSeconds: 10,
		},
	}
}

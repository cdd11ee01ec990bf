// Package processor dispatches processing actions to the text transformers
// and wraps results in the uniform response envelope.
package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/quillworks/quill/internal/aiclient"
	"github.com/quillworks/quill/internal/apperr"
	"github.com/quillworks/quill/internal/sse"
	"github.com/quillworks/quill/internal/template"
	"github.com/quillworks/quill/internal/textproc"
	"github.com/quillworks/quill/internal/usagelog"
)

// Known actions.
const (
	ActionAutocorrect = "autocorrect"
	ActionSummarize   = "summarize"
	ActionAnalyze     = "analyze"
	ActionTemplate    = "template"
	ActionAutofill    = "autofill"
)

// Result sources for the actions that may delegate to the external service.
const (
	SourceDeterministic = "deterministic"
	SourceAI            = "ai"
)

// Request is one processing call.
type Request struct {
	Action       string            `json:"action"`
	Text         string            `json:"text"`
	TemplateName string            `json:"template_name"`
	Style        string            `json:"style"`
	Variables    map[string]string `json:"variables"`
}

// Validate rejects unknown actions. Unknown styles are accepted on purpose:
// the corrector treats them as a fallback style, not an error.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Action,
			validation.Required,
			validation.In(ActionAutocorrect, ActionSummarize, ActionAnalyze, ActionTemplate, ActionAutofill),
		),
	)
}

// Envelope is the uniform wrapper for every successful processing response.
// Exactly one of Result or Analysis carries the payload, selected by Type.
type Envelope struct {
	Success     bool      `json:"success"`
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	InputLength int       `json:"input_length"`
	Type        string    `json:"type"`

	Result   string             `json:"result,omitempty"`
	Analysis *textproc.Analysis `json:"analysis,omitempty"`

	// Action-specific metadata.
	Style             string   `json:"style,omitempty"`
	Source            string   `json:"source,omitempty"`
	OriginalWordCount int      `json:"original_word_count,omitempty"`
	SummaryWordCount  int      `json:"summary_word_count,omitempty"`
	TemplateID        string   `json:"template_id,omitempty"`
	Variables         []string `json:"variables,omitempty"`
}

// ErrorEnvelope is the uniform wrapper for every failed processing response.
type ErrorEnvelope struct {
	Success    bool      `json:"success"`
	Error      string    `json:"error"`
	StatusCode int       `json:"status_code"`
	Timestamp  time.Time `json:"timestamp"`
}

// Service routes actions to transformers and records usage. It owns no
// global state: the registry, usage log, and collaborators are injected.
type Service struct {
	registry *template.Registry
	usage    *usagelog.Log
	ai       *aiclient.Client
	broker   *sse.Broker
}

// New creates a processing service. ai and broker are optional; pass nil to
// run purely deterministic with no event stream.
func New(registry *template.Registry, usage *usagelog.Log, ai *aiclient.Client, broker *sse.Broker) *Service {
	return &Service{registry: registry, usage: usage, ai: ai, broker: broker}
}

// Process validates the request, runs the matching transformer, and returns
// the response envelope. All failures come back as typed errors; nothing
// panics across this boundary (the transformers are pure functions and the
// AI path degrades to them).
func (s *Service) Process(ctx context.Context, req Request) (*Envelope, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperr.ErrBadRequest)
	}

	env := &Envelope{
		Success:     true,
		Action:      req.Action,
		Timestamp:   time.Now().UTC(),
		InputLength: len(req.Text),
	}

	switch req.Action {
	case ActionAutocorrect:
		style := req.Style
		if style == "" {
			style = textproc.StyleFormal
		}
		env.Type = "correction"
		env.Style = style
		env.Result, env.Source = s.correct(ctx, req.Text, style)

	case ActionSummarize:
		env.Type = "summary"
		sum := textproc.Summarize(req.Text)
		env.Result, env.Source = s.summarize(ctx, req.Text)
		env.OriginalWordCount = sum.OriginalWords
		if env.Source == SourceAI {
			env.SummaryWordCount = len(strings.Fields(env.Result))
		} else {
			env.SummaryWordCount = sum.SummaryWords
		}

	case ActionAnalyze:
		a := textproc.Analyze(req.Text)
		env.Type = "analysis"
		env.Analysis = &a

	case ActionTemplate:
		rec, err := s.registry.Get(req.TemplateName)
		if err != nil {
			return nil, err
		}
		env.Type = "template"
		env.TemplateID = rec.ID
		env.Result = rec.Body
		env.Variables = rec.Variables

	case ActionAutofill:
		rec, err := s.registry.Get(req.TemplateName)
		if err != nil {
			return nil, err
		}
		env.Type = "autofill"
		env.TemplateID = rec.ID
		env.Result = template.Fill(rec, req.Variables)
		env.Variables = rec.Variables
	}

	s.record(req, env)
	return env, nil
}

// correct runs autocorrect, preferring the external service when configured.
func (s *Service) correct(ctx context.Context, text, style string) (result, source string) {
	if s.ai.Enabled() && text != "" {
		prompt := fmt.Sprintf("Correct the grammar and punctuation of the following text in a %s register. Reply with the corrected text only.", style)
		out, err := s.ai.Complete(ctx, prompt, text)
		if err == nil {
			return out, SourceAI
		}
		slog.Warn("ai autocorrect failed, using deterministic path", slog.String("error", err.Error()))
	}
	return textproc.Correct(text, style), SourceDeterministic
}

// summarize runs summarization, preferring the external service when
// configured.
func (s *Service) summarize(ctx context.Context, text string) (result, source string) {
	if s.ai.Enabled() && text != "" {
		system := fmt.Sprintf("Summarize the following text in at most %d words. Reply with the summary only.", textproc.SummaryWordLimit)
		out, err := s.ai.Complete(ctx, system, text)
		if err == nil {
			return out, SourceAI
		}
		slog.Warn("ai summarize failed, using deterministic path", slog.String("error", err.Error()))
	}
	return textproc.Summarize(text).Text, SourceDeterministic
}

// record appends a usage entry and publishes it to the event stream.
func (s *Service) record(req Request, env *Envelope) {
	out := env.Result
	if env.Analysis != nil {
		if b, err := json.Marshal(env.Analysis); err == nil {
			out = string(b)
		}
	}

	entry := usagelog.Entry{
		Action:       req.Action,
		Timestamp:    env.Timestamp,
		InputLength:  len(req.Text),
		OutputLength: len(out),
	}
	s.usage.Append(entry)
	if s.broker != nil {
		s.broker.PublishUsage(entry)
	}
}

// StatusFor maps a processing error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorEnvelopeFor converts err into the uniform error envelope. Internal
// error detail is replaced with a generic message unless verbose is set
// (development mode).
func ErrorEnvelopeFor(err error, verbose bool) (int, ErrorEnvelope) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError && !verbose {
		msg = "internal error"
	}
	return status, ErrorEnvelope{
		Success:    false,
		Error:      msg,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	}
}

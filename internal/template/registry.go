// Package template holds the in-memory template registry and the fill logic
// behind the template and autofill actions.
package template

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/quillworks/quill/internal/apperr"
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z][A-Za-z0-9_]*)\}`)

// Record is one stored template. Body contains {variableName}-style
// placeholders; Variables lists them in substitution order.
type Record struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Body      string   `json:"body"`
	Variables []string `json:"variables"`
}

// Registry is a mutex-protected template store with stable insertion order.
// State is in-memory only and lost on restart.
type Registry struct {
	mu        sync.RWMutex
	records   map[string]Record
	order     []string
	defaultID string
}

// NewRegistry creates an empty registry. defaultID is returned by Get when
// the caller passes an empty id.
func NewRegistry(defaultID string) *Registry {
	return &Registry{
		records:   make(map[string]Record),
		defaultID: defaultID,
	}
}

// DeriveID converts a display name into a registry key: lowercased,
// whitespace runs replaced with underscores.
func DeriveID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

// Get returns the template for id, or the default template when id is empty.
// An explicit id that is absent yields apperr.ErrNotFound.
func (r *Registry) Get(id string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if id == "" {
		id = r.defaultID
	}
	rec, ok := r.records[id]
	if !ok {
		return Record{}, fmt.Errorf("template %q: %w", id, apperr.ErrNotFound)
	}
	return rec, nil
}

// List returns all templates in insertion order. An overwrite keeps the
// original position, so the order is stable across calls.
func (r *Registry) List() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out
}

// Create derives an id from name, validates the record, and stores it.
// A colliding id overwrites the existing record (last write wins).
func (r *Registry) Create(name, body string, variables []string) (Record, error) {
	rec := Record{
		ID:        DeriveID(name),
		Name:      name,
		Body:      body,
		Variables: variables,
	}
	if err := Validate(rec); err != nil {
		return Record{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(rec)
	return rec, nil
}

// Upsert validates and stores pre-built records, e.g. from a seed file.
// Records that fail validation are skipped and reported back so the caller
// can log them without aborting the rest of the batch.
func (r *Registry) Upsert(records []Record) []error {
	var errs []error
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if err := Validate(rec); err != nil {
			errs = append(errs, err)
			continue
		}
		r.put(rec)
	}
	return errs
}

// put stores rec, preserving insertion order on overwrite. Callers hold mu.
func (r *Registry) put(rec Record) {
	if _, exists := r.records[rec.ID]; !exists {
		r.order = append(r.order, rec.ID)
	}
	r.records[rec.ID] = rec
}

// Validate checks that a record's declared variable list exactly matches the
// placeholder names appearing in its body. Mismatches fail fast so stale
// placeholders can never reach the fill path unfilled.
func Validate(rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("template name is required: %w", apperr.ErrBadRequest)
	}

	inBody := make(map[string]bool)
	for _, m := range placeholderRe.FindAllStringSubmatch(rec.Body, -1) {
		inBody[m[1]] = true
	}

	declared := make(map[string]bool, len(rec.Variables))
	for _, v := range rec.Variables {
		declared[v] = true
		if !inBody[v] {
			return fmt.Errorf("template %q: declared variable %q has no {%s} placeholder in body: %w",
				rec.ID, v, v, apperr.ErrBadRequest)
		}
	}
	for name := range inBody {
		if !declared[name] {
			return fmt.Errorf("template %q: body placeholder {%s} is not declared in variables: %w",
				rec.ID, name, apperr.ErrBadRequest)
		}
	}
	return nil
}

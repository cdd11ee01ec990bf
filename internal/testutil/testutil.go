// Package testutil provides shared test helpers for building isolated
// service instances.
package testutil

import (
	"testing"

	"github.com/quillworks/quill/internal/processor"
	"github.com/quillworks/quill/internal/template"
	"github.com/quillworks/quill/internal/usagelog"
)

// TestRegistry creates a registry seeded with the built-in template set.
func TestRegistry(t *testing.T) *template.Registry {
	t.Helper()
	reg := template.NewRegistry(template.DefaultTemplateID)
	if errs := reg.Upsert(template.BuiltinSeed()); len(errs) != 0 {
		t.Fatalf("builtin seed rejected: %v", errs)
	}
	return reg
}

// TestService creates a deterministic processing service (no AI client, no
// event broker) with a fresh registry and usage log.
func TestService(t *testing.T) (*processor.Service, *template.Registry, *usagelog.Log) {
	t.Helper()
	reg := TestRegistry(t)
	usage := usagelog.NewLog(100)
	return processor.New(reg, usage, nil, nil), reg, usage
}

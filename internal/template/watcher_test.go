package template

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quillworks/quill/internal/apperr"
)

func TestWatchSeed_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "templates.yaml")

	initial := `
templates:
  - name: First
    body: "{a}"
    variables: [a]
`
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := NewRegistry("first")
	records, err := LoadSeed(path)
	if err != nil {
		t.Fatal(err)
	}
	reg.Upsert(records)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	go func() {
		defer close(done)
		_ = WatchSeed(ctx, reg, path, logger)
	}()

	// Give the watcher time to attach before mutating the file.
	time.Sleep(100 * time.Millisecond)

	updated := initial + `  - name: Second
    body: "{b}"
    variables: [b]
`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, err := reg.Get("second"); err == nil {
			break
		} else if !errors.Is(err, apperr.ErrNotFound) {
			t.Fatalf("unexpected error: %v", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("timeout waiting for seed reload")
		}
		time.Sleep(50 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

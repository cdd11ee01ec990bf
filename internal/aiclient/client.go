// Package aiclient calls an OpenAI-compatible chat-completions endpoint.
// The service treats it as an optional collaborator: callers fall back to
// the deterministic transformers on any error.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client holds connection settings for the external completion service.
// A nil Client (or one without an API key) reports itself as disabled.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
}

// New creates a client. timeout bounds each HTTP attempt so a slow upstream
// degrades to the deterministic path instead of hanging the request.
func New(baseURL, apiKey, model string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether the client is configured with a credential.
func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete sends a system+user prompt pair and returns the first choice's
// content. A transport failure or 5xx is retried once; anything else fails
// immediately. Correctness never depends on this path.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.Enabled() {
		return "", errors.New("aiclient: not configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	out, err := c.attempt(ctx, body)
	if err != nil && retryable(err) && ctx.Err() == nil {
		out, err = c.attempt(ctx, body)
	}
	return out, err
}

// retryableError marks failures worth one more attempt.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

func (c *Client) attempt(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &retryableError{err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 500 {
		return "", &retryableError{err: fmt.Errorf("aiclient: upstream status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("aiclient: upstream status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", fmt.Errorf("aiclient: decode response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("aiclient: upstream error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("aiclient: empty choices")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

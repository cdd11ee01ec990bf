// Package apperr defines the sentinel errors shared across service layers.
package apperr

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

// Package apperr defines sentinel errors shared across Raido services.
package apperr

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrNoActive = errors.New("no active document")
)

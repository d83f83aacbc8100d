// Package noteservice coordinates storage and index operations behind the
// API, CLI, and MCP surfaces.
package noteservice

import (
	"context"
	"errors"
	"os"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/index"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/normalizer"
	"github.com/starford/raido/internal/storage"
)

// NormalizeResult reports what the normalizer did to one document.
type NormalizeResult struct {
	Path     string `json:"path"`
	Rewrites int    `json:"rewrites"`
	Changed  bool   `json:"changed"`
}

// Service coordinates storage and index operations.
type Service struct {
	store storage.Provider
	db    index.LinkIndex
}

// NewService creates a new note service.
func NewService(store storage.Provider, db index.LinkIndex) *Service {
	return &Service{store: store, db: db}
}

// ReadNote returns the raw content of a note.
func (s *Service) ReadNote(_ context.Context, path string) ([]byte, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Links returns the embed-index entry for a note: its resolved targets
// with reference counts, in lexicographic target order.
func (s *Service) Links(_ context.Context, path string) ([]models.Embed, error) {
	return s.db.Targets(path)
}

// NormalizeEmbeds rewrites every embedded image reference in the document
// at path into inline-link syntax, resolving refs against the index entry
// for that document. A document with no index entry is left unchanged.
// The rewritten text lands in one atomic whole-file write.
func (s *Service) NormalizeEmbeds(ctx context.Context, path string) (*NormalizeResult, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	embeds, err := s.db.Targets(path)
	if err != nil {
		return nil, err
	}
	res := &NormalizeResult{Path: path}
	if len(embeds) == 0 {
		return res, nil
	}

	targets := make([]string, len(embeds))
	for i, e := range embeds {
		targets[i] = e.Target
	}

	text, rewrites := normalizer.Rewrite(string(data), targets)
	res.Rewrites = rewrites
	if text == string(data) {
		return res, nil
	}

	if err := s.store.Write(path, []byte(text)); err != nil {
		return nil, err
	}
	res.Changed = true
	return res, nil
}

package stamp

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/starford/raido/internal/dateformat"
	"github.com/starford/raido/internal/frontmatter"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/settings"
	"github.com/starford/raido/internal/storage"
)

// Outcome classifies one engine run.
type Outcome string

const (
	// OutcomeOK means the engine ran; it may or may not have written.
	OutcomeOK Outcome = "ok"
	// OutcomeIgnored means the eligibility filter short-circuited.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeError means the metadata block could not be parsed. The event
	// is not retried; the next save gets a fresh attempt.
	OutcomeError Outcome = "error"
)

// Notifier receives transient user-visible warnings.
type Notifier interface {
	Warn(path, message string)
}

// Engine applies the stamp decision to one file-save event at a time.
type Engine struct {
	store    storage.Provider
	settings *settings.Store
	filter   *Filter
	notify   Notifier
	logger   *slog.Logger
}

// NewEngine creates a stamp engine. notify may be nil when no notification
// surface is attached.
func NewEngine(store storage.Provider, st *settings.Store, notify Notifier, logger *slog.Logger) *Engine {
	return &Engine{
		store:    store,
		settings: st,
		filter:   NewFilter(store),
		notify:   notify,
		logger:   logger,
	}
}

// Apply processes one modify event for path (relative to the vault root).
//
// Decision per save: the filesystem mtime always parses; the stored value
// may be missing or unparseable, which forces a first write (also the
// repair path for malformed values). Otherwise a write happens only when
// the mtime is strictly after the stored value plus the debounce window.
func (e *Engine) Apply(_ context.Context, path string) (Outcome, error) {
	st := e.settings.Snapshot()

	info, err := e.store.Stat(path)
	if err != nil {
		// File vanished between the event and now.
		e.logger.Debug("stamp: stat failed", slog.String("path", path), slog.String("error", err.Error()))
		return OutcomeIgnored, nil
	}

	file := models.FileRef{
		Path:      path,
		Name:      filepath.Base(path),
		Extension: filepath.Ext(path),
		ModTime:   info.ModTime(),
	}

	skip, err := e.filter.Ignore(file, st)
	if err != nil {
		e.logger.Warn("stamp: content read failed", slog.String("path", path), slog.String("error", err.Error()))
		return OutcomeIgnored, nil
	}
	if skip {
		return OutcomeIgnored, nil
	}

	f := dateformat.New(st.DateFormat)
	mTime := f.ParseMillis(info.ModTime().UnixMilli())
	window := time.Duration(st.MinMinutesBetweenSaves) * time.Minute

	err = frontmatter.Update(e.store, path, func(fm map[string]any) bool {
		raw, present := fm[st.HeaderUpdated]
		if present {
			if current, valid := f.ParseValue(raw); valid {
				nextUpdate := current.Add(window)
				if !mTime.After(nextUpdate) {
					return false
				}
				fm[st.HeaderUpdated] = f.Format(mTime)
				return true
			}
		}
		// Missing or unparseable value: first write / repair.
		fm[st.HeaderUpdated] = f.Format(mTime)
		return true
	})
	if err != nil {
		var pe *frontmatter.ParseError
		if errors.As(err, &pe) {
			e.logger.Warn("stamp: metadata parse failed",
				slog.String("path", path),
				slog.String("error", pe.Err.Error()))
			if e.notify != nil {
				e.notify.Warn(path, pe.Error())
			}
			return OutcomeError, err
		}
		e.logger.Error("stamp: write failed", slog.String("path", path), slog.String("error", err.Error()))
		return OutcomeError, err
	}

	return OutcomeOK, nil
}

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/active"
	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/settings"
)

// Handler holds API route handlers.
type Handler struct {
	svc      *noteservice.Service
	settings *settings.Store
	tracker  *active.Tracker
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service, st *settings.Store, tracker *active.Tracker) *Handler {
	return &Handler{svc: svc, settings: st, tracker: tracker}
}

// notePath extracts the note path from the URL (everything after the
// route prefix). Supports encoded slashes (e.g. topics%2Fnote.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// GetSettings handles GET /api/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Snapshot())
}

// PutSettings handles PUT /api/settings. The whole settings document is
// replaced, validated, and persisted before the response is written.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	err := h.settings.Update(func(s *settings.Settings) {
		*s = req
	})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.settings.Snapshot())
}

// GetActive handles GET /api/active.
func (h *Handler) GetActive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ActiveResponse{Path: h.tracker.Path()})
}

// PutActive handles PUT /api/active. Editor frontends call this on focus
// change so the stamp engine only ever touches the focused document.
func (h *Handler) PutActive(w http.ResponseWriter, r *http.Request) {
	var req ActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	h.tracker.Set(req.Path)
	writeJSON(w, http.StatusOK, ActiveResponse{Path: h.tracker.Path()})
}

// Normalize handles POST /api/normalize.
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	var req NormalizeRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
			return
		}
	}
	path := req.Path
	if path == "" {
		path = h.tracker.Path()
	}
	if path == "" {
		writeJSON(w, http.StatusConflict, errorBody(apperr.ErrNoActive.Error()))
		return
	}

	res, err := h.svc.NormalizeEmbeds(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("note not found"))
			return
		}
		slog.Error("normalize failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetLinks handles GET /api/links/*.
func (h *Handler) GetLinks(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path required"))
		return
	}
	targets, err := h.svc.Links(r.Context(), path)
	if err != nil {
		slog.Error("links lookup failed", slog.String("path", path), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, LinksResponse{Path: path, Targets: targets})
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/active"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/settings"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *noteservice.Service, st *settings.Store, tracker *active.Tracker, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, st, tracker)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Stamp settings.
	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.PutSettings)

	// Active document focus.
	r.Get("/active", h.GetActive)
	r.Put("/active", h.PutActive)

	// Embed-link normalization command.
	r.Post("/normalize", h.Normalize)

	// Embed-index entries.
	r.Get("/links/*", h.GetLinks)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

package api

import (
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/noteservice"
	"github.com/starford/raido/internal/settings"
)

// SettingsResponse is the settings document returned and accepted by the
// settings endpoints.
type SettingsResponse = settings.Settings

// ActiveRequest sets the currently focused document. An empty path clears
// the focus.
type ActiveRequest struct {
	Path string `json:"path"`
}

// ActiveResponse reports the currently focused document.
type ActiveResponse struct {
	Path string `json:"path"`
}

// NormalizeRequest names the document to normalize. When Path is empty the
// active document is used.
type NormalizeRequest struct {
	Path string `json:"path"`
}

// NormalizeResult is the normalization outcome (aliased from the domain layer).
type NormalizeResult = noteservice.NormalizeResult

// LinksResponse wraps the embed-index entry for one document.
type LinksResponse struct {
	Path    string         `json:"path"`
	Targets []models.Embed `json:"targets"`
}

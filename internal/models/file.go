// Package models defines the domain types for Raido.
package models

import "time"

// FileRef identifies a vault file for filtering and classification.
// Path is always relative to the vault root.
type FileRef struct {
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Extension string    `json:"extension"`
	ModTime   time.Time `json:"mod_time"`
}

// NoteMetadata is a lightweight representation returned by list operations.
type NoteMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Embed represents one embedded reference from a source note to a target
// file, with the number of times the source embeds it.
type Embed struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Count  int    `json:"count"`
}

// Package storage defines the vault file-system abstraction.
package storage

import (
	"io/fs"

	"github.com/starford/raido/internal/models"
)

// Provider is the interface for vault file operations.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to vault root).
	List(dir string) ([]models.NoteMetadata, error)
	// Files returns the relative path of every regular file under dir,
	// regardless of extension. Used to resolve embed targets against
	// attachments that are not themselves notes.
	Files(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
	// Stat returns file info (including the modification time the stamp
	// engine consumes) for path.
	Stat(path string) (fs.FileInfo, error)
	// Delete removes the file at path (relative to vault root).
	Delete(path string) error
}

package index

import "github.com/starford/raido/internal/models"

// LinkIndex defines the interface for embed-index operations. Consumers
// should depend on this interface rather than the concrete *DB type to
// facilitate testing with mocks.
type LinkIndex interface {
	UpsertNote(path, checksum string, embeds map[string]int) error
	DeleteNote(path string) error
	Targets(source string) ([]models.Embed, error)
	GetChecksum(path string) (string, error)
	AllChecksums() (map[string]string, error)
	Close() error
}

// Verify *DB satisfies LinkIndex at compile time.
var _ LinkIndex = (*DB)(nil)

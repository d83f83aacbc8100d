package index

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/starford/raido/internal/checksum"
	"github.com/starford/raido/internal/parser"
	"github.com/starford/raido/internal/storage"
)

// Resolver maps an embed ref as written to a vault-relative target path.
// Refs that match no file resolve to themselves.
type Resolver func(ref string) string

// NewResolver builds a Resolver from every file currently in the vault,
// attachments included. A ref matches a file whose path equals it or ends
// with it as a path segment; ties go to the lexicographically first path.
func NewResolver(store storage.Provider) (Resolver, error) {
	files, err := store.Files("")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return func(ref string) string {
		for _, f := range files {
			if f == ref || strings.HasSuffix(f, "/"+ref) {
				return f
			}
		}
		return ref
	}, nil
}

// Sync walks the vault and brings the index up to date:
//   - new/changed notes are parsed and upserted
//   - notes removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	resolve, err := NewResolver(store)
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexFile(db, m.Path, data, resolve); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	// Remove stale entries.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteNote(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// indexFile extracts embed refs from data, resolves them, and upserts the
// note's entry.
func indexFile(db *DB, path string, data []byte, resolve Resolver) error {
	counts := parser.EmbedRefCounts(string(data))

	resolved := make(map[string]int, len(counts))
	for ref, n := range counts {
		resolved[resolve(ref)] += n
	}

	return db.UpsertNote(path, checksum.Sum(data), resolved)
}

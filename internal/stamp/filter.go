package stamp

import (
	"bytes"
	"strings"

	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/settings"
	"github.com/starford/raido/internal/storage"
)

// MarkdownExt is the only extension the stamp engine touches.
const MarkdownExt = ".md"

// ReservedCompanionName is the book-index file that generators emit next
// to a vault. It carries a markdown extension but is not a note; stamping
// it would corrupt the generated index.
const ReservedCompanionName = "SUMMARY.md"

// Filter gates whether the stamp engine runs for a file. The checks run
// cheapest first; the content read happens only once every path-based
// check has passed.
type Filter struct {
	store storage.Provider
}

// NewFilter creates a Filter backed by store.
func NewFilter(store storage.Provider) *Filter {
	return &Filter{store: store}
}

// Ignore reports whether the stamp engine must skip file. The returned
// error is non-nil only when the content read fails, in which case the
// file is also skipped.
func (f *Filter) Ignore(file models.FileRef, st settings.Settings) (bool, error) {
	if file.Path == "" {
		return true, nil
	}
	if file.Extension != MarkdownExt {
		return true, nil
	}
	if file.Name == ReservedCompanionName {
		return true, nil
	}

	content, err := f.store.Read(file.Path)
	if err != nil {
		return true, err
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return true, nil
	}

	if ownedByIntegration(file) {
		return true, nil
	}

	for _, prefix := range st.IgnoreGlobalFolder {
		if prefix != "" && strings.HasPrefix(file.Path, prefix) {
			return true, nil
		}
	}
	return false, nil
}

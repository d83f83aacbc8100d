// Package stamp decides, per file-save event, whether the "last modified"
// frontmatter field of a note should be rewritten.
package stamp

import (
	"sync"

	"github.com/starford/raido/internal/models"
)

// FileClassifier lets a third-party integration claim ownership of files
// that carry a markdown extension but are not markdown-shaped, such as the
// drawing tool's scene files. Raido never stamps an owned file.
type FileClassifier interface {
	OwnsFile(file models.FileRef) bool
}

var (
	classifierMu sync.RWMutex
	classifier   FileClassifier
)

// RegisterClassifier installs the process-wide classifier. Integrations
// call this once at startup; passing nil removes it.
func RegisterClassifier(c FileClassifier) {
	classifierMu.Lock()
	defer classifierMu.Unlock()
	classifier = c
}

// ownedByIntegration reports whether an installed classifier claims file.
// No classifier installed means no file is claimed.
func ownedByIntegration(file models.FileRef) bool {
	classifierMu.RLock()
	defer classifierMu.RUnlock()
	if classifier == nil {
		return false
	}
	return classifier.OwnsFile(file)
}

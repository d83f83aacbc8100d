// Package active tracks the currently focused document. Editor frontends
// report focus changes over the API; the watcher consults the tracker so
// that background saves never trigger metadata writes.
package active

import "sync"

// Tracker holds the path of the active document, or empty when no
// document is focused.
type Tracker struct {
	mu   sync.RWMutex
	path string
}

// NewTracker creates a tracker with no active document.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Set records path as the active document. Empty clears the focus.
func (t *Tracker) Set(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.path = path
}

// Path returns the active document path, or empty.
func (t *Tracker) Path() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path
}

// Is reports whether path is the active document.
func (t *Tracker) Is(path string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path != "" && t.path == path
}

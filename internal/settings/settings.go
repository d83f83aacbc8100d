// Package settings holds the mutable stamp configuration: loaded at
// startup as defaults merged with the persisted file, mutated through the
// API, and saved back on every change.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// FolderList is an ordered list of path prefixes. Earlier versions
// persisted a single string; the YAML boundary accepts both forms so the
// rest of the code only ever sees a slice.
type FolderList []string

// UnmarshalYAML accepts either a scalar (legacy) or a sequence.
func (l *FolderList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = FolderList{s}
		return nil
	}
	var ss []string
	if err := value.Decode(&ss); err != nil {
		return err
	}
	*l = FolderList(ss)
	return nil
}

// Settings are the user-configurable stamp options.
//
// DateFormat is deliberately not validated here: a malformed pattern
// surfaces later as a parse failure, which the engine treats as an absent
// stored value.
type Settings struct {
	DateFormat             string     `yaml:"dateFormat" json:"dateFormat"`
	HeaderUpdated          string     `yaml:"headerUpdated" json:"headerUpdated"`
	MinMinutesBetweenSaves int        `yaml:"minMinutesBetweenSaves" json:"minMinutesBetweenSaves"`
	IgnoreGlobalFolder     FolderList `yaml:"ignoreGlobalFolder" json:"ignoreGlobalFolder"`
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.MinMinutesBetweenSaves, validation.Required, validation.Min(1), validation.Max(30)),
	)
}

// Defaults returns the settings used when nothing has been persisted yet.
func Defaults() Settings {
	return Settings{
		DateFormat:             "yyyy-MM-dd'T'HH:mm",
		HeaderUpdated:          "updated",
		MinMinutesBetweenSaves: 3,
		IgnoreGlobalFolder:     nil,
	}
}

// Store owns the settings lifecycle. Every mutation goes through Update,
// which validates and persists before the new value becomes visible.
type Store struct {
	path string

	mu  sync.RWMutex
	cur Settings
}

// Open loads settings from path, merging the persisted file over defaults.
// A missing file is not an error: defaults apply and the file is created
// on the first Update.
func Open(path string) (*Store, error) {
	s := &Store{path: path, cur: Defaults()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	// Unmarshal over the defaults so absent keys keep their default value.
	if err := yaml.Unmarshal(data, &s.cur); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if err := s.cur.Validate(); err != nil {
		return nil, fmt.Errorf("settings: validate %s: %w", path, err)
	}
	return s, nil
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.cur
	out.IgnoreGlobalFolder = append(FolderList(nil), s.cur.IgnoreGlobalFolder...)
	return out
}

// Update applies fn to a copy of the current settings, validates the
// result, persists it, and only then swaps it in. On any failure the
// in-memory settings are unchanged.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.cur
	next.IgnoreGlobalFolder = append(FolderList(nil), s.cur.IgnoreGlobalFolder...)
	fn(&next)

	if err := next.Validate(); err != nil {
		return fmt.Errorf("settings: validate: %w", err)
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.cur = next
	return nil
}

// save writes settings atomically: tmp file → rename.
func (s *Store) save(v Settings) error {
	data, err := yaml.Marshal(&v)
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-tmp-*")
	if err != nil {
		return fmt.Errorf("settings: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("settings: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("settings: rename: %w", err)
	}
	return nil
}

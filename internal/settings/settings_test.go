package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "settings.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return st
}

func TestOpen_MissingFileUsesDefaults(t *testing.T) {
	st := tempStore(t)
	got := st.Snapshot()
	want := Defaults()
	if got.DateFormat != want.DateFormat || got.HeaderUpdated != want.HeaderUpdated ||
		got.MinMinutesBetweenSaves != want.MinMinutesBetweenSaves {
		t.Errorf("snapshot = %+v, want defaults %+v", got, want)
	}
}

func TestOpen_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	// Only one key persisted; the rest must keep defaults.
	if err := os.WriteFile(path, []byte("minMinutesBetweenSaves: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got := st.Snapshot()
	if got.MinMinutesBetweenSaves != 10 {
		t.Errorf("minMinutes = %d, want 10", got.MinMinutesBetweenSaves)
	}
	if got.HeaderUpdated != Defaults().HeaderUpdated {
		t.Errorf("headerUpdated = %q, want default", got.HeaderUpdated)
	}
}

func TestFolderList_LegacyScalar(t *testing.T) {
	var s Settings
	data := "minMinutesBetweenSaves: 5\nignoreGlobalFolder: templates/\n"
	if err := yaml.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s.IgnoreGlobalFolder) != 1 || s.IgnoreGlobalFolder[0] != "templates/" {
		t.Errorf("folders = %v, want [templates/]", s.IgnoreGlobalFolder)
	}
}

func TestFolderList_SequenceForm(t *testing.T) {
	var s Settings
	data := "ignoreGlobalFolder:\n  - templates/\n  - archive/\n"
	if err := yaml.Unmarshal([]byte(data), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(s.IgnoreGlobalFolder) != 2 || s.IgnoreGlobalFolder[0] != "templates/" || s.IgnoreGlobalFolder[1] != "archive/" {
		t.Errorf("folders = %v", s.IgnoreGlobalFolder)
	}
}

func TestValidate_DebounceBounds(t *testing.T) {
	for _, tc := range []struct {
		minutes int
		ok      bool
	}{
		{0, false},
		{1, true},
		{30, true},
		{31, false},
		{-3, false},
	} {
		s := Defaults()
		s.MinMinutesBetweenSaves = tc.minutes
		err := s.Validate()
		if tc.ok && err != nil {
			t.Errorf("minutes %d: unexpected error %v", tc.minutes, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("minutes %d: expected validation error", tc.minutes)
		}
	}
}

func TestUpdate_PersistsImmediately(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	st, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	err = st.Update(func(s *Settings) {
		s.HeaderUpdated = "last-modified"
		s.IgnoreGlobalFolder = FolderList{"templates/"}
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	// A fresh store must see the persisted value.
	st2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	got := st2.Snapshot()
	if got.HeaderUpdated != "last-modified" {
		t.Errorf("headerUpdated = %q", got.HeaderUpdated)
	}
	if len(got.IgnoreGlobalFolder) != 1 || got.IgnoreGlobalFolder[0] != "templates/" {
		t.Errorf("folders = %v", got.IgnoreGlobalFolder)
	}
}

func TestUpdate_InvalidLeavesCurrentUntouched(t *testing.T) {
	st := tempStore(t)
	err := st.Update(func(s *Settings) {
		s.MinMinutesBetweenSaves = 99
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "minMinutesBetweenSaves") &&
		!strings.Contains(err.Error(), "MinMinutesBetweenSaves") {
		t.Logf("error = %v", err)
	}
	if got := st.Snapshot().MinMinutesBetweenSaves; got != Defaults().MinMinutesBetweenSaves {
		t.Errorf("minutes mutated to %d despite failed update", got)
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	st := tempStore(t)
	if err := st.Update(func(s *Settings) {
		s.IgnoreGlobalFolder = FolderList{"a/"}
	}); err != nil {
		t.Fatal(err)
	}
	snap := st.Snapshot()
	snap.IgnoreGlobalFolder[0] = "mutated/"
	if got := st.Snapshot().IgnoreGlobalFolder[0]; got != "a/" {
		t.Errorf("snapshot mutation leaked into store: %q", got)
	}
}

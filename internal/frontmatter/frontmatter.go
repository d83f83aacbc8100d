// Package frontmatter implements the scoped read-modify-write primitive
// for a note's metadata block. A mutation either lands atomically via the
// storage layer or nothing is written at all.
package frontmatter

import (
	"bytes"
	"fmt"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/starford/raido/internal/storage"
)

// ParseError reports a structurally malformed metadata block. It is the
// only frontmatter failure that surfaces to the user.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("frontmatter: %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse splits content into its metadata mapping and body. Content without
// a metadata block yields an empty mapping and the full content as body.
// A malformed block returns a *ParseError carrying path.
func Parse(path string, content []byte) (map[string]any, []byte, error) {
	fm := map[string]any{}
	body, err := adrg.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}
	return fm, body, nil
}

// Update applies mutate to the metadata mapping of the note at path.
// mutate reports whether it changed anything; when it returns false the
// file is left untouched. The rewrite goes through storage.Write, so a
// partial write is never visible.
func Update(store storage.Provider, path string, mutate func(fm map[string]any) bool) error {
	content, err := store.Read(path)
	if err != nil {
		return err
	}

	fm, body, err := Parse(path, content)
	if err != nil {
		return err
	}

	if !mutate(fm) {
		return nil
	}

	out, err := render(fm, body)
	if err != nil {
		return fmt.Errorf("frontmatter: render %s: %w", path, err)
	}
	return store.Write(path, out)
}

// render serializes the mapping back into a leading metadata block
// followed by the untouched body.
func render(fm map[string]any, body []byte) ([]byte, error) {
	if len(fm) == 0 {
		return body, nil
	}
	block, err := yaml.Marshal(fm)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(block)
	buf.WriteString("---\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

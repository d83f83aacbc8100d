// Package parser extracts embedded references from Markdown content.
package parser

import (
	"regexp"
	"strings"
)

// embedRe matches ![[ref]] and ![[ref|alias]]. The ref may not contain
// '|' or ']'; the alias may not contain ']'.
var embedRe = regexp.MustCompile(`!\[\[([^|\]]+)(?:\|([^\]]*))?\]\]`)

// Embed is a single embedded reference found in a document body.
type Embed struct {
	Ref   string // target as written, before any resolution
	Alias string // empty when no alias was given
}

// Embeds returns every embedded reference in body, in document order.
// Duplicates are kept: callers that need reference counts count them.
func Embeds(body string) []Embed {
	matches := embedRe.FindAllStringSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]Embed, 0, len(matches))
	for _, m := range matches {
		ref := strings.TrimSpace(m[1])
		if ref == "" {
			continue
		}
		out = append(out, Embed{Ref: ref, Alias: m[2]})
	}
	return out
}

// EmbedRefCounts returns how many times each distinct ref is embedded.
func EmbedRefCounts(body string) map[string]int {
	embeds := Embeds(body)
	if len(embeds) == 0 {
		return nil
	}
	counts := make(map[string]int, len(embeds))
	for _, e := range embeds {
		counts[e.Ref]++
	}
	return counts
}

// ReplaceEmbeds rewrites every embed in body through fn. fn receives the
// ref and alias of one match and returns the full replacement text.
func ReplaceEmbeds(body string, fn func(ref, alias string) string) string {
	return embedRe.ReplaceAllStringFunc(body, func(match string) string {
		sub := embedRe.FindStringSubmatch(match)
		return fn(sub[1], sub[2])
	})
}

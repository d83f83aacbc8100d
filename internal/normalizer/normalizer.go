// Package normalizer rewrites embed-style image references into standard
// inline-link syntax, resolving partial refs against the link index.
package normalizer

import (
	"sort"
	"strings"

	"github.com/starford/raido/internal/parser"
)

// Rewrite turns every ![[ref]] / ![[ref|alias]] in text into
// ![alias](resolved). A ref resolves to the first indexed target that
// contains it as a substring; targets are scanned in lexicographic order
// so resolution is deterministic. Unresolved refs pass through unchanged.
//
// Only the first literal space in the resulting path is percent-encoded.
// That matches the historical behavior; paths with several spaces or other
// reserved characters are not fully escaped.
func Rewrite(text string, targets []string) (string, int) {
	sorted := append([]string(nil), targets...)
	sort.Strings(sorted)

	replaced := 0
	out := parser.ReplaceEmbeds(text, func(ref, alias string) string {
		replaced++
		return "![" + alias + "](" + encodeFirstSpace(resolve(ref, sorted)) + ")"
	})
	return out, replaced
}

func resolve(ref string, targets []string) string {
	for _, t := range targets {
		if strings.Contains(t, ref) {
			return t
		}
	}
	return ref
}

func encodeFirstSpace(path string) string {
	return strings.Replace(path, " ", "%20", 1)
}

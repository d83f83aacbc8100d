// Package dateformat parses and renders timestamps using a configurable
// display pattern in the familiar yyyy-MM-dd'T'HH:mm token style.
//
// The pattern is translated to a Go time layout once per Formatter. Tokens
// the translator does not know pass through as literal text, so a malformed
// pattern never fails here; it surfaces later as a parse failure, which
// callers treat as "absent", not as an error.
package dateformat

import (
	"strings"
	"time"
)

// patternTokens maps display-pattern tokens to Go layout fragments.
// Longest tokens are tried first.
var patternTokens = []struct {
	token  string
	layout string
}{
	{"yyyy", "2006"},
	{"YYYY", "2006"},
	{"MM", "01"},
	{"dd", "02"},
	{"DD", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
}

// Formatter parses and formats timestamps against one display pattern.
type Formatter struct {
	pattern string
	layout  string
}

// New builds a Formatter for pattern. It never fails: unknown tokens are
// kept verbatim in the layout.
func New(pattern string) *Formatter {
	return &Formatter{pattern: pattern, layout: translate(pattern)}
}

// Pattern returns the display pattern the Formatter was built from.
func (f *Formatter) Pattern() string {
	return f.pattern
}

// ParseMillis interprets ms as epoch milliseconds. Always succeeds.
func (f *Formatter) ParseMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// ParseString parses s against the pattern. Components the pattern does
// not carry are anchored to today. Returns ok=false when s does not match;
// callers must treat that as an absent value.
func (f *Formatter) ParseString(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(f.layout, s, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	if t.Year() == 0 {
		// Pattern has no date part: anchor to today's date.
		now := time.Now()
		t = time.Date(now.Year(), now.Month(), now.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.Local)
	}
	return t, true
}

// ParseValue parses a frontmatter value of unknown type. Numeric values are
// epoch milliseconds and always succeed; strings go through ParseString;
// anything else is absent.
func (f *Formatter) ParseValue(v any) (time.Time, bool) {
	switch n := v.(type) {
	case int:
		return f.ParseMillis(int64(n)), true
	case int64:
		return f.ParseMillis(n), true
	case uint64:
		return f.ParseMillis(int64(n)), true
	case float64:
		return f.ParseMillis(int64(n)), true
	case string:
		if n == "" {
			return time.Time{}, false
		}
		return f.ParseString(n)
	default:
		return time.Time{}, false
	}
}

// Format renders t using the pattern.
func (f *Formatter) Format(t time.Time) string {
	return t.Format(f.layout)
}

// translate converts a display pattern into a Go time layout. Single-quoted
// runs are literal text; '' inside a quoted run is a literal quote.
func translate(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		if pattern[i] == '\'' {
			i++
			for i < len(pattern) {
				if pattern[i] == '\'' {
					if i+1 < len(pattern) && pattern[i+1] == '\'' {
						b.WriteByte('\'')
						i += 2
						continue
					}
					i++
					break
				}
				b.WriteByte(pattern[i])
				i++
			}
			continue
		}
		matched := false
		for _, tok := range patternTokens {
			if strings.HasPrefix(pattern[i:], tok.token) {
				b.WriteString(tok.layout)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

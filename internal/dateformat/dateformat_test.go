package dateformat

import (
	"testing"
	"time"
)

func TestTranslate_CommonPattern(t *testing.T) {
	got := translate("yyyy-MM-dd'T'HH:mm")
	want := "2006-01-02T15:04"
	if got != want {
		t.Errorf("translate = %q, want %q", got, want)
	}
}

func TestTranslate_QuotedLiteralsAndSeconds(t *testing.T) {
	got := translate("yyyy-MM-dd HH:mm:ss")
	if got != "2006-01-02 15:04:05" {
		t.Errorf("translate = %q", got)
	}
	got = translate("'at' HH:mm")
	if got != "at 15:04" {
		t.Errorf("translate with literal = %q", got)
	}
}

func TestTranslate_EscapedQuote(t *testing.T) {
	if got := translate("HH''mm"); got != "15'04" {
		t.Errorf("translate = %q", got)
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	f := New("yyyy-MM-dd'T'HH:mm")
	d := time.Date(2024, 3, 15, 9, 30, 42, 0, time.Local)

	s := f.Format(d)
	got, ok := f.ParseString(s)
	if !ok {
		t.Fatalf("ParseString(%q) failed", s)
	}
	// The pattern carries no seconds, so the round trip truncates to the
	// minute.
	want := d.Truncate(time.Minute)
	if !got.Equal(want) {
		t.Errorf("round trip = %v, want %v", got, want)
	}
}

func TestParseString_Invalid(t *testing.T) {
	f := New("yyyy-MM-dd'T'HH:mm")
	for _, s := range []string{"", "not a date", "2024-13-99T99:99", "yesterday"} {
		if _, ok := f.ParseString(s); ok {
			t.Errorf("ParseString(%q) should fail", s)
		}
	}
}

func TestParseString_TimeOnlyAnchorsToToday(t *testing.T) {
	f := New("HH:mm")
	got, ok := f.ParseString("10:30")
	if !ok {
		t.Fatal("ParseString failed")
	}
	now := time.Now()
	if got.Year() != now.Year() || got.Month() != now.Month() || got.Day() != now.Day() {
		t.Errorf("date part = %v, want today", got)
	}
	if got.Hour() != 10 || got.Minute() != 30 {
		t.Errorf("time part = %v, want 10:30", got)
	}
}

func TestParseMillis(t *testing.T) {
	f := New("yyyy-MM-dd'T'HH:mm")
	ms := int64(1704103200000)
	got := f.ParseMillis(ms)
	if got.UnixMilli() != ms {
		t.Errorf("ParseMillis = %v", got)
	}
}

func TestParseValue(t *testing.T) {
	f := New("yyyy-MM-dd'T'HH:mm")

	if _, ok := f.ParseValue(nil); ok {
		t.Error("nil should be absent")
	}
	if _, ok := f.ParseValue(""); ok {
		t.Error("empty string should be absent")
	}
	if _, ok := f.ParseValue([]string{"x"}); ok {
		t.Error("non-scalar should be absent")
	}

	// Numeric values are epoch millis and always parse.
	got, ok := f.ParseValue(int64(1704103200000))
	if !ok || got.UnixMilli() != 1704103200000 {
		t.Errorf("numeric ParseValue = %v, ok=%v", got, ok)
	}

	got, ok = f.ParseValue("2024-01-01T10:00")
	if !ok {
		t.Fatal("string ParseValue failed")
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("string ParseValue = %v, want %v", got, want)
	}
}

func TestMalformedPatternSurfacesAsParseFailure(t *testing.T) {
	// Unknown tokens stay literal, so nothing sensible will ever match.
	f := New("QQQQ-wut")
	if _, ok := f.ParseString("2024-01-01"); ok {
		t.Error("malformed pattern should fail at parse time, not earlier")
	}
	// Formatting still works; it just emits the literal junk.
	if got := f.Format(time.Now()); got != "QQQQ-wut" {
		t.Errorf("Format = %q", got)
	}
}

package parser

import (
	"testing"
)

func TestEmbeds_Basic(t *testing.T) {
	body := "Intro\n![[img 1.png]] and ![[diagram.svg|The Diagram]]\n"
	embeds := Embeds(body)
	if len(embeds) != 2 {
		t.Fatalf("len(embeds) = %d, want 2", len(embeds))
	}
	if embeds[0].Ref != "img 1.png" || embeds[0].Alias != "" {
		t.Errorf("embeds[0] = %+v", embeds[0])
	}
	if embeds[1].Ref != "diagram.svg" || embeds[1].Alias != "The Diagram" {
		t.Errorf("embeds[1] = %+v", embeds[1])
	}
}

func TestEmbeds_IgnoresPlainWikilinks(t *testing.T) {
	body := "A [[wikilink]] is not an embed, ![[embed.png]] is."
	embeds := Embeds(body)
	if len(embeds) != 1 || embeds[0].Ref != "embed.png" {
		t.Errorf("embeds = %+v", embeds)
	}
}

func TestEmbeds_EmptyRefSkipped(t *testing.T) {
	if embeds := Embeds("![[ ]]"); len(embeds) != 0 {
		t.Errorf("expected no embeds, got %+v", embeds)
	}
}

func TestEmbedRefCounts(t *testing.T) {
	body := "![[a.png]] ![[b.png]] ![[a.png|again]]"
	counts := EmbedRefCounts(body)
	if counts["a.png"] != 2 || counts["b.png"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestEmbedRefCounts_NoEmbeds(t *testing.T) {
	if counts := EmbedRefCounts("no embeds here"); counts != nil {
		t.Errorf("expected nil, got %v", counts)
	}
}

func TestReplaceEmbeds(t *testing.T) {
	body := "x ![[a.png|pic]] y ![[b.png]] z"
	got := ReplaceEmbeds(body, func(ref, alias string) string {
		return "<" + ref + ":" + alias + ">"
	})
	want := "x <a.png:pic> y <b.png:> z"
	if got != want {
		t.Errorf("ReplaceEmbeds = %q, want %q", got, want)
	}
}

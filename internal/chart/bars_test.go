package chart

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarGlyphs(t *testing.T) {
	if got := barGlyphs(10, 10, 4); got != "████" {
		t.Fatalf("expected full bar, got %q", got)
	}
	if got := barGlyphs(5, 10, 4); got != "██" {
		t.Fatalf("expected half bar, got %q", got)
	}
	if got := barGlyphs(1, 16, 4); got != "▎" {
		t.Fatalf("expected partial glyph, got %q", got)
	}
	if got := barGlyphs(0, 10, 4); got != "" {
		t.Fatalf("expected no bar for zero, got %q", got)
	}
	if got := barGlyphs(0.01, 1000, 4); got != "▏" {
		t.Fatalf("expected minimum visible bar, got %q", got)
	}
}

func TestRenderBars(t *testing.T) {
	groups := []BarGroup{
		{Label: "TikTok", Bars: []Bar{{Name: "Positive", Value: 40}}},
		{Label: "Reddit", Bars: []Bar{{Name: "Positive", Value: 10}, {Name: "Negative", Value: 20}}},
	}
	var buf bytes.Buffer
	// indent 2 + name 8 + value 2 + 2 spaces leaves a 10 cell bar
	if err := RenderBars(&buf, "Breakdown", groups, 24, false); err != nil {
		t.Fatalf("RenderBars failed: %v", err)
	}
	want := strings.Join([]string{
		"Breakdown",
		"TikTok",
		"  Positive ██████████ 40",
		"Reddit",
		"  Positive ██▌ 10",
		"  Negative █████ 20",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected bars:\n%s\nwant:\n%s", buf.String(), want)
	}
}

package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/verte-zerg/sentiboard/internal/dataset"
	"github.com/verte-zerg/sentiboard/internal/engine"
	"github.com/verte-zerg/sentiboard/internal/model"
)

func TestRenderSeriesTable(t *testing.T) {
	series := model.Series{
		{Key: "Feb", Totals: map[model.Sentiment]int{model.Positive: 60, model.Neutral: 30, model.Negative: 10}},
		{Key: "Mar", Totals: map[model.Sentiment]int{model.Negative: 4}},
	}
	var buf bytes.Buffer
	if err := RenderSeriesTable(&buf, "Mentions by Period", "Period", series); err != nil {
		t.Fatalf("RenderSeriesTable failed: %v", err)
	}
	want := strings.Join([]string{
		"Mentions by Period",
		"Period Positive Neutral Negative Total",
		"Feb          60      30       10   100",
		"Mar           -       -        4     4",
		"Total        60      30       14   104",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestRenderSeriesTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSeriesTable(&buf, "", "Period", model.Series{}); err != nil {
		t.Fatalf("RenderSeriesTable failed: %v", err)
	}
	if buf.String() != EmptySelectionText+"\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestSentimentLinesZeroFill(t *testing.T) {
	series := model.Series{
		{Key: "Feb", Totals: map[model.Sentiment]int{model.Positive: 5}},
		{Key: "Mar", Totals: map[model.Sentiment]int{model.Negative: 2}},
	}
	lines := SentimentLines(series)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Name != "Positive" || lines[0].Values[0] != 5 || lines[0].Values[1] != 0 {
		t.Fatalf("unexpected positive line: %+v", lines[0])
	}
	if lines[1].Name != "Negative" || lines[1].Values[0] != 0 || lines[1].Values[1] != 2 {
		t.Fatalf("unexpected negative line: %+v", lines[1])
	}
}

func TestSentimentBarsSkipAbsent(t *testing.T) {
	res := engine.Compute(dataset.Default().Records(), dataset.Default().AllSelection())
	groups := SentimentBars(res.ByPlatform)
	if len(groups) != 4 {
		t.Fatalf("expected 4 platform groups, got %d", len(groups))
	}
	if groups[0].Label != "TikTok" || len(groups[0].Bars) != 1 || groups[0].Bars[0].Value != 396 {
		t.Fatalf("unexpected TikTok group: %+v", groups[0])
	}
	last := groups[3]
	if last.Label != "Google Reviews" || len(last.Bars) != 2 {
		t.Fatalf("unexpected Google Reviews group: %+v", last)
	}
	if last.Bars[0].Name != "Positive" || last.Bars[1].Name != "Negative" {
		t.Fatalf("expected display order for bars, got %+v", last.Bars)
	}
}

func TestRenderReportDefault(t *testing.T) {
	d := dataset.Default()
	res := engine.Compute(d.Records(), d.AllSelection())
	var buf bytes.Buffer
	if err := RenderReport(&buf, res, Options{Width: 60, PlotHeight: 6}); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Mentions by Period",
		"Mentions by Platform",
		"Total       408     176       97   681",
		"Mentions Over Time by Sentiment",
		"Sentiment Breakdown by Platform",
		"TikTok",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRenderReportEmptySelection(t *testing.T) {
	d := dataset.Default()
	res := engine.Compute(d.Records(), model.Selection{Periods: d.Periods()})
	var buf bytes.Buffer
	if err := RenderReport(&buf, res, Options{Width: 60}); err != nil {
		t.Fatalf("RenderReport failed: %v", err)
	}
	out := buf.String()
	if strings.Count(out, EmptySelectionText) != 2 {
		t.Fatalf("expected empty text for both tables:\n%s", out)
	}
	if strings.Contains(out, "Mentions Over Time by Sentiment") {
		t.Fatalf("expected charts to be skipped:\n%s", out)
	}
}

func TestRenderQuotes(t *testing.T) {
	quotes := []model.Quote{
		{Platform: "TikTok", Text: "Love it", Sentiment: model.Positive, Theme: "Product"},
		{Platform: "Reddit", Text: "Meh", Sentiment: model.Negative},
	}
	var buf bytes.Buffer
	if err := RenderQuotes(&buf, quotes); err != nil {
		t.Fatalf("RenderQuotes failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "TikTok | Product") {
		t.Fatalf("expected source with theme:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 || !strings.HasSuffix(lines[3], "Reddit") {
		t.Fatalf("unexpected quote table:\n%s", out)
	}
}

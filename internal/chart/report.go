package chart

import (
	"fmt"
	"io"

	"github.com/verte-zerg/sentiboard/internal/engine"
	"github.com/verte-zerg/sentiboard/internal/model"
)

// EmptySelectionText is shown in place of charts and tables when nothing matches.
const EmptySelectionText = "No mentions match the current selection."

// sentimentANSI approximates the brand palette on a terminal.
var sentimentANSI = map[model.Sentiment]string{
	model.Positive: "\x1b[31m",
	model.Neutral:  "\x1b[37m",
	model.Negative: "\x1b[90m",
}

// Options controls chart sizing for the render helpers.
type Options struct {
	Width      int
	PlotHeight int
	ForceColor bool
}

// SentimentLines converts a period series into one zero-filled line per sentiment.
func SentimentLines(series model.Series) []Series {
	out := make([]Series, 0, len(model.Sentiments))
	for _, s := range series.Present() {
		out = append(out, Series{
			Name:   string(s),
			Values: series.Values(s),
			Color:  sentimentANSI[s],
		})
	}
	return out
}

// SentimentBars converts a platform series into bar groups. Sentiments absent
// from a group get no bar.
func SentimentBars(series model.Series) []BarGroup {
	groups := make([]BarGroup, 0, len(series))
	for _, g := range series {
		bars := make([]Bar, 0, len(g.Totals))
		for _, s := range model.Sentiments {
			v, ok := g.Totals[s]
			if !ok {
				continue
			}
			bars = append(bars, Bar{Name: string(s), Value: float64(v), Color: sentimentANSI[s]})
		}
		groups = append(groups, BarGroup{Label: g.Key, Bars: bars})
	}
	return groups
}

// RenderPeriodChart draws mentions over time, one line per sentiment.
func RenderPeriodChart(w io.Writer, series model.Series, opts Options) error {
	if series.Len() == 0 {
		_, err := fmt.Fprintln(w, EmptySelectionText)
		return err
	}
	width := 0
	if opts.Width > 0 {
		width = PlotWidthFor(opts.Width, axisLabelWidth(makeAxisLabels(plotHeight(opts), maxTotal(series))))
	}
	return PlotSeries(w, "Mentions Over Time by Sentiment", series.Keys(), SentimentLines(series), width, plotHeight(opts), opts.ForceColor)
}

// RenderPlatformChart draws grouped bars, one group per platform.
func RenderPlatformChart(w io.Writer, series model.Series, opts Options) error {
	if series.Len() == 0 {
		_, err := fmt.Fprintln(w, EmptySelectionText)
		return err
	}
	return RenderBars(w, "Sentiment Breakdown by Platform", SentimentBars(series), opts.Width, opts.ForceColor)
}

// RenderSeriesTable prints group × sentiment totals with a closing Total row.
func RenderSeriesTable(w io.Writer, title, keyHeader string, series model.Series) error {
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	if series.Len() == 0 {
		_, err := fmt.Fprintln(w, EmptySelectionText)
		return err
	}
	headers := []string{keyHeader}
	for _, s := range model.Sentiments {
		headers = append(headers, string(s))
	}
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(series)+1)
	for _, g := range series {
		row := []string{g.Key}
		for _, s := range model.Sentiments {
			row = append(row, totalCell(g.Totals, s))
		}
		rows = append(rows, append(row, itoa(g.Sum())))
	}
	totalRow := []string{"Total"}
	grand := 0
	for _, s := range model.Sentiments {
		t := series.Total(s)
		grand += t
		totalRow = append(totalRow, itoa(t))
	}
	rows = append(rows, append(totalRow, itoa(grand)))

	rightAlign := map[int]bool{}
	for i := 1; i < len(headers); i++ {
		rightAlign[i] = true
	}
	for _, line := range FormatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderQuotes prints the highlighted quotes.
func RenderQuotes(w io.Writer, quotes []model.Quote) error {
	if _, err := fmt.Fprintln(w, "Top Social Quotes"); err != nil {
		return err
	}
	if len(quotes) == 0 {
		_, err := fmt.Fprintln(w, "No quotes in this dataset.")
		return err
	}
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, []string{q.Text, string(q.Sentiment), QuoteSource(q)})
	}
	for _, line := range FormatTable([]string{"Quote", "Sentiment", "Source"}, rows, nil) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// QuoteSource describes where a quote came from and what it is about.
func QuoteSource(q model.Quote) string {
	if q.Theme == "" {
		return q.Platform
	}
	return q.Platform + " | " + q.Theme
}

// RenderReport prints tables and charts for both series.
func RenderReport(w io.Writer, res engine.Result, opts Options) error {
	if err := RenderSeriesTable(w, "Mentions by Period", "Period", res.ByPeriod); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := RenderSeriesTable(w, "Mentions by Platform", "Platform", res.ByPlatform); err != nil {
		return err
	}
	if res.IsEmpty() {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if err := RenderPeriodChart(w, res.ByPeriod, opts); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return RenderPlatformChart(w, res.ByPlatform, opts)
}

func totalCell(totals map[model.Sentiment]int, s model.Sentiment) string {
	v, ok := totals[s]
	if !ok {
		return "-"
	}
	return itoa(v)
}

func plotHeight(opts Options) int {
	if opts.PlotHeight > 0 {
		return opts.PlotHeight
	}
	return defaultPlotHeight
}

func maxTotal(series model.Series) float64 {
	maxVal := 0.0
	for _, s := range model.Sentiments {
		for _, v := range series.Values(s) {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal <= 0 {
		return 1
	}
	return maxVal
}

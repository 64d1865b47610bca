package dashboard

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sentiboard/internal/chart"
	"github.com/verte-zerg/sentiboard/internal/dataset"
	"github.com/verte-zerg/sentiboard/internal/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newDefaultModel(t *testing.T) *Model {
	t.Helper()
	d := dataset.Default()
	m := NewModel(d, Config{Selection: d.AllSelection(), PlotHeight: 6})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func grandTotal(series model.Series) int {
	total := 0
	for _, s := range model.Sentiments {
		total += series.Total(s)
	}
	return total
}

func TestNewModelComputesInitialSelection(t *testing.T) {
	m := newDefaultModel(t)
	res := m.Result()
	assert.Equal(t, []string{"Feb", "Mar", "Apr", "May"}, res.ByPeriod.Keys())
	assert.Equal(t, []string{"TikTok", "Instagram", "Reddit", "Google Reviews"}, res.ByPlatform.Keys())
	assert.Equal(t, 681, grandTotal(res.ByPeriod))
}

func TestNewModelIgnoresUnknownInitialValues(t *testing.T) {
	d := dataset.Default()
	m := NewModel(d, Config{Selection: model.Selection{
		Periods:   []string{"Mar", "Dec"},
		Platforms: d.Platforms(),
	}})
	assert.Equal(t, []string{"Mar"}, m.Selection().Periods)
	assert.Equal(t, []string{"Mar"}, m.Result().ByPeriod.Keys())
}

func TestToggleRecomputesImmediately(t *testing.T) {
	m := newDefaultModel(t)
	m.Update(runes("/"))
	require.True(t, m.selector.open)

	// cursor starts on Feb in the periods column
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	assert.Equal(t, []string{"Mar", "Apr", "May"}, m.Selection().Periods)
	assert.Equal(t, []string{"Mar", "Apr", "May"}, m.Result().ByPeriod.Keys())
	assert.Equal(t, 681-210, grandTotal(m.Result().ByPeriod))
	assert.Equal(t, grandTotal(m.Result().ByPeriod), grandTotal(m.Result().ByPlatform))
}

func TestSelectorColumnsAndBulkActions(t *testing.T) {
	m := newDefaultModel(t)
	m.Update(runes("/"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(runes("x"))

	assert.Equal(t, []string{"TikTok", "Reddit", "Google Reviews"}, m.Selection().Platforms)
	assert.Equal(t, 0, m.Result().ByPlatform.Value("Instagram", model.Neutral))
	// neutral mentions come only from Instagram
	assert.Equal(t, []model.Sentiment{model.Positive, model.Negative}, m.Result().ByPeriod.Present())

	m.Update(runes("n"))
	assert.Empty(t, m.Selection().Platforms)
	assert.True(t, m.Result().IsEmpty())

	m.Update(runes("a"))
	assert.Len(t, m.Selection().Platforms, 4)
	assert.Equal(t, 681, grandTotal(m.Result().ByPlatform))
}

func TestEmptySelectionRendersMessage(t *testing.T) {
	m := newDefaultModel(t)
	m.Update(runes("/"))
	m.Update(runes("n"))
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.selector.open)

	view := m.View()
	assert.Contains(t, view, chart.EmptySelectionText)
	assert.Contains(t, view, "Periods: none")

	m.Update(runes("l"))
	assert.Contains(t, m.View(), chart.EmptySelectionText)
}

func TestViewShowsChartsAndSummary(t *testing.T) {
	m := newDefaultModel(t)
	view := m.View()
	assert.Contains(t, view, "Over Time")
	assert.Contains(t, view, "Periods: all (4)")
	assert.Contains(t, view, "Mentions Over Time by Sentiment")

	m.Update(runes("l"))
	assert.Contains(t, m.View(), "Sentiment Breakdown by Platform")

	m.Update(runes("l"))
	assert.Contains(t, m.View(), "Quote")
	assert.Equal(t, tabQuotes, m.activeTab)

	m.Update(runes("l"))
	assert.Equal(t, tabOverTime, m.activeTab)
}

func TestSelectorViewMarksState(t *testing.T) {
	m := newDefaultModel(t)
	m.Update(runes("/"))
	m.Update(runes("n"))
	view := m.View()
	assert.Contains(t, view, "> [ ] Feb")
	assert.Contains(t, view, "[x] TikTok")
	assert.Contains(t, view, "Toggle: space")
}

func TestQuitKeys(t *testing.T) {
	m := newDefaultModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestDescribeAxis(t *testing.T) {
	assert.Equal(t, "none", describeAxis(nil, 4))
	assert.Equal(t, "all (2)", describeAxis([]string{"a", "b"}, 2))
	assert.Equal(t, "a (1/2)", describeAxis([]string{"a"}, 2))
}

func TestFitLinesAndTruncate(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	assert.Equal(t, "ab  \ncd  ", out)
	out = fitLines("ab", 3, 3)
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
	assert.Equal(t, "abc...", truncateLine("abcdefghij", 6))
	assert.Equal(t, "ab", truncateLine("abcdef", 2))
	assert.Equal(t, "short", truncateLine("short", 10))
}

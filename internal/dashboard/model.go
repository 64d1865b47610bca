// Package dashboard provides the Bubble Tea sentiment dashboard.
package dashboard

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/sentiboard/internal/chart"
	"github.com/verte-zerg/sentiboard/internal/dataset"
	"github.com/verte-zerg/sentiboard/internal/engine"
	"github.com/verte-zerg/sentiboard/internal/model"
)

const (
	tabOverTime = iota
	tabByPlatform
	tabQuotes
)

const defaultWidth = 80

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color(model.SentimentColors[model.Positive]))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Config holds the dashboard start-up settings.
type Config struct {
	// Selection is the initial selection. Values unknown to the dataset are ignored.
	Selection  model.Selection
	PlotHeight int
	ForceColor bool
}

// Model implements the Bubble Tea dashboard.
type Model struct {
	data    *dataset.Dataset
	records []model.Record
	opts    chart.Options

	result engine.Result

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	quotesTable table.Model

	selector selector

	width  int
	height int
}

// NewModel constructs a dashboard over d.
func NewModel(d *dataset.Dataset, cfg Config) *Model {
	m := &Model{
		data:    d,
		records: d.Records(),
		opts: chart.Options{
			PlotHeight: cfg.PlotHeight,
			ForceColor: cfg.ForceColor,
		},
		tabs:     []string{"Over Time", "By Platform", "Quotes"},
		selector: newSelector(d.Periods(), d.Platforms(), cfg.Selection),
	}
	m.initViewports()
	m.quotesTable = buildQuotesTable(d.Quotes(), defaultWidth, 1)
	m.recompute()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Selection returns the periods and platforms currently checked.
func (m *Model) Selection() model.Selection {
	return m.selector.selection()
}

// Result returns the series for the current selection.
func (m *Model) Result() engine.Result {
	return m.result
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.selector.open {
			return m.updateSelector(msg)
		}
		if m.activeTab == tabQuotes {
			m.quotesTable.Focus()
		} else {
			m.quotesTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "/":
			m.selector.open = true
			return m, nil
		case "g", "home":
			if m.activeTab == tabQuotes {
				m.quotesTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabQuotes {
				m.quotesTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabQuotes {
				var cmd tea.Cmd
				m.quotesTable, cmd = m.quotesTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) updateSelector(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	changed := false
	if msg.Type == tea.KeySpace {
		if m.selector.toggle() {
			m.recompute()
		}
		return m, nil
	}
	switch msg.String() {
	case "esc", "enter", "/":
		m.selector.open = false
		return m, tea.ClearScreen
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.selector.switchColumn()
	case "up", "k":
		m.selector.move(-1)
	case "down", "j":
		m.selector.move(1)
	case "x":
		changed = m.selector.toggle()
	case "a":
		changed = m.selector.setAll(true)
	case "n":
		changed = m.selector.setAll(false)
	}
	if changed {
		m.recompute()
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) recompute() {
	sel := m.Selection()
	m.result = engine.Compute(m.records, sel)
	log.Debug().
		Strs("periods", sel.Periods).
		Strs("platforms", sel.Platforms).
		Int("periodGroups", m.result.ByPeriod.Len()).
		Int("platformGroups", m.result.ByPlatform.Len()).
		Msg("selection changed")
	m.renderTabContents()
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.quotesTable.SetColumns(quoteColumns(m.width))
	m.quotesTable.SetWidth(m.width)
	m.quotesTable.SetHeight(maxInt(1, vpHeight-1))
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabQuotes {
		m.quotesTable.Focus()
	} else {
		m.quotesTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	summary := padLines(m.renderSelectionSummary(), m.width)
	return tabs + "\n" + summary
}

func (m *Model) renderSelectionSummary() string {
	sel := m.Selection()
	summary := fmt.Sprintf("Periods: %s  Platforms: %s",
		describeAxis(sel.Periods, len(m.selector.columns[columnPeriods].options)),
		describeAxis(sel.Platforms, len(m.selector.columns[columnPlatforms].options)),
	)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func describeAxis(values []string, known int) string {
	switch {
	case len(values) == 0:
		return "none"
	case len(values) == known:
		return fmt.Sprintf("all (%d)", known)
	default:
		return fmt.Sprintf("%s (%d/%d)", strings.Join(values, ", "), len(values), known)
	}
}

func (m *Model) renderHelp() string {
	if m.selector.open {
		return headerStyle.Render("Column: tab  Move: up/down  Toggle: space  All: a  None: n  Close: esc/enter")
	}
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Filter: /  Quit: q")
}

func (m *Model) renderFooter() string {
	return m.renderHelp()
}

func (m *Model) renderBody(height int) string {
	if m.selector.open {
		return fitLines(m.selector.view(), m.width, height)
	}
	if m.activeTab == tabQuotes {
		if len(m.data.Quotes()) == 0 {
			return fitLines("No quotes in this dataset.", m.width, height)
		}
		return fitLines(tableMutedStyle.Render(m.quotesTable.View()), m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	m.viewports[tabOverTime].SetContent(m.renderOverTime(width))
	m.viewports[tabByPlatform].SetContent(m.renderByPlatform(width))
}

func (m *Model) chartOptions(width int) chart.Options {
	opts := m.opts
	opts.Width = width
	return opts
}

func (m *Model) renderOverTime(width int) string {
	if m.result.IsEmpty() {
		return chart.EmptySelectionText
	}
	cards := renderSummaryCards(m.result.ByPeriod, width)
	var buf bytes.Buffer
	if err := chart.RenderPeriodChart(&buf, m.result.ByPeriod, m.chartOptions(width)); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	buf.WriteString("\n")
	if err := chart.RenderSeriesTable(&buf, "", "Period", m.result.ByPeriod); err != nil {
		return fmt.Sprintf("Failed to render table: %v", err)
	}
	return strings.TrimRight(cards+"\n\n"+buf.String(), "\n")
}

func (m *Model) renderByPlatform(width int) string {
	if m.result.IsEmpty() {
		return chart.EmptySelectionText
	}
	var buf bytes.Buffer
	if err := chart.RenderPlatformChart(&buf, m.result.ByPlatform, m.chartOptions(width)); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	buf.WriteString("\n")
	if err := chart.RenderSeriesTable(&buf, "", "Platform", m.result.ByPlatform); err != nil {
		return fmt.Sprintf("Failed to render table: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func renderSummaryCards(series model.Series, width int) string {
	total := 0
	for _, s := range model.Sentiments {
		total += series.Total(s)
	}
	cards := []string{metricCard("Mentions", fmt.Sprintf("%d", total), "")}
	for _, s := range model.Sentiments {
		cards = append(cards, metricCard(string(s), fmt.Sprintf("%d", series.Total(s)), model.SentimentColors[s]))
	}
	if width < 60 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func metricCard(label, value, color string) string {
	style := cardStyle
	if color != "" {
		style = style.BorderForeground(lipgloss.Color(color))
	}
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return style.Render(content)
}

func quoteColumns(width int) []table.Column {
	const sentimentWidth, sourceWidth = 9, 28
	quoteWidth := maxInt(20, width-sentimentWidth-sourceWidth-6)
	return []table.Column{
		{Title: "Quote", Width: quoteWidth},
		{Title: "Sentiment", Width: sentimentWidth},
		{Title: "Source", Width: sourceWidth},
	}
}

func buildQuotesTable(quotes []model.Quote, width, height int) table.Model {
	rows := make([]table.Row, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, table.Row{q.Text, string(q.Sentiment), chart.QuoteSource(q)})
	}
	t := table.New(
		table.WithColumns(quoteColumns(width)),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(quotesTableStyles())
	return t
}

func quotesTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

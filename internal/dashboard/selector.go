package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/verte-zerg/sentiboard/internal/model"
)

const (
	columnPeriods = iota
	columnPlatforms
)

var (
	columnTitleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Bold(true)
	activeColumnTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Underline(true)
	columnStyle            = lipgloss.NewStyle().Padding(0, 2, 0, 0)
	selectorStyle          = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color(model.SentimentColors[model.Positive])).
				Padding(0, 1)
)

// checklist is one checkbox column of the selector.
type checklist struct {
	title   string
	options []string
	checked []bool
	cursor  int
}

func newChecklist(title string, options, initial []string) checklist {
	c := checklist{
		title:   title,
		options: options,
		checked: make([]bool, len(options)),
	}
	for i, opt := range options {
		c.checked[i] = lo.Contains(initial, opt)
	}
	return c
}

func (c checklist) values() []string {
	out := make([]string, 0, len(c.options))
	for i, opt := range c.options {
		if c.checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// selector is the two-column period/platform picker.
type selector struct {
	open    bool
	active  int
	columns [2]checklist
}

func newSelector(periods, platforms []string, initial model.Selection) selector {
	return selector{
		columns: [2]checklist{
			columnPeriods:   newChecklist("Periods", periods, initial.Periods),
			columnPlatforms: newChecklist("Platforms", platforms, initial.Platforms),
		},
	}
}

func (s *selector) selection() model.Selection {
	return model.Selection{
		Periods:   s.columns[columnPeriods].values(),
		Platforms: s.columns[columnPlatforms].values(),
	}
}

func (s *selector) switchColumn() {
	s.active = 1 - s.active
}

func (s *selector) move(delta int) {
	c := &s.columns[s.active]
	if len(c.options) == 0 {
		return
	}
	c.cursor = (c.cursor + delta + len(c.options)) % len(c.options)
}

// toggle flips the option under the cursor and reports whether anything changed.
func (s *selector) toggle() bool {
	c := &s.columns[s.active]
	if len(c.options) == 0 {
		return false
	}
	c.checked[c.cursor] = !c.checked[c.cursor]
	return true
}

// setAll checks or clears every option in the active column.
func (s *selector) setAll(on bool) bool {
	c := &s.columns[s.active]
	changed := false
	for i := range c.checked {
		if c.checked[i] != on {
			c.checked[i] = on
			changed = true
		}
	}
	return changed
}

func (s *selector) view() string {
	cols := make([]string, 0, len(s.columns))
	for i, c := range s.columns {
		active := i == s.active
		lines := make([]string, 0, len(c.options)+1)
		if active {
			lines = append(lines, activeColumnTitleStyle.Render(c.title))
		} else {
			lines = append(lines, columnTitleStyle.Render(c.title))
		}
		for j, opt := range c.options {
			cursor := "  "
			if active && j == c.cursor {
				cursor = "> "
			}
			box := "[ ] "
			if c.checked[j] {
				box = "[x] "
			}
			lines = append(lines, cursor+box+opt)
		}
		cols = append(cols, columnStyle.Render(strings.Join(lines, "\n")))
	}
	return selectorStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

package chart

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Bar is one bar inside a group.
type Bar struct {
	Name  string
	Value float64
	Color string
}

// BarGroup is a labelled cluster of bars.
type BarGroup struct {
	Label string
	Bars  []Bar
}

const (
	barIndent   = "  "
	minBarWidth = 4
)

// eighths holds partial block glyphs from 1/8 to 7/8 of a cell.
var eighths = []rune{'▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// RenderBars draws grouped horizontal bars scaled to the largest value.
func RenderBars(w io.Writer, title string, groups []BarGroup, width int, forceColor bool) error {
	if len(groups) == 0 {
		return nil
	}
	if width <= 0 {
		width = terminalWidth()
	}
	nameWidth, valueWidth := 0, 0
	maxVal := 0.0
	for _, g := range groups {
		for _, b := range g.Bars {
			nameWidth = maxInt(nameWidth, runewidth.StringWidth(b.Name))
			valueWidth = maxInt(valueWidth, runewidth.StringWidth(formatAxisValue(b.Value)))
			maxVal = math.Max(maxVal, b.Value)
		}
	}
	barWidth := width - runewidth.StringWidth(barIndent) - nameWidth - valueWidth - 2
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}
	useColor := shouldUseColor(w, forceColor)

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, g := range groups {
		if _, err := fmt.Fprintln(w, g.Label); err != nil {
			return err
		}
		for i, b := range g.Bars {
			bar := barGlyphs(b.Value, maxVal, barWidth)
			if useColor && bar != "" {
				color := b.Color
				if color == "" {
					color = colorPalette[i%len(colorPalette)]
				}
				bar = color + bar + colorReset
			}
			line := barIndent + runewidth.FillRight(b.Name, nameWidth) + " " + bar + " " + formatAxisValue(b.Value)
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// barGlyphs returns a bar of full and partial blocks proportional to value/maxVal.
func barGlyphs(value, maxVal float64, width int) string {
	if value <= 0 || maxVal <= 0 || width <= 0 {
		return ""
	}
	units := int(math.Round(value / maxVal * float64(width*8)))
	if units < 1 {
		units = 1
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("█", units/8))
	if rem := units % 8; rem > 0 {
		b.WriteRune(eighths[rem-1])
	}
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

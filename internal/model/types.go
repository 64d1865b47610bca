// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Sentiment is a pre-assigned sentiment label.
type Sentiment string

// Known sentiments.
const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

// Sentiments lists every sentiment in display order.
var Sentiments = []Sentiment{Positive, Neutral, Negative}

// ParseSentiment resolves a sentiment label case-insensitively.
func ParseSentiment(s string) (Sentiment, error) {
	for _, known := range Sentiments {
		if strings.EqualFold(strings.TrimSpace(s), string(known)) {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown sentiment %q", s)
}

// Valid reports whether s is one of the known sentiments.
func (s Sentiment) Valid() bool {
	for _, known := range Sentiments {
		if s == known {
			return true
		}
	}
	return false
}

// Record is one observed mention count for a sentiment on a platform within a period.
type Record struct {
	Period    string    `json:"period" toml:"period" validate:"required"`
	Platform  string    `json:"platform" toml:"platform" validate:"required"`
	Sentiment Sentiment `json:"sentiment" toml:"sentiment" validate:"required,sentiment"`
	Mentions  int       `json:"mentions" toml:"mentions" validate:"gte=0"`
}

// Quote is a highlighted social post shown next to the charts.
type Quote struct {
	Platform  string    `json:"platform" toml:"platform" validate:"required"`
	Text      string    `json:"text" toml:"text" validate:"required"`
	Sentiment Sentiment `json:"sentiment" toml:"sentiment" validate:"required,sentiment"`
	Campaign  string    `json:"campaign" toml:"campaign"`
	Theme     string    `json:"theme" toml:"theme"`
}

// Selection is the set of periods and platforms currently allowed.
// An empty axis selects nothing.
type Selection struct {
	Periods   []string `json:"periods"`
	Platforms []string `json:"platforms"`
}

// IsEmpty reports whether either axis has no values.
func (s Selection) IsEmpty() bool {
	return len(s.Periods) == 0 || len(s.Platforms) == 0
}

// Group holds per-sentiment totals for one dimension value.
// Sentiments without matching records are absent from Totals.
type Group struct {
	Key    string            `json:"key"`
	Totals map[Sentiment]int `json:"totals"`
}

// Sum returns the total mentions across all sentiments in the group.
func (g Group) Sum() int {
	total := 0
	for _, v := range g.Totals {
		total += v
	}
	return total
}

// Series is an ordered list of groups.
type Series []Group

// Len returns the number of groups.
func (s Series) Len() int {
	return len(s)
}

// Keys returns the group keys in order.
func (s Series) Keys() []string {
	keys := make([]string, len(s))
	for i, g := range s {
		keys[i] = g.Key
	}
	return keys
}

// Value returns the total for key and sentiment, or 0 when absent.
func (s Series) Value(key string, sentiment Sentiment) int {
	for _, g := range s {
		if g.Key == key {
			return g.Totals[sentiment]
		}
	}
	return 0
}

// Total sums a sentiment across every group.
func (s Series) Total(sentiment Sentiment) int {
	total := 0
	for _, g := range s {
		total += g.Totals[sentiment]
	}
	return total
}

// Present returns the sentiments that appear in at least one group, in display order.
func (s Series) Present() []Sentiment {
	out := make([]Sentiment, 0, len(Sentiments))
	for _, sentiment := range Sentiments {
		for _, g := range s {
			if _, ok := g.Totals[sentiment]; ok {
				out = append(out, sentiment)
				break
			}
		}
	}
	return out
}

// Values returns the per-group totals of one sentiment, zero-filled for missing groups.
func (s Series) Values(sentiment Sentiment) []float64 {
	out := make([]float64, len(s))
	for i, g := range s {
		out[i] = float64(g.Totals[sentiment])
	}
	return out
}

// SentimentColors maps each sentiment to its brand hex color.
var SentimentColors = map[Sentiment]string{
	Positive: "#d71f26",
	Neutral:  "#333333",
	Negative: "#999999",
}

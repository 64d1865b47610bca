// Package engine computes aggregated sentiment series for a selection.
package engine

import "github.com/verte-zerg/sentiboard/internal/model"

// KeyFunc extracts the grouping key from a record.
type KeyFunc func(model.Record) string

// ByPeriodKey groups records by period.
func ByPeriodKey(r model.Record) string { return r.Period }

// ByPlatformKey groups records by platform.
func ByPlatformKey(r model.Record) string { return r.Platform }

// Result holds both series for one selection.
type Result struct {
	ByPeriod   model.Series `json:"byPeriod"`
	ByPlatform model.Series `json:"byPlatform"`
}

// IsEmpty reports whether no record matched the selection.
func (r Result) IsEmpty() bool {
	return len(r.ByPeriod) == 0 && len(r.ByPlatform) == 0
}

// Compute returns both series for a selection.
func Compute(records []model.Record, sel model.Selection) Result {
	return Result{
		ByPeriod:   ComputeByPeriod(records, sel),
		ByPlatform: ComputeByPlatform(records, sel),
	}
}

// ComputeByPeriod aggregates matching records by period.
func ComputeByPeriod(records []model.Record, sel model.Selection) model.Series {
	return Aggregate(records, sel, ByPeriodKey)
}

// ComputeByPlatform aggregates matching records by platform.
func ComputeByPlatform(records []model.Record, sel model.Selection) model.Series {
	return Aggregate(records, sel, ByPlatformKey)
}

// Aggregate filters records by the selection, groups them by key in
// first-occurrence order, and sums mentions per sentiment.
func Aggregate(records []model.Record, sel model.Selection, key KeyFunc) model.Series {
	match := newMatcher(sel)
	if match == nil {
		return model.Series{}
	}

	index := make(map[string]int)
	series := model.Series{}
	for _, r := range records {
		if !match.accepts(r) {
			continue
		}
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(series)
			index[k] = i
			series = append(series, model.Group{Key: k, Totals: map[model.Sentiment]int{}})
		}
		series[i].Totals[r.Sentiment] += r.Mentions
	}
	return series
}

type matcher struct {
	periods   map[string]struct{}
	platforms map[string]struct{}
}

// newMatcher returns nil when the selection can match nothing.
func newMatcher(sel model.Selection) *matcher {
	if sel.IsEmpty() {
		return nil
	}
	return &matcher{
		periods:   toSet(sel.Periods),
		platforms: toSet(sel.Platforms),
	}
}

func (m *matcher) accepts(r model.Record) bool {
	if _, ok := m.periods[r.Period]; !ok {
		return false
	}
	_, ok := m.platforms[r.Platform]
	return ok
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Package dataset holds the immutable record collection behind the dashboard.
package dataset

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/verte-zerg/sentiboard/internal/model"
)

// ErrInvalidRecord is returned when a record or quote fails validation at load time.
var ErrInvalidRecord = errors.New("invalid record")

// Dataset is a fixed, validated collection of sentiment records.
// It never changes after construction and is safe for concurrent reads.
type Dataset struct {
	records   []model.Record
	quotes    []model.Quote
	periods   []string
	platforms []string
}

// New validates records and quotes and builds a Dataset.
func New(records []model.Record, quotes []model.Quote) (*Dataset, error) {
	validate := newValidator()
	for i, r := range records {
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: record %d (%s/%s): %v", ErrInvalidRecord, i, r.Period, r.Platform, err)
		}
	}
	for i, q := range quotes {
		if err := validate.Struct(q); err != nil {
			return nil, fmt.Errorf("%w: quote %d: %v", ErrInvalidRecord, i, err)
		}
	}

	d := &Dataset{
		records: append([]model.Record(nil), records...),
		quotes:  append([]model.Quote(nil), quotes...),
	}
	d.periods = lo.Uniq(lo.Map(d.records, func(r model.Record, _ int) string { return r.Period }))
	d.platforms = lo.Uniq(lo.Map(d.records, func(r model.Record, _ int) string { return r.Platform }))
	return d, nil
}

// Records returns every record in dataset order.
func (d *Dataset) Records() []model.Record {
	return append([]model.Record(nil), d.records...)
}

// Quotes returns the highlighted quotes in dataset order.
func (d *Dataset) Quotes() []model.Quote {
	return append([]model.Quote(nil), d.quotes...)
}

// Periods returns the distinct periods in first-occurrence order.
func (d *Dataset) Periods() []string {
	return append([]string(nil), d.periods...)
}

// Platforms returns the distinct platforms in first-occurrence order.
func (d *Dataset) Platforms() []string {
	return append([]string(nil), d.platforms...)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// TotalMentions sums mentions over every record.
func (d *Dataset) TotalMentions() int {
	return lo.SumBy(d.records, func(r model.Record) int { return r.Mentions })
}

// AllSelection selects every known period and platform.
func (d *Dataset) AllSelection() model.Selection {
	return model.Selection{
		Periods:   d.Periods(),
		Platforms: d.Platforms(),
	}
}

// Restrict builds a selection from the requested values, falling back to every
// known value of an axis when its request is nil. Unknown values are kept.
func (d *Dataset) Restrict(periods, platforms []string) model.Selection {
	sel := d.AllSelection()
	if periods != nil {
		sel.Periods = lo.Uniq(periods)
	}
	if platforms != nil {
		sel.Platforms = lo.Uniq(platforms)
	}
	return sel
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("sentiment", func(fl validator.FieldLevel) bool {
		return model.Sentiment(fl.Field().String()).Valid()
	})
	return validate
}

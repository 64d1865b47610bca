package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/sentiboard/internal/model"
	"github.com/verte-zerg/sentiboard/internal/store"
)

// ErrUnsupportedFormat is returned for dataset files with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// File is the TOML dataset layout.
type File struct {
	Records []model.Record `toml:"records"`
	Quotes  []model.Quote  `toml:"quotes"`
}

// Load reads a dataset from path. An empty path yields the built-in dataset.
func Load(ctx context.Context, path string) (*Dataset, error) {
	if path == "" {
		return Default(), nil
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return LoadTOML(path)
	case ".csv":
		return LoadCSV(path)
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadTOML reads [[records]] and [[quotes]] tables from a TOML file.
func LoadTOML(path string) (*Dataset, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}
	if err := normalizeRecords(f.Records); err != nil {
		return nil, err
	}
	if err := normalizeQuotes(f.Quotes); err != nil {
		return nil, err
	}
	return New(f.Records, f.Quotes)
}

// LoadCSV reads records from a CSV file with period, platform, sentiment and
// mentions columns in any order. CSV datasets carry no quotes.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()

	records, err := ParseCSV(file)
	if err != nil {
		return nil, err
	}
	return New(records, nil)
}

// ParseCSV parses CSV rows into records.
func ParseCSV(r io.Reader) ([]model.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := map[string]int{}
	for i, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range []string{"period", "platform", "sentiment", "mentions"} {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing %q column", name)
		}
	}

	var records []model.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		mentions, err := strconv.Atoi(strings.TrimSpace(row[cols["mentions"]]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: mentions %q is not an integer", ErrInvalidRecord, line, row[cols["mentions"]])
		}
		sentiment, err := model.ParseSentiment(row[cols["sentiment"]])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, line, err)
		}
		records = append(records, model.Record{
			Period:    strings.TrimSpace(row[cols["period"]]),
			Platform:  strings.TrimSpace(row[cols["platform"]]),
			Sentiment: sentiment,
			Mentions:  mentions,
		})
	}
	return records, nil
}

// LoadSQLite reads a dataset previously exported with Export.
func LoadSQLite(ctx context.Context, path string) (*Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to stat dataset: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close for read-only dataset.
			_ = cerr
		}
	}()

	records, err := st.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	quotes, err := st.ListQuotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read quotes: %w", err)
	}
	return New(records, quotes)
}

// Export writes the dataset into a SQLite file, replacing its previous contents.
func Export(ctx context.Context, d *Dataset, path string) error {
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dataset db: %w", err)
	}
	if err := st.ReplaceDataset(ctx, d.records, d.quotes); err != nil {
		_ = st.Close()
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return st.Close()
}

func normalizeRecords(records []model.Record) error {
	for i := range records {
		s, err := model.ParseSentiment(string(records[i].Sentiment))
		if err != nil {
			return fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		records[i].Sentiment = s
		records[i].Period = strings.TrimSpace(records[i].Period)
		records[i].Platform = strings.TrimSpace(records[i].Platform)
	}
	return nil
}

func normalizeQuotes(quotes []model.Quote) error {
	for i := range quotes {
		s, err := model.ParseSentiment(string(quotes[i].Sentiment))
		if err != nil {
			return fmt.Errorf("%w: quote %d: %v", ErrInvalidRecord, i, err)
		}
		quotes[i].Sentiment = s
	}
	return nil
}

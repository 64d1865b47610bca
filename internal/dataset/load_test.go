package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sentiboard/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathReturnsBuiltin(t *testing.T) {
	d, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Default().Records(), d.Records())
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "data.toml", `
[[records]]
period = "Q1"
platform = "Threads"
sentiment = "positive"
mentions = 12

[[records]]
period = "Q2"
platform = "Threads"
sentiment = "NEGATIVE"
mentions = 3

[[quotes]]
platform = "Threads"
text = "love it"
sentiment = "Positive"
theme = "Product"
`)
	d, err := Load(context.Background(), path)
	require.NoError(t, err)

	records := d.Records()
	require.Len(t, records, 2)
	assert.Equal(t, model.Positive, records[0].Sentiment)
	assert.Equal(t, model.Negative, records[1].Sentiment)
	assert.Equal(t, []string{"Q1", "Q2"}, d.Periods())
	require.Len(t, d.Quotes(), 1)
	assert.Equal(t, "Product", d.Quotes()[0].Theme)
}

func TestLoadTOMLRejectsNegativeMentions(t *testing.T) {
	path := writeFile(t, "data.toml", `
[[records]]
period = "Q1"
platform = "Threads"
sentiment = "Positive"
mentions = -4
`)
	_, err := Load(context.Background(), path)
	require.ErrorIs(t, err, ErrInvalidRecord)
}

func TestLoadCSVAnyColumnOrder(t *testing.T) {
	path := writeFile(t, "data.csv", "Mentions,Sentiment,Platform,Period\n5,Neutral,Reddit,Jan\n7, positive ,TikTok,Feb\n")
	d, err := Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []model.Record{
		{Period: "Jan", Platform: "Reddit", Sentiment: model.Neutral, Mentions: 5},
		{Period: "Feb", Platform: "TikTok", Sentiment: model.Positive, Mentions: 7},
	}, d.Records())
	assert.Empty(t, d.Quotes())
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("period,platform,sentiment\nJan,A,Positive\n"))
	assert.ErrorContains(t, err, "mentions")

	_, err = ParseCSV(strings.NewReader("period,platform,sentiment,mentions\nJan,A,Positive,lots\n"))
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = ParseCSV(strings.NewReader("period,platform,sentiment,mentions\nJan,A,Happy,1\n"))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(context.Background(), "data.xlsx")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportThenLoadSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dataset.db")
	src := Default()

	require.NoError(t, Export(ctx, src, path))

	d, err := Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, src.Records(), d.Records())
	assert.Equal(t, src.Quotes(), d.Quotes())
	assert.Equal(t, src.Periods(), d.Periods())
}

func TestLoadSQLiteMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.db"))
	require.Error(t, err)
}

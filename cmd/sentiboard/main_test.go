package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sentiboard/internal/config"
	"github.com/verte-zerg/sentiboard/internal/dataset"
	"github.com/verte-zerg/sentiboard/internal/engine"
	"github.com/verte-zerg/sentiboard/internal/model"
)

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportJSON(t *testing.T) {
	isolateConfig(t)
	out, err := execute(t, "report", "--period", "Feb", "--period", "Mar", "--platform", "TikTok", "--json")
	require.NoError(t, err)

	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"Feb", "Mar"}, res.ByPeriod.Keys())
	assert.Equal(t, 100, res.ByPeriod.Value("Feb", model.Positive))
	assert.Equal(t, []string{"TikTok"}, res.ByPlatform.Keys())
	assert.Equal(t, map[model.Sentiment]int{model.Positive: 230}, res.ByPlatform[0].Totals)
}

func TestReportTables(t *testing.T) {
	isolateConfig(t)
	out, err := execute(t, "report", "--plot-height", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "Mentions by Period")
	assert.Contains(t, out, "Total       408     176       97   681")
	assert.Contains(t, out, "Sentiment Breakdown by Platform")
}

func TestReportEmptySelection(t *testing.T) {
	isolateConfig(t)
	out, err := execute(t, "report", "--platform", "")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "No mentions match the current selection."))
}

func TestReportRejectsBadPlotHeight(t *testing.T) {
	isolateConfig(t)
	_, err := execute(t, "report", "--plot-height", "0")
	assert.Error(t, err)
}

func TestReportUsesConfigSelection(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "sentiboard", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("[dashboard]\nperiods = [\"May\"]\n"), 0o644))

	out, err := execute(t, "report", "--json")
	require.NoError(t, err)
	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"May"}, res.ByPeriod.Keys())

	// flags win over the config file
	out, err = execute(t, "report", "--json", "--period", "Apr")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"Apr"}, res.ByPeriod.Keys())
}

func TestReportUsesEnvironmentDataset(t *testing.T) {
	dir := isolateConfig(t)
	csvPath := filepath.Join(dir, "mentions.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("period,platform,sentiment,mentions\nQ1,Threads,Neutral,7\n"), 0o644))
	t.Setenv("SENTIBOARD_DATASET", csvPath)

	out, err := execute(t, "options")
	require.NoError(t, err)
	assert.Equal(t, "Periods:\nQ1\n\nPlatforms:\nThreads\n", out)
}

func TestOptionsDefault(t *testing.T) {
	isolateConfig(t)
	out, err := execute(t, "options")
	require.NoError(t, err)
	assert.Equal(t, "Periods:\nFeb\nMar\nApr\nMay\n\nPlatforms:\nTikTok\nInstagram\nReddit\nGoogle Reviews\n", out)
}

func TestDatasetExportRoundTrip(t *testing.T) {
	dir := isolateConfig(t)
	dbPath := filepath.Join(dir, "export", "mentions.db")
	_, err := execute(t, "dataset", "export", "--db", dbPath)
	require.NoError(t, err)

	out, err := execute(t, "report", "--json", "--dataset", dbPath)
	require.NoError(t, err)
	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	d := dataset.Default()
	assert.Equal(t, engine.Compute(d.Records(), d.AllSelection()), res)
}

func TestUnsupportedDatasetFails(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "data.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	_, err := execute(t, "options", "--dataset", path)
	assert.ErrorIs(t, err, dataset.ErrUnsupportedFormat)
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	_, err := toml.Decode(defaultConfigTemplate(), &cfg)
	require.NoError(t, err)
	assert.Nil(t, cfg.Dashboard.Dataset)
	assert.Nil(t, cfg.Server.Addr)

	uncommented := strings.ReplaceAll(defaultConfigTemplate(), "# addr", "addr")
	_, err = toml.Decode(uncommented, &cfg)
	require.NoError(t, err)
	require.NotNil(t, cfg.Server.Addr)
	assert.Equal(t, defaultAddr, *cfg.Server.Addr)
}

func TestNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"Feb", "Mar"}, nonEmpty([]string{"Feb", "", " ", " Mar "}))
	assert.NotNil(t, nonEmpty(nil))
}

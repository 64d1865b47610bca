// Package main provides the CLI entrypoint for sentiboard.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sentiboard/internal/chart"
	"github.com/verte-zerg/sentiboard/internal/config"
	"github.com/verte-zerg/sentiboard/internal/dashboard"
	"github.com/verte-zerg/sentiboard/internal/dataset"
	"github.com/verte-zerg/sentiboard/internal/engine"
	"github.com/verte-zerg/sentiboard/internal/logging"
	"github.com/verte-zerg/sentiboard/internal/model"
	"github.com/verte-zerg/sentiboard/internal/server"
)

const (
	defaultPlotHeight      = 10
	defaultAddr            = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

var (
	datasetPath string
	verbose     bool

	selPeriods   []string
	selPlatforms []string
	plotHeight   int
	forceColor   bool

	reportJSON bool

	serveAddr            string
	serveCORSOrigins     []string
	serveShutdownTimeout time.Duration

	exportDBPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sentiboard",
		Short:         "Social sentiment dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Configure(verbose)
		},
		RunE: runDashboardCmd,
	}

	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset file (.toml, .csv, .db, .sqlite); default: built-in")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	addSelectionFlags(rootCmd)
	rootCmd.Flags().BoolVar(&forceColor, "color", false, "force ANSI colors in charts")

	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newDatasetCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&selPeriods, "period", nil, "period to include (repeatable; default: all)")
	cmd.Flags().StringArrayVar(&selPlatforms, "platform", nil, "platform to include (repeatable; default: all)")
	cmd.Flags().IntVar(&plotHeight, "plot-height", defaultPlotHeight, "chart height in rows")
}

func runDashboardCmd(cmd *cobra.Command, _ []string) error {
	logging.Quiet()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "color", &forceColor, cfg.Dashboard.Color)

	d, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	if plotHeight <= 0 {
		return fmt.Errorf("--plot-height must be > 0")
	}

	m := dashboard.NewModel(d, dashboard.Config{
		Selection:  resolveSelection(cmd, d, cfg),
		PlotHeight: plotHeight,
		ForceColor: forceColor,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print aggregated series for a selection",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	addSelectionFlags(cmd)
	cmd.Flags().BoolVar(&reportJSON, "json", false, "print JSON instead of tables and charts")
	cmd.Flags().BoolVar(&forceColor, "color", false, "force ANSI colors in charts")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "color", &forceColor, cfg.Dashboard.Color)

	d, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	if plotHeight <= 0 {
		return fmt.Errorf("--plot-height must be > 0")
	}
	sel := resolveSelection(cmd, d, cfg)
	res := engine.Compute(d.Records(), sel)
	log.Debug().
		Strs("periods", sel.Periods).
		Strs("platforms", sel.Platforms).
		Int("periodGroups", res.ByPeriod.Len()).
		Int("platformGroups", res.ByPlatform.Len()).
		Msg("computed report")

	return writeReport(cmd.OutOrStdout(), res, reportJSON, chart.Options{
		PlotHeight: plotHeight,
		ForceColor: forceColor,
	})
}

func writeReport(w io.Writer, res engine.Result, asJSON bool, opts chart.Options) error {
	if asJSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		if _, err := fmt.Fprintln(w, string(out)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	if err := chart.RenderReport(w, res, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List known periods and platforms",
		Args:  cobra.NoArgs,
		RunE:  runOptionsCmd,
	}
}

func runOptionsCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	d, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	return writeOptions(cmd.OutOrStdout(), d)
}

func writeOptions(w io.Writer, d *dataset.Dataset) error {
	lines := []string{"Periods:"}
	lines = append(lines, d.Periods()...)
	lines = append(lines, "", "Platforms:")
	lines = append(lines, d.Platforms()...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP and WebSocket API",
		Args:  cobra.NoArgs,
		RunE:  runServeCmd,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringSliceVar(&serveCORSOrigins, "cors-origin", []string{"*"}, "allowed CORS origins")
	cmd.Flags().DurationVar(&serveShutdownTimeout, "shutdown-timeout", defaultShutdownTimeout, "graceful shutdown timeout")
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "addr", &serveAddr, cfg.Server.Addr)
	applyStringSliceConfig(cmd, "cors-origin", &serveCORSOrigins, cfg.Server.CORSOrigins)
	applyDurationConfig(cmd, "shutdown-timeout", &serveShutdownTimeout, cfg.Server.ShutdownTimeout)

	d, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd.Context()), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(server.Config{
		Addr:            serveAddr,
		CORSOrigins:     serveCORSOrigins,
		ShutdownTimeout: serveShutdownTimeout,
	}, d)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func newDatasetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Manage dataset files",
	}
	export := &cobra.Command{
		Use:   "export",
		Short: "Write the active dataset into a SQLite file",
		Args:  cobra.NoArgs,
		RunE:  runDatasetExportCmd,
	}
	export.Flags().StringVar(&exportDBPath, "db", config.DefaultExportPath(), "target SQLite file")
	cmd.AddCommand(export)
	return cmd
}

func runDatasetExportCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(cmd); err != nil {
		return err
	}
	if strings.TrimSpace(exportDBPath) == "" {
		return fmt.Errorf("--db must not be empty")
	}
	d, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}
	if err := dataset.Export(contextOrBackground(cmd.Context()), d, exportDBPath); err != nil {
		return err
	}
	log.Info().Str("path", exportDBPath).Int("records", d.Len()).Int("quotes", len(d.Quotes())).Msg("dataset exported")
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadConfig reads the config file, applies environment overrides and then
// fills the shared flags that were not set on the command line.
func loadConfig(cmd *cobra.Command) (config.FileConfig, error) {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dataset", &datasetPath, cfg.Dashboard.Dataset)
	applyIntConfig(cmd, "plot-height", &plotHeight, cfg.Dashboard.PlotHeight)
	return cfg, nil
}

func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	d, err := dataset.Load(contextOrBackground(ctx), datasetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	source := datasetPath
	if source == "" {
		source = "built-in"
	}
	log.Debug().
		Str("source", source).
		Int("records", d.Len()).
		Int("periods", len(d.Periods())).
		Int("platforms", len(d.Platforms())).
		Msg("dataset loaded")
	return d, nil
}

// resolveSelection picks the axis values from flags, then config, then every known value.
func resolveSelection(cmd *cobra.Command, d *dataset.Dataset, cfg config.FileConfig) model.Selection {
	var periods, platforms []string
	if cfg.Dashboard.Periods != nil {
		periods = *cfg.Dashboard.Periods
	}
	if cfg.Dashboard.Platforms != nil {
		platforms = *cfg.Dashboard.Platforms
	}
	if cmd.Flags().Changed("period") {
		periods = nonEmpty(selPeriods)
	}
	if cmd.Flags().Changed("platform") {
		platforms = nonEmpty(selPlatforms)
	}
	return d.Restrict(periods, platforms)
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyStringSliceConfig(cmd *cobra.Command, name string, target, value *[]string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target, value *time.Duration) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sentiboard configuration
# Uncomment a value to enable it. CLI flags and SENTIBOARD_* environment
# variables override config values.

[dashboard]
# dataset = "~/data/mentions.csv"     # .toml, .csv, .db or .sqlite (default: built-in)
# periods = ["Feb", "Mar"]            # Initial periods (default: all)
# platforms = ["TikTok", "Reddit"]    # Initial platforms (default: all)
# plot-height = %d                    # Chart height in rows
# color = false                       # Force ANSI colors in charts

[server]
# addr = %q                       # Listen address for sentiboard serve
# cors-origins = ["*"]                # Allowed CORS origins
# shutdown-timeout = %q             # Graceful shutdown timeout
`,
		defaultPlotHeight,
		defaultAddr,
		defaultShutdownTimeout.String(),
	)
}

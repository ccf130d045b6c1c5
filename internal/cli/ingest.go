package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/eligibility"
	"github.com/catalogwatch/catalogwatch/internal/ingest"
	"github.com/catalogwatch/catalogwatch/internal/metrics"
	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/catalogwatch/catalogwatch/internal/pipeline"
	"github.com/catalogwatch/catalogwatch/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	ingestSource  string
	ingestTimeout time.Duration
	ingestMD      string
	ingestJSON    string
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <csv>",
	Short: "Load a catalog CSV, annotate every record and persist the dataset",
	Long: `Ingest reads a catalog CSV and, for each record in order:
- classifies it into an eligibility window by years since release
- extracts ownership signals from the ownership notes
- builds the feature record, score and score explanation

The annotated dataset is written to <output.dir>/<output.name> in the
configured format and an overview is printed.

Required columns: catalog_id, artist_name, track_title, release_year,
rights_holder, territory, ownership_notes. Extra columns are ignored.

Example:
  catalogwatch ingest data/samples/sample_catalogs.csv
  catalogwatch ingest catalogs.csv --format sqlite --out-dir ./out
  catalogwatch ingest catalogs.csv --md overview.md --metrics-file catalogwatch.prom`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), ingestTimeout)
		defer cancel()

		_, err = runIngest(ctx, cfg, args[0], ingestOptions{
			Source:   ingestSource,
			Markdown: ingestMD,
			JSON:     ingestJSON,
		}, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVar(&ingestSource, "source", ingest.DefaultSource, "source label stored in ingestion metadata")
	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 10*time.Minute, "overall ingest timeout")
	ingestCmd.Flags().StringVar(&ingestMD, "md", "", "also write the overview as Markdown to this path")
	ingestCmd.Flags().StringVar(&ingestJSON, "json", "", "also write the overview as JSON to this path")

	// Output flags
	ingestCmd.Flags().String("out-dir", "", "dataset directory (default: output.dir)")
	ingestCmd.Flags().String("name", "", "dataset name without extension (default: output.name)")
	ingestCmd.Flags().String("format", "", "dataset format: parquet, sqlite, json (default: output.format)")
	ingestCmd.Flags().Bool("no-cache", false, "disable memoization of ownership-note parses")
	ingestCmd.Flags().String("metrics-file", "", "write run metrics in Prometheus textfile format")

	_ = viper.BindPFlag("output.dir", ingestCmd.Flags().Lookup("out-dir"))
	_ = viper.BindPFlag("output.name", ingestCmd.Flags().Lookup("name"))
	_ = viper.BindPFlag("output.format", ingestCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("metrics.file", ingestCmd.Flags().Lookup("metrics-file"))
	ingestCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
			viper.Set("cache.enabled", false)
		}
	}
}

type ingestOptions struct {
	Source   string
	Markdown string
	JSON     string
}

// runIngest loads, annotates and persists a catalog CSV. It returns the path
// of the written dataset.
func runIngest(ctx context.Context, cfg *model.Config, csvPath string, opts ingestOptions, out io.Writer) (string, error) {
	logger := slog.Default().WithGroup("ingest")

	windows, err := loadWindows(cfg)
	if err != nil {
		return "", err
	}
	logger.Debug("loaded windows", "count", len(windows))

	records, err := ingest.NewLoader(opts.Source).Load(csvPath)
	if err != nil {
		return "", fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("loaded catalog", "records", len(records), "path", csvPath)

	var (
		reg  *prometheus.Registry
		pOpt = []pipeline.Option{pipeline.WithLogger(logger)}
	)
	if cfg.Metrics.File != "" {
		reg = prometheus.NewRegistry()
		m := metrics.NewMetrics()
		if err := m.Register(reg); err != nil {
			return "", fmt.Errorf("register metrics: %w", err)
		}
		pOpt = append(pOpt, pipeline.WithMetrics(m))
	}

	annotated, err := pipeline.NewPipeline(cfg, windows, pOpt...).Annotate(ctx, records)
	if err != nil {
		return "", err
	}

	path, err := store.Save(annotated, cfg.Output.Dir, cfg.Output.Name, cfg.Output.Format)
	if err != nil {
		return "", fmt.Errorf("save dataset: %w", err)
	}
	fmt.Fprintf(out, "Wrote canonical dataset to: %s\n", path)

	report := pipeline.Summarize(annotated, path, time.Now())
	if err := renderReport(report, opts.Markdown, opts.JSON, out); err != nil {
		return path, err
	}

	if reg != nil {
		if err := metrics.WriteTextfile(cfg.Metrics.File, reg); err != nil {
			return path, err
		}
		logger.Info("wrote metrics", "path", cfg.Metrics.File)
	}

	return path, nil
}

// loadWindows reads the configured window document, or the built-in windows
// when none is configured
func loadWindows(cfg *model.Config) ([]model.Window, error) {
	if cfg.Windows == "" {
		return eligibility.DefaultWindows(), nil
	}
	windows, err := eligibility.LoadWindows(cfg.Windows)
	if err != nil {
		return nil, fmt.Errorf("load windows: %w", err)
	}
	if len(windows) == 0 {
		slog.Warn("window document declares no windows; every known age will be Unmatched", "path", cfg.Windows)
	}
	return windows, nil
}

// renderReport prints the overview and writes the optional Markdown and JSON
// renditions
func renderReport(report *model.Report, mdPath, jsonPath string, out io.Writer) error {
	renderer := pipeline.NewRenderer()

	if jsonPath != "" {
		if err := renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", jsonPath)
	}
	if mdPath != "" {
		if err := renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", mdPath)
	}

	renderer.RenderSummary(out, report)
	return nil
}

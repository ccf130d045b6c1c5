package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/catalogwatch/catalogwatch/internal/pipeline"
	"github.com/catalogwatch/catalogwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	summaryMD   string
	summaryJSON string
)

// summaryCmd represents the summary command
var summaryCmd = &cobra.Command{
	Use:   "summary [dataset]",
	Short: "Print the overview of an annotated dataset",
	Long: `Summary loads an annotated dataset and prints:
- the total number of catalogs and the mean score
- the eligibility distribution, most populated window first
- the top 10 catalogs approaching eligibility by years since release

Without an argument the dataset configured by output.dir, output.name and
output.format is used.

Example:
  catalogwatch summary
  catalogwatch summary data/ingested/canonical_catalogs.parquet --md overview.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path, err := datasetPath(cfg, args)
		if err != nil {
			return err
		}

		return runSummary(path, summaryMD, summaryJSON, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summaryMD, "md", "", "also write the overview as Markdown to this path")
	summaryCmd.Flags().StringVar(&summaryJSON, "json", "", "also write the overview as JSON to this path")
}

func runSummary(path, mdPath, jsonPath string, out io.Writer) error {
	records, err := store.Load(path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	return renderReport(pipeline.Summarize(records, path, time.Now()), mdPath, jsonPath, out)
}

// datasetPath returns the dataset named on the command line, or the
// configured one
func datasetPath(cfg *model.Config, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	return store.Path(cfg.Output.Dir, cfg.Output.Name, cfg.Output.Format)
}

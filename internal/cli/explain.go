package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/catalogwatch/catalogwatch/internal/pipeline"
	"github.com/catalogwatch/catalogwatch/internal/store"
	"github.com/spf13/cobra"
)

// errCatalogNotFound is returned when a dataset has no record with the id
var errCatalogNotFound = errors.New("catalog not found")

var explainFormat string

// explainCmd represents the explain command
var explainCmd = &cobra.Command{
	Use:   "explain <dataset> <catalog_id>",
	Short: "Show how one catalog was classified and scored",
	Long: `Explain prints the detail view of one catalog:
- the catalog summary (JSON or YAML)
- the ownership notes and the patterns found in them
- each score component with its value, contribution and formula
- the composite score

Example:
  catalogwatch explain data/ingested/canonical_catalogs.parquet CAT-001
  catalogwatch explain dataset.db CAT-001 --format yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExplain(args[0], args[1], explainFormat, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)

	explainCmd.Flags().StringVarP(&explainFormat, "format", "f", pipeline.DetailJSON, "summary format (json, yaml)")
}

func runExplain(path, catalogID, format string, out io.Writer) error {
	rec, err := findCatalog(path, catalogID)
	if err != nil {
		return err
	}

	return pipeline.NewRenderer().RenderDetail(out, pipeline.Detail(rec), format)
}

func findCatalog(path, catalogID string) (model.AnnotatedRecord, error) {
	records, err := store.Load(path)
	if err != nil {
		return model.AnnotatedRecord{}, fmt.Errorf("load dataset: %w", err)
	}

	rec, ok := store.Find(records, catalogID)
	if !ok {
		return model.AnnotatedRecord{}, fmt.Errorf("%w: %s in %s", errCatalogNotFound, catalogID, path)
	}
	return rec, nil
}

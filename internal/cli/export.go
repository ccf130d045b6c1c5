package cli

import (
	"fmt"
	"io"

	"github.com/catalogwatch/catalogwatch/internal/store"
	"github.com/spf13/cobra"
)

var exportOutput string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <dataset> <catalog_id>",
	Short: "Export one annotated catalog as an enriched CSV",
	Long: `Export writes a single annotated record as a one-row CSV. Nested values
(ownership signals, evidence, features, explanation) are JSON strings.

Example:
  catalogwatch export data/ingested/canonical_catalogs.parquet CAT-001
  catalogwatch export dataset.db CAT-001 -o cat-001.csv
  catalogwatch export dataset.db CAT-001 -o -`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0], args[1], exportOutput, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path, - for stdout (default: catalog_<id>_enriched.csv)")
}

func runExport(path, catalogID, output string, out io.Writer) error {
	rec, err := findCatalog(path, catalogID)
	if err != nil {
		return err
	}

	if output == "-" {
		return store.ExportCSV(out, rec)
	}
	if output == "" {
		output = store.ExportFileName(catalogID)
	}

	if err := store.ExportCSVFile(output, rec); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Exported %s to %s\n", catalogID, output)
	return nil
}

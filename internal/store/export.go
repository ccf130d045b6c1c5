package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// ExportCSV writes a header and one row for the record, with nested values
// serialized as JSON strings
func ExportCSV(w io.Writer, r model.AnnotatedRecord) error {
	row, err := ToRow(r)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.Write(row.Values()); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSVFile writes the enriched record to path
func ExportCSVFile(path string, r model.AnnotatedRecord) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close export: %w", closeErr)
		}
	}()

	return ExportCSV(out, r)
}

// ExportFileName is the default file name for a single-record export
func ExportFileName(catalogID string) string {
	return "catalog_" + catalogID + "_enriched.csv"
}

package store

import (
	"fmt"

	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/parquet-go/parquet-go"
)

// WriteParquet writes records as a single parquet file at path
func WriteParquet(path string, records []model.AnnotatedRecord) error {
	rows, err := toRows(records)
	if err != nil {
		return err
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}
	return nil
}

// ReadParquet reads a parquet dataset written by WriteParquet
func ReadParquet(path string) ([]model.AnnotatedRecord, error) {
	rows, err := parquet.ReadFile[Row](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return fromRows(rows)
}

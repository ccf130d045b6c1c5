package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// ErrUnsupportedFormat is returned for dataset formats no sink handles
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

var extensions = map[string]string{
	model.FormatParquet: ".parquet",
	model.FormatSQLite:  ".db",
	model.FormatJSON:    ".json",
}

// EnsureDataDir creates dir and its parents if needed
func EnsureDataDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

// Path returns the dataset file path for the given name and format
func Path(dir, name, format string) (string, error) {
	ext, ok := extensions[format]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return filepath.Join(dir, name+ext), nil
}

// Save writes records to <dir>/<name>.<ext> in the given format and returns
// the path written
func Save(records []model.AnnotatedRecord, dir, name, format string) (string, error) {
	path, err := Path(dir, name, format)
	if err != nil {
		return "", err
	}
	if err := EnsureDataDir(dir); err != nil {
		return "", err
	}

	switch format {
	case model.FormatParquet:
		err = WriteParquet(path, records)
	case model.FormatSQLite:
		err = WriteSQLite(path, records)
	case model.FormatJSON:
		err = WriteJSON(path, records)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// Load reads a dataset, picking the reader from the file extension
func Load(path string) ([]model.AnnotatedRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return ReadParquet(path)
	case ".db", ".sqlite", ".sqlite3":
		return ReadSQLite(path)
	case ".json":
		return ReadJSON(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Find returns the first record with the given catalog id
func Find(records []model.AnnotatedRecord, catalogID string) (model.AnnotatedRecord, bool) {
	for _, r := range records {
		if r.CatalogID == catalogID {
			return r, true
		}
	}
	return model.AnnotatedRecord{}, false
}

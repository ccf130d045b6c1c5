package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/eligibility"
	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/google/uuid"
)

// DefaultSource labels records loaded from CSV
const DefaultSource = "csv"

// Loader reads catalog CSVs into canonical records
type Loader struct {
	source string
	now    func() time.Time
	runID  func() string
}

// NewLoader creates a loader that stamps records with the given source label.
// An empty source falls back to DefaultSource.
func NewLoader(source string) *Loader {
	if source == "" {
		source = DefaultSource
	}
	return &Loader{
		source: source,
		now:    time.Now,
		runID:  uuid.NewString,
	}
}

// LoadCSV opens path and reads it with the default loader
func LoadCSV(path string) ([]model.CatalogRecord, error) {
	return NewLoader(DefaultSource).Load(path)
}

// Load opens path and reads every record from it
func (l *Loader) Load(path string) ([]model.CatalogRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	records, err := l.Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read validates the header and canonicalizes each row. All records of one
// call share the same run id and load time.
func (l *Loader) Read(r io.Reader) ([]model.CatalogRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", ValidateColumns(nil))
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		columns[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}

	meta := model.IngestionMetadata{
		Source:   l.source,
		LoadedAt: l.now().UTC(),
		RunID:    l.runID(),
	}

	var records []model.CatalogRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}

		field := func(name string) string {
			i := index[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		records = append(records, model.CatalogRecord{
			CatalogID:         field(ColumnCatalogID),
			ArtistName:        field(ColumnArtistName),
			TrackTitle:        field(ColumnTrackTitle),
			ReleaseYear:       eligibility.ParseYear(field(ColumnReleaseYear)),
			RightsHolder:      field(ColumnRightsHolder),
			Territory:         field(ColumnTerritory),
			OwnershipNotes:    field(ColumnOwnershipNotes),
			IngestionMetadata: meta,
		})
	}

	return records, nil
}

package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// Column names of the input catalog
const (
	ColumnCatalogID      = "catalog_id"
	ColumnArtistName     = "artist_name"
	ColumnTrackTitle     = "track_title"
	ColumnReleaseYear    = "release_year"
	ColumnRightsHolder   = "rights_holder"
	ColumnTerritory      = "territory"
	ColumnOwnershipNotes = "ownership_notes"
)

// RequiredColumns lists the columns every input catalog must carry, in
// canonical order
var RequiredColumns = []string{
	ColumnCatalogID,
	ColumnArtistName,
	ColumnTrackTitle,
	ColumnReleaseYear,
	ColumnRightsHolder,
	ColumnTerritory,
	ColumnOwnershipNotes,
}

// ErrMissingColumns is returned when the header lacks required columns
var ErrMissingColumns = errors.New("missing required columns")

// ValidateColumns checks that every required column is present. Extra columns
// are allowed. The error lists the missing names in canonical order.
func ValidateColumns(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}

	var missing []string
	for _, c := range RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

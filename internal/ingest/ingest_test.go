package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `catalog_id,artist_name,track_title,release_year,rights_holder,territory,ownership_notes,extra
CAT-001,The Examples,First Song,1995,Old Label,US,"Reverted to artist; exclusive license in place; ambiguous legacy contract",x
CAT-002,Second Act,Another Song,1980.0,Artist,UK,Artist-owned masters,y
CAT-003,Unknown Band,Lost Song,n/a,,EU,,z
`

func TestValidateColumns(t *testing.T) {
	assert.NoError(t, ValidateColumns(RequiredColumns))
	assert.NoError(t, ValidateColumns(append([]string{"extra"}, RequiredColumns...)))

	err := ValidateColumns([]string{"catalog_id", "artist_name", "territory"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumns))
	assert.Contains(t, err.Error(), "track_title, release_year, rights_holder, ownership_notes")
	assert.NotContains(t, err.Error(), "catalog_id")
}

func testLoader() *Loader {
	l := NewLoader("")
	l.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600)) }
	l.runID = func() string { return "run-1" }
	return l
}

func TestLoader_Read(t *testing.T) {
	records, err := testLoader().Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "CAT-001", first.CatalogID)
	assert.Equal(t, "The Examples", first.ArtistName)
	require.NotNil(t, first.ReleaseYear)
	assert.Equal(t, 1995, *first.ReleaseYear)
	assert.Contains(t, first.OwnershipNotes, "legacy contract")

	require.NotNil(t, records[1].ReleaseYear)
	assert.Equal(t, 1980, *records[1].ReleaseYear)

	assert.Nil(t, records[2].ReleaseYear)
	assert.Equal(t, "", records[2].OwnershipNotes)
	assert.Equal(t, "", records[2].RightsHolder)

	for _, r := range records {
		assert.Equal(t, DefaultSource, r.IngestionMetadata.Source)
		assert.Equal(t, "run-1", r.IngestionMetadata.RunID)
		assert.Equal(t, time.UTC, r.IngestionMetadata.LoadedAt.Location())
	}
}

func TestLoader_ReadMissingColumns(t *testing.T) {
	_, err := testLoader().Read(strings.NewReader("catalog_id,artist_name\nA,B\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestLoader_ReadEmpty(t *testing.T) {
	_, err := testLoader().Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestLoader_ReadShortRow(t *testing.T) {
	input := strings.Join(RequiredColumns, ",") + "\nCAT-9,Artist\n"
	records, err := testLoader().Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Artist", records[0].ArtistName)
	assert.Nil(t, records[0].ReleaseYear)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	records, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)
	assert.NotEmpty(t, records[0].IngestionMetadata.RunID)
	assert.Equal(t, records[0].IngestionMetadata.RunID, records[2].IngestionMetadata.RunID)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

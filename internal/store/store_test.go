package store

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"testing"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleRecords() []model.AnnotatedRecord {
	window := model.Window{Name: "Early Watch", MinYears: 20, MaxYears: 30}
	return []model.AnnotatedRecord{
		{
			CatalogRecord: model.CatalogRecord{
				CatalogID:      "CAT-001",
				ArtistName:     "The Examples",
				TrackTitle:     "First Song",
				ReleaseYear:    intPtr(1995),
				RightsHolder:   "Old Label",
				Territory:      "US",
				OwnershipNotes: "Reverted to artist; exclusive license",
				IngestionMetadata: model.IngestionMetadata{
					Source:   "csv",
					LoadedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
					RunID:    "run-1",
				},
			},
			YearsSinceRelease: intPtr(30),
			EligibilityWindow: "Early Watch",
			MatchedRule:       &window,
			OwnershipSignals: map[model.SignalName]bool{
				model.SignalReversion:        true,
				model.SignalExclusiveLicense: true,
				model.SignalArtistOwned:      false,
				model.SignalAmbiguous:        false,
			},
			OwnershipEvidence:   []string{"revert", "reverted", "exclusive license", "exclusive"},
			OwnershipConfidence: 0.5,
			Features: model.FeatureRecord{
				YearsSinceRelease:   30,
				HasReversion:        1,
				HasExclusiveLicense: 1,
				OwnershipEmbedding:  make([]float64, model.EmbeddingDim),
			},
			Score: 0.73,
			Explainability: model.ScoreExplanation{
				EligibilityValue:        0.75,
				EligibilityContribution: 0.45,
				OwnershipClarityValue:   1.0,
				OwnershipContribution:   0.3,
				ExclusivePenaltyValue:   -0.2,
				ExclusiveContribution:   -0.02,
				Total:                   0.73,
			},
		},
		{
			CatalogRecord: model.CatalogRecord{
				CatalogID: "CAT-002",
				IngestionMetadata: model.IngestionMetadata{
					Source:   "csv",
					LoadedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
					RunID:    "run-1",
				},
			},
			EligibilityWindow: model.WindowUnknown,
			OwnershipSignals:  map[model.SignalName]bool{},
			OwnershipEvidence: []string{},
			Features: model.FeatureRecord{
				YearsSinceRelease:  model.UnknownYears,
				OwnershipEmbedding: make([]float64, model.EmbeddingDim),
			},
			Score:          0.3,
			Explainability: model.ScoreExplanation{OwnershipClarityValue: 1.0, OwnershipContribution: 0.3, Total: 0.3},
		},
	}
}

func TestRowRoundTrip(t *testing.T) {
	for _, r := range sampleRecords() {
		row, err := ToRow(r)
		require.NoError(t, err)

		back, err := row.Record()
		require.NoError(t, err)
		assert.Equal(t, r, back)
	}
}

func TestToRow_NilCollections(t *testing.T) {
	row, err := ToRow(model.AnnotatedRecord{})
	require.NoError(t, err)
	assert.Equal(t, "{}", row.OwnershipSignals)
	assert.Equal(t, "[]", row.OwnershipEvidence)
	assert.Equal(t, "", row.MatchedRule)
	assert.Nil(t, row.ReleaseYear)
}

func TestSaveAndLoad(t *testing.T) {
	formats := []string{model.FormatParquet, model.FormatSQLite, model.FormatJSON}

	for _, format := range formats {
		t.Run(format, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested", "out")
			records := sampleRecords()

			path, err := Save(records, dir, "canonical_catalogs", format)
			require.NoError(t, err)
			assert.Equal(t, dir, filepath.Dir(path))

			loaded, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, records, loaded)
		})
	}
}

func TestSave_Overwrites(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()

	_, err := Save(records, dir, "ds", model.FormatSQLite)
	require.NoError(t, err)
	path, err := Save(records[:1], dir, "ds", model.FormatSQLite)
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestPath(t *testing.T) {
	p, err := Path("data/ingested", "canonical_catalogs", model.FormatParquet)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data/ingested", "canonical_catalogs.parquet"), p)

	_, err = Path("data", "x", "xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad_Unsupported(t *testing.T) {
	_, err := Load("dataset.xlsx")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestInit_EmptyPath(t *testing.T) {
	assert.Error(t, Init(""))
}

func TestInit_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, Init(dbPath))
	assert.NoError(t, Init(dbPath))
}

func TestSaveRecords_NilDB(t *testing.T) {
	assert.ErrorIs(t, SaveRecords(nil, sampleRecords()), errDBNotInitialized)
	_, err := LoadRecords(nil)
	assert.ErrorIs(t, err, errDBNotInitialized)
}

func TestFind(t *testing.T) {
	records := sampleRecords()

	r, ok := Find(records, "CAT-002")
	assert.True(t, ok)
	assert.Equal(t, "CAT-002", r.CatalogID)

	_, ok = Find(records, "CAT-404")
	assert.False(t, ok)
}

func TestExportCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, sampleRecords()[0]))

	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, Columns, lines[0])

	values := map[string]string{}
	for i, c := range lines[0] {
		values[c] = lines[1][i]
	}
	assert.Equal(t, "CAT-001", values["catalog_id"])
	assert.Equal(t, "1995", values["release_year"])
	assert.Equal(t, "30", values["years_since_release"])
	assert.JSONEq(t, `{"name":"Early Watch","min_years":20,"max_years":30}`, values["matched_rule"])
	assert.JSONEq(t, `["revert","reverted","exclusive license","exclusive"]`, values["ownership_evidence"])
	assert.Contains(t, values["explainability"], `"total":0.73`)
}

func TestExportCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ExportFileName("CAT-001"))
	require.NoError(t, ExportCSVFile(path, sampleRecords()[0]))

	assert.Equal(t, "catalog_CAT-001_enriched.csv", filepath.Base(path))
}

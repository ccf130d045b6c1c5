package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// Row is the flat, column-oriented form of an annotated record. Nested values
// are carried as JSON strings so every sink shares one column set.
type Row struct {
	CatalogID           string  `parquet:"catalog_id"`
	ArtistName          string  `parquet:"artist_name"`
	TrackTitle          string  `parquet:"track_title"`
	ReleaseYear         *int64  `parquet:"release_year,optional"`
	RightsHolder        string  `parquet:"rights_holder"`
	Territory           string  `parquet:"territory"`
	OwnershipNotes      string  `parquet:"ownership_notes"`
	Source              string  `parquet:"source"`
	LoadedAt            string  `parquet:"loaded_at"`
	RunID               string  `parquet:"run_id"`
	YearsSinceRelease   *int64  `parquet:"years_since_release,optional"`
	EligibilityWindow   string  `parquet:"eligibility_window"`
	MatchedRule         string  `parquet:"matched_rule"`
	OwnershipSignals    string  `parquet:"ownership_signals"`
	OwnershipEvidence   string  `parquet:"ownership_evidence"`
	OwnershipConfidence float64 `parquet:"ownership_confidence"`
	Features            string  `parquet:"features"`
	Score               float64 `parquet:"score"`
	Explainability      string  `parquet:"explainability"`
}

// Columns lists the row columns in storage order
var Columns = []string{
	"catalog_id", "artist_name", "track_title", "release_year", "rights_holder",
	"territory", "ownership_notes", "source", "loaded_at", "run_id",
	"years_since_release", "eligibility_window", "matched_rule",
	"ownership_signals", "ownership_evidence", "ownership_confidence",
	"features", "score", "explainability",
}

// ToRow flattens an annotated record
func ToRow(r model.AnnotatedRecord) (Row, error) {
	row := Row{
		CatalogID:           r.CatalogID,
		ArtistName:          r.ArtistName,
		TrackTitle:          r.TrackTitle,
		ReleaseYear:         toInt64(r.ReleaseYear),
		RightsHolder:        r.RightsHolder,
		Territory:           r.Territory,
		OwnershipNotes:      r.OwnershipNotes,
		Source:              r.IngestionMetadata.Source,
		RunID:               r.IngestionMetadata.RunID,
		YearsSinceRelease:   toInt64(r.YearsSinceRelease),
		EligibilityWindow:   r.EligibilityWindow,
		OwnershipConfidence: r.OwnershipConfidence,
		Score:               r.Score,
	}
	if !r.IngestionMetadata.LoadedAt.IsZero() {
		row.LoadedAt = r.IngestionMetadata.LoadedAt.UTC().Format(time.RFC3339Nano)
	}

	var err error
	if r.MatchedRule != nil {
		if row.MatchedRule, err = marshal(r.MatchedRule); err != nil {
			return Row{}, fmt.Errorf("encode matched_rule: %w", err)
		}
	}
	signals := r.OwnershipSignals
	if signals == nil {
		signals = map[model.SignalName]bool{}
	}
	if row.OwnershipSignals, err = marshal(signals); err != nil {
		return Row{}, fmt.Errorf("encode ownership_signals: %w", err)
	}
	evidence := r.OwnershipEvidence
	if evidence == nil {
		evidence = []string{}
	}
	if row.OwnershipEvidence, err = marshal(evidence); err != nil {
		return Row{}, fmt.Errorf("encode ownership_evidence: %w", err)
	}
	if row.Features, err = marshal(r.Features); err != nil {
		return Row{}, fmt.Errorf("encode features: %w", err)
	}
	if row.Explainability, err = marshal(r.Explainability); err != nil {
		return Row{}, fmt.Errorf("encode explainability: %w", err)
	}

	return row, nil
}

// Record rebuilds the annotated record from a row
func (row Row) Record() (model.AnnotatedRecord, error) {
	r := model.AnnotatedRecord{
		CatalogRecord: model.CatalogRecord{
			CatalogID:      row.CatalogID,
			ArtistName:     row.ArtistName,
			TrackTitle:     row.TrackTitle,
			ReleaseYear:    toInt(row.ReleaseYear),
			RightsHolder:   row.RightsHolder,
			Territory:      row.Territory,
			OwnershipNotes: row.OwnershipNotes,
			IngestionMetadata: model.IngestionMetadata{
				Source: row.Source,
				RunID:  row.RunID,
			},
		},
		YearsSinceRelease:   toInt(row.YearsSinceRelease),
		EligibilityWindow:   row.EligibilityWindow,
		OwnershipConfidence: row.OwnershipConfidence,
		Score:               row.Score,
	}

	if row.LoadedAt != "" {
		t, err := time.Parse(time.RFC3339Nano, row.LoadedAt)
		if err != nil {
			return r, fmt.Errorf("decode loaded_at: %w", err)
		}
		r.IngestionMetadata.LoadedAt = t
	}
	if row.MatchedRule != "" {
		r.MatchedRule = &model.Window{}
		if err := json.Unmarshal([]byte(row.MatchedRule), r.MatchedRule); err != nil {
			return r, fmt.Errorf("decode matched_rule: %w", err)
		}
	}
	if err := unmarshal(row.OwnershipSignals, &r.OwnershipSignals); err != nil {
		return r, fmt.Errorf("decode ownership_signals: %w", err)
	}
	if err := unmarshal(row.OwnershipEvidence, &r.OwnershipEvidence); err != nil {
		return r, fmt.Errorf("decode ownership_evidence: %w", err)
	}
	if err := unmarshal(row.Features, &r.Features); err != nil {
		return r, fmt.Errorf("decode features: %w", err)
	}
	if err := unmarshal(row.Explainability, &r.Explainability); err != nil {
		return r, fmt.Errorf("decode explainability: %w", err)
	}

	return r, nil
}

// Values returns the row as strings in Columns order; absent years are empty
func (row Row) Values() []string {
	return []string{
		row.CatalogID, row.ArtistName, row.TrackTitle, formatInt(row.ReleaseYear),
		row.RightsHolder, row.Territory, row.OwnershipNotes, row.Source,
		row.LoadedAt, row.RunID, formatInt(row.YearsSinceRelease),
		row.EligibilityWindow, row.MatchedRule, row.OwnershipSignals,
		row.OwnershipEvidence, formatFloat(row.OwnershipConfidence),
		row.Features, formatFloat(row.Score), row.Explainability,
	}
}

func toRows(records []model.AnnotatedRecord) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		row, err := ToRow(r)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", r.CatalogID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func fromRows(rows []Row) ([]model.AnnotatedRecord, error) {
	records := make([]model.AnnotatedRecord, 0, len(rows))
	for _, row := range rows {
		r, err := row.Record()
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", row.CatalogID, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshal(s string, v any) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

func toInt64(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}

func toInt(v *int64) *int {
	if v == nil {
		return nil
	}
	n := int(*v)
	return &n
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%g", v)
}

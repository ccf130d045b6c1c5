package model

import "time"

// CatalogRecord is one canonicalized row of the input catalog.
// Only ReleaseYear and OwnershipNotes are interpreted; the rest pass through.
type CatalogRecord struct {
	CatalogID         string            `json:"catalog_id" yaml:"catalog_id"`
	ArtistName        string            `json:"artist_name" yaml:"artist_name"`
	TrackTitle        string            `json:"track_title" yaml:"track_title"`
	ReleaseYear       *int              `json:"release_year" yaml:"release_year"`
	RightsHolder      string            `json:"rights_holder" yaml:"rights_holder"`
	Territory         string            `json:"territory" yaml:"territory"`
	OwnershipNotes    string            `json:"ownership_notes" yaml:"ownership_notes"`
	IngestionMetadata IngestionMetadata `json:"ingestion_metadata" yaml:"ingestion_metadata"`
}

// IngestionMetadata records where and when a record entered the system
type IngestionMetadata struct {
	Source   string    `json:"source" yaml:"source"`
	LoadedAt time.Time `json:"loaded_at" yaml:"loaded_at"`
	RunID    string    `json:"run_id,omitempty" yaml:"run_id,omitempty"`
}

// AnnotatedRecord is a catalog record augmented with eligibility, ownership
// signals, features, score and explanation
type AnnotatedRecord struct {
	CatalogRecord `yaml:",inline"`

	YearsSinceRelease   *int                `json:"years_since_release" yaml:"years_since_release"`
	EligibilityWindow   string              `json:"eligibility_window" yaml:"eligibility_window"`
	MatchedRule         *Window             `json:"matched_rule" yaml:"matched_rule"`
	OwnershipSignals    map[SignalName]bool `json:"ownership_signals" yaml:"ownership_signals"`
	OwnershipEvidence   []string            `json:"ownership_evidence" yaml:"ownership_evidence"`
	OwnershipConfidence float64             `json:"ownership_confidence" yaml:"ownership_confidence"`
	Features            FeatureRecord       `json:"features" yaml:"features"`
	Score               float64             `json:"score" yaml:"score"`
	Explainability      ScoreExplanation    `json:"explainability" yaml:"explainability"`
}

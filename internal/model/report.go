package model

import "time"

// Report is the batch overview rendered by the summary command
type Report struct {
	Source      string    `json:"source" yaml:"source"`                     // Dataset the report was built from
	RunID       string    `json:"run_id,omitempty" yaml:"run_id,omitempty"` // Ingestion run, when all records share one
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Total       int       `json:"total" yaml:"total"`
	MeanScore   float64   `json:"mean_score" yaml:"mean_score"`

	Distribution []WindowCount     `json:"distribution" yaml:"distribution"` // Most populated window first
	Top          []AnnotatedRecord `json:"top" yaml:"top"`                   // Furthest along by years since release
}

// WindowCount is one bar of the eligibility distribution
type WindowCount struct {
	Window string `json:"window" yaml:"window"`
	Count  int    `json:"count" yaml:"count"`
}

// CatalogDetail is the drill-down view of one annotated record
type CatalogDetail struct {
	Summary    CatalogSummary `json:"summary" yaml:"summary"`
	Notes      string         `json:"ownership_notes" yaml:"ownership_notes"`
	Evidence   []string       `json:"evidence" yaml:"evidence"`
	Components []Contribution `json:"components" yaml:"components"`
	Score      float64        `json:"score" yaml:"score"`
}

// CatalogSummary holds the headline fields of one catalog
type CatalogSummary struct {
	CatalogID           string              `json:"catalog_id" yaml:"catalog_id"`
	ArtistName          string              `json:"artist_name" yaml:"artist_name"`
	TrackTitle          string              `json:"track_title" yaml:"track_title"`
	ReleaseYear         *int                `json:"release_year" yaml:"release_year"`
	EligibilityWindow   string              `json:"eligibility_window" yaml:"eligibility_window"`
	OwnershipSignals    map[SignalName]bool `json:"ownership_signals" yaml:"ownership_signals"`
	OwnershipConfidence float64             `json:"ownership_confidence" yaml:"ownership_confidence"`
	Score               float64             `json:"score" yaml:"score"`
}

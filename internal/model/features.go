package model

const (
	// UnknownYears stands in for an unknown age so scoring treats it as zero eligibility
	UnknownYears = -1

	// EmbeddingDim is the fixed length of FeatureRecord.OwnershipEmbedding
	EmbeddingDim = 8
)

// FeatureRecord is the fixed-shape scoring input built from one record
type FeatureRecord struct {
	YearsSinceRelease   int       `json:"years_since_release" yaml:"years_since_release"`
	HasReversion        int       `json:"has_reversion" yaml:"has_reversion"`
	HasExclusiveLicense int       `json:"has_exclusive_license" yaml:"has_exclusive_license"`
	ArtistOwned         int       `json:"artist_owned" yaml:"artist_owned"`
	Ambiguous           int       `json:"ambiguous" yaml:"ambiguous"`
	OwnershipEmbedding  []float64 `json:"ownership_embedding" yaml:"ownership_embedding"` // Reserved; all zeros today
}

// ScoreExplanation itemizes the composite score. Contributions are weight*value
// before clamping; Total is the clamped sum.
type ScoreExplanation struct {
	EligibilityValue        float64 `json:"eligibility_value" yaml:"eligibility_value"`
	EligibilityContribution float64 `json:"eligibility_contribution" yaml:"eligibility_contribution"`
	OwnershipClarityValue   float64 `json:"ownership_clarity_value" yaml:"ownership_clarity_value"`
	OwnershipContribution   float64 `json:"ownership_contribution" yaml:"ownership_contribution"`
	ExclusivePenaltyValue   float64 `json:"exclusive_penalty_value" yaml:"exclusive_penalty_value"`
	ExclusiveContribution   float64 `json:"exclusive_contribution" yaml:"exclusive_contribution"`
	Total                   float64 `json:"total" yaml:"total"`
}

// Contribution is one display row of a score explanation
type Contribution struct {
	Component    string  `json:"component" yaml:"component"`
	Value        float64 `json:"value" yaml:"value"`
	Contribution float64 `json:"contribution" yaml:"contribution"`
	Formula      string  `json:"formula" yaml:"formula"`
}

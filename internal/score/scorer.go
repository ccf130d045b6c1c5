package score

import (
	"fmt"
	"math"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// Formula weights and adjustments
const (
	WeightEligibility      = 0.6
	WeightOwnershipClarity = 0.3
	WeightExclusivePenalty = 0.1

	EligibilityHorizonYears = 40.0 // Years at which eligibility is complete
	AmbiguityPenalty        = 0.5  // Subtracted from clarity when ownership is ambiguous
	ArtistOwnedBonus        = 0.2  // Added to clarity when the artist owns the masters
	ExclusivePenalty        = -0.2 // Penalty value when an exclusive license is in place
)

// Component names used in explanation rows
const (
	ComponentEligibility      = "eligibility"
	ComponentOwnershipClarity = "ownership_clarity"
	ComponentExclusivePenalty = "exclusive_penalty"
)

// Breakdown is a single evaluation of the composite formula. The clamped score
// and the itemized explanation are both read from it.
type Breakdown struct {
	Eligibility      float64 // Proximity to the horizon, [0,1]
	OwnershipClarity float64 // Unclamped; may exceed 1 or go below 0
	ExclusivePenalty float64 // ExclusivePenalty or 0

	EligibilityContribution float64
	OwnershipContribution   float64
	ExclusiveContribution   float64

	Sum   float64 // Weighted sum before clamping
	Total float64 // Sum clamped to [0,1]
}

// Evaluate applies the composite formula to a feature record
func Evaluate(f model.FeatureRecord) Breakdown {
	var b Breakdown

	// 1. Eligibility: proximity to the horizon, unknown age counts as zero
	if f.YearsSinceRelease >= 0 {
		b.Eligibility = math.Min(1.0, float64(f.YearsSinceRelease)/EligibilityHorizonYears)
	}

	// 2. Ownership clarity: independent additive adjustments
	b.OwnershipClarity = 1.0
	if f.Ambiguous != 0 {
		b.OwnershipClarity -= AmbiguityPenalty
	}
	if f.ArtistOwned != 0 {
		b.OwnershipClarity += ArtistOwnedBonus
	}

	// 3. Exclusive license penalty
	if f.HasExclusiveLicense != 0 {
		b.ExclusivePenalty = ExclusivePenalty
	}

	// 4. Weighted contributions and their sum
	b.EligibilityContribution = WeightEligibility * b.Eligibility
	b.OwnershipContribution = WeightOwnershipClarity * b.OwnershipClarity
	b.ExclusiveContribution = WeightExclusivePenalty * b.ExclusivePenalty
	b.Sum = b.EligibilityContribution + b.OwnershipContribution + b.ExclusiveContribution

	// 5. Clamp
	b.Total = clamp(b.Sum, 0.0, 1.0)

	return b
}

// Explanation returns the itemized view of the breakdown
func (b Breakdown) Explanation() model.ScoreExplanation {
	return model.ScoreExplanation{
		EligibilityValue:        b.Eligibility,
		EligibilityContribution: b.EligibilityContribution,
		OwnershipClarityValue:   b.OwnershipClarity,
		OwnershipContribution:   b.OwnershipContribution,
		ExclusivePenaltyValue:   b.ExclusivePenalty,
		ExclusiveContribution:   b.ExclusiveContribution,
		Total:                   b.Total,
	}
}

// Components returns one display row per formula term
func (b Breakdown) Components() []model.Contribution {
	return []model.Contribution{
		{
			Component:    ComponentEligibility,
			Value:        b.Eligibility,
			Contribution: b.EligibilityContribution,
			Formula:      fmt.Sprintf("%.1f * min(years_since_release / %.0f, 1)", WeightEligibility, EligibilityHorizonYears),
		},
		{
			Component:    ComponentOwnershipClarity,
			Value:        b.OwnershipClarity,
			Contribution: b.OwnershipContribution,
			Formula:      fmt.Sprintf("%.1f * (1 - %.1f*ambiguous + %.1f*artist_owned)", WeightOwnershipClarity, AmbiguityPenalty, ArtistOwnedBonus),
		},
		{
			Component:    ComponentExclusivePenalty,
			Value:        b.ExclusivePenalty,
			Contribution: b.ExclusiveContribution,
			Formula:      fmt.Sprintf("%.1f * (%.1f if exclusive_license)", WeightExclusivePenalty, ExclusivePenalty),
		},
	}
}

// ComponentsOf rebuilds display rows from a stored explanation
func ComponentsOf(e model.ScoreExplanation) []model.Contribution {
	b := Breakdown{
		Eligibility:             e.EligibilityValue,
		OwnershipClarity:        e.OwnershipClarityValue,
		ExclusivePenalty:        e.ExclusivePenaltyValue,
		EligibilityContribution: e.EligibilityContribution,
		OwnershipContribution:   e.OwnershipContribution,
		ExclusiveContribution:   e.ExclusiveContribution,
		Total:                   e.Total,
	}
	return b.Components()
}

// SimpleScore returns the clamped composite score in [0,1]
func SimpleScore(f model.FeatureRecord) float64 {
	return Evaluate(f).Total
}

// ComputeContributions returns the per-component explanation; its Total always
// equals SimpleScore for the same record
func ComputeContributions(f model.FeatureRecord) model.ScoreExplanation {
	return Evaluate(f).Explanation()
}

// Scorer turns a feature record into a composite score
type Scorer interface {
	Name() string
	Score(f model.FeatureRecord) float64
}

// Explainer itemizes how a score was reached
type Explainer interface {
	Explain(f model.FeatureRecord) model.ScoreExplanation
}

// LinearScorer is the deterministic weighted-linear scorer
type LinearScorer struct{}

// NewLinearScorer creates a new linear scorer
func NewLinearScorer() *LinearScorer {
	return &LinearScorer{}
}

// Name returns the scorer name
func (s *LinearScorer) Name() string {
	return "linear"
}

// Score returns the clamped composite score
func (s *LinearScorer) Score(f model.FeatureRecord) float64 {
	return SimpleScore(f)
}

// Explain returns the per-component explanation
func (s *LinearScorer) Explain(f model.FeatureRecord) model.ScoreExplanation {
	return ComputeContributions(f)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

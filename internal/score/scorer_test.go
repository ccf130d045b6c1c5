package score

import (
	"errors"
	"math"
	"testing"

	"github.com/catalogwatch/catalogwatch/internal/features"
	"github.com/catalogwatch/catalogwatch/internal/model"
)

const tolerance = 1e-6

func record(years, reversion, exclusive, artistOwned, ambiguous int) model.FeatureRecord {
	return model.FeatureRecord{
		YearsSinceRelease:   years,
		HasReversion:        reversion,
		HasExclusiveLicense: exclusive,
		ArtistOwned:         artistOwned,
		Ambiguous:           ambiguous,
		OwnershipEmbedding:  make([]float64, model.EmbeddingDim),
	}
}

func TestComputeContributions_ThirtyYears(t *testing.T) {
	years := 30
	f := features.Build(&years, map[model.SignalName]bool{
		model.SignalReversion:        true,
		model.SignalExclusiveLicense: false,
		model.SignalArtistOwned:      false,
		model.SignalAmbiguous:        false,
	})

	expl := ComputeContributions(f)

	if math.Abs(expl.EligibilityValue-0.75) > tolerance {
		t.Errorf("Expected eligibility value 0.75, got %f", expl.EligibilityValue)
	}
	if expl.Total < 0.0 || expl.Total > 1.0 {
		t.Errorf("Expected total in [0,1], got %f", expl.Total)
	}
	// 0.6*0.75 + 0.3*1.0 + 0.1*0 = 0.75
	if math.Abs(expl.Total-0.75) > tolerance {
		t.Errorf("Expected total 0.75, got %f", expl.Total)
	}
}

func TestEvaluate_Components(t *testing.T) {
	tests := []struct {
		desc          string
		f             model.FeatureRecord
		eligibility   float64
		clarity       float64
		penalty       float64
		expectedTotal float64
	}{
		{
			desc:          "unknown age, clean ownership",
			f:             record(model.UnknownYears, 0, 0, 0, 0),
			eligibility:   0.0,
			clarity:       1.0,
			penalty:       0.0,
			expectedTotal: 0.3,
		},
		{
			desc:          "past horizon caps eligibility",
			f:             record(55, 0, 0, 0, 0),
			eligibility:   1.0,
			clarity:       1.0,
			penalty:       0.0,
			expectedTotal: 0.9,
		},
		{
			desc:          "artist owned pushes clarity above one",
			f:             record(40, 0, 0, 1, 0),
			eligibility:   1.0,
			clarity:       1.2,
			penalty:       0.0,
			expectedTotal: 0.96,
		},
		{
			desc:          "ambiguous and exclusive",
			f:             record(20, 0, 1, 0, 1),
			eligibility:   0.5,
			clarity:       0.5,
			penalty:       -0.2,
			expectedTotal: 0.43,
		},
		{
			desc:          "ambiguous and artist owned both apply",
			f:             record(10, 0, 0, 1, 1),
			eligibility:   0.25,
			clarity:       0.7,
			penalty:       0.0,
			expectedTotal: 0.36,
		},
		{
			desc:          "reversion alone does not move the score",
			f:             record(10, 1, 0, 0, 0),
			eligibility:   0.25,
			clarity:       1.0,
			penalty:       0.0,
			expectedTotal: 0.45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			b := Evaluate(tt.f)

			if math.Abs(b.Eligibility-tt.eligibility) > tolerance {
				t.Errorf("Expected eligibility %f, got %f", tt.eligibility, b.Eligibility)
			}
			if math.Abs(b.OwnershipClarity-tt.clarity) > tolerance {
				t.Errorf("Expected clarity %f, got %f", tt.clarity, b.OwnershipClarity)
			}
			if math.Abs(b.ExclusivePenalty-tt.penalty) > tolerance {
				t.Errorf("Expected penalty %f, got %f", tt.penalty, b.ExclusivePenalty)
			}
			if math.Abs(b.Total-tt.expectedTotal) > tolerance {
				t.Errorf("Expected total %f, got %f", tt.expectedTotal, b.Total)
			}
			if math.Abs(b.EligibilityContribution-WeightEligibility*b.Eligibility) > tolerance ||
				math.Abs(b.OwnershipContribution-WeightOwnershipClarity*b.OwnershipClarity) > tolerance ||
				math.Abs(b.ExclusiveContribution-WeightExclusivePenalty*b.ExclusivePenalty) > tolerance {
				t.Errorf("Expected contributions to be weight*value, got %+v", b)
			}
		})
	}
}

func TestExplainerMatchesScorer(t *testing.T) {
	scorer := NewLinearScorer()

	for years := -5; years <= 60; years++ {
		for mask := 0; mask < 16; mask++ {
			f := record(years, mask&1, (mask>>1)&1, (mask>>2)&1, (mask>>3)&1)

			score := scorer.Score(f)
			expl := scorer.Explain(f)

			if math.Abs(expl.Total-score) > tolerance {
				t.Fatalf("Expected explainer total %f to equal score %f for %+v", expl.Total, score, f)
			}
			if score < 0.0 || score > 1.0 {
				t.Fatalf("Expected score in [0,1], got %f for %+v", score, f)
			}

			sum := expl.EligibilityContribution + expl.OwnershipContribution + expl.ExclusiveContribution
			if math.Abs(clamp(sum, 0, 1)-expl.Total) > tolerance {
				t.Fatalf("Expected total to be the clamped sum of contributions, got %f vs %f", expl.Total, sum)
			}
		}
	}
}

func TestSimpleScore_Idempotent(t *testing.T) {
	f := record(33, 1, 1, 0, 1)
	first := SimpleScore(f)
	second := SimpleScore(f)

	if math.Float64bits(first) != math.Float64bits(second) {
		t.Errorf("Expected bit-identical scores, got %v and %v", first, second)
	}
	if ComputeContributions(f) != ComputeContributions(f) {
		t.Error("Expected identical explanations")
	}
}

func TestBreakdown_Components(t *testing.T) {
	rows := Evaluate(record(30, 0, 1, 0, 0)).Components()

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	names := []string{ComponentEligibility, ComponentOwnershipClarity, ComponentExclusivePenalty}
	for i, row := range rows {
		if row.Component != names[i] {
			t.Errorf("Expected row %d to be %s, got %s", i, names[i], row.Component)
		}
		if row.Formula == "" {
			t.Errorf("Expected formula for %s", row.Component)
		}
	}

	if math.Abs(rows[2].Contribution-(-0.02)) > tolerance {
		t.Errorf("Expected exclusive contribution -0.02, got %f", rows[2].Contribution)
	}

	rebuilt := ComponentsOf(ComputeContributions(record(30, 0, 1, 0, 0)))
	for i := range rows {
		if rows[i] != rebuilt[i] {
			t.Errorf("Expected rebuilt row %+v, got %+v", rows[i], rebuilt[i])
		}
	}
}

func TestScorerInterface(t *testing.T) {
	scorers := []Scorer{NewLinearScorer(), NewNeuralScorer()}
	f := record(30, 0, 0, 0, 0)

	for _, s := range scorers {
		t.Run(s.Name(), func(t *testing.T) {
			score := s.Score(f)
			if score < 0 || score > 1 {
				t.Errorf("Expected score in [0,1], got %f", score)
			}
		})
	}
}

func TestNeuralScorer(t *testing.T) {
	n := NewNeuralScorer()
	x := []model.FeatureRecord{record(10, 0, 0, 0, 0), record(45, 1, 0, 1, 0)}

	if _, err := n.Predict(x); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Expected ErrNotTrained, got %v", err)
	}

	if err := n.Fit(x, []float64{0.1}); err == nil {
		t.Error("Expected shape mismatch error")
	}
	if n.IsTrained() {
		t.Error("Expected scorer to stay untrained after failed fit")
	}

	if err := n.Fit(x, []float64{0.1, 0.9}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	preds, err := n.Predict(x)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(preds) != len(x) {
		t.Errorf("Expected %d predictions, got %d", len(x), len(preds))
	}
	for _, p := range preds {
		if p != 0 {
			t.Errorf("Expected placeholder prediction 0, got %f", p)
		}
	}
}

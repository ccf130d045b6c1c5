package features

import (
	"reflect"
	"testing"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

func TestBuild(t *testing.T) {
	years := 30
	f := Build(&years, map[model.SignalName]bool{
		model.SignalReversion:        true,
		model.SignalExclusiveLicense: false,
		model.SignalArtistOwned:      true,
		model.SignalAmbiguous:        false,
	})

	expected := model.FeatureRecord{
		YearsSinceRelease:   30,
		HasReversion:        1,
		HasExclusiveLicense: 0,
		ArtistOwned:         1,
		Ambiguous:           0,
		OwnershipEmbedding:  make([]float64, model.EmbeddingDim),
	}
	if !reflect.DeepEqual(f, expected) {
		t.Errorf("Expected %+v, got %+v", expected, f)
	}
}

func TestBuild_UnknownYearsAndNoSignals(t *testing.T) {
	for desc, signals := range map[string]map[model.SignalName]bool{
		"nil map":   nil,
		"empty map": {},
	} {
		t.Run(desc, func(t *testing.T) {
			f := Build(nil, signals)
			if f.YearsSinceRelease != model.UnknownYears {
				t.Errorf("Expected sentinel %d, got %d", model.UnknownYears, f.YearsSinceRelease)
			}
			if f.HasReversion+f.HasExclusiveLicense+f.ArtistOwned+f.Ambiguous != 0 {
				t.Errorf("Expected all flags zero, got %+v", f)
			}
		})
	}
}

func TestBuild_EmbeddingIsFixedZeroVector(t *testing.T) {
	f := Build(nil, nil)
	if len(f.OwnershipEmbedding) != model.EmbeddingDim {
		t.Fatalf("Expected embedding length %d, got %d", model.EmbeddingDim, len(f.OwnershipEmbedding))
	}
	for i, v := range f.OwnershipEmbedding {
		if v != 0 {
			t.Errorf("Expected zero at %d, got %f", i, v)
		}
	}
}

type constantEmbedder struct {
	dim   int
	value float64
}

func (c constantEmbedder) Embed(string) []float64 {
	v := make([]float64, c.dim)
	for i := range v {
		v[i] = c.value
	}
	return v
}

func TestBuilder_BuildRecord(t *testing.T) {
	years := 12
	c := model.Classification{YearsSinceRelease: &years, EligibilityWindow: "Too Early"}
	own := model.OwnershipSignals{Signals: map[model.SignalName]bool{model.SignalAmbiguous: true}}

	f := NewBuilder(nil).BuildRecord(c, own, "ambiguous")
	if f.YearsSinceRelease != 12 || f.Ambiguous != 1 {
		t.Errorf("Expected years 12 and ambiguous, got %+v", f)
	}
	if !reflect.DeepEqual(f.OwnershipEmbedding, make([]float64, model.EmbeddingDim)) {
		t.Errorf("Expected zero embedding, got %v", f.OwnershipEmbedding)
	}
}

func TestBuilder_HoldsEmbeddingLength(t *testing.T) {
	tests := []struct {
		desc string
		dim  int
	}{
		{desc: "wider embedder is truncated", dim: 64},
		{desc: "narrower embedder is padded", dim: 3},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			f := NewBuilder(constantEmbedder{dim: tt.dim, value: 0.5}).BuildRecord(model.Classification{}, model.OwnershipSignals{}, "notes")
			if len(f.OwnershipEmbedding) != model.EmbeddingDim {
				t.Errorf("Expected length %d, got %d", model.EmbeddingDim, len(f.OwnershipEmbedding))
			}
		})
	}
}

func TestTextToVector(t *testing.T) {
	if got := len(TextToVector("anything", 0)); got != DefaultTextDim {
		t.Errorf("Expected default width %d, got %d", DefaultTextDim, got)
	}

	vectors := BatchTextToVectors([]string{"a", "b", "c"}, 16)
	if len(vectors) != 3 {
		t.Fatalf("Expected 3 vectors, got %d", len(vectors))
	}
	for _, v := range vectors {
		if len(v) != 16 {
			t.Errorf("Expected width 16, got %d", len(v))
		}
	}
}

package features

import "github.com/catalogwatch/catalogwatch/internal/model"

// Build maps a classification's years and the ownership signals to a feature
// record. Unknown years become model.UnknownYears; the embedding is all zeros.
func Build(years *int, signals map[model.SignalName]bool) model.FeatureRecord {
	f := model.FeatureRecord{
		YearsSinceRelease:   model.UnknownYears,
		HasReversion:        flag(signals[model.SignalReversion]),
		HasExclusiveLicense: flag(signals[model.SignalExclusiveLicense]),
		ArtistOwned:         flag(signals[model.SignalArtistOwned]),
		Ambiguous:           flag(signals[model.SignalAmbiguous]),
		OwnershipEmbedding:  make([]float64, model.EmbeddingDim),
	}
	if years != nil {
		f.YearsSinceRelease = *years
	}

	return f
}

// Builder assembles feature records and fills the ownership embedding from an
// Embedder, holding it to model.EmbeddingDim
type Builder struct {
	embedder Embedder
}

// NewBuilder creates a builder; a nil embedder means ZeroEmbedder
func NewBuilder(embedder Embedder) *Builder {
	if embedder == nil {
		embedder = ZeroEmbedder{}
	}
	return &Builder{embedder: embedder}
}

// BuildRecord builds the features for one record from its classification,
// parsed signals and raw ownership notes
func (b *Builder) BuildRecord(c model.Classification, own model.OwnershipSignals, notes string) model.FeatureRecord {
	f := Build(c.YearsSinceRelease, own.Signals)
	copy(f.OwnershipEmbedding, b.embedder.Embed(notes))
	return f
}

func flag(v bool) int {
	if v {
		return 1
	}
	return 0
}

package model

// SignalName identifies an ownership signal category
type SignalName string

const (
	SignalReversion        SignalName = "reversion"         // Rights reverted or reverting to the artist
	SignalExclusiveLicense SignalName = "exclusive_license" // An exclusive license encumbers the catalog
	SignalArtistOwned      SignalName = "artist_owned"      // Masters owned or self-released by the artist
	SignalAmbiguous        SignalName = "ambiguous"         // Legacy, disputed or unclear ownership
)

// OwnershipSignals holds the keyword-derived view of a record's ownership notes.
// Signals is empty (not all-false) when no notes were supplied at all.
type OwnershipSignals struct {
	Signals    map[SignalName]bool `json:"signals" yaml:"signals"`
	Evidence   []string            `json:"evidence" yaml:"evidence"`     // Matched patterns, category-then-pattern order
	Confidence float64             `json:"confidence" yaml:"confidence"` // Fraction of categories matched, not a probability
}

// Has reports whether the named signal fired
func (o OwnershipSignals) Has(name SignalName) bool {
	return o.Signals[name]
}

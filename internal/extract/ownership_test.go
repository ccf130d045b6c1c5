package extract

import (
	"reflect"
	"testing"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

func TestParseOwnershipNotes_BasicSignals(t *testing.T) {
	parsed := ParseOwnershipNotes("Reverted to artist; exclusive license in place; ambiguous legacy contract")

	if !parsed.Has(model.SignalReversion) {
		t.Error("Expected reversion signal")
	}
	if !parsed.Has(model.SignalExclusiveLicense) {
		t.Error("Expected exclusive_license signal")
	}
	if !parsed.Has(model.SignalAmbiguous) {
		t.Error("Expected ambiguous signal")
	}
	if parsed.Has(model.SignalArtistOwned) {
		t.Error("Expected no artist_owned signal")
	}
	if parsed.Confidence <= 0 {
		t.Errorf("Expected positive confidence, got %f", parsed.Confidence)
	}
	if parsed.Confidence != 0.75 {
		t.Errorf("Expected confidence 0.75 (3 of 4 categories), got %f", parsed.Confidence)
	}
}

func TestParseOwnershipNotes_EvidenceOrder(t *testing.T) {
	parsed := ParseOwnershipNotes("Reverted to artist; exclusive license in place; ambiguous legacy contract")

	expected := []string{
		"revert", "reverted",
		"exclusive license", "exclusive",
		"ambiguous", "legacy contract", "legacy",
	}
	if !reflect.DeepEqual(parsed.Evidence, expected) {
		t.Errorf("Expected evidence %v, got %v", expected, parsed.Evidence)
	}
}

func TestParseOwnershipNotes_NoInput(t *testing.T) {
	parsed := ParseOwnershipNotes("")

	if parsed.Signals == nil || len(parsed.Signals) != 0 {
		t.Errorf("Expected empty signal map, got %v", parsed.Signals)
	}
	if parsed.Evidence == nil || len(parsed.Evidence) != 0 {
		t.Errorf("Expected empty evidence, got %v", parsed.Evidence)
	}
	if parsed.Confidence != 0.0 {
		t.Errorf("Expected zero confidence, got %f", parsed.Confidence)
	}
}

func TestParseOwnershipNotes_NoMatches(t *testing.T) {
	parsed := ParseOwnershipNotes("Publishing administered by a major label")

	if len(parsed.Signals) != 4 {
		t.Fatalf("Expected all 4 categories reported, got %d", len(parsed.Signals))
	}
	for name, v := range parsed.Signals {
		if v {
			t.Errorf("Expected %s to be false", name)
		}
	}
	if len(parsed.Evidence) != 0 {
		t.Errorf("Expected no evidence, got %v", parsed.Evidence)
	}
	if parsed.Confidence != 0.0 {
		t.Errorf("Expected zero confidence, got %f", parsed.Confidence)
	}
}

func TestParseOwnershipNotes_CaseInsensitiveSubstring(t *testing.T) {
	tests := []struct {
		text   string
		signal model.SignalName
	}{
		{text: "REVERSION notice served", signal: model.SignalReversion},
		{text: "Masters are Artist-Owned", signal: model.SignalArtistOwned},
		{text: "self released in 1994", signal: model.SignalArtistOwned},
		{text: "Sole License granted to distributor", signal: model.SignalExclusiveLicense},
		{text: "Ownership DISPUTED between heirs", signal: model.SignalAmbiguous},
		{text: "chain of title unclear", signal: model.SignalAmbiguous},
		{text: "nonexclusive deal", signal: model.SignalExclusiveLicense},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			parsed := ParseOwnershipNotes(tt.text)
			if !parsed.Has(tt.signal) {
				t.Errorf("Expected %s for %q, got %v", tt.signal, tt.text, parsed.Signals)
			}
		})
	}
}

func TestParseOwnershipNotes_AllCategories(t *testing.T) {
	parsed := ParseOwnershipNotes("Artist-owned masters reverted; exclusive rights disputed")

	if parsed.Confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %f", parsed.Confidence)
	}

	expected := []string{
		"revert", "reverted",
		"exclusive rights", "exclusive",
		"artist-owned", "artist-owned masters",
		"disputed",
	}
	if !reflect.DeepEqual(parsed.Evidence, expected) {
		t.Errorf("Expected evidence %v, got %v", expected, parsed.Evidence)
	}
}

func TestParseOwnershipNotes_Idempotent(t *testing.T) {
	text := "Self-released; legacy contract with exclusive license"
	first := ParseOwnershipNotes(text)
	second := ParseOwnershipNotes(text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}

func TestOwnershipParser_Signals(t *testing.T) {
	expected := []model.SignalName{
		model.SignalReversion,
		model.SignalExclusiveLicense,
		model.SignalArtistOwned,
		model.SignalAmbiguous,
	}

	if got := NewOwnershipParser().Signals(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

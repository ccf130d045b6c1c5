package extract

import (
	"math"
	"regexp"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// keywordTable lists each ownership signal with its patterns, in the order
// evidence is reported
var keywordTable = []struct {
	signal   model.SignalName
	patterns []string
}{
	{model.SignalReversion, []string{"revert", "reversion", "reverted"}},
	{model.SignalExclusiveLicense, []string{"exclusive license", "exclusive rights", "sole license", "exclusive"}},
	{model.SignalArtistOwned, []string{"artist-owned", "artist owned", "artist-owned masters", "self-released", "self released"}},
	{model.SignalAmbiguous, []string{"ambiguous", "legacy contract", "legacy", "disputed", "unclear"}},
}

// defaultParser is compiled once and never mutated
var defaultParser = NewOwnershipParser()

type signalRule struct {
	signal   model.SignalName
	patterns []*regexp.Regexp
}

// OwnershipParser extracts ownership signals from free-text notes by
// case-insensitive pattern search
type OwnershipParser struct {
	rules []signalRule
}

// NewOwnershipParser compiles the keyword table
func NewOwnershipParser() *OwnershipParser {
	rules := make([]signalRule, 0, len(keywordTable))
	for _, entry := range keywordTable {
		rule := signalRule{signal: entry.signal}
		for _, p := range entry.patterns {
			rule.patterns = append(rule.patterns, regexp.MustCompile("(?i)"+p))
		}
		rules = append(rules, rule)
	}

	return &OwnershipParser{rules: rules}
}

// ParseOwnershipNotes parses text with the built-in keyword table
func ParseOwnershipNotes(text string) model.OwnershipSignals {
	return defaultParser.Parse(text)
}

// Parse extracts signals from text. Empty text yields no signals at all;
// otherwise every category is reported, true iff one of its patterns matches.
// Each matching pattern is added to the evidence.
func (p *OwnershipParser) Parse(text string) model.OwnershipSignals {
	if text == "" {
		return model.OwnershipSignals{
			Signals:  map[model.SignalName]bool{},
			Evidence: []string{},
		}
	}

	signals := make(map[model.SignalName]bool, len(p.rules))
	evidence := []string{}
	matched := 0

	for _, rule := range p.rules {
		found := false
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				evidence = append(evidence, pattern(re))
				found = true
			}
		}

		signals[rule.signal] = found
		if found {
			matched++
		}
	}

	return model.OwnershipSignals{
		Signals:    signals,
		Evidence:   evidence,
		Confidence: math.Min(1.0, float64(matched)/float64(max(1, len(p.rules)))),
	}
}

// Signals returns the signal categories in declaration order
func (p *OwnershipParser) Signals() []model.SignalName {
	names := make([]model.SignalName, len(p.rules))
	for i, rule := range p.rules {
		names[i] = rule.signal
	}
	return names
}

// pattern returns the keyword a compiled rule was built from
func pattern(re *regexp.Regexp) string {
	return re.String()[len("(?i)"):]
}

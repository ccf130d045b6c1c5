package model

// Labels used when a record cannot be placed in a configured window
const (
	WindowUnknown   = "Unknown"   // Release year absent or not numeric
	WindowUnmatched = "Unmatched" // Years known but outside every configured range
)

// Window is a named, inclusive range of years since release
type Window struct {
	Name     string `json:"name" yaml:"name"`
	MinYears int    `json:"min_years" yaml:"min_years"`
	MaxYears int    `json:"max_years" yaml:"max_years"`
}

// Contains reports whether years falls inside the window (both ends inclusive)
func (w Window) Contains(years int) bool {
	return w.MinYears <= years && years <= w.MaxYears
}

// Classification is the eligibility outcome for one record
type Classification struct {
	ReleaseYear       *int    `json:"release_year" yaml:"release_year"`
	YearsSinceRelease *int    `json:"years_since_release" yaml:"years_since_release"`
	EligibilityWindow string  `json:"eligibility_window" yaml:"eligibility_window"`
	MatchedRule       *Window `json:"matched_rule" yaml:"matched_rule"`
}

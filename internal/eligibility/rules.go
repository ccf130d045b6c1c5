package eligibility

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/model"
)

// maxYear bounds decimal year strings before they are converted to int
const maxYear = 1_000_000

// YearsSinceRelease returns currentYear minus releaseYear, or nil when the
// release year is unknown. A currentYear of zero or less means the calendar year.
func YearsSinceRelease(releaseYear *int, currentYear int) *int {
	if releaseYear == nil {
		return nil
	}
	if currentYear <= 0 {
		currentYear = time.Now().Year()
	}

	years := currentYear - *releaseYear
	return &years
}

// ParseYear reads a release year cell. Integers and integral decimals such as
// "1995.0" are accepted; anything else is unknown (nil), never an error.
func ParseYear(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		return &n
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > maxYear {
		return nil
	}

	n := int(f)
	return &n
}

// ClassifyYears places years in the first window, in declaration order, whose
// inclusive range contains it. Unknown years yield "Unknown"; years outside every
// window yield "Unmatched".
func ClassifyYears(years *int, windows []model.Window) model.Classification {
	if years == nil {
		return model.Classification{EligibilityWindow: model.WindowUnknown}
	}

	result := model.Classification{
		YearsSinceRelease: copyInt(years),
		EligibilityWindow: model.WindowUnmatched,
	}

	for i := range windows {
		if windows[i].Contains(*years) {
			rule := windows[i]
			result.EligibilityWindow = rule.Name
			result.MatchedRule = &rule
			break
		}
	}

	return result
}

// ExplainClassification computes the years since release and classifies them,
// keeping the original release year on the result
func ExplainClassification(releaseYear *int, currentYear int, windows []model.Window) model.Classification {
	result := ClassifyYears(YearsSinceRelease(releaseYear, currentYear), windows)
	result.ReleaseYear = copyInt(releaseYear)
	return result
}

// Classifier classifies release years against a fixed window set and reference year
type Classifier struct {
	windows     []model.Window
	currentYear int
}

// NewClassifier creates a classifier over a private copy of windows
func NewClassifier(windows []model.Window, currentYear int) *Classifier {
	return &Classifier{
		windows:     append([]model.Window(nil), windows...),
		currentYear: currentYear,
	}
}

// Classify classifies a release year
func (c *Classifier) Classify(releaseYear *int) model.Classification {
	return ExplainClassification(releaseYear, c.currentYear, c.windows)
}

// Windows returns the configured windows in declaration order
func (c *Classifier) Windows() []model.Window {
	return append([]model.Window(nil), c.windows...)
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}

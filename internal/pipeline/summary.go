package pipeline

import (
	"sort"
	"time"

	"github.com/catalogwatch/catalogwatch/internal/model"
	"github.com/catalogwatch/catalogwatch/internal/score"
)

// TopLimit caps the number of catalogs listed as approaching eligibility
const TopLimit = 10

// Summarize builds the batch overview: totals, the per-window distribution and
// the catalogs furthest along by years since release
func Summarize(records []model.AnnotatedRecord, source string, now time.Time) *model.Report {
	report := &model.Report{
		Source:       source,
		GeneratedAt:  now.UTC(),
		Total:        len(records),
		Distribution: Distribution(records),
		Top:          Top(records, TopLimit),
	}

	if len(records) == 0 {
		return report
	}

	var sum float64
	runID := records[0].IngestionMetadata.RunID
	for _, r := range records {
		sum += r.Score
		if r.IngestionMetadata.RunID != runID {
			runID = ""
		}
	}
	report.MeanScore = sum / float64(len(records))
	report.RunID = runID

	return report
}

// Distribution counts records per eligibility window, most populated first.
// Ties keep the order in which windows first appear.
func Distribution(records []model.AnnotatedRecord) []model.WindowCount {
	counts := []model.WindowCount{}
	index := map[string]int{}

	for _, r := range records {
		i, ok := index[r.EligibilityWindow]
		if !ok {
			i = len(counts)
			index[r.EligibilityWindow] = i
			counts = append(counts, model.WindowCount{Window: r.EligibilityWindow})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// Top returns up to limit records ordered by years since release, oldest
// first. Records of unknown age sort last; ties keep input order.
func Top(records []model.AnnotatedRecord, limit int) []model.AnnotatedRecord {
	sorted := make([]model.AnnotatedRecord, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].YearsSinceRelease, sorted[j].YearsSinceRelease
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a > *b
		}
	})

	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// Detail builds the drill-down view of one record
func Detail(r model.AnnotatedRecord) model.CatalogDetail {
	evidence := r.OwnershipEvidence
	if evidence == nil {
		evidence = []string{}
	}

	return model.CatalogDetail{
		Summary: model.CatalogSummary{
			CatalogID:           r.CatalogID,
			ArtistName:          r.ArtistName,
			TrackTitle:          r.TrackTitle,
			ReleaseYear:         r.ReleaseYear,
			EligibilityWindow:   r.EligibilityWindow,
			OwnershipSignals:    r.OwnershipSignals,
			OwnershipConfidence: r.OwnershipConfidence,
			Score:               r.Score,
		},
		Notes:      r.OwnershipNotes,
		Evidence:   evidence,
		Components: score.ComponentsOf(r.Explainability),
		Score:      r.Explainability.Total,
	}
}

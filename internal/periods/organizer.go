// Package periods buckets mapped facts into annual and quarterly series,
// resolving duplicate reports for the same period to a single
// authoritative value.
package periods

import (
	"time"

	"github.com/jwhan/fintab/internal/contracts"
)

// groupKey identifies one reporting slot before label derivation
type groupKey struct {
	frame     contracts.Frame
	periodEnd time.Time
}

// Organize resolves mapped facts into one organized series per metric.
// Deterministic and idempotent: the same input facts yield the same
// series regardless of input ordering.
func Organize(mapped map[contracts.Metric][]contracts.RawFact) map[contracts.Metric]*contracts.OrganizedSeries {
	organized := make(map[contracts.Metric]*contracts.OrganizedSeries, len(mapped))
	for metric, metricFacts := range mapped {
		organized[metric] = OrganizeMetric(metric, metricFacts)
	}
	return organized
}

// OrganizeMetric resolves the facts of a single metric into an organized
// series. Facts without a usable value are skipped; collisions on the
// same period resolve per the authority rule (latest filing wins, then
// full-span preference).
func OrganizeMetric(metric contracts.Metric, metricFacts []contracts.RawFact) *contracts.OrganizedSeries {
	groups := make(map[groupKey]contracts.RawFact)

	for _, fact := range metricFacts {
		if !fact.HasValue() {
			continue
		}

		key := groupKey{
			frame:     fact.Frame,
			periodEnd: fact.PeriodEnd.Truncate(24 * time.Hour),
		}

		current, exists := groups[key]
		if !exists || supersedes(fact, current) {
			groups[key] = fact
		}
	}

	series := contracts.NewOrganizedSeries(metric)
	for key, fact := range groups {
		periodKey := contracts.PeriodKey{
			Metric:    metric,
			Frame:     key.frame,
			PeriodEnd: key.periodEnd,
			Label:     deriveLabel(key.frame, key.periodEnd),
		}
		series.Put(periodKey, *fact.Value)
	}
	return series
}

// supersedes reports whether candidate is more authoritative than current
// for the same period. Later filings supersede earlier ones (amendments
// and restatements); on a filing-date tie, a full-span report beats a
// malformed partial span.
func supersedes(candidate, current contracts.RawFact) bool {
	if candidate.FiledAt.After(current.FiledAt) {
		return true
	}
	if candidate.FiledAt.Before(current.FiledAt) {
		return false
	}
	return candidate.IsFullSpan() && !current.IsFullSpan()
}

// deriveLabel computes the fiscal period label from the period end and
// frame alone, so the label never depends on filing order
func deriveLabel(frame contracts.Frame, periodEnd time.Time) string {
	if frame == contracts.FrameAnnual {
		return contracts.AnnualLabel(periodEnd.Year())
	}
	return contracts.QuarterLabel(periodEnd.Year(), CalendarQuarter(periodEnd))
}

// CalendarQuarter returns the calendar quarter (1-4) containing t
func CalendarQuarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// QuarterEnd returns the last day of a calendar quarter, used to
// synthesize period keys for absent quarters
func QuarterEnd(year, quarter int) time.Time {
	firstOfNext := time.Date(year, time.Month(quarter*3)+1, 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.AddDate(0, 0, -1)
}

// YearEnd returns the last day of a calendar year, used to synthesize
// period keys for absent fiscal years
func YearEnd(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

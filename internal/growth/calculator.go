// Package growth derives CAGR, YoY, and QoQ growth rates from organized
// metric series, with explicit caveats for the financial edge cases:
// zero bases, sign flips (turnarounds), and missing periods.
package growth

import (
	"math"

	"github.com/jwhan/fintab/internal/contracts"
	"github.com/jwhan/fintab/internal/periods"
)

// Compute produces all growth results for one metric series: one CAGR
// anchor pair over the available annual span, YoY for every consecutive
// fiscal-year pair, and QoQ for every consecutive calendar-quarter pair.
// The pair grids span the series' oldest to newest present period, so a
// missing interior period yields INSUFFICIENT_DATA results rather than a
// silently shortened series. Results are ordered oldest-period-first
// within each kind; rendering and export collaborators rely on this
// ordering.
func Compute(series *contracts.OrganizedSeries) []contracts.GrowthResult {
	var results []contracts.GrowthResult
	results = append(results, computeCAGR(series)...)
	results = append(results, computeYoY(series)...)
	results = append(results, computeQoQ(series)...)
	return results
}

// computeCAGR produces the single anchor pair oldest -> newest annual
// period. n is the fiscal-year distance between the anchors, so gaps in
// the series do not understate the compounding span.
func computeCAGR(series *contracts.OrganizedSeries) []contracts.GrowthResult {
	annual := series.Keys(contracts.FrameAnnual)
	if len(annual) == 0 {
		return nil
	}

	if len(annual) < 2 {
		only := annual[0]
		return []contracts.GrowthResult{{
			Metric: series.Metric,
			Kind:   contracts.GrowthCAGR,
			From:   only,
			To:     only,
			Caveat: contracts.CaveatInsufficientData,
		}}
	}

	from, to := annual[0], annual[len(annual)-1]
	start, _ := series.Value(from)
	end, _ := series.Value(to)
	n := to.PeriodEnd.Year() - from.PeriodEnd.Year()

	result := contracts.GrowthResult{
		Metric: series.Metric,
		Kind:   contracts.GrowthCAGR,
		From:   from,
		To:     to,
	}

	switch {
	case n < 1:
		// Two annual periods inside one fiscal year (fiscal-year-end
		// change); no full-year span to compound over
		result.Caveat = contracts.CaveatInsufficientData
	case start == 0 || end == 0:
		// Geometric mean growth is undefined from or to zero
		result.Caveat = contracts.CaveatZeroBase
	case start < 0 || end < 0:
		result.Caveat = contracts.CaveatSignFlip
	default:
		rate := math.Pow(end/start, 1/float64(n)) - 1
		result.Rate = &rate
	}

	return []contracts.GrowthResult{result}
}

// computeYoY walks consecutive fiscal years between the oldest and newest
// present annual period
func computeYoY(series *contracts.OrganizedSeries) []contracts.GrowthResult {
	annual := series.Keys(contracts.FrameAnnual)
	if len(annual) < 2 {
		return nil
	}

	byYear := make(map[int]contracts.PeriodKey, len(annual))
	for _, key := range annual {
		byYear[key.PeriodEnd.Year()] = key
	}

	minYear := annual[0].PeriodEnd.Year()
	maxYear := annual[len(annual)-1].PeriodEnd.Year()

	var results []contracts.GrowthResult
	for year := minYear; year < maxYear; year++ {
		from := annualKeyOrSynthetic(series.Metric, byYear, year)
		to := annualKeyOrSynthetic(series.Metric, byYear, year+1)
		results = append(results, simpleGrowth(series, contracts.GrowthYoY, from, to))
	}
	return results
}

// computeQoQ walks consecutive calendar quarters between the oldest and
// newest present quarterly period
func computeQoQ(series *contracts.OrganizedSeries) []contracts.GrowthResult {
	quarterly := series.Keys(contracts.FrameQuarterly)
	if len(quarterly) < 2 {
		return nil
	}

	type yq struct{ year, quarter int }
	byQuarter := make(map[yq]contracts.PeriodKey, len(quarterly))
	for _, key := range quarterly {
		byQuarter[yq{key.PeriodEnd.Year(), periods.CalendarQuarter(key.PeriodEnd)}] = key
	}

	first := quarterly[0]
	last := quarterly[len(quarterly)-1]
	cur := yq{first.PeriodEnd.Year(), periods.CalendarQuarter(first.PeriodEnd)}
	end := yq{last.PeriodEnd.Year(), periods.CalendarQuarter(last.PeriodEnd)}

	var results []contracts.GrowthResult
	for cur != end {
		next := yq{cur.year, cur.quarter + 1}
		if next.quarter > 4 {
			next = yq{cur.year + 1, 1}
		}

		from := quarterKeyOrSynthetic(series.Metric, byQuarter[cur], cur.year, cur.quarter)
		to := quarterKeyOrSynthetic(series.Metric, byQuarter[next], next.year, next.quarter)
		results = append(results, simpleGrowth(series, contracts.GrowthQoQ, from, to))

		cur = next
	}
	return results
}

// simpleGrowth computes (end - start) / abs(start). The absolute-value
// base keeps the sign of the rate aligned with the direction of change
// even when the base is negative (a narrowing loss is positive growth).
func simpleGrowth(series *contracts.OrganizedSeries, kind contracts.GrowthKind, from, to contracts.PeriodKey) contracts.GrowthResult {
	result := contracts.GrowthResult{
		Metric: series.Metric,
		Kind:   kind,
		From:   from,
		To:     to,
	}

	start, haveStart := series.Value(from)
	end, haveEnd := series.Value(to)

	switch {
	case !haveStart || !haveEnd:
		result.Caveat = contracts.CaveatInsufficientData
	case start == 0:
		// Growth from zero is undefined, not infinite
		result.Caveat = contracts.CaveatZeroBase
	case end != 0 && (start > 0) != (end > 0):
		// A percentage across a sign boundary is not a meaningful single
		// number; callers present the turnaround qualitatively
		result.Caveat = contracts.CaveatSignFlip
	default:
		rate := (end - start) / math.Abs(start)
		result.Rate = &rate
	}

	return result
}

func annualKeyOrSynthetic(metric contracts.Metric, byYear map[int]contracts.PeriodKey, year int) contracts.PeriodKey {
	if key, ok := byYear[year]; ok {
		return key
	}
	return contracts.PeriodKey{
		Metric:    metric,
		Frame:     contracts.FrameAnnual,
		PeriodEnd: periods.YearEnd(year),
		Label:     contracts.AnnualLabel(year),
	}
}

func quarterKeyOrSynthetic(metric contracts.Metric, key contracts.PeriodKey, year, quarter int) contracts.PeriodKey {
	if key.Label != "" {
		return key
	}
	return contracts.PeriodKey{
		Metric:    metric,
		Frame:     contracts.FrameQuarterly,
		PeriodEnd: periods.QuarterEnd(year, quarter),
		Label:     contracts.QuarterLabel(year, quarter),
	}
}

// Package quality measures organized series against a caller-supplied
// target window and reports completeness gaps alongside the numeric
// output.
package quality

import (
	"time"

	"github.com/jwhan/fintab/internal/contracts"
	"github.com/jwhan/fintab/internal/periods"
)

// Assess measures a series against the expected period labels. The
// assessor does not invent expectations: the caller supplies the full
// target window (e.g. the 5 most recent fiscal years) and gets back how
// much of it the series covers. Missing labels preserve the order of
// expectedLabels.
func Assess(series *contracts.OrganizedSeries, frame contracts.Frame, expectedLabels []string) contracts.QualityReport {
	report := contracts.QualityReport{
		Metric:          series.Metric,
		Frame:           frame,
		ExpectedPeriods: len(expectedLabels),
		MissingLabels:   []string{},
	}

	present := series.Labels()
	for _, label := range expectedLabels {
		if present[label] {
			report.PresentPeriods++
		} else {
			report.MissingLabels = append(report.MissingLabels, label)
		}
	}

	if report.ExpectedPeriods > 0 {
		report.CompletenessRatio = float64(report.PresentPeriods) / float64(report.ExpectedPeriods)
	}

	return report
}

// AnnualWindow builds the expected fiscal-year labels for the n most
// recently completed fiscal years as of a reference time, oldest first
func AnnualWindow(asOf time.Time, n int) []string {
	labels := make([]string, 0, n)
	lastComplete := asOf.Year() - 1
	for year := lastComplete - n + 1; year <= lastComplete; year++ {
		labels = append(labels, contracts.AnnualLabel(year))
	}
	return labels
}

// QuarterlyWindow builds the expected quarter labels for the n most
// recently completed calendar quarters as of a reference time, oldest
// first
func QuarterlyWindow(asOf time.Time, n int) []string {
	year := asOf.Year()
	quarter := periods.CalendarQuarter(asOf) - 1 // last completed quarter
	if quarter == 0 {
		year--
		quarter = 4
	}

	labels := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		labels[i] = contracts.QuarterLabel(year, quarter)
		quarter--
		if quarter == 0 {
			year--
			quarter = 4
		}
	}
	return labels
}

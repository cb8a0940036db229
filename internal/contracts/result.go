package contracts

import "time"

// MetricAnalysis is the per-metric output of one pipeline run: the
// organized series, its growth rates (ordered oldest first), and quality
// reports for both cadences. Serializable to tabular form by the
// rendering/export collaborators without further computation.
type MetricAnalysis struct {
	Metric           Metric           `json:"metric"`
	Series           *OrganizedSeries `json:"series"`
	Growth           []GrowthResult   `json:"growth"`
	AnnualQuality    QualityReport    `json:"annual_quality"`
	QuarterlyQuality QualityReport    `json:"quarterly_quality"`
}

// AnalysisResult is one complete analysis for a company
type AnalysisResult struct {
	Ticker      string                     `json:"ticker"`
	CompanyName string                     `json:"company_name,omitempty"`
	GeneratedAt time.Time                  `json:"generated_at"`
	Metrics     map[Metric]*MetricAnalysis `json:"metrics"`
	// Unavailable lists metrics for which the mapper yielded zero usable
	// facts. Distinct from sparse data, which shows up as a low
	// completeness ratio instead.
	Unavailable []Metric `json:"unavailable_metrics,omitempty"`
}

// Empty reports whether no metric produced any usable data
func (r *AnalysisResult) Empty() bool {
	return len(r.Metrics) == 0
}

// Warnings collects quality advisories across all analyzed metrics
func (r *AnalysisResult) Warnings() []string {
	var warnings []string
	seen := make(map[string]bool)
	for _, metric := range MetricOrder {
		analysis, ok := r.Metrics[metric]
		if !ok {
			continue
		}
		for _, report := range []QualityReport{analysis.AnnualQuality, analysis.QuarterlyQuality} {
			if msg := report.Warning(); msg != "" && !seen[msg] {
				warnings = append(warnings, msg)
				seen[msg] = true
			}
		}
	}
	return warnings
}

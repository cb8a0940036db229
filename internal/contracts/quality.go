package contracts

// QualityReport measures an organized series against a caller-supplied
// target window of period labels
type QualityReport struct {
	Metric            Metric   `json:"metric"`
	Frame             Frame    `json:"frame"`
	ExpectedPeriods   int      `json:"expected_periods"`
	PresentPeriods    int      `json:"present_periods"`
	MissingLabels     []string `json:"missing_period_labels"`
	CompletenessRatio float64  `json:"completeness_ratio"` // 0.0 ~ 1.0
}

// Complete reports whether every expected period is present
func (q *QualityReport) Complete() bool {
	return q.ExpectedPeriods > 0 && q.PresentPeriods == q.ExpectedPeriods
}

// Warning returns an advisory message when the series is too sparse for
// reliable derived calculations, or "" when coverage is acceptable
func (q *QualityReport) Warning() string {
	if q.CompletenessRatio >= 0.6 {
		return ""
	}
	if q.Frame == FrameQuarterly {
		return "Limited quarterly data available - QoQ analysis may be incomplete"
	}
	return "Limited annual data available - some calculations may be incomplete"
}

package contracts

import "time"

// Frame is the reporting cadence of a period
type Frame string

const (
	FrameAnnual    Frame = "annual"
	FrameQuarterly Frame = "quarterly"
)

// RawFact is a single reported value from a filing, as produced by the
// fetch collaborator. Immutable once received; many RawFacts may describe
// the same logical metric/period (concept synonyms, restatements).
// SSOT: the deserializer must produce exactly this shape
type RawFact struct {
	Concept     string     `json:"concept"`
	Value       *float64   `json:"value"`
	Unit        string     `json:"unit"`
	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   time.Time  `json:"period_end"`
	FiledAt     time.Time  `json:"filed_at"`
	Frame       Frame      `json:"frame"`
}

// HasValue reports whether the fact carries a usable numeric value
func (f *RawFact) HasValue() bool {
	return f.Value != nil
}

// SpanDays returns the reported period length in days, or 0 when the
// period start is not disclosed
func (f *RawFact) SpanDays() int {
	if f.PeriodStart == nil {
		return 0
	}
	return int(f.PeriodEnd.Sub(*f.PeriodStart).Hours() / 24)
}

// IsFullSpan reports whether the reported span matches the expected frame
// length (full year vs. full quarter). Facts without a period start cannot
// be verified and are treated as partial.
func (f *RawFact) IsFullSpan() bool {
	days := f.SpanDays()
	if days == 0 {
		return false
	}

	switch f.Frame {
	case FrameAnnual:
		// 52-53 week fiscal years land between ~350 and ~380 days
		return days >= 330 && days <= 400
	case FrameQuarterly:
		return days >= 75 && days <= 100
	default:
		return false
	}
}

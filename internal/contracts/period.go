package contracts

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// PeriodKey uniquely identifies one slot in an organized series
type PeriodKey struct {
	Metric    Metric    `json:"metric"`
	Frame     Frame     `json:"frame"`
	PeriodEnd time.Time `json:"period_end"`
	Label     string    `json:"label"` // e.g. "FY2023", "Q3 2023"
}

// AnnualLabel returns the fiscal-year label for a year, e.g. "FY2023"
func AnnualLabel(year int) string {
	return fmt.Sprintf("FY%d", year)
}

// QuarterLabel returns the fiscal-quarter label, e.g. "Q3 2023"
func QuarterLabel(year, quarter int) string {
	return fmt.Sprintf("Q%d %d", quarter, year)
}

// OrganizedSeries maps period keys to a single resolved value per period.
// Invariant: at most one value per key; absent periods are absent keys.
type OrganizedSeries struct {
	Metric Metric                `json:"metric"`
	Points map[PeriodKey]float64 `json:"points"`
}

// NewOrganizedSeries creates an empty series for a metric
func NewOrganizedSeries(metric Metric) *OrganizedSeries {
	return &OrganizedSeries{
		Metric: metric,
		Points: make(map[PeriodKey]float64),
	}
}

// Put records the resolved value for a period. It panics if the key was
// already resolved: a second value for the same slot is a programming
// defect in the collision resolution, not recoverable data noise.
func (s *OrganizedSeries) Put(key PeriodKey, value float64) {
	if _, exists := s.Points[key]; exists {
		panic(fmt.Sprintf("organized series: period %s/%s resolved twice", key.Metric, key.Label))
	}
	s.Points[key] = value
}

// Value returns the resolved value for a key
func (s *OrganizedSeries) Value(key PeriodKey) (float64, bool) {
	v, ok := s.Points[key]
	return v, ok
}

// Len returns the number of resolved periods
func (s *OrganizedSeries) Len() int {
	return len(s.Points)
}

// Keys returns all period keys of one frame, ordered oldest first
func (s *OrganizedSeries) Keys(frame Frame) []PeriodKey {
	keys := make([]PeriodKey, 0, len(s.Points))
	for key := range s.Points {
		if key.Frame == frame {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].PeriodEnd.Before(keys[j].PeriodEnd)
	})
	return keys
}

// Labels returns the set of period labels present in the series
func (s *OrganizedSeries) Labels() map[string]bool {
	labels := make(map[string]bool, len(s.Points))
	for key := range s.Points {
		labels[key.Label] = true
	}
	return labels
}

// seriesPoint is the wire shape of one resolved period. JSON cannot key
// objects by struct, so the points map serializes as an ordered array.
type seriesPoint struct {
	Key   PeriodKey `json:"key"`
	Value float64   `json:"value"`
}

type seriesJSON struct {
	Metric Metric        `json:"metric"`
	Points []seriesPoint `json:"points"`
}

// MarshalJSON serializes the series with points ordered oldest first,
// annual before quarterly.
func (s *OrganizedSeries) MarshalJSON() ([]byte, error) {
	out := seriesJSON{Metric: s.Metric}
	for _, frame := range []Frame{FrameAnnual, FrameQuarterly} {
		for _, key := range s.Keys(frame) {
			out.Points = append(out.Points, seriesPoint{Key: key, Value: s.Points[key]})
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the points map from the ordered array form
func (s *OrganizedSeries) UnmarshalJSON(data []byte) error {
	var in seriesJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Metric = in.Metric
	s.Points = make(map[PeriodKey]float64, len(in.Points))
	for _, p := range in.Points {
		s.Points[p.Key] = p.Value
	}
	return nil
}

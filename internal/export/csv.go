// Package export renders analysis results as CSV tables. Three table
// kinds exist: annual values, quarterly values, and growth rates.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/jwhan/fintab/internal/contracts"
)

// Kind selects the table to render
type Kind string

const (
	KindAnnual    Kind = "annual"
	KindQuarterly Kind = "quarterly"
	KindGrowth    Kind = "growth"
)

// ErrUnknownKind is returned for unrecognized export kinds
type ErrUnknownKind struct {
	Kind Kind
}

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("unknown export kind %q", e.Kind)
}

// ParseKind validates an export kind from URL or CLI input
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindAnnual, KindQuarterly, KindGrowth:
		return Kind(s), nil
	}
	return "", &ErrUnknownKind{Kind: Kind(s)}
}

// Filename returns the attachment filename for an exported table
func Filename(ticker string, kind Kind) string {
	return fmt.Sprintf("%s_%s_data.csv", ticker, kind)
}

// WriteCSV renders one table of an analysis result
func WriteCSV(w io.Writer, result *contracts.AnalysisResult, kind Kind) error {
	switch kind {
	case KindAnnual:
		return writeValues(w, result, contracts.FrameAnnual)
	case KindQuarterly:
		return writeValues(w, result, contracts.FrameQuarterly)
	case KindGrowth:
		return writeGrowth(w, result)
	}
	return &ErrUnknownKind{Kind: kind}
}

// writeValues renders one row per period, one column per metric,
// oldest period first. Missing values are blank cells.
func writeValues(w io.Writer, result *contracts.AnalysisResult, frame contracts.Frame) error {
	cw := csv.NewWriter(w)

	header := []string{periodColumn(frame)}
	for _, metric := range contracts.MetricOrder {
		header = append(header, metric.Label())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	// A period appears if any metric has a value for it
	type period struct {
		label string
		end   time.Time
	}
	seen := make(map[string]period)
	values := make(map[string]map[contracts.Metric]float64)

	for _, metric := range contracts.MetricOrder {
		analysis, ok := result.Metrics[metric]
		if !ok {
			continue
		}
		for _, key := range analysis.Series.Keys(frame) {
			if _, ok := seen[key.Label]; !ok {
				seen[key.Label] = period{label: key.Label, end: key.PeriodEnd}
				values[key.Label] = make(map[contracts.Metric]float64)
			}
			values[key.Label][metric], _ = analysis.Series.Value(key)
		}
	}

	periods := make([]period, 0, len(seen))
	for _, p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].end.Before(periods[j].end)
	})

	for _, p := range periods {
		row := []string{p.label}
		for _, metric := range contracts.MetricOrder {
			if v, ok := values[p.label][metric]; ok {
				row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeGrowth renders every growth result in pipeline order
func writeGrowth(w io.Writer, result *contracts.AnalysisResult) error {
	cw := csv.NewWriter(w)

	header := []string{"Metric", "Kind", "From", "To", "Rate", "Caveat"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, metric := range contracts.MetricOrder {
		analysis, ok := result.Metrics[metric]
		if !ok {
			continue
		}
		for i := range analysis.Growth {
			g := &analysis.Growth[i]
			row := []string{
				metric.Label(),
				string(g.Kind),
				g.From.Label,
				g.To.Label,
				g.Display(),
				string(g.Caveat),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func periodColumn(frame contracts.Frame) string {
	if frame == contracts.FrameQuarterly {
		return "Quarter"
	}
	return "Year"
}

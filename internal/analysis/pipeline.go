// Package analysis runs the metric pipeline for one company: fact
// mapping, period organization, growth calculation, and quality
// assessment. The pipeline is pure with respect to its inputs; fetching
// and persistence are collaborators wired in by the caller.
package analysis

import (
	"errors"
	"time"

	"github.com/jwhan/fintab/internal/contracts"
	"github.com/jwhan/fintab/internal/facts"
	"github.com/jwhan/fintab/internal/growth"
	"github.com/jwhan/fintab/internal/periods"
	"github.com/jwhan/fintab/internal/quality"
	"github.com/jwhan/fintab/pkg/logger"
)

// ErrNoMappedFacts marks a metric for which the mapper yielded zero
// usable facts. Recoverable: surfaced as "data unavailable" per metric,
// never a whole-request failure.
var ErrNoMappedFacts = errors.New("no mapped facts for metric")

// Pipeline runs the five processing stages sequentially for one request.
// Stateless across requests; safe for concurrent use.
type Pipeline struct {
	windowYears int
	logger      *logger.Logger
}

// NewPipeline creates a pipeline with a trailing analysis window in
// fiscal years (quarterly expectations are derived as 4x that)
func NewPipeline(windowYears int, log *logger.Logger) *Pipeline {
	if windowYears <= 0 {
		windowYears = 5
	}
	return &Pipeline{
		windowYears: windowYears,
		logger:      log,
	}
}

// Run analyzes the raw facts of one company. The ticker must already be
// normalized; asOf anchors the quality window (callers pass time.Now()
// outside tests). Every derived entity is recomputed fresh per call.
func (p *Pipeline) Run(ticker, companyName string, raw []contracts.RawFact, asOf time.Time) *contracts.AnalysisResult {
	result := &contracts.AnalysisResult{
		Ticker:      ticker,
		CompanyName: companyName,
		GeneratedAt: asOf,
		Metrics:     make(map[contracts.Metric]*contracts.MetricAnalysis),
	}

	mapped := facts.Map(raw)
	organized := periods.Organize(mapped)

	annualWindow := quality.AnnualWindow(asOf, p.windowYears)
	quarterlyWindow := quality.QuarterlyWindow(asOf, p.windowYears*4)

	for _, metric := range contracts.MetricOrder {
		series, ok := organized[metric]
		if !ok || series.Len() == 0 {
			result.Unavailable = append(result.Unavailable, metric)
			p.logger.WithFields(map[string]interface{}{
				"ticker": ticker,
				"metric": metric,
			}).Debug("No mapped facts for metric")
			continue
		}

		result.Metrics[metric] = &contracts.MetricAnalysis{
			Metric:           metric,
			Series:           series,
			Growth:           growth.Compute(series),
			AnnualQuality:    quality.Assess(series, contracts.FrameAnnual, annualWindow),
			QuarterlyQuality: quality.Assess(series, contracts.FrameQuarterly, quarterlyWindow),
		}
	}

	p.logger.WithFields(map[string]interface{}{
		"ticker":      ticker,
		"facts":       len(raw),
		"metrics":     len(result.Metrics),
		"unavailable": len(result.Unavailable),
	}).Info("Analysis pipeline completed")

	return result
}

// MetricErr returns ErrNoMappedFacts when a metric produced no usable
// facts in a result, nil otherwise
func MetricErr(result *contracts.AnalysisResult, metric contracts.Metric) error {
	if _, ok := result.Metrics[metric]; ok {
		return nil
	}
	return ErrNoMappedFacts
}

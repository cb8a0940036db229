package analysis

import (
	"context"
	"fmt"
	"time"

	"github.com/jwhan/fintab/internal/contracts"
	"github.com/jwhan/fintab/internal/external/edgar"
	"github.com/jwhan/fintab/internal/ticker"
	"github.com/jwhan/fintab/pkg/logger"
	"github.com/jwhan/fintab/pkg/redis"
)

// Fetcher resolves tickers and retrieves company facts. Satisfied by
// *edgar.Client; tests substitute a fake.
type Fetcher interface {
	ResolveCIK(ctx context.Context, ticker string) (*edgar.Company, error)
	CompanyFacts(ctx context.Context, cik string) (*edgar.CompanyFactsResponse, error)
}

// ProgressFunc receives per-stage progress during an analysis run
type ProgressFunc func(stage string, detail string)

// ResultCache stores completed analyses keyed by normalized ticker.
// Satisfied by *redis.Cache; tests substitute a fake.
type ResultCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Service runs the full analysis flow for one ticker: normalization,
// CIK resolution, facts retrieval, pipeline, and optional persistence.
// SSOT: end-to-end analysis orchestration
type Service struct {
	fetcher  Fetcher
	pipeline *Pipeline
	repo     *Repository // nil when DB is not configured
	cache    ResultCache // nil when Redis is not configured
	logger   *logger.Logger
}

// NewService creates an analysis service. repo may be nil, in which
// case results are not persisted.
func NewService(fetcher Fetcher, pipeline *Pipeline, repo *Repository, log *logger.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		pipeline: pipeline,
		repo:     repo,
		logger:   log,
	}
}

// WithResultCache enables short-lived caching of completed analyses so
// repeated requests for the same ticker skip the EDGAR round trip
func (s *Service) WithResultCache(cache ResultCache) *Service {
	s.cache = cache
	return s
}

// Analyze runs the full flow for a raw ticker string
func (s *Service) Analyze(ctx context.Context, rawTicker string) (*contracts.AnalysisResult, error) {
	return s.AnalyzeWithProgress(ctx, rawTicker, nil)
}

// AnalyzeWithProgress runs the full flow, reporting each stage as it
// starts. Used by the streaming API endpoint.
func (s *Service) AnalyzeWithProgress(ctx context.Context, rawTicker string, progress ProgressFunc) (*contracts.AnalysisResult, error) {
	report := func(stage, detail string) {
		if progress != nil {
			progress(stage, detail)
		}
	}

	report("normalize", rawTicker)
	symbol, err := ticker.Normalize(rawTicker)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached contracts.AnalysisResult
		if found, err := s.cache.Get(ctx, redis.AnalysisKey(symbol), &cached); err == nil && found {
			s.logger.WithField("ticker", symbol).Debug("Serving cached analysis")
			report("done", symbol)
			return &cached, nil
		}
	}

	report("resolve", symbol)
	company, err := s.fetcher.ResolveCIK(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", symbol, err)
	}

	report("fetch", company.CIK)
	facts, err := s.fetcher.CompanyFacts(ctx, company.CIK)
	if err != nil {
		return nil, fmt.Errorf("fetch facts for %s: %w", symbol, err)
	}

	report("analyze", symbol)
	result := s.pipeline.Run(symbol, company.Name, facts.RawFacts(), time.Now())

	if s.repo != nil {
		report("persist", symbol)
		if err := s.repo.SaveResult(ctx, result); err != nil {
			// Persistence failure does not invalidate the computed result
			s.logger.WithError(err).WithField("ticker", symbol).Warn("Failed to persist analysis snapshot")
		}
	}

	if s.cache != nil {
		// Cache failure does not invalidate the computed result
		if err := s.cache.Set(ctx, redis.AnalysisKey(symbol), result, redis.TTLMedium); err != nil {
			s.logger.WithError(err).WithField("ticker", symbol).Warn("Failed to cache analysis result")
		}
	}

	report("done", symbol)
	return result, nil
}

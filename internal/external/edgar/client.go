package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/time/rate"

	"github.com/jwhan/fintab/pkg/config"
	"github.com/jwhan/fintab/pkg/httputil"
	"github.com/jwhan/fintab/pkg/logger"
	"github.com/jwhan/fintab/pkg/redis"
)

// Client handles communication with the SEC EDGAR data API
// SSOT: all EDGAR calls go through this client
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cache      *redis.Cache
	limiter    *rate.Limiter

	baseURL        string
	tickerIndexURL string
	cacheTTL       config.EDGARConfig
}

// NewClient creates a new EDGAR client. The local limiter enforces the SEC
// fair-access policy of 10 requests per second even when Redis is disabled.
func NewClient(cfg *config.Config, log *logger.Logger, httpClient *httputil.Client, cache *redis.Cache) *Client {
	limit := cfg.EDGAR.RateLimit
	if limit <= 0 {
		limit = 10
	}

	return &Client{
		httpClient:     httpClient.WithUserAgent(cfg.EDGAR.UserAgent),
		logger:         log,
		cache:          cache,
		limiter:        rate.NewLimiter(rate.Limit(limit), limit),
		baseURL:        strings.TrimRight(cfg.EDGAR.BaseURL, "/"),
		tickerIndexURL: cfg.EDGAR.TickerIndex,
		cacheTTL:       cfg.EDGAR,
	}
}

// IndexEntry is one row of company_tickers.json
type IndexEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// Company identifies an EDGAR filer resolved from a ticker
type Company struct {
	CIK    string `json:"cik"` // zero-padded to 10 digits
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
}

// ErrTickerNotFound is returned when a ticker is absent from the index
type ErrTickerNotFound struct {
	Ticker string
}

func (e *ErrTickerNotFound) Error() string {
	return fmt.Sprintf("ticker %q not found in EDGAR index", e.Ticker)
}

// ResolveCIK maps a normalized ticker to its 10-digit CIK via the SEC
// ticker index. The index is cached for a day; it changes rarely.
func (c *Client) ResolveCIK(ctx context.Context, ticker string) (*Company, error) {
	index, err := c.TickerIndex(ctx)
	if err != nil {
		return nil, err
	}

	upper := strings.ToUpper(ticker)
	for _, entry := range index {
		if strings.ToUpper(entry.Ticker) == upper {
			company := &Company{
				CIK:    fmt.Sprintf("%010d", entry.CIK),
				Ticker: upper,
				Name:   entry.Title,
			}
			c.logger.WithFields(map[string]interface{}{
				"ticker": upper,
				"cik":    company.CIK,
			}).Debug("Resolved ticker to CIK")
			return company, nil
		}
	}

	return nil, &ErrTickerNotFound{Ticker: upper}
}

// RefreshTickerIndex drops the cached index and refetches it
func (c *Client) RefreshTickerIndex(ctx context.Context) ([]IndexEntry, error) {
	if c.cache != nil {
		if err := c.cache.Delete(ctx, redis.TickerIndexKey()); err != nil {
			c.logger.WithError(err).Warn("Failed to evict cached ticker index")
		}
	}
	return c.TickerIndex(ctx)
}

// TickerIndex fetches the full ticker index, cache first.
func (c *Client) TickerIndex(ctx context.Context) ([]IndexEntry, error) {
	var index []IndexEntry

	if c.cache != nil {
		found, err := c.cache.Get(ctx, redis.TickerIndexKey(), &index)
		if err == nil && found {
			return index, nil
		}
	}

	body, err := c.get(ctx, c.tickerIndexURL)
	if err != nil {
		return nil, fmt.Errorf("fetch ticker index: %w", err)
	}

	// The index is keyed by row number, not a JSON array
	var raw map[string]IndexEntry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse ticker index: %w", err)
	}

	index = make([]IndexEntry, 0, len(raw))
	for _, entry := range raw {
		index = append(index, entry)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, redis.TickerIndexKey(), index, redis.TTLDaily); err != nil {
			c.logger.WithError(err).Warn("Failed to cache ticker index")
		}
	}

	c.logger.WithField("companies", len(index)).Info("Fetched EDGAR ticker index")
	return index, nil
}

// CompanyFacts fetches the full XBRL company-facts payload for a CIK.
// Payloads run to several megabytes, so successful responses are cached.
func (c *Client) CompanyFacts(ctx context.Context, cik string) (*CompanyFactsResponse, error) {
	var facts CompanyFactsResponse

	if c.cache != nil {
		found, err := c.cache.Get(ctx, redis.CompanyFactsKey(cik), &facts)
		if err == nil && found {
			return &facts, nil
		}
	}

	url := fmt.Sprintf("%s/api/xbrl/companyfacts/CIK%s.json", c.baseURL, cik)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch company facts for CIK %s: %w", cik, err)
	}

	if err := json.Unmarshal(body, &facts); err != nil {
		return nil, fmt.Errorf("parse company facts for CIK %s: %w", cik, err)
	}

	if c.cache != nil {
		ttl := c.cacheTTL.CacheTTL
		if ttl <= 0 {
			ttl = redis.TTLLong
		}
		if err := c.cache.Set(ctx, redis.CompanyFactsKey(cik), &facts, ttl); err != nil {
			c.logger.WithError(err).Warn("Failed to cache company facts")
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"cik":      cik,
		"entity":   facts.EntityName,
		"concepts": len(facts.Facts.USGAAP),
	}).Info("Fetched company facts")

	return &facts, nil
}

// get performs a rate-limited GET and returns the response body
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.httpClient.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("EDGAR returned status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

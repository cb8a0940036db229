package commands

import (
	"fmt"

	"github.com/jwhan/fintab/internal/analysis"
	"github.com/jwhan/fintab/internal/external/edgar"
	"github.com/jwhan/fintab/pkg/config"
	"github.com/jwhan/fintab/pkg/database"
	"github.com/jwhan/fintab/pkg/httputil"
	"github.com/jwhan/fintab/pkg/logger"
	"github.com/jwhan/fintab/pkg/redis"
)

// deps holds the shared wiring for all commands
type deps struct {
	cfg     *config.Config
	log     *logger.Logger
	db      *database.DB     // nil when DATABASE_URL is unset
	rdb     *redis.Client    // disabled client when Redis is off
	edgar   *edgar.Client
	repo    *analysis.Repository // nil without a database
	service *analysis.Service
}

// buildDeps wires config, logger, cache, EDGAR client, and the analysis
// service. Database and Redis are optional: absence degrades persistence
// and caching, never the analysis itself.
func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	rdb, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, continuing without cache")
		rdb = nil
	}

	var cache *redis.Cache
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.EDGAR.FetchTimeout)
	if rdb != nil && rdb.Enabled() {
		cache = redis.NewCache(rdb, "fintab")
		// Shared limiter so concurrent processes split the SEC budget;
		// the client's local limiter still caps a single process
		httpClient = httpClient.WithRateLimiter(redis.NewRateLimiter(rdb, "fintab"), redis.EDGARRateLimit)
	}
	edgarClient := edgar.NewClient(cfg, log, httpClient, cache)

	d := &deps{
		cfg:   cfg,
		log:   log,
		rdb:   rdb,
		edgar: edgarClient,
	}

	if cfg.Database.URL != "" {
		db, err := database.New(cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		d.db = db
		d.repo = analysis.NewRepository(db.Pool)
	}

	pipeline := analysis.NewPipeline(cfg.Analysis.WindowYears, log)
	d.service = analysis.NewService(edgarClient, pipeline, d.repo, log)
	if cache != nil {
		d.service = d.service.WithResultCache(cache)
	}

	return d, nil
}

// close releases held connections
func (d *deps) close() {
	if d.db != nil {
		d.db.Close()
	}
	if d.rdb != nil {
		d.rdb.Close()
	}
}

package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jwhan/fintab/internal/contracts"
)

// ErrSnapshotNotFound is returned when no analysis has been stored for a ticker
var ErrSnapshotNotFound = errors.New("analysis snapshot not found")

// Repository persists analysis snapshots
// SSOT: analysis snapshot storage and retrieval
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new analysis repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Snapshot is one stored analysis run
type Snapshot struct {
	Ticker      string                    `json:"ticker"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Result      *contracts.AnalysisResult `json:"result"`
}

// SaveResult stores an analysis result, replacing any previous snapshot
// for the same ticker. The result body is stored as JSONB so schema
// changes in the metric vocabulary do not require migrations.
func (r *Repository) SaveResult(ctx context.Context, result *contracts.AnalysisResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal analysis result: %w", err)
	}

	query := `
		INSERT INTO analysis.snapshots (ticker, generated_at, result)
		VALUES ($1, $2, $3)
		ON CONFLICT (ticker) DO UPDATE SET
			generated_at = EXCLUDED.generated_at,
			result = EXCLUDED.result,
			updated_at = NOW()
	`

	_, err = r.pool.Exec(ctx, query, result.Ticker, result.GeneratedAt, payload)
	if err != nil {
		return fmt.Errorf("save analysis snapshot: %w", err)
	}

	return nil
}

// LatestResult retrieves the most recent snapshot for a ticker
func (r *Repository) LatestResult(ctx context.Context, ticker string) (*Snapshot, error) {
	query := `
		SELECT ticker, generated_at, result
		FROM analysis.snapshots
		WHERE ticker = $1
	`

	var snapshot Snapshot
	var payload []byte

	err := r.pool.QueryRow(ctx, query, ticker).Scan(
		&snapshot.Ticker,
		&snapshot.GeneratedAt,
		&payload,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load analysis snapshot: %w", err)
	}

	var result contracts.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal analysis snapshot: %w", err)
	}
	snapshot.Result = &result

	return &snapshot, nil
}

// ListSnapshots returns stored tickers and their generation times,
// most recent first.
func (r *Repository) ListSnapshots(ctx context.Context, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT ticker, generated_at
		FROM analysis.snapshots
		ORDER BY generated_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list analysis snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		if err := rows.Scan(&s.Ticker, &s.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan analysis snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

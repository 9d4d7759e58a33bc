package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PriceHistoryRepo implements ports.PriceHistoryRepository.
type PriceHistoryRepo struct {
	pool Pool
}

// NewPriceHistoryRepo creates a new PriceHistoryRepo.
func NewPriceHistoryRepo(pool Pool) *PriceHistoryRepo {
	return &PriceHistoryRepo{pool: pool}
}

// Create inserts a price history entry within the supplied transaction so the
// entry commits atomically with the matching asset price update.
func (r *PriceHistoryRepo) Create(ctx context.Context, tx pgx.Tx, entry *domain.PriceHistory) error {
	query := `INSERT INTO price_history (id, asset_id, price, timestamp, source)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query,
		entry.ID, entry.AssetID, entry.Price, entry.Timestamp, entry.Source,
	)
	if err != nil {
		return fmt.Errorf("insert price history: %w", err)
	}
	return nil
}

// ListByAsset fetches price history for an asset within [from, to], newest first.
func (r *PriceHistoryRepo) ListByAsset(ctx context.Context, assetID uuid.UUID, from, to time.Time, skip, limit int) ([]domain.PriceHistory, error) {
	query := `SELECT id, asset_id, price, timestamp, source FROM price_history
		WHERE asset_id = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp DESC LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, assetID, from, to, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	return r.collect(rows)
}

// ListByWindow fetches price history inside [from, to] across assets, oldest
// first, optionally restricted to one asset type. Trend math walks the rows
// in chronological order.
func (r *PriceHistoryRepo) ListByWindow(ctx context.Context, assetType *domain.AssetType, from, to time.Time) ([]domain.PriceHistory, error) {
	query := `SELECT ph.id, ph.asset_id, ph.price, ph.timestamp, ph.source
		FROM price_history ph
		JOIN assets a ON a.id = ph.asset_id
		WHERE ph.timestamp >= $1 AND ph.timestamp <= $2`
	args := []any{from, to}

	if assetType != nil {
		query += ` AND a.asset_type = $3`
		args = append(args, *assetType)
	}
	query += ` ORDER BY ph.timestamp`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list price history window: %w", err)
	}
	return r.collect(rows)
}

// Count counts all recorded price points.
func (r *PriceHistoryRepo) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM price_history`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count price history: %w", err)
	}
	return count, nil
}

func (r *PriceHistoryRepo) collect(rows pgx.Rows) ([]domain.PriceHistory, error) {
	defer rows.Close()

	var entries []domain.PriceHistory
	for rows.Next() {
		e := domain.PriceHistory{}
		if err := rows.Scan(&e.ID, &e.AssetID, &e.Price, &e.Timestamp, &e.Source); err != nil {
			return nil, fmt.Errorf("scan price history row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price history rows: %w", err)
	}
	return entries, nil
}

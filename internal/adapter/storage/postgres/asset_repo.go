package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const assetColumns = `id, owner_id, asset_type, weight, purity, certification,
		current_price, created_at, last_price_update, is_active, mint_address, token_account`

// AssetRepo implements ports.AssetRepository.
type AssetRepo struct {
	pool Pool
}

// NewAssetRepo creates a new AssetRepo.
func NewAssetRepo(pool Pool) *AssetRepo {
	return &AssetRepo{pool: pool}
}

// Create inserts a new asset into the database.
func (r *AssetRepo) Create(ctx context.Context, a *domain.Asset) error {
	query := `INSERT INTO assets (id, owner_id, asset_type, weight, purity, certification,
		current_price, created_at, last_price_update, is_active, mint_address, token_account)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		a.ID, a.OwnerID, a.AssetType, a.Weight, a.Purity, a.Certification,
		a.CurrentPrice, a.CreatedAt, a.LastPriceUpdate, a.IsActive,
		a.MintAddress, a.TokenAccount,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetByID fetches an asset by UUID.
func (r *AssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := fmt.Sprintf(`SELECT %s FROM assets WHERE id = $1`, assetColumns)
	return r.scanAsset(r.pool.QueryRow(ctx, query, id))
}

// List fetches assets with filtering and pagination.
func (r *AssetRepo) List(ctx context.Context, params ports.AssetListParams) ([]domain.Asset, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.AssetType != nil {
		conditions = append(conditions, fmt.Sprintf("asset_type = $%d", argIdx))
		args = append(args, *params.AssetType)
		argIdx++
	}
	if params.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, *params.OwnerID)
		argIdx++
	}
	if params.IsActive != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *params.IsActive)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM assets %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		assetColumns, where, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		a := domain.Asset{}
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.AssetType, &a.Weight, &a.Purity,
			&a.Certification, &a.CurrentPrice, &a.CreatedAt, &a.LastPriceUpdate,
			&a.IsActive, &a.MintAddress, &a.TokenAccount); err != nil {
			return nil, fmt.Errorf("scan asset row: %w", err)
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate asset rows: %w", err)
	}
	return assets, nil
}

// Update writes the mutable asset fields back to the database.
func (r *AssetRepo) Update(ctx context.Context, a *domain.Asset) error {
	query := `UPDATE assets SET weight = $1, purity = $2, certification = $3,
		current_price = $4, last_price_update = $5 WHERE id = $6`

	tag, err := r.pool.Exec(ctx, query,
		a.Weight, a.Purity, a.Certification, a.CurrentPrice, a.LastPriceUpdate, a.ID,
	)
	if err != nil {
		return fmt.Errorf("update asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found: %s", a.ID)
	}
	return nil
}

// Deactivate soft-deletes an asset.
func (r *AssetRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE assets SET is_active = FALSE WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivate asset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found: %s", id)
	}
	return nil
}

// MarketSummary aggregates active assets: count and total value (price × weight).
func (r *AssetRepo) MarketSummary(ctx context.Context) (int64, float64, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(current_price * weight), 0)
		FROM assets WHERE is_active = TRUE`

	var total int64
	var value float64
	if err := r.pool.QueryRow(ctx, query).Scan(&total, &value); err != nil {
		return 0, 0, fmt.Errorf("asset market summary: %w", err)
	}
	return total, value, nil
}

// UpdatePrice bumps current_price and last_price_update within a transaction.
func (r *AssetRepo) UpdatePrice(ctx context.Context, tx pgx.Tx, id uuid.UUID, price float64, at time.Time) error {
	query := `UPDATE assets SET current_price = $1, last_price_update = $2 WHERE id = $3`

	tag, err := tx.Exec(ctx, query, price, at, id)
	if err != nil {
		return fmt.Errorf("update asset price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("asset not found: %s", id)
	}
	return nil
}

func (r *AssetRepo) scanAsset(row pgx.Row) (*domain.Asset, error) {
	a := &domain.Asset{}
	err := row.Scan(&a.ID, &a.OwnerID, &a.AssetType, &a.Weight, &a.Purity,
		&a.Certification, &a.CurrentPrice, &a.CreatedAt, &a.LastPriceUpdate,
		&a.IsActive, &a.MintAddress, &a.TokenAccount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return a, nil
}

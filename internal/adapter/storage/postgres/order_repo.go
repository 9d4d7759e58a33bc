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

const orderColumns = `id, asset_id, owner_id, order_type, quantity, price_per_unit,
		status, created_at, updated_at, expires_at`

// OrderRepo implements ports.OrderRepository.
type OrderRepo struct {
	pool Pool
}

// NewOrderRepo creates a new OrderRepo.
func NewOrderRepo(pool Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// Create inserts a new trade order into the database.
func (r *OrderRepo) Create(ctx context.Context, o *domain.TradeOrder) error {
	query := `INSERT INTO trade_orders (id, asset_id, owner_id, order_type, quantity,
		price_per_unit, status, created_at, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.AssetID, o.OwnerID, o.OrderType, o.Quantity,
		o.PricePerUnit, o.Status, o.CreatedAt, o.UpdatedAt, o.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert trade order: %w", err)
	}
	return nil
}

// GetByID fetches a trade order by UUID.
func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOrder, error) {
	query := fmt.Sprintf(`SELECT %s FROM trade_orders WHERE id = $1`, orderColumns)
	return r.scanOrder(r.pool.QueryRow(ctx, query, id))
}

// List fetches trade orders with filtering and pagination, newest first.
func (r *OrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.TradeOrder, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.AssetID != nil {
		conditions = append(conditions, fmt.Sprintf("asset_id = $%d", argIdx))
		args = append(args, *params.AssetID)
		argIdx++
	}
	if params.OrderType != nil {
		conditions = append(conditions, fmt.Sprintf("order_type = $%d", argIdx))
		args = append(args, *params.OrderType)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("owner_id = $%d", argIdx))
		args = append(args, *params.OwnerID)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM trade_orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, argIdx, argIdx+1)
	args = append(args, params.Limit, params.Skip)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list trade orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.TradeOrder
	for rows.Next() {
		o := domain.TradeOrder{}
		if err := rows.Scan(&o.ID, &o.AssetID, &o.OwnerID, &o.OrderType, &o.Quantity,
			&o.PricePerUnit, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.ExpiresAt); err != nil {
			return nil, fmt.Errorf("scan trade order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trade order rows: %w", err)
	}
	return orders, nil
}

// Update writes the mutable order fields back to the database.
func (r *OrderRepo) Update(ctx context.Context, o *domain.TradeOrder) error {
	query := `UPDATE trade_orders SET quantity = $1, price_per_unit = $2,
		status = $3, updated_at = $4, expires_at = $5 WHERE id = $6`

	tag, err := r.pool.Exec(ctx, query,
		o.Quantity, o.PricePerUnit, o.Status, o.UpdatedAt, o.ExpiresAt, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update trade order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trade order not found: %s", o.ID)
	}
	return nil
}

// UpdateStatus transitions an order from one status to another. The guard on
// the current status makes concurrent transitions race-safe: only one caller
// observes the pending row. Returns false when the order was not in the
// expected status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	query := `UPDATE trade_orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	tag, err := r.pool.Exec(ctx, query, to, time.Now().UTC(), id, from)
	if err != nil {
		return false, fmt.Errorf("update trade order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CountActive counts pending orders across the market.
func (r *OrderRepo) CountActive(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM trade_orders WHERE status = 'pending'`

	var count int64
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active orders: %w", err)
	}
	return count, nil
}

// ExpireDue marks all pending orders whose expiry has passed as expired and
// returns how many were transitioned.
func (r *OrderRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE trade_orders SET status = 'expired', updated_at = $1
		WHERE status = 'pending' AND expires_at IS NOT NULL AND expires_at < $1`

	tag, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("expire due orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *OrderRepo) scanOrder(row pgx.Row) (*domain.TradeOrder, error) {
	o := &domain.TradeOrder{}
	err := row.Scan(&o.ID, &o.AssetID, &o.OwnerID, &o.OrderType, &o.Quantity,
		&o.PricePerUnit, &o.Status, &o.CreatedAt, &o.UpdatedAt, &o.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get trade order: %w", err)
	}
	return o, nil
}

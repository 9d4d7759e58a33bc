package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"
	"github.com/VWA-XRPL/VWA-XRPL/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// --- In-Memory User Repo ---

type inMemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*domain.User
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *inMemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.WalletAddress == u.WalletAddress {
			return fmt.Errorf("wallet address already exists")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *inMemoryUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *inMemoryUserRepo) GetByWalletAddress(ctx context.Context, wallet string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.WalletAddress == wallet {
			return u, nil
		}
	}
	return nil, nil
}

func (r *inMemoryUserRepo) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return paginate(users, skip, limit), nil
}

// --- In-Memory Asset Repo ---

type inMemoryAssetRepo struct {
	mu     sync.RWMutex
	assets map[uuid.UUID]*domain.Asset
}

func newInMemoryAssetRepo() *inMemoryAssetRepo {
	return &inMemoryAssetRepo{assets: make(map[uuid.UUID]*domain.Asset)}
}

func (r *inMemoryAssetRepo) Create(ctx context.Context, a *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[a.ID] = a
	return nil
}

func (r *inMemoryAssetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *inMemoryAssetRepo) List(ctx context.Context, params ports.AssetListParams) ([]domain.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.Asset
	for _, a := range r.assets {
		if params.AssetType != nil && a.AssetType != *params.AssetType {
			continue
		}
		if params.OwnerID != nil && a.OwnerID != *params.OwnerID {
			continue
		}
		if params.IsActive != nil && a.IsActive != *params.IsActive {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, params.Skip, params.Limit), nil
}

func (r *inMemoryAssetRepo) Update(ctx context.Context, a *domain.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assets[a.ID]; !ok {
		return fmt.Errorf("asset not found")
	}
	r.assets[a.ID] = a
	return nil
}

func (r *inMemoryAssetRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return fmt.Errorf("asset not found")
	}
	a.IsActive = false
	return nil
}

func (r *inMemoryAssetRepo) MarketSummary(ctx context.Context) (int64, float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	var total float64
	for _, a := range r.assets {
		if !a.IsActive {
			continue
		}
		count++
		total += a.CurrentPrice * a.Weight
	}
	return count, total, nil
}

func (r *inMemoryAssetRepo) UpdatePrice(ctx context.Context, tx pgx.Tx, id uuid.UUID, price float64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return fmt.Errorf("asset not found")
	}
	a.CurrentPrice = price
	a.LastPriceUpdate = &at
	return nil
}

// --- In-Memory Order Repo ---

type inMemoryOrderRepo struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]*domain.TradeOrder
}

func newInMemoryOrderRepo() *inMemoryOrderRepo {
	return &inMemoryOrderRepo{orders: make(map[uuid.UUID]*domain.TradeOrder)}
}

func (r *inMemoryOrderRepo) Create(ctx context.Context, o *domain.TradeOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *inMemoryOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TradeOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (r *inMemoryOrderRepo) List(ctx context.Context, params ports.OrderListParams) ([]domain.TradeOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.TradeOrder
	for _, o := range r.orders {
		if params.AssetID != nil && o.AssetID != *params.AssetID {
			continue
		}
		if params.OrderType != nil && o.OrderType != *params.OrderType {
			continue
		}
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		if params.OwnerID != nil && o.OwnerID != *params.OwnerID {
			continue
		}
		result = append(result, *o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return paginate(result, params.Skip, params.Limit), nil
}

func (r *inMemoryOrderRepo) Update(ctx context.Context, o *domain.TradeOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return fmt.Errorf("order not found")
	}
	r.orders[o.ID] = o
	return nil
}

func (r *inMemoryOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	now := time.Now().UTC()
	o.Status = to
	o.UpdatedAt = &now
	return true, nil
}

func (r *inMemoryOrderRepo) CountActive(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, o := range r.orders {
		if o.Status == domain.OrderStatusPending {
			count++
		}
	}
	return count, nil
}

func (r *inMemoryOrderRepo) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired int64
	for _, o := range r.orders {
		if o.Status == domain.OrderStatusPending && o.ExpiresAt != nil && o.ExpiresAt.Before(now) {
			o.Status = domain.OrderStatusExpired
			expired++
		}
	}
	return expired, nil
}

// --- In-Memory Price History Repo ---

type inMemoryHistoryRepo struct {
	mu      sync.RWMutex
	entries []domain.PriceHistory
	assets  *inMemoryAssetRepo // for type-filtered windows
}

func newInMemoryHistoryRepo(assets *inMemoryAssetRepo) *inMemoryHistoryRepo {
	return &inMemoryHistoryRepo{assets: assets}
}

func (r *inMemoryHistoryRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.PriceHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

func (r *inMemoryHistoryRepo) ListByAsset(ctx context.Context, assetID uuid.UUID, from, to time.Time, skip, limit int) ([]domain.PriceHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.PriceHistory
	for _, e := range r.entries {
		if e.AssetID != assetID || e.Timestamp.Before(from) || e.Timestamp.After(to) {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.After(result[j].Timestamp) })
	return paginate(result, skip, limit), nil
}

func (r *inMemoryHistoryRepo) ListByWindow(ctx context.Context, assetType *domain.AssetType, from, to time.Time) ([]domain.PriceHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.PriceHistory
	for _, e := range r.entries {
		if e.Timestamp.Before(from) || e.Timestamp.After(to) {
			continue
		}
		if assetType != nil {
			a, _ := r.assets.GetByID(ctx, e.AssetID)
			if a == nil || a.AssetType != *assetType {
				continue
			}
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Timestamp.Before(result[j].Timestamp) })
	return result, nil
}

func (r *inMemoryHistoryRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.entries)), nil
}

func paginate[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}

// --- In-Memory Transactor (no-op tx) ---

type inMemoryTransactor struct{}

func newInMemoryTransactor() *inMemoryTransactor {
	return &inMemoryTransactor{}
}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/VWA-XRPL/VWA-XRPL/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepo implements ports.UserRepository.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts a new user into the database.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, wallet_address, username, email, created_at, updated_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		u.ID, u.WalletAddress, u.Username, u.Email,
		u.CreatedAt, u.UpdatedAt, u.IsActive,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches a user by UUID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT id, wallet_address, username, email, created_at, updated_at, is_active
		FROM users WHERE id = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

// GetByWalletAddress fetches a user by wallet address.
func (r *UserRepo) GetByWalletAddress(ctx context.Context, wallet string) (*domain.User, error) {
	query := `SELECT id, wallet_address, username, email, created_at, updated_at, is_active
		FROM users WHERE wallet_address = $1`

	return r.scanUser(r.pool.QueryRow(ctx, query, wallet))
}

// List fetches users with pagination, oldest first.
func (r *UserRepo) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	query := `SELECT id, wallet_address, username, email, created_at, updated_at, is_active
		FROM users ORDER BY created_at LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u := domain.User{}
		if err := rows.Scan(&u.ID, &u.WalletAddress, &u.Username, &u.Email,
			&u.CreatedAt, &u.UpdatedAt, &u.IsActive); err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}
	return users, nil
}

func (r *UserRepo) scanUser(row pgx.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.WalletAddress, &u.Username, &u.Email,
		&u.CreatedAt, &u.UpdatedAt, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

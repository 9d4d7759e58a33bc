package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a platform account keyed by wallet address.
// Users are created on first successful wallet login and never deleted.
type User struct {
	ID            uuid.UUID  `json:"id"`
	WalletAddress string     `json:"wallet_address"`
	Username      *string    `json:"username,omitempty"`
	Email         *string    `json:"email,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
	IsActive      bool       `json:"is_active"`
}

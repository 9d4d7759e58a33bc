package postgres

import "context"

// HealthCheck feeds the deep /health endpoint: it proves the database
// accepts queries, not merely that the pool holds connections.
type HealthCheck struct {
	pool Pool
}

func NewHealthCheck(pool Pool) *HealthCheck {
	return &HealthCheck{pool: pool}
}

// Ping issues a trivial query against the pool.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.pool.Exec(ctx, "SELECT 1")
	return err
}

// Name is the dependency label reported under /health.
func (h *HealthCheck) Name() string {
	return "postgresql"
}

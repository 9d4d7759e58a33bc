package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck feeds the deep /health endpoint. Redis going away only
// degrades the API (cache misses, rate limiting off), so the report
// matters more than the failure.
type HealthCheck struct {
	client *goredis.Client
}

func NewHealthCheck(client *goredis.Client) *HealthCheck {
	return &HealthCheck{client: client}
}

// Ping round-trips a PING command.
func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

// Name is the dependency label reported under /health.
func (h *HealthCheck) Name() string {
	return "redis"
}

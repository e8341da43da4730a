package ports

import "context"

// HealthChecker is a dependency probed by the readiness endpoint.
type HealthChecker interface {
	Name() string
	Ping(ctx context.Context) error
}

package ports

import "context"

// HealthChecker probes one dependency of the gateway (a backend API or
// Redis). Check returns nil when the dependency answers within ctx.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

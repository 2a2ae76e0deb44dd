package health

import "context"

// Pinger checks connectivity to one backing component.
type Pinger interface {
	Ping(ctx context.Context) error
}

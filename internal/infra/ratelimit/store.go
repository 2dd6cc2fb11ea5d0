package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key inside a fixed window. The first Incr of a
// key starts its window.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

package utils

import (
	"context"
	"time"
)

const DefaultStoreTimeout = 5 * time.Second

// WithStoreTimeout bounds a store call so that a stalled database surfaces a
// 503 instead of hanging the request.
func WithStoreTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

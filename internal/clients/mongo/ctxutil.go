package mongo

import (
	"context"
	"time"
)

// OpTimeout bounds every repository call.
const OpTimeout = 5 * time.Second

// WithRepoTimeout keeps ctx when it is already done or expires within d,
// otherwise derives a child with timeout d. The returned cancel is always
// safe to defer.
func WithRepoTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx.Err() != nil {
		return ctx, func() {}
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) <= d {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}

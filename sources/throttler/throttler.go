package throttler

import (
	"context"
	"fmt"
	"time"

	"chokwadi/sources/configuration"
	"chokwadi/sources/platform"
	"chokwadi/sources/tracing"

	"github.com/redis/go-redis/v9"
)

// Throttler enforces the per-sender hourly request cap with a redis counter.
// Redis errors fail open: a broken cache must not take the bot down.
type Throttler struct {
	client *redis.Client
	config *configuration.Config
	log    *tracing.Logger
	ctx    context.Context
}

func NewThrottler(client *redis.Client, config *configuration.Config, log *tracing.Logger) *Throttler {
	ctx := context.Background()
	return &Throttler{client: client, config: config, log: log, ctx: ctx}
}

func (x *Throttler) IsAllowed(senderHash string) bool {
	ctx, cancel := platform.ContextTimeout(x.ctx)
	defer cancel()

	key := fmt.Sprintf("throttle:%s", senderHash)

	count, err := x.client.Incr(ctx, key).Result()
	if err != nil {
		x.log.E("Error incrementing throttle key", tracing.InnerError, err)
		return true
	}

	if count == 1 {
		if err := x.client.Expire(ctx, key, time.Hour).Err(); err != nil {
			x.log.E("Error setting throttle expiry", tracing.InnerError, err)
		}
	}

	return count <= int64(x.config.Throttler.MaxRequestsPerHour)
}

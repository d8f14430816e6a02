package middleware

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmw "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/benvon/quest-planner/internal/request"
)

// DefaultRateLimit is the limit used when none is configured
const DefaultRateLimit = "300-M"

const rateLimitPrefix = "quest-planner:ratelimit"

// RateLimit returns ulule/limiter middleware keyed by client IP. rateStr uses the
// limiter format ("300-M", "5-S"). Counters live in redis when client is non-nil
// and in process memory otherwise.
func RateLimit(rateStr string, client *redis.Client) (func(http.Handler) http.Handler, error) {
	if rateStr == "" {
		rateStr = DefaultRateLimit
	}
	rate, err := limiter.NewRateFromFormatted(rateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", rateStr, err)
	}

	opts := limiter.StoreOptions{
		Prefix:          rateLimitPrefix,
		MaxRetry:        limiter.DefaultMaxRetry,
		CleanUpInterval: limiter.DefaultCleanUpInterval,
	}
	var store limiter.Store
	if client != nil {
		store, err = redisstore.NewStoreWithOptions(client, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(opts)
	}

	mw := stdlibmw.NewMiddleware(limiter.New(store, rate), stdlibmw.WithKeyGetter(request.ClientIP))
	return mw.Handler, nil
}

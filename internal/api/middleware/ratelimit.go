package middleware

import (
	"net/http"
	"time"

	"cublex/internal/common"

	"github.com/go-chi/httprate"
	httprateredis "github.com/go-chi/httprate-redis"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type RateLimitOptions struct {
	Limit  int
	Window time.Duration
	// Redis shares counters between instances. Nil keeps them in process.
	Redis  *redis.Client
	Prefix string
	Logger zerolog.Logger
}

// RateLimit answers 429 once a peer exceeds Limit requests per Window. Clients
// are keyed on the connection address, so forwarded-for headers only count
// when RealIP has been installed in front of it. A Redis outage falls back to
// in-process counting.
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	options := []httprate.Option{
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			common.RespondWithError(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
		}),
	}
	if opts.Redis != nil {
		logger := opts.Logger
		options = append(options, httprateredis.WithRedisLimitCounter(&httprateredis.Config{
			Client:    opts.Redis,
			PrefixKey: opts.Prefix + "ratelimit",
			OnFallbackChange: func(activated bool) {
				if activated {
					logger.Warn().Msg("rate limiter lost redis, counting in process")
					return
				}
				logger.Info().Msg("rate limiter back on redis")
			},
		}))
	}
	return httprate.Limit(opts.Limit, opts.Window, options...)
}

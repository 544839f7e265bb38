package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/campuslink/campuslink-api/internal/pkg/response"
)

// RateLimit returns middleware enforcing `limit` requests per `window`
// for the named resource, keyed by authenticated user ID. A fixed window
// counter in Redis (INCR + EXPIRE on first hit) backs the limit.
// Fails open: a nil client or Redis error lets the request through.
func RateLimit(rdb *redis.Client, resource string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			userID := GetUserID(r.Context())
			key := fmt.Sprintf("rl:%s:%s", resource, userID)

			cnt, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				log.Warn().Err(err).Str("resource", resource).Msg("Rate limit check failed, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if cnt == 1 {
				rdb.Expire(r.Context(), key, window)
			}
			if cnt > int64(limit) {
				response.TooManyRequests(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

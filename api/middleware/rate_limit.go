package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/brightwell-digital/cms-backend/api/responses"
	pkgerrors "github.com/brightwell-digital/cms-backend/pkg/errors"
	"github.com/brightwell-digital/cms-backend/pkg/logger"
	"github.com/brightwell-digital/cms-backend/pkg/metrics"
)

// CounterStore is the fixed-window counter surface. Both the redis
// client and the in-memory store satisfy it.
type CounterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimitPolicy throttles one traffic surface per client address.
type RateLimitPolicy struct {
	window time.Duration
	limit  int
}

// NewRateLimitPolicy builds a policy with the supplied window and per-IP limit.
func NewRateLimitPolicy(window time.Duration, limit int) RateLimitPolicy {
	return RateLimitPolicy{window: window, limit: limit}
}

func (p RateLimitPolicy) enabled() bool {
	return p.window > 0 && p.limit > 0
}

// RateLimit enforces a fixed-window per-IP counter keyed by request
// path. The first request in a window starts it; once the limit is
// reached every further request in that window is refused.
func RateLimit(policy RateLimitPolicy, store CounterStore, m *metrics.ModerationMetrics, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			key := fmt.Sprintf("rl:%s:%s", r.URL.Path, clientIP(r))
			count, err := store.IncrWithTTL(ctx, key, policy.window)
			if err != nil {
				// A broken counter backend must not take the API down.
				if logg != nil {
					logg.Error(ctx, "rate limit counter unavailable", err)
				}
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(policy.limit) {
				m.IncRateLimited(r.URL.Path)
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"ip":             clientIP(r),
						"attempts":       count,
						"limit":          policy.limit,
						"window_seconds": int(policy.window.Seconds()),
					})
					logg.Warn(logCtx, "rate_limit.blocked")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

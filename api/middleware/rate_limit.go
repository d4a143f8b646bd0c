package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rigtrack/rigtrack-backend/api/responses"
	"github.com/rigtrack/rigtrack-backend/pkg/config"
	pkgerrors "github.com/rigtrack/rigtrack-backend/pkg/errors"
	"github.com/rigtrack/rigtrack-backend/pkg/logger"
)

// RateStore counts requests in fixed windows.
type RateStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// RateLimit throttles every request by client IP using a shared fixed-window
// counter. Disabled when the window or limit is unset.
func RateLimit(cfg config.APIRateLimitConfig, store RateStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.Window <= 0 || cfg.IPLimit <= 0 || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := ClientIP(r)
			allowed, count, err := store.FixedWindowAllow(ctx, "api:ip:"+ip, int64(cfg.IPLimit), cfg.Window)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
				return
			}
			if !allowed {
				if logg != nil {
					ctx = logg.WithFields(ctx, map[string]any{
						"ip":    ip,
						"count": count,
						"limit": cfg.IPLimit,
					})
					logg.Warn(ctx, "request rate limited")
				}
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

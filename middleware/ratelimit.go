package middleware

import (
	"errors"
	"net/http"
	"strconv"

	authgate "github.com/boffins/authgate"
)

// RateLimit is the first pipeline stage. It counts the request against
// the engine's fixed-window budget and terminates with 429 once the
// budget is spent. Counting happens here, before any later stage, so a
// downstream cancellation cannot un-count a request.
//
// When the counter store is down the engine's policy decides: the
// fail-closed default surfaces 503 on protected routes rather than
// silently dropping abuse protection.
func RateLimit(engine *authgate.Engine) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			ctx := authgate.WithClientIP(r.Context(), ip)
			ctx = authgate.WithRoute(ctx, r.URL.Path)

			err := engine.CheckRate(ctx, ip, r.URL.Path)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(ctx))
			case errors.Is(err, authgate.ErrRateLimited):
				w.Header().Set("Retry-After", strconv.Itoa(engine.RateWindowSeconds()))
				writeError(w, http.StatusTooManyRequests, KindRateLimited)
			case errors.Is(err, authgate.ErrStoreUnavailable):
				writeError(w, http.StatusServiceUnavailable, KindStoreUnavailable)
			default:
				writeError(w, http.StatusServiceUnavailable, KindStoreUnavailable)
			}
		})
	}
}

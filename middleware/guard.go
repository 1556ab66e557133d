package middleware

import (
	"errors"
	"net/http"

	authgate "github.com/boffins/authgate"
)

// Require guards a route behind a minimum role. Anonymous requests get
// 401, authenticated requests with an insufficient role get 403. The
// two are never conflated: the status tells the client whether to
// authenticate or to give up.
func Require(engine *authgate.Engine, role authgate.Role) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ := PrincipalFromContext(r.Context())

			err := engine.Authorize(r.Context(), principal, role)
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, authgate.ErrUnauthenticated):
				writeError(w, http.StatusUnauthorized, KindUnauthenticated)
			case errors.Is(err, authgate.ErrForbidden):
				writeError(w, http.StatusForbidden, KindForbidden)
			default:
				writeError(w, http.StatusForbidden, KindForbidden)
			}
		})
	}
}

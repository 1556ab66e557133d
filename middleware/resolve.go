package middleware

import (
	"errors"
	"net/http"

	authgate "github.com/boffins/authgate"
	"github.com/boffins/authgate/internal"
)

// Resolve turns the request's credential, if any, into a principal on
// the request context. A bearer token and a session cookie are mutually
// exclusive; presenting both is rejected outright rather than picking a
// winner.
//
// An invalid or expired credential does not terminate the request here:
// the request continues anonymously, and the Require stage decides
// whether anonymous is acceptable for the route. An expired session is
// therefore indistinguishable from no cookie at all.
//
// Session-authenticated state-changing requests additionally carry the
// session's CSRF token in the X-CSRF-Token header; a missing or wrong
// token is a terminal 403.
func Resolve(engine *authgate.Engine) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, hasToken := bearerToken(r.Header.Get("Authorization"))
			cookie, err := r.Cookie(authgate.SessionCookieName)
			hasCookie := err == nil && cookie.Value != ""

			switch {
			case hasToken && hasCookie:
				writeError(w, http.StatusUnauthorized, KindUnauthenticated)

			case hasToken:
				principal, err := engine.ResolveToken(token)
				if err != nil {
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))

			case hasCookie:
				resolveSession(engine, next, w, r, cookie.Value)

			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func resolveSession(engine *authgate.Engine, next http.Handler, w http.ResponseWriter, r *http.Request, sessionID string) {
	principal, csrf, err := engine.ResolveSession(r.Context(), sessionID)
	switch {
	case err == nil:
	case errors.Is(err, authgate.ErrSessionNotFound):
		// Expired or unknown session: continue anonymously.
		next.ServeHTTP(w, r)
		return
	default:
		// Store down: we cannot tell a valid session from a stale one,
		// so fail closed as unauthenticated.
		writeError(w, http.StatusUnauthorized, KindUnauthenticated)
		return
	}

	if stateChanging(r.Method) {
		presented := r.Header.Get(authgate.CSRFHeaderName)
		if !internal.CSRFTokenEqual(presented, csrf) {
			writeError(w, http.StatusForbidden, KindCSRFMismatch)
			return
		}
	}

	ctx := withPrincipal(r.Context(), principal)
	ctx = withSessionID(ctx, sessionID)
	next.ServeHTTP(w, r.WithContext(ctx))
}

func stateChanging(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

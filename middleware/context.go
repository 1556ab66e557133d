package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	authgate "github.com/boffins/authgate"
)

type principalContextKey struct{}
type sessionIDContextKey struct{}

// PrincipalFromContext returns the principal the Resolve stage attached
// to the request, or false for an anonymous request.
func PrincipalFromContext(ctx context.Context) (*authgate.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*authgate.Principal)
	return p, ok
}

// SessionIDFromContext returns the session id behind a session-resolved
// principal; logout handlers use it to destroy the right session.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDContextKey{}).(string)
	return sid, ok
}

func withPrincipal(ctx context.Context, p *authgate.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

func withSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDContextKey{}, sessionID)
}

// ClientIP extracts the client address, preferring forwarded headers so
// the gateway limits the real client rather than the load balancer.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, ok := strings.Cut(forwarded, ","); ok {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(forwarded)
	}
	if real := r.Header.Get("X-Real-IP"); real != "" {
		return real
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}

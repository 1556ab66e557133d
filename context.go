package authgate

import "context"

type clientIPContextKey struct{}
type routeContextKey struct{}

// WithClientIP attaches the caller's IP address to ctx. The Engine uses
// it for audit events; the middleware attaches it before every engine
// call.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPContextKey{}, ip)
}

func clientIPFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	ip, _ := ctx.Value(clientIPContextKey{}).(string)
	return ip
}

// WithRoute attaches the request route to ctx so audit events carry it.
// The middleware attaches it at the head of the pipeline.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeContextKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	route, _ := ctx.Value(routeContextKey{}).(string)
	return route
}

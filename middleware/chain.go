package middleware

import "net/http"

// Middleware is one pipeline stage.
type Middleware func(http.Handler) http.Handler

// Chain is an explicit ordered list of pipeline stages. Composition is
// a plain fold over the list — there is no implicit registration and no
// stage reordering at runtime. A terminal rejection in any stage
// short-circuits every later stage and the handler.
type Chain []Middleware

// Then wraps handler with the chain's stages, first element outermost.
func (c Chain) Then(handler http.Handler) http.Handler {
	for i := len(c) - 1; i >= 0; i-- {
		handler = c[i](handler)
	}
	return handler
}

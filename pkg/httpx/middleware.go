// Package httpx carries the shared HTTP plumbing: response helpers,
// middleware chaining, bearer authentication against the live session, role
// gating and rate limiting.
package httpx

import "net/http"

// Middleware wraps a handler with extra behaviour.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h with the first argument outermost, so
// Chain(h, a, b) serves requests as a(b(h)).
func Chain(h http.Handler, mw ...Middleware) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

// Package middleware holds the handler decorators the server composes
// around its router.
package middleware

import "net/http"

// Middleware decorates an http.Handler with one cross-cutting concern.
type Middleware func(http.Handler) http.Handler

// Wrap layers middlewares around h. The last one listed ends up
// outermost and sees the request first.
func Wrap(h http.Handler, layers ...Middleware) http.Handler {
	for _, layer := range layers {
		h = layer(h)
	}
	return h
}

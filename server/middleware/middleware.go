// Package middleware provides the HTTP middleware stack: panic recovery,
// request IDs, CORS, body-size limits, request logging and metrics, plus
// the bearer-token gate that protects the authenticated routes.
package middleware

import (
	"encoding/json"
	"net/http"

	apperrors "tareasapi/errors"
)

// Middleware wraps an http.Handler with additional behavior. The ambient
// stack uses this standard signature and is applied at the server handler
// level, underneath Gin; route-scoped middleware (the auth gate, HTTP
// metrics, rate limiting) are gin.HandlerFunc instead.
type Middleware func(http.Handler) http.Handler

// Chain composes multiple middleware. The first in the list is the
// outermost: it runs first on a request and last on a response.
func Chain(middlewares ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// writeError writes an AppError as the standard JSON error envelope.
func writeError(w http.ResponseWriter, appErr *apperrors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(appErr.ToResponse())
}

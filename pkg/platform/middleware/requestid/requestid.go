// Package requestid bridges chi's request ID into the HTTP-independent
// request context so services can log it without importing chi.
package requestid

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"agrigate/pkg/requestcontext"
)

// Middleware copies the chi request ID into requestcontext. Mount after
// chi's RequestID middleware.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
			ctx = requestcontext.WithRequestID(ctx, reqID)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

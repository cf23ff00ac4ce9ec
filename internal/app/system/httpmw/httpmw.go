// Package httpmw holds the request-id middleware shared by every route.
package httpmw

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/requestid"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = requestid.DefaultHeader

// RequestID reuses an incoming X-Request-ID or assigns a new UUID with
// waffle's requestid middleware. The id is also stored under chi's request
// id key, which is where logging.RequestLogger reads it.
func RequestID() func(http.Handler) http.Handler {
	cfg := requestid.DefaultConfig()
	cfg.Generator = uuid.NewString
	assign := requestid.Middleware(cfg)

	return func(next http.Handler) http.Handler {
		return assign(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), middleware.RequestIDKey, requestid.Get(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		}))
	}
}

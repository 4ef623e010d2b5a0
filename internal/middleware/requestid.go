package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type contextKey string

// RequestIDKey is the context key holding the request id.
const RequestIDKey contextKey = "requestID"

// WithRequestID assigns every request an id, reusing a well-formed one sent
// by the client, and echoes it in the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, InjectRequestID(r, id))
	})
}

// InjectRequestID returns a copy of r carrying id in its context.
func InjectRequestID(r *http.Request, id string) *http.Request {
	ctx := context.WithValue(r.Context(), RequestIDKey, id)
	return r.WithContext(ctx)
}

// RequestIDFromContext returns the request id stored in ctx, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

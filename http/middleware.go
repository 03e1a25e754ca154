package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

const (
	// FunctionsKeyHeader carries the API key.
	FunctionsKeyHeader = "x-functions-key"
	// FunctionsKeyQuery carries the API key when headers cannot be set.
	FunctionsKeyQuery = "code"
	// InvocationIDHeader echoes the id of every request.
	InvocationIDHeader = "X-Invocation-Id"
)

// KeyVerifier checks API keys and returns the name of the matching key.
type KeyVerifier interface {
	Verify(key string) (string, bool)
}

type invocationIDKey struct{}

// InvocationID returns the id assigned to the request by
// InvocationMiddleware, or "" outside of it.
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDKey{}).(string)
	return id
}

// InvocationMiddleware assigns a random id to every request, echoes it in
// the X-Invocation-Id header and logs the caller's user agent.
func InvocationMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(InvocationIDHeader, id)

		userAgent := r.UserAgent()
		if userAgent == "" {
			userAgent = "Unknown"
		}
		slog.Info("processing request",
			"invocation_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"user_agent", userAgent,
		)

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), invocationIDKey{}, id)))
	})
}

// AuthMiddleware creates middleware that requires a known API key in the
// x-functions-key header or the code query parameter.
// Pass nil for verifier to disable authentication (public access).
func AuthMiddleware(verifier KeyVerifier) func(http.Handler) http.Handler {
	if verifier == nil {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(FunctionsKeyHeader)
			if key == "" {
				key = r.URL.Query().Get(FunctionsKeyQuery)
			}

			name, ok := verifier.Verify(key)
			if !ok {
				HandleError(w, InvocationID(r.Context()), ErrUnauthorized)
				return
			}
			slog.Debug("api key accepted", "invocation_id", InvocationID(r.Context()), "key", name)

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"log/slog"
)

// TokenVerifier resolves a bearer credential to a principal email. The
// hosted identity provider sits behind this interface; the core never
// inspects credentials itself.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// AdminChecker decides whether a principal may perform admin-only
// operations. The decision is re-evaluated on every call because roles can
// change between requests.
type AdminChecker interface {
	RequireAdmin(ctx context.Context, email string) error
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","message":"%s"}`, code, message))
}

// RequireAuth rejects requests without a valid bearer credential and stores
// the resolved principal email in the request context.
func RequireAuth(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid Authorization header")
				return
			}

			email, err := verifier.Verify(ctx, token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(ctx, email)))
		})
	}
}

// RequireAdmin gates admin-only routes. It must run after RequireAuth.
func RequireAdmin(checker AdminChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			email := GetPrincipal(ctx)
			if email == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "no authenticated principal")
				return
			}
			if err := checker.RequireAdmin(ctx, email); err != nil {
				logger.WarnContext(ctx, "forbidden - admins only",
					"principal", email,
					"request_id", GetRequestID(ctx),
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "admins only")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package auth

import (
	"context"
	"net/http"
	"strings"

	"descrow/deal"
)

type contextKey struct{}

// CallerFromContext returns the authenticated caller stored by Middleware.
func CallerFromContext(ctx context.Context) (deal.Caller, bool) {
	caller, ok := ctx.Value(contextKey{}).(deal.Caller)
	return caller, ok
}

// Verifier is the token check Middleware depends on. Satisfied by *Service.
type Verifier interface {
	VerifyToken(tokenString string) (*Claims, error)
}

// Middleware extracts the bearer token, verifies it, and stores the caller
// identity in the request context. Requests without a valid token get 401.
func Middleware(verifier Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			caller := deal.Caller{
				Address: claims.Address,
				Arbiter: claims.Role == RoleArbiter,
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, caller)))
		})
	}
}

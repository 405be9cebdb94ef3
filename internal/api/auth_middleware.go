package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/sunbonsys/backend/internal/auth"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// RequireAdmin gates a route behind a bearer token. A missing or malformed
// Authorization header is unauthenticated (401); a header that is present but
// carries an invalid or expired token is forbidden (403).
func (api *Api) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, ReasonUnauthenticated)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			writeError(w, http.StatusUnauthorized, ReasonUnauthenticated)
			return
		}

		claims, err := api.tokens.Verify(parts[1])
		if err != nil {
			writeError(w, http.StatusForbidden, ReasonForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFromContext retrieves the verified admin identity set by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}

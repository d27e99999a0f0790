package httpx

import (
	"net/http"
	"strings"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/usecase"
)

// AuthMiddleware guards protected routes: it extracts the bearer token,
// verifies signature and expiry, and confirms the token's subject is still
// registered in the directory.
func AuthMiddleware(secret string, directory usecase.UserDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				JSONUnauthorized(w, "Not authenticated")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				JSONUnauthorized(w, "Could not validate credentials")
				return
			}

			// Catches tokens minted for subjects the directory no longer
			// knows (e.g. a server restart wiped the in-memory registry).
			ok, err := directory.Exists(r.Context(), claims.Sub)
			if err != nil {
				JSONInternalError(w)
				return
			}
			if !ok {
				JSONUnauthorized(w, "Could not validate credentials")
				return
			}

			next.ServeHTTP(w, RequestWithUsername(r, claims.Sub))
		})
	}
}

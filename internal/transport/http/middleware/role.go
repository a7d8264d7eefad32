package middleware

import (
	"net/http"
	"strings"
)

// RequireRole lets a request through only when its token carries one of
// roles. Mount it after Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	denied := "requires role " + strings.Join(roles, " or ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				writeJSONError(w, http.StatusForbidden, denied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

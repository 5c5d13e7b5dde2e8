package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/moodtrack/moodtrack/internal/api/respond"
	"github.com/moodtrack/moodtrack/internal/auth"
)

const (
	msgAuthHeaderRequired = "Authorization header required"
	msgInvalidToken       = "Invalid token"
)

// Auth resolves the bearer token before any validation or business logic
// runs. A missing header and a bad token are distinct 401s.
func Auth(authn auth.Authenticator) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Unauthorized(w, msgAuthHeaderRequired)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header || token == "" {
				respond.Unauthorized(w, msgInvalidToken)
				return
			}

			id, err := authn.ValidateToken(r.Context(), token)
			if err != nil {
				respond.Unauthorized(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/delcom/catalog/internal/api/response"
	"github.com/delcom/catalog/internal/apperr"
	"github.com/delcom/catalog/internal/auth"
)

// APIKeyHeader is the header checked by RequireAPIKey.
const APIKeyHeader = "X-API-Key"

// RequireAPIKey is middleware that rejects requests whose X-API-Key does not
// match the bcrypt hash. An empty hash disables the check.
func RequireAPIKey(hash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawKey := r.Header.Get(APIKeyHeader)
			if rawKey == "" {
				response.Err(w, r, apperr.NewUnauthorized("API key wajib disertakan!"))
				return
			}

			if err := auth.Verify(hash, rawKey); err != nil {
				response.Err(w, r, apperr.NewUnauthorized("API key tidak valid!"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

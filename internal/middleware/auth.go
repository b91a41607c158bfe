package middleware

import (
	"net/http"
	"strings"

	"github.com/josh-kwaku/palpay/internal/auth"
	"github.com/josh-kwaku/palpay/internal/handler"
	"github.com/josh-kwaku/palpay/internal/logging"
)

type tokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid bearer token and tags the request
// logger with the caller.
func Auth(tokens tokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				logging.FromContext(r.Context()).Debug("token rejected", "error", err)
				handler.RespondAppError(w, handler.ErrInvalidToken, nil)
				return
			}

			ctx := auth.ContextWithClaims(r.Context(), claims)
			ctx = logging.With(ctx, "user_id", claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

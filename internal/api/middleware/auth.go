package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/geezit/geezit-server/internal/apperrors"
	"github.com/geezit/geezit-server/internal/auth"
	"github.com/geezit/geezit-server/internal/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth answers 401 when no bearer token is sent and 403 when the
// token fails verification.
func RequireAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r.Header.Get("Authorization"))
			if tokenStr == "" {
				utils.ErrorResponse(w, http.StatusUnauthorized, apperrors.PublicMessage(apperrors.ErrAuthMissing))
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				utils.ErrorResponse(w, http.StatusForbidden, apperrors.PublicMessage(apperrors.ErrAuthInvalid))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"juice-store/internal/logger"
	"juice-store/internal/service"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AccessTokenCookie is the canonical token source; the Authorization
// header remains accepted as a legacy variant.
const AccessTokenCookie = "accessToken"

// Localized rejection messages, kept verbatim for the original client
const (
	MsgAccessDenied = "Acesso negado!"
	MsgTokenExpired = "Token expirado!"
	MsgTokenInvalid = "Token inválido!"
)

// AuthMiddleware gates protected routes on a valid access token. It
// looks for a Bearer token in the Authorization header first, then
// falls back to the accessToken cookie.
func AuthMiddleware(tokens *service.TokenService, audit *logger.Audit) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenString string

			authHeader := r.Header.Get("Authorization")
			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenString = parts[1]
				}
			}

			if tokenString == "" {
				if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
					tokenString = cookie.Value
				}
			}

			if tokenString == "" {
				audit.Failure("Check token", "no access token in header or cookie")
				RespondWithMessage(w, http.StatusUnauthorized, MsgAccessDenied)
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrTokenExpired):
					audit.Failure("Check token", "access token expired")
					RespondWithMessage(w, http.StatusUnauthorized, MsgTokenExpired)
				case errors.Is(err, service.ErrInvalidToken):
					audit.Failure("Check token", "access token invalid")
					RespondWithMessage(w, http.StatusUnauthorized, MsgTokenInvalid)
				default:
					audit.Error("Check token", err)
					RespondWithServerError(w)
				}
				return
			}

			audit.Success("Check token", "access token verified for user "+claims.UserID)

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user's id from the context
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

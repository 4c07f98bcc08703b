package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Varun5711/bookmarkd/internal/auth"
	"github.com/Varun5711/bookmarkd/internal/logger"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// AuthMiddleware verifies bearer tokens locally; no store lookup happens here.
type AuthMiddleware struct {
	tokens *auth.JWTManager
	log    *logger.Logger
}

func NewAuthMiddleware(tokens *auth.JWTManager, log *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		log:    log,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}

		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}

		claims, err := m.tokens.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			m.log.Debug("Rejected token: %v", err)
			writeError(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
			return
		}

		ctx := WithUserID(r.Context(), claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok && userID > 0
}

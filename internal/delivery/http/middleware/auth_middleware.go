package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-hospital-booking/internal/domain/entity"
	"go-hospital-booking/pkg/apperror"
	"go-hospital-booking/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserKey  contextKey = "user"
	TokenKey contextKey = "token"
)

// TokenVerifier resolves a bearer token to the identity it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entity.User, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	log      *logrus.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		log:      log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Access denied. No token provided.")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}
		tokenString := parts[1]

		user, err := m.verifier.VerifyToken(r.Context(), tokenString)
		if err != nil {
			switch apperror.KindOf(err) {
			case apperror.KindAuth:
				response.Unauthorized(w, "Invalid or expired token")
			case apperror.KindNotFound:
				response.NotFound(w, "User not found")
			default:
				m.log.WithError(err).Error("Failed to verify token")
				response.InternalServerError(w, "Failed to validate token")
			}
			return
		}

		// Add identity to context
		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, TokenKey, tokenString)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext extracts the authenticated identity from context
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}

// GetTokenFromContext extracts the raw bearer token from context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(TokenKey).(string)
	return token, ok
}

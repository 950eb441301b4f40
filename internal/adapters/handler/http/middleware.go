package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

type contextKey string

// Context keys for the authenticated caller.
const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
)

// AuthMiddleware validates access tokens and loads the caller identity into
// the request context. Tokens are read from the access_token cookie or from
// an Authorization: Bearer header.
type AuthMiddleware struct {
	jwtSecret []byte
	logger    *slog.Logger
}

func NewAuthMiddleware(jwtSecret string, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
}

// Authenticate attaches the caller identity when a valid token is present and
// always lets the request through. Handlers serving publicity-gated content
// use this so anonymous access still works.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := m.callerFromRequest(r)
		if err == nil && caller != nil {
			ctx := context.WithValue(r.Context(), UserIDKey, caller.ID)
			ctx = context.WithValue(ctx, UserEmailKey, caller.Email)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests without a valid access token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, err := m.callerFromRequest(r)
		if err != nil || caller == nil {
			if err != nil {
				m.logger.Warn("unauthorized request", "error", err)
			}
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, caller.ID)
		ctx = context.WithValue(ctx, UserEmailKey, caller.Email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) callerFromRequest(r *http.Request) (*ports.AuthenticatedUser, error) {
	tokenString := ""
	if cookie, err := r.Cookie("access_token"); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		const bearerPrefix = "Bearer "
		if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix); ok {
			tokenString = after
		}
	}
	if tokenString == "" {
		return nil, nil
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("invalid sub claim")
	}
	email, _ := claims["email"].(string)

	return &ports.AuthenticatedUser{ID: userID, Email: email}, nil
}

// callerFromContext returns the authenticated caller, or nil for anonymous
// requests.
func callerFromContext(ctx context.Context) *ports.AuthenticatedUser {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok {
		return nil
	}
	email, _ := ctx.Value(UserEmailKey).(string)
	return &ports.AuthenticatedUser{ID: userID, Email: email}
}

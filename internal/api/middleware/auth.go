package middleware

import (
	"context"
	"net/http"

	"cublex/internal/app/service"
	"cublex/internal/common"
	"cublex/internal/common/security"
	"cublex/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	SessionTokenCtxKey contextKey = "sessionToken"
	UserCtxKey         contextKey = "sessionUser"
)

// SessionToken lifts the opaque session token out of the verified envelope
// that jwtauth.Verify placed in the context. Missing or invalid envelopes
// leave the request anonymous; rejecting them is up to the guards.
func SessionToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			next.ServeHTTP(w, r)
			return
		}
		sid, err := security.GetSessionIDFromClaims(claims)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), SessionTokenCtxKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuthenticated rejects requests without a live session.
func RequireAuthenticated(guard *service.Guard, logger zerolog.Logger) func(http.Handler) http.Handler {
	return guardWith(logger, func(ctx context.Context, token string) (*model.SessionUser, error) {
		return guard.RequireAuthenticated(ctx, token)
	})
}

// RequireRole rejects requests whose session does not carry role.
func RequireRole(guard *service.Guard, role model.Role, logger zerolog.Logger) func(http.Handler) http.Handler {
	return guardWith(logger, func(ctx context.Context, token string) (*model.SessionUser, error) {
		return guard.RequireRole(ctx, token, role)
	})
}

func guardWith(logger zerolog.Logger, check func(ctx context.Context, token string) (*model.SessionUser, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := check(r.Context(), SessionTokenFromContext(r.Context()))
			if err != nil {
				common.RespondWithDomainError(w, logger, err)
				return
			}
			ctx := context.WithValue(r.Context(), UserCtxKey, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionTokenFromContext returns the caller's session token, or "" when anonymous.
func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(SessionTokenCtxKey).(string)
	return token
}

// UserFromContext returns the identity admitted by a guard.
func UserFromContext(ctx context.Context) (model.SessionUser, bool) {
	user, ok := ctx.Value(UserCtxKey).(model.SessionUser)
	return user, ok
}

package middlewares

import (
	"context"
	"errors"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token to a user and rejects the request
// when the token is missing, invalid, revoked or belongs to a deleted user.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := utils.ExtractBearerToken(r)
		if token == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), m.requestTimeout())
		defer cancel()

		user, err := m.AuthUsecase.Authenticate(ctx, token)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerDeadlineExceeded(err))
				return
			}
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withAuthenticatedUser(r.Context(), user, token)))
	})
}

// OptionalAuthenticate attaches the user when a valid token is presented and
// lets the request through anonymously otherwise.
func (m *Middlewares) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := utils.ExtractBearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), m.requestTimeout())
		defer cancel()

		user, err := m.AuthUsecase.Authenticate(ctx, token)
		if err != nil {
			m.Log.Debug("Middlewares.OptionalAuthenticate continuing anonymously",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.Error(err),
			)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withAuthenticatedUser(r.Context(), user, token)))
	})
}

// RequirePermission must run after Authenticate.
func (m *Middlewares) RequirePermission(operation string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := r.Context().Value(constvars.CONTEXT_AUTHENTICATED_USER_KEY).(*models.User)

			err := m.Guard.Authorize(user, operation)
			if err != nil {
				role := ""
				if user != nil {
					role = user.Role
				}
				m.Log.Warn("Middlewares.RequirePermission denied",
					zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
					zap.String(constvars.LoggingRoleKey, role),
					zap.String(constvars.LoggingOperationKey, operation),
				)
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func withAuthenticatedUser(ctx context.Context, user *models.User, token string) context.Context {
	ctx = context.WithValue(ctx, constvars.CONTEXT_AUTHENTICATED_USER_KEY, user)
	return context.WithValue(ctx, constvars.CONTEXT_ACCESS_TOKEN_KEY, token)
}

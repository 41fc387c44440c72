package controllers

import (
	"context"
	"errors"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultUsecaseTimeout = 10 * time.Second

func usecaseTimeout(internalConfig *config.InternalConfig) time.Duration {
	if internalConfig == nil || internalConfig.App.RequestTimeoutInSeconds <= 0 {
		return defaultUsecaseTimeout
	}
	return time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
}

// authenticatedUser is nil on routes without Authenticate or when
// OptionalAuthenticate found no valid token.
func authenticatedUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(constvars.CONTEXT_AUTHENTICATED_USER_KEY).(*models.User)
	return user
}

func accessToken(r *http.Request) string {
	token, _ := r.Context().Value(constvars.CONTEXT_ACCESS_TOKEN_KEY).(string)
	return token
}

func uuidURLParam(r *http.Request, paramName string) (string, error) {
	value := chi.URLParam(r, paramName)
	err := utils.ValidateUUID(value)
	if err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, paramName)
	}
	return value, nil
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

package middlewares

import (
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"time"

	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

type Middlewares struct {
	Log            *zap.Logger
	AuthUsecase    contracts.AuthUsecase
	Guard          contracts.AuthorizationGuard
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, authUsecase contracts.AuthUsecase, guard contracts.AuthorizationGuard, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		AuthUsecase:    authUsecase,
		Guard:          guard,
		InternalConfig: internalConfig,
	}
}

func (m *Middlewares) requestTimeout() time.Duration {
	if m.InternalConfig == nil || m.InternalConfig.App.RequestTimeoutInSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(m.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
}

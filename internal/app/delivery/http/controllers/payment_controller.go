package controllers

import (
	"context"
	"crypto/subtle"
	"io"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
	InternalConfig *config.InternalConfig
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase, internalConfig *config.InternalConfig) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
		InternalConfig: internalConfig,
	}
}

// Callback receives the provider's settlement notification. When a callback
// token is configured the callback URL must carry it as ?token=.
func (ctrl *PaymentController) Callback(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("PaymentController.Callback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
	)

	expectedToken := ctrl.InternalConfig.Daraja.CallbackToken
	if expectedToken != "" {
		presented := r.URL.Query().Get(constvars.QueryParamCallbackToken)
		if subtle.ConstantTimeCompare([]byte(presented), []byte(expectedToken)) != 1 {
			ctrl.Log.Warn("PaymentController.Callback rejected callback with bad token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
			)
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrUnauthorizedSubject(nil))
			return
		}
	}

	rawPayload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Settlement outlives a provider that hangs up early.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	ack := ctrl.PaymentUsecase.HandleCallback(ctx, rawPayload)
	utils.BuildRawJSONResponse(w, constvars.StatusOK, ack)
}

package controllers

import (
	"context"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConsultationServiceController struct {
	Log                        *zap.Logger
	ConsultationServiceUsecase contracts.ConsultationServiceUsecase
	InternalConfig             *config.InternalConfig
}

func NewConsultationServiceController(logger *zap.Logger, consultationServiceUsecase contracts.ConsultationServiceUsecase, internalConfig *config.InternalConfig) *ConsultationServiceController {
	return &ConsultationServiceController{
		Log:                        logger,
		ConsultationServiceUsecase: consultationServiceUsecase,
		InternalConfig:             internalConfig,
	}
}

func (ctrl *ConsultationServiceController) ListServices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ConsultationServiceUsecase.ListServices(ctx)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetServicesSuccessMessage, result)
}

func (ctrl *ConsultationServiceController) CreateService(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ConsultationServiceController.CreateService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateConsultationService)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreateConsultationServiceRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ConsultationServiceUsecase.CreateService(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateServiceSuccessMessage, result)
}

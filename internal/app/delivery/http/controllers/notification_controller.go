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

type NotificationController struct {
	Log                 *zap.Logger
	NotificationUsecase contracts.NotificationUsecase
	InternalConfig      *config.InternalConfig
}

func NewNotificationController(logger *zap.Logger, notificationUsecase contracts.NotificationUsecase, internalConfig *config.InternalConfig) *NotificationController {
	return &NotificationController{
		Log:                 logger,
		NotificationUsecase: notificationUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *NotificationController) CreateNotification(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateNotification)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeCreateNotificationRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.NotificationUsecase.CreateNotification(ctx, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateNotificationSuccess, result)
}

func (ctrl *NotificationController) ListNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.NotificationUsecase.ListFor(ctx, authenticatedUser(r))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetNotificationsSuccessMessage, result)
}

func (ctrl *NotificationController) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := uuidURLParam(r, constvars.URLParamNotificationID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	err = ctrl.NotificationUsecase.MarkRead(ctx, authenticatedUser(r), notificationID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.MarkNotificationReadSuccess, nil)
}

package notifications

import (
	"context"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type notificationUsecase struct {
	NotificationRepository contracts.NotificationRepository
	UserRepository         contracts.UserRepository
	Log                    *zap.Logger
}

func NewNotificationUsecase(
	notificationRepository contracts.NotificationRepository,
	userRepository contracts.UserRepository,
	logger *zap.Logger,
) contracts.NotificationUsecase {
	return &notificationUsecase{
		NotificationRepository: notificationRepository,
		UserRepository:         userRepository,
		Log:                    logger,
	}
}

// Notify stores one notification. A nil target makes it a broadcast.
func (uc *notificationUsecase) Notify(ctx context.Context, targetUserID *string, message, category string) (*models.Notification, error) {
	if category == "" {
		category = constvars.NotificationCategoryGeneral
	}

	created, err := uc.NotificationRepository.Create(ctx, &models.Notification{
		TargetUserID: targetUserID,
		Message:      message,
		Category:     category,
	})
	if err != nil {
		uc.Log.Error("notificationUsecase.Notify error creating notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}
	return created, nil
}

func (uc *notificationUsecase) NotifyMany(ctx context.Context, targetUserIDs []string, message, category string) error {
	for i := range targetUserIDs {
		target := targetUserIDs[i]
		_, err := uc.Notify(ctx, &target, message, category)
		if err != nil {
			return err
		}
	}
	return nil
}

func (uc *notificationUsecase) NotifyAdministrators(ctx context.Context, message, category string) error {
	administrators, err := uc.UserRepository.FindByRole(ctx, constvars.RoleAdministrator)
	if err != nil {
		return err
	}

	targets := make([]string, 0, len(administrators))
	for _, administrator := range administrators {
		targets = append(targets, administrator.ID)
	}

	uc.Log.Info("notificationUsecase.NotifyAdministrators fan-out",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingCountKey, len(targets)),
	)
	return uc.NotifyMany(ctx, targets, message, category)
}

func (uc *notificationUsecase) CreateNotification(ctx context.Context, request *requests.CreateNotification) (*responses.Notification, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.CreateNotification called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if request.TargetUserID != nil {
		target, err := uc.UserRepository.FindByID(ctx, *request.TargetUserID)
		if err != nil {
			return nil, err
		}
		if target == nil {
			return nil, exceptions.ErrNotFound(nil, "target user")
		}
	}

	created, err := uc.Notify(ctx, request.TargetUserID, request.Message, request.Category)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("notificationUsecase.CreateNotification succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, created.ID),
	)
	response := toNotificationResponse(created)
	return &response, nil
}

func (uc *notificationUsecase) ListFor(ctx context.Context, user *models.User) ([]responses.Notification, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.ListFor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)

	notifications, err := uc.NotificationRepository.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	result := make([]responses.Notification, 0, len(notifications))
	for i := range notifications {
		result = append(result, toNotificationResponse(&notifications[i]))
	}
	return result, nil
}

// MarkRead hides rows addressed to someone else behind NotFound. A broadcast
// is marked read for the caller only.
func (uc *notificationUsecase) MarkRead(ctx context.Context, user *models.User, notificationID string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("notificationUsecase.MarkRead called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingNotificationIDKey, notificationID),
	)

	notification, err := uc.NotificationRepository.FindByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil || !notification.IsVisibleTo(user.ID) {
		return exceptions.ErrNotFound(nil, "notification")
	}
	if notification.TargetUserID == nil {
		return uc.NotificationRepository.MarkBroadcastRead(ctx, notificationID, user.ID)
	}
	if notification.IsRead {
		return nil
	}
	return uc.NotificationRepository.MarkRead(ctx, notificationID)
}

func toNotificationResponse(notification *models.Notification) responses.Notification {
	return responses.Notification{
		NotificationID: notification.ID,
		TargetUserID:   notification.TargetUserID,
		Message:        notification.Message,
		Category:       notification.Category,
		IsRead:         notification.IsRead,
		CreatedAt:      notification.CreatedAt,
	}
}

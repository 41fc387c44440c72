package contracts

import (
	"context"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	FindByID(ctx context.Context, notificationID string) (*models.Notification, error)
	ListForUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, notificationID string) error
	// MarkBroadcastRead records a per-user receipt; repeated calls are no-ops.
	MarkBroadcastRead(ctx context.Context, notificationID, userID string) error
}

type NotificationUsecase interface {
	Notify(ctx context.Context, targetUserID *string, message, category string) (*models.Notification, error)
	// NotifyMany creates one targeted notification per user and stops at the first failure.
	NotifyMany(ctx context.Context, targetUserIDs []string, message, category string) error
	NotifyAdministrators(ctx context.Context, message, category string) error
	CreateNotification(ctx context.Context, request *requests.CreateNotification) (*responses.Notification, error)
	ListFor(ctx context.Context, user *models.User) ([]responses.Notification, error)
	MarkRead(ctx context.Context, user *models.User, notificationID string) error
}

package notifications

import (
	"context"
	"database/sql"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/drivers/database"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/queries"
	"medconsult-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type notificationPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewNotificationPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.NotificationRepository {
	return &notificationPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *notificationPostgresRepository) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.CreateNotification,
		notification.TargetUserID, notification.Message, notification.Category,
	)
	created, err := scanNotification(row)
	if err != nil {
		r.Log.Error("notificationPostgresRepository.Create error inserting notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return created, nil
}

func (r *notificationPostgresRepository) FindByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.GetNotificationByID, notificationID)
	notification, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return notification, nil
}

func (r *notificationPostgresRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := database.Conn(ctx, r.DB).QueryContext(ctx, queries.ListNotificationsForUser, userID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notification, err := scanNotification(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		notifications = append(notifications, *notification)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return notifications, nil
}

func (r *notificationPostgresRepository) MarkRead(ctx context.Context, notificationID string) error {
	_, err := database.Conn(ctx, r.DB).ExecContext(ctx, queries.MarkNotificationRead, notificationID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *notificationPostgresRepository) MarkBroadcastRead(ctx context.Context, notificationID, userID string) error {
	_, err := database.Conn(ctx, r.DB).ExecContext(ctx, queries.MarkBroadcastRead, notificationID, userID)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*models.Notification, error) {
	var notification models.Notification
	err := row.Scan(
		&notification.ID,
		&notification.TargetUserID,
		&notification.Message,
		&notification.Category,
		&notification.IsRead,
		&notification.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

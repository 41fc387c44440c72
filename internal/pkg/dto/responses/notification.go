package responses

import "time"

type Notification struct {
	NotificationID string    `json:"notification_id"`
	TargetUserID   *string   `json:"target_user_id"`
	Message        string    `json:"message"`
	Category       string    `json:"category"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}

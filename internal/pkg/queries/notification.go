package queries

const (
	notificationColumns = `id, target_user_id, message, category, is_read, created_at`

	CreateNotification = `
		INSERT INTO notifications (target_user_id, message, category, is_read, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING ` + notificationColumns

	GetNotificationByID = `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1`

	// Broadcasts (NULL target) are visible to everyone; their read state comes
	// from the caller's receipt rather than the shared is_read column.
	ListNotificationsForUser = `
		SELECT n.id, n.target_user_id, n.message, n.category,
		       CASE WHEN n.target_user_id IS NULL THEN r.user_id IS NOT NULL ELSE n.is_read END,
		       n.created_at
		FROM notifications n
		LEFT JOIN notification_reads r ON r.notification_id = n.id AND r.user_id = $1
		WHERE n.target_user_id = $1 OR n.target_user_id IS NULL
		ORDER BY n.created_at DESC, n.id DESC`

	MarkNotificationRead = `UPDATE notifications SET is_read = TRUE WHERE id = $1`

	MarkBroadcastRead = `
		INSERT INTO notification_reads (notification_id, user_id, read_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (notification_id, user_id) DO NOTHING`
)

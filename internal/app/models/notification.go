package models

import "time"

// Notification with a nil TargetUserID is a broadcast visible to every user.
type Notification struct {
	ID           string
	TargetUserID *string
	Message      string
	Category     string
	IsRead       bool
	CreatedAt    time.Time
}

func (n *Notification) IsVisibleTo(userID string) bool {
	return n.TargetUserID == nil || *n.TargetUserID == userID
}

package models

import "time"

// Passcode is a one-time code bound to a user and a delivery channel.
// Only a keyed digest of the code is stored. Rows are never deleted;
// consumption is recorded in place.
type Passcode struct {
	ID         string
	UserID     string
	CodeHash   string
	Channel    string
	ExpiresAt  time.Time
	Consumed   bool
	ConsumedAt *time.Time
	CreatedAt  time.Time
}

package migration

import "time"

type MigrationStatus struct {
	ID        string
	AppliedAt *time.Time
}

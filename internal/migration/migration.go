package migration

import (
	"database/sql"
	"embed"
	"time"

	migrate "github.com/rubenv/sql-migrate"
)

const dialect = "postgres"

//go:embed *.sql
var files embed.FS

func source() migrate.MigrationSource {
	return &migrate.EmbedFileSystemMigrationSource{
		FileSystem: files,
		Root:       ".",
	}
}

// Up applies every pending migration and returns how many ran.
func Up(db *sql.DB) (int, error) {
	return migrate.Exec(db, dialect, source(), migrate.Up)
}

// Down rolls back at most steps migrations.
func Down(db *sql.DB, steps int) (int, error) {
	return migrate.ExecMax(db, dialect, source(), migrate.Down, steps)
}

// Status lists every known migration; AppliedAt is nil for pending ones.
func Status(db *sql.DB) ([]MigrationStatus, error) {
	migrations, err := source().FindMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := migrate.GetMigrationRecords(db, dialect)
	if err != nil {
		return nil, err
	}

	appliedAt := make(map[string]time.Time, len(applied))
	for _, record := range applied {
		appliedAt[record.Id] = record.AppliedAt
	}

	statuses := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		status := MigrationStatus{ID: m.Id}
		if at, ok := appliedAt[m.Id]; ok {
			at := at
			status.AppliedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

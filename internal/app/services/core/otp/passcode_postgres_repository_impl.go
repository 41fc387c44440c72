package otp

import (
	"context"
	"database/sql"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/drivers/database"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/queries"
	"time"

	"go.uber.org/zap"
)

type passcodePostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPasscodePostgresRepository(db *sql.DB, logger *zap.Logger) contracts.PasscodeRepository {
	return &passcodePostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *passcodePostgresRepository) Create(ctx context.Context, passcode *models.Passcode) (*models.Passcode, error) {
	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.CreatePasscode,
		passcode.UserID, passcode.CodeHash, passcode.Channel, passcode.ExpiresAt, passcode.CreatedAt,
	)
	created, err := scanPasscode(row)
	if err != nil {
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return created, nil
}

func (r *passcodePostgresRepository) Consume(ctx context.Context, userID, channel, codeHash string, now time.Time) (*models.Passcode, error) {
	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.ConsumePasscode, userID, channel, codeHash, now)
	consumed, err := scanPasscode(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return consumed, nil
}

func scanPasscode(row *sql.Row) (*models.Passcode, error) {
	var passcode models.Passcode
	err := row.Scan(
		&passcode.ID,
		&passcode.UserID,
		&passcode.CodeHash,
		&passcode.Channel,
		&passcode.ExpiresAt,
		&passcode.Consumed,
		&passcode.ConsumedAt,
		&passcode.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &passcode, nil
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/drivers/database"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/queries"
	"medconsult-service/internal/pkg/utils"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	pqUniqueViolation       = "23505"
	constraintUsersEmailKey = "users_email_key"
	constraintUsersPhoneKey = "users_phone_key"
)

type userPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewUserPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.UserRepository {
	return &userPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *userPostgresRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	requestID := utils.GetRequestID(ctx)

	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.CreateUser,
		user.Name, user.Email, user.Phone, user.PasswordHash, user.IsVerified, user.Role,
	)
	created, err := scanUser(row)
	if err != nil {
		r.Log.Error("userPostgresRepository.CreateUser error inserting user",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if conflict := mapUniqueViolation(err); conflict != nil {
			return nil, conflict
		}
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}

	r.Log.Info("userPostgresRepository.CreateUser succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, created.ID),
	)
	return created, nil
}

func (r *userPostgresRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	return r.findOne(ctx, queries.GetUserByID, userID)
}

func (r *userPostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, queries.GetUserByEmail, email)
}

func (r *userPostgresRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.findOne(ctx, queries.GetUserByPhone, phone)
}

func (r *userPostgresRepository) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	rows, err := database.Conn(ctx, r.DB).QueryContext(ctx, queries.GetUsersByRole, role)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return users, nil
}

func (r *userPostgresRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.CountUsersByRole, role).Scan(&count)
	if err != nil {
		return 0, exceptions.ErrPostgresDBFindData(err)
	}
	return count, nil
}

func (r *userPostgresRepository) UpdateProfile(ctx context.Context, userID string, name *string, phone string) (*models.User, error) {
	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.UpdateUserProfile, userID, name, phone)
	updated, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		if conflict := mapUniqueViolation(err); conflict != nil {
			return nil, conflict
		}
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return updated, nil
}

func (r *userPostgresRepository) MarkVerified(ctx context.Context, userID string) error {
	_, err := database.Conn(ctx, r.DB).ExecContext(ctx, queries.MarkUserVerified, userID)
	if err != nil {
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// LockBootstrapAdministrator must run inside a transaction; the advisory
// lock is released when it ends.
func (r *userPostgresRepository) LockBootstrapAdministrator(ctx context.Context) error {
	_, err := database.Conn(ctx, r.DB).ExecContext(ctx, queries.AcquireBootstrapAdministratorLock)
	if err != nil {
		return exceptions.ErrPostgresDBFindData(err)
	}
	return nil
}

func (r *userPostgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	user, err := scanUser(database.Conn(ctx, r.DB).QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		r.Log.Error("userPostgresRepository.findOne error scanning user",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.PasswordHash,
		&user.IsVerified,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// mapUniqueViolation turns a lost race on the email or phone constraint into
// the same conflict the pre-checks return.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
		return nil
	}
	switch pqErr.Constraint {
	case constraintUsersEmailKey:
		return exceptions.ErrEmailAlreadyExist(err)
	case constraintUsersPhoneKey:
		return exceptions.ErrPhoneAlreadyExist(err)
	default:
		return exceptions.ErrEmailAlreadyExist(err)
	}
}

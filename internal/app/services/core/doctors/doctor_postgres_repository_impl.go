package doctors

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

type doctorPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewDoctorPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.DoctorRepository {
	return &doctorPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *doctorPostgresRepository) Create(ctx context.Context, profile *models.DoctorProfile) (string, error) {
	var doctorID string
	err := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.CreateDoctorProfile,
		profile.UserID, profile.Email, profile.Specialty, profile.Gender,
	).Scan(&doctorID)
	if err != nil {
		r.Log.Error("doctorPostgresRepository.Create error inserting doctor profile",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingUserIDKey, profile.UserID),
			zap.Error(err),
		)
		return "", exceptions.ErrPostgresDBInsertData(err)
	}
	return doctorID, nil
}

func (r *doctorPostgresRepository) FindByID(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	return r.findOne(ctx, queries.GetDoctorProfileByID, doctorID)
}

func (r *doctorPostgresRepository) FindByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error) {
	return r.findOne(ctx, queries.GetDoctorProfileByUserID, userID)
}

func (r *doctorPostgresRepository) List(ctx context.Context, filter contracts.DoctorListFilter) ([]models.DoctorProfile, error) {
	return r.findMany(ctx, queries.ListDoctorProfiles, filter.OnlyApproved, filter.Specialty)
}

func (r *doctorPostgresRepository) ListByStatus(ctx context.Context, status string) ([]models.DoctorProfile, error) {
	return r.findMany(ctx, queries.ListDoctorProfilesByStatus, status)
}

func (r *doctorPostgresRepository) Submit(ctx context.Context, profile *models.DoctorProfile) error {
	_, err := database.Conn(ctx, r.DB).ExecContext(ctx, queries.SubmitDoctorProfile,
		profile.ID,
		profile.Qualifications,
		profile.LicenceID,
		profile.EvidenceRef,
		profile.EvidenceURL,
		profile.Specialty,
		profile.Gender,
	)
	if err != nil {
		r.Log.Error("doctorPostgresRepository.Submit error updating doctor profile",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingDoctorIDKey, profile.ID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

// Decide writes approval_status and approved together; the table CHECK keeps them consistent.
func (r *doctorPostgresRepository) Decide(ctx context.Context, profile *models.DoctorProfile) error {
	_, err := database.Conn(ctx, r.DB).ExecContext(ctx, queries.DecideDoctorApproval,
		profile.ID,
		profile.ApprovalStatus,
		profile.Approved,
		profile.ApprovalNotes,
		profile.ReviewedBy,
	)
	if err != nil {
		r.Log.Error("doctorPostgresRepository.Decide error updating approval",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingDoctorIDKey, profile.ID),
			zap.Error(err),
		)
		return exceptions.ErrPostgresDBUpdateData(err)
	}
	return nil
}

func (r *doctorPostgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.DoctorProfile, error) {
	profile, err := scanDoctorProfile(database.Conn(ctx, r.DB).QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return profile, nil
}

func (r *doctorPostgresRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.DoctorProfile, error) {
	rows, err := database.Conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var profiles []models.DoctorProfile
	for rows.Next() {
		profile, err := scanDoctorProfile(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		profiles = append(profiles, *profile)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDoctorProfile(row rowScanner) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Email,
		&profile.Name,
		&profile.Specialty,
		&profile.Gender,
		&profile.Qualifications,
		&profile.LicenceID,
		&profile.EvidenceRef,
		&profile.EvidenceURL,
		&profile.ApprovalStatus,
		&profile.ApprovalNotes,
		&profile.Approved,
		&profile.ReviewedBy,
		&profile.ReviewedAt,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

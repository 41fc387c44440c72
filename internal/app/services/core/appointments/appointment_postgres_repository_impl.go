package appointments

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
	"time"

	"go.uber.org/zap"
)

type appointmentPostgresRepository struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewAppointmentPostgresRepository(db *sql.DB, logger *zap.Logger) contracts.AppointmentRepository {
	return &appointmentPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *appointmentPostgresRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.CreateAppointment,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.ServiceID,
		appointment.Gender,
		appointment.Symptoms,
		appointment.Details,
		appointment.FeeAmount,
	)
	created, err := scanAppointment(row)
	if err != nil {
		r.Log.Error("appointmentPostgresRepository.Create error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, exceptions.ErrPostgresDBInsertData(err)
	}
	return created, nil
}

func (r *appointmentPostgresRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return r.findOne(ctx, queries.GetAppointmentByID, appointmentID)
}

func (r *appointmentPostgresRepository) FindByPaymentReference(ctx context.Context, reference string) (*models.Appointment, error) {
	return r.findOne(ctx, queries.GetAppointmentByPaymentReference, reference)
}

func (r *appointmentPostgresRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.findMany(ctx, queries.ListAppointmentsByPatient, patientID)
}

func (r *appointmentPostgresRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.findMany(ctx, queries.ListAppointmentsByDoctor, doctorID)
}

func (r *appointmentPostgresRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return r.findMany(ctx, queries.ListAllAppointments)
}

func (r *appointmentPostgresRepository) ListAwaitingSettlement(ctx context.Context, requestedBefore time.Time, limit int) ([]models.Appointment, error) {
	return r.findMany(ctx, queries.ListAwaitingSettlement, requestedBefore, limit)
}

func (r *appointmentPostgresRepository) UpdatePaymentStatusFromPending(ctx context.Context, appointmentID, status string, message *string) (bool, error) {
	return r.execAffectingOne(ctx, queries.UpdatePaymentStatusFromPending, appointmentID, status, message)
}

// RecordPaymentRequest stores an empty reference as NULL so the partial
// unique index only covers real checkout ids.
func (r *appointmentPostgresRepository) RecordPaymentRequest(ctx context.Context, appointmentID, reference, payerPhone string, message *string) (bool, error) {
	storedReference := sql.NullString{String: reference, Valid: reference != ""}
	return r.execAffectingOne(ctx, queries.RecordPaymentRequest, appointmentID, storedReference, payerPhone, message)
}

func (r *appointmentPostgresRepository) AssignDoctor(ctx context.Context, appointmentID, doctorID, assignedBy string) (*models.Appointment, error) {
	row := database.Conn(ctx, r.DB).QueryRowContext(ctx, queries.AssignAppointmentDoctor, appointmentID, doctorID, assignedBy)
	updated, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBUpdateData(err)
	}
	return updated, nil
}

func (r *appointmentPostgresRepository) execAffectingOne(ctx context.Context, query string, args ...interface{}) (bool, error) {
	result, err := database.Conn(ctx, r.DB).ExecContext(ctx, query, args...)
	if err != nil {
		r.Log.Error("appointmentPostgresRepository.execAffectingOne error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return affected == 1, nil
}

func (r *appointmentPostgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*models.Appointment, error) {
	appointment, err := scanAppointment(database.Conn(ctx, r.DB).QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return appointment, nil
}

func (r *appointmentPostgresRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.Appointment, error) {
	rows, err := database.Conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var appointments []models.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		appointments = append(appointments, *appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*models.Appointment, error) {
	var appointment models.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.DoctorID,
		&appointment.ServiceID,
		&appointment.Gender,
		&appointment.Symptoms,
		&appointment.Details,
		&appointment.Status,
		&appointment.PaymentStatus,
		&appointment.FeeAmount,
		&appointment.PaymentReference,
		&appointment.PayerPhone,
		&appointment.PaymentMessage,
		&appointment.PaymentRequested,
		&appointment.AssignedBy,
		&appointment.AssignedAt,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

package contracts

import (
	"context"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"time"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	FindByPaymentReference(ctx context.Context, reference string) (*models.Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	ListAwaitingSettlement(ctx context.Context, requestedBefore time.Time, limit int) ([]models.Appointment, error)
	// UpdatePaymentStatusFromPending reports false when the row was no longer pending.
	UpdatePaymentStatusFromPending(ctx context.Context, appointmentID, status string, message *string) (bool, error)
	RecordPaymentRequest(ctx context.Context, appointmentID, reference, payerPhone string, message *string) (bool, error)
	AssignDoctor(ctx context.Context, appointmentID, doctorID, assignedBy string) (*models.Appointment, error)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, patient *models.User, request *requests.CreateAppointment) (*responses.Appointment, error)
	ListAppointments(ctx context.Context, caller *models.User) ([]responses.Appointment, error)
	AssignDoctor(ctx context.Context, admin *models.User, appointmentID string, request *requests.AssignDoctor) (*responses.Appointment, error)
}

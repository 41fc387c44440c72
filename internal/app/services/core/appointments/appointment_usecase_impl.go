package appointments

import (
	"context"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/app/services/core/roles"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const defaultConsultationFee int64 = 1000

type appointmentUsecase struct {
	AppointmentRepository         contracts.AppointmentRepository
	DoctorRepository              contracts.DoctorRepository
	ConsultationServiceRepository contracts.ConsultationServiceRepository
	NotificationUsecase           contracts.NotificationUsecase
	InternalConfig                *config.InternalConfig
	Log                           *zap.Logger
}

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	doctorRepository contracts.DoctorRepository,
	consultationServiceRepository contracts.ConsultationServiceRepository,
	notificationUsecase contracts.NotificationUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	return &appointmentUsecase{
		AppointmentRepository:         appointmentRepository,
		DoctorRepository:              doctorRepository,
		ConsultationServiceRepository: consultationServiceRepository,
		NotificationUsecase:           notificationUsecase,
		InternalConfig:                internalConfig,
		Log:                           logger,
	}
}

// CreateAppointment books against any existing doctor profile; approval is
// not required at booking time.
func (uc *appointmentUsecase) CreateAppointment(ctx context.Context, patient *models.User, request *requests.CreateAppointment) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.CreateAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, patient.ID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}

	service, err := uc.ConsultationServiceRepository.FindByID(ctx, request.ServiceID)
	if err != nil {
		return nil, err
	}
	if service == nil || !service.Active {
		return nil, exceptions.ErrNotFound(nil, "service")
	}

	fee := uc.InternalConfig.Payment.ConsultationFee
	if fee <= 0 {
		fee = defaultConsultationFee
	}

	created, err := uc.AppointmentRepository.Create(ctx, &models.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		ServiceID: request.ServiceID,
		Gender:    request.Gender,
		Symptoms:  request.Symptoms,
		Details:   request.Details,
		FeeAmount: fee,
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.CreateAppointment error inserting appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	_, err = uc.NotificationUsecase.Notify(ctx, &doctor.UserID, constvars.NotificationAppointmentForDoctor, constvars.NotificationCategoryAppointment)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.CreateAppointment failed to notify doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, created.ID),
			zap.Error(err),
		)
	}
	message := fmt.Sprintf(constvars.NotificationNewAppointmentFormat, created.ID, patient.DisplayName())
	err = uc.NotificationUsecase.NotifyAdministrators(ctx, message, constvars.NotificationCategoryAppointment)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.CreateAppointment failed to notify administrators",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, created.ID),
			zap.Error(err),
		)
	}

	uc.Log.Info("appointmentUsecase.CreateAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, created.ID),
	)
	return ToAppointmentResponse(created), nil
}

func (uc *appointmentUsecase) ListAppointments(ctx context.Context, caller *models.User) ([]responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.ListAppointments called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, caller.ID),
		zap.String(constvars.LoggingRoleKey, caller.Role),
	)

	var (
		appointments []models.Appointment
		err          error
	)
	switch caller.Role {
	case constvars.RolePatient:
		appointments, err = uc.AppointmentRepository.ListByPatient(ctx, caller.ID)
	case constvars.RoleDoctor:
		profile, findErr := uc.DoctorRepository.FindByUserID(ctx, caller.ID)
		if findErr != nil {
			return nil, findErr
		}
		if profile == nil {
			return []responses.Appointment{}, nil
		}
		appointments, err = uc.AppointmentRepository.ListByDoctor(ctx, profile.ID)
	case constvars.RoleAdministrator:
		appointments, err = uc.AppointmentRepository.ListAll(ctx)
	default:
		return nil, exceptions.ErrForbidden(nil, caller.Role, roles.OperationListAppointments)
	}
	if err != nil {
		return nil, err
	}

	result := make([]responses.Appointment, 0, len(appointments))
	for i := range appointments {
		result = append(result, *ToAppointmentResponse(&appointments[i]))
	}
	return result, nil
}

func (uc *appointmentUsecase) AssignDoctor(ctx context.Context, admin *models.User, appointmentID string, request *requests.AssignDoctor) (*responses.Appointment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("appointmentUsecase.AssignDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
	)

	doctor, err := uc.DoctorRepository.FindByID(ctx, request.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}

	updated, err := uc.AppointmentRepository.AssignDoctor(ctx, appointmentID, doctor.ID, admin.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrNotFound(nil, "appointment")
	}

	_, err = uc.NotificationUsecase.Notify(ctx, &doctor.UserID, constvars.NotificationAppointmentAssigned, constvars.NotificationCategoryAppointment)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.AssignDoctor failed to notify doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
	}

	uc.Log.Info("appointmentUsecase.AssignDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return ToAppointmentResponse(updated), nil
}

func ToAppointmentResponse(appointment *models.Appointment) *responses.Appointment {
	return &responses.Appointment{
		AppointmentID:    appointment.ID,
		PatientID:        appointment.PatientID,
		DoctorID:         appointment.DoctorID,
		ServiceID:        appointment.ServiceID,
		Gender:           appointment.Gender,
		Symptoms:         appointment.Symptoms,
		Details:          appointment.Details,
		Status:           appointment.Status,
		PaymentStatus:    appointment.PaymentStatus,
		FeeAmount:        appointment.FeeAmount,
		PaymentReference: appointment.PaymentReference,
		AssignedAt:       appointment.AssignedAt,
		CreatedAt:        appointment.CreatedAt,
	}
}

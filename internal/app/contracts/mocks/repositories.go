package mocks

import (
	"context"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"time"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(*models.User)
	return created, args.Error(1)
}

func (m *UserRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	args := m.Called(ctx, role)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *UserRepository) CountByRole(ctx context.Context, role string) (int, error) {
	args := m.Called(ctx, role)
	return args.Int(0), args.Error(1)
}

func (m *UserRepository) UpdateProfile(ctx context.Context, userID string, name *string, phone string) (*models.User, error) {
	args := m.Called(ctx, userID, name, phone)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) MarkVerified(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *UserRepository) LockBootstrapAdministrator(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type PasscodeRepository struct {
	mock.Mock
}

func (m *PasscodeRepository) Create(ctx context.Context, passcode *models.Passcode) (*models.Passcode, error) {
	args := m.Called(ctx, passcode)
	created, _ := args.Get(0).(*models.Passcode)
	return created, args.Error(1)
}

func (m *PasscodeRepository) Consume(ctx context.Context, userID, channel, code string, now time.Time) (*models.Passcode, error) {
	args := m.Called(ctx, userID, channel, code, now)
	passcode, _ := args.Get(0).(*models.Passcode)
	return passcode, args.Error(1)
}

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) Create(ctx context.Context, profile *models.DoctorProfile) (string, error) {
	args := m.Called(ctx, profile)
	return args.String(0), args.Error(1)
}

func (m *DoctorRepository) FindByID(ctx context.Context, doctorID string) (*models.DoctorProfile, error) {
	args := m.Called(ctx, doctorID)
	profile, _ := args.Get(0).(*models.DoctorProfile)
	return profile, args.Error(1)
}

func (m *DoctorRepository) FindByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*models.DoctorProfile)
	return profile, args.Error(1)
}

func (m *DoctorRepository) List(ctx context.Context, filter contracts.DoctorListFilter) ([]models.DoctorProfile, error) {
	args := m.Called(ctx, filter)
	profiles, _ := args.Get(0).([]models.DoctorProfile)
	return profiles, args.Error(1)
}

func (m *DoctorRepository) ListByStatus(ctx context.Context, status string) ([]models.DoctorProfile, error) {
	args := m.Called(ctx, status)
	profiles, _ := args.Get(0).([]models.DoctorProfile)
	return profiles, args.Error(1)
}

func (m *DoctorRepository) Submit(ctx context.Context, profile *models.DoctorProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *DoctorRepository) Decide(ctx context.Context, profile *models.DoctorProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	args := m.Called(ctx, appointment)
	created, _ := args.Get(0).(*models.Appointment)
	return created, args.Error(1)
}

func (m *AppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentRepository) FindByPaymentReference(ctx context.Context, reference string) (*models.Appointment, error) {
	args := m.Called(ctx, reference)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

func (m *AppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	args := m.Called(ctx, patientID)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	args := m.Called(ctx, doctorID)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) ListAll(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) ListAwaitingSettlement(ctx context.Context, requestedBefore time.Time, limit int) ([]models.Appointment, error) {
	args := m.Called(ctx, requestedBefore, limit)
	appointments, _ := args.Get(0).([]models.Appointment)
	return appointments, args.Error(1)
}

func (m *AppointmentRepository) UpdatePaymentStatusFromPending(ctx context.Context, appointmentID, status string, message *string) (bool, error) {
	args := m.Called(ctx, appointmentID, status, message)
	return args.Bool(0), args.Error(1)
}

func (m *AppointmentRepository) RecordPaymentRequest(ctx context.Context, appointmentID, reference, payerPhone string, message *string) (bool, error) {
	args := m.Called(ctx, appointmentID, reference, payerPhone, message)
	return args.Bool(0), args.Error(1)
}

func (m *AppointmentRepository) AssignDoctor(ctx context.Context, appointmentID, doctorID, assignedBy string) (*models.Appointment, error) {
	args := m.Called(ctx, appointmentID, doctorID, assignedBy)
	appointment, _ := args.Get(0).(*models.Appointment)
	return appointment, args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	args := m.Called(ctx, notification)
	created, _ := args.Get(0).(*models.Notification)
	return created, args.Error(1)
}

func (m *NotificationRepository) FindByID(ctx context.Context, notificationID string) (*models.Notification, error) {
	args := m.Called(ctx, notificationID)
	notification, _ := args.Get(0).(*models.Notification)
	return notification, args.Error(1)
}

func (m *NotificationRepository) ListForUser(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, notificationID string) error {
	return m.Called(ctx, notificationID).Error(0)
}

func (m *NotificationRepository) MarkBroadcastRead(ctx context.Context, notificationID, userID string) error {
	return m.Called(ctx, notificationID, userID).Error(0)
}

type ConsultationServiceRepository struct {
	mock.Mock
}

func (m *ConsultationServiceRepository) Create(ctx context.Context, service *models.ConsultationService) (string, error) {
	args := m.Called(ctx, service)
	return args.String(0), args.Error(1)
}

func (m *ConsultationServiceRepository) FindByID(ctx context.Context, serviceID string) (*models.ConsultationService, error) {
	args := m.Called(ctx, serviceID)
	service, _ := args.Get(0).(*models.ConsultationService)
	return service, args.Error(1)
}

func (m *ConsultationServiceRepository) ListActive(ctx context.Context) ([]models.ConsultationService, error) {
	args := m.Called(ctx)
	services, _ := args.Get(0).([]models.ConsultationService)
	return services, args.Error(1)
}

type PaymentCallbackRepository struct {
	mock.Mock
}

func (m *PaymentCallbackRepository) Store(ctx context.Context, callback *models.PaymentCallback) (string, error) {
	args := m.Called(ctx, callback)
	return args.String(0), args.Error(1)
}

func (m *PaymentCallbackRepository) MarkReconciled(ctx context.Context, callbackID string) error {
	return m.Called(ctx, callbackID).Error(0)
}

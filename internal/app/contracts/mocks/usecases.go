package mocks

import (
	"context"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"

	"github.com/stretchr/testify/mock"
)

type OTPLedger struct {
	mock.Mock
}

func (m *OTPLedger) IssueOTP(ctx context.Context, user *models.User, channel string) (*models.Passcode, error) {
	args := m.Called(ctx, user, channel)
	passcode, _ := args.Get(0).(*models.Passcode)
	return passcode, args.Error(1)
}

func (m *OTPLedger) VerifyOTP(ctx context.Context, user *models.User, channel, code string) (*models.Passcode, error) {
	args := m.Called(ctx, user, channel, code)
	passcode, _ := args.Get(0).(*models.Passcode)
	return passcode, args.Error(1)
}

type OTPDispatcher struct {
	mock.Mock
}

func (m *OTPDispatcher) Dispatch(ctx context.Context, user *models.User, channel, code string) error {
	return m.Called(ctx, user, channel, code).Error(0)
}

type AuthUsecase struct {
	mock.Mock
}

func (m *AuthUsecase) Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Signup)
	return result, args.Error(1)
}

func (m *AuthUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Login)
	return result, args.Error(1)
}

func (m *AuthUsecase) SendOTP(ctx context.Context, request *requests.SendOTP) error {
	return m.Called(ctx, request).Error(0)
}

func (m *AuthUsecase) VerifyOTP(ctx context.Context, request *requests.VerifyOTP) (*responses.VerifyOTP, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.VerifyOTP)
	return result, args.Error(1)
}

func (m *AuthUsecase) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *AuthUsecase) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *AuthUsecase) BootstrapAdministrator(ctx context.Context, request *requests.BootstrapAdministrator) (*models.User, error) {
	args := m.Called(ctx, request)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type UserUsecase struct {
	mock.Mock
}

func (m *UserUsecase) GetProfile(ctx context.Context, user *models.User) (*responses.UserProfile, error) {
	args := m.Called(ctx, user)
	result, _ := args.Get(0).(*responses.UserProfile)
	return result, args.Error(1)
}

func (m *UserUsecase) UpdateProfile(ctx context.Context, user *models.User, request *requests.UpdateProfile) (*responses.UserProfile, error) {
	args := m.Called(ctx, user, request)
	result, _ := args.Get(0).(*responses.UserProfile)
	return result, args.Error(1)
}

type DoctorUsecase struct {
	mock.Mock
}

func (m *DoctorUsecase) SubmitProfile(ctx context.Context, doctor *models.User, request *requests.SubmitDoctorProfile) (*responses.DoctorProfile, error) {
	args := m.Called(ctx, doctor, request)
	result, _ := args.Get(0).(*responses.DoctorProfile)
	return result, args.Error(1)
}

func (m *DoctorUsecase) DecideApproval(ctx context.Context, admin *models.User, doctorID string, request *requests.DecideApproval) (*responses.DoctorProfile, error) {
	args := m.Called(ctx, admin, doctorID, request)
	result, _ := args.Get(0).(*responses.DoctorProfile)
	return result, args.Error(1)
}

func (m *DoctorUsecase) ListDoctors(ctx context.Context, caller *models.User, request *requests.ListDoctors) ([]responses.DoctorListItem, error) {
	args := m.Called(ctx, caller, request)
	result, _ := args.Get(0).([]responses.DoctorListItem)
	return result, args.Error(1)
}

func (m *DoctorUsecase) ListPendingDoctors(ctx context.Context, admin *models.User) ([]responses.DoctorProfile, error) {
	args := m.Called(ctx, admin)
	result, _ := args.Get(0).([]responses.DoctorProfile)
	return result, args.Error(1)
}

func (m *DoctorUsecase) GetOwnProfile(ctx context.Context, doctor *models.User) (*responses.DoctorProfile, error) {
	args := m.Called(ctx, doctor)
	result, _ := args.Get(0).(*responses.DoctorProfile)
	return result, args.Error(1)
}

func (m *DoctorUsecase) DownloadEvidence(ctx context.Context, caller *models.User, doctorID string) (*contracts.EvidenceDownload, error) {
	args := m.Called(ctx, caller, doctorID)
	result, _ := args.Get(0).(*contracts.EvidenceDownload)
	return result, args.Error(1)
}

type AppointmentUsecase struct {
	mock.Mock
}

func (m *AppointmentUsecase) CreateAppointment(ctx context.Context, patient *models.User, request *requests.CreateAppointment) (*responses.Appointment, error) {
	args := m.Called(ctx, patient, request)
	result, _ := args.Get(0).(*responses.Appointment)
	return result, args.Error(1)
}

func (m *AppointmentUsecase) ListAppointments(ctx context.Context, caller *models.User) ([]responses.Appointment, error) {
	args := m.Called(ctx, caller)
	result, _ := args.Get(0).([]responses.Appointment)
	return result, args.Error(1)
}

func (m *AppointmentUsecase) AssignDoctor(ctx context.Context, admin *models.User, appointmentID string, request *requests.AssignDoctor) (*responses.Appointment, error) {
	args := m.Called(ctx, admin, appointmentID, request)
	result, _ := args.Get(0).(*responses.Appointment)
	return result, args.Error(1)
}

type PaymentUsecase struct {
	mock.Mock
}

func (m *PaymentUsecase) RequestPayment(ctx context.Context, patient *models.User, appointmentID string, request *requests.RequestPayment) (*responses.RequestPayment, error) {
	args := m.Called(ctx, patient, appointmentID, request)
	result, _ := args.Get(0).(*responses.RequestPayment)
	return result, args.Error(1)
}

func (m *PaymentUsecase) HandleCallback(ctx context.Context, rawPayload []byte) *responses.DarajaCallbackAck {
	args := m.Called(ctx, rawPayload)
	result, _ := args.Get(0).(*responses.DarajaCallbackAck)
	return result
}

func (m *PaymentUsecase) ReconcileAwaitingSettlement(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type NotificationUsecase struct {
	mock.Mock
}

func (m *NotificationUsecase) Notify(ctx context.Context, targetUserID *string, message, category string) (*models.Notification, error) {
	args := m.Called(ctx, targetUserID, message, category)
	result, _ := args.Get(0).(*models.Notification)
	return result, args.Error(1)
}

func (m *NotificationUsecase) NotifyMany(ctx context.Context, targetUserIDs []string, message, category string) error {
	return m.Called(ctx, targetUserIDs, message, category).Error(0)
}

func (m *NotificationUsecase) NotifyAdministrators(ctx context.Context, message, category string) error {
	return m.Called(ctx, message, category).Error(0)
}

func (m *NotificationUsecase) CreateNotification(ctx context.Context, request *requests.CreateNotification) (*responses.Notification, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.Notification)
	return result, args.Error(1)
}

func (m *NotificationUsecase) ListFor(ctx context.Context, user *models.User) ([]responses.Notification, error) {
	args := m.Called(ctx, user)
	result, _ := args.Get(0).([]responses.Notification)
	return result, args.Error(1)
}

func (m *NotificationUsecase) MarkRead(ctx context.Context, user *models.User, notificationID string) error {
	return m.Called(ctx, user, notificationID).Error(0)
}

type ConsultationServiceUsecase struct {
	mock.Mock
}

func (m *ConsultationServiceUsecase) ListServices(ctx context.Context) ([]responses.ConsultationService, error) {
	args := m.Called(ctx)
	result, _ := args.Get(0).([]responses.ConsultationService)
	return result, args.Error(1)
}

func (m *ConsultationServiceUsecase) CreateService(ctx context.Context, request *requests.CreateConsultationService) (*responses.ConsultationService, error) {
	args := m.Called(ctx, request)
	result, _ := args.Get(0).(*responses.ConsultationService)
	return result, args.Error(1)
}

package appointments

import (
	"context"
	"errors"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts/mocks"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type appointmentFixture struct {
	usecase       *appointmentUsecase
	appointments  *mocks.AppointmentRepository
	doctors       *mocks.DoctorRepository
	services      *mocks.ConsultationServiceRepository
	notifications *mocks.NotificationUsecase
}

func newAppointmentFixture(fee int64) *appointmentFixture {
	fixture := &appointmentFixture{
		appointments:  new(mocks.AppointmentRepository),
		doctors:       new(mocks.DoctorRepository),
		services:      new(mocks.ConsultationServiceRepository),
		notifications: new(mocks.NotificationUsecase),
	}
	internalConfig := &config.InternalConfig{Payment: config.AppPayment{ConsultationFee: fee}}
	fixture.usecase = NewAppointmentUsecase(
		fixture.appointments,
		fixture.doctors,
		fixture.services,
		fixture.notifications,
		internalConfig,
		zap.NewNop(),
	).(*appointmentUsecase)
	return fixture
}

func bookingRequest() *requests.CreateAppointment {
	return &requests.CreateAppointment{
		DoctorID:  "D",
		ServiceID: "S",
		Symptoms:  "headache",
	}
}

func TestAppointmentUsecase_CreateAppointment(t *testing.T) {
	patient := &models.User{ID: "P1", Email: "p@x.com", Role: constvars.RolePatient}

	t.Run("books a pending appointment and notifies", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.doctors.On("FindByID", mock.Anything, "D").Return(&models.DoctorProfile{ID: "D", UserID: "U-doc"}, nil)
		fixture.services.On("FindByID", mock.Anything, "S").Return(&models.ConsultationService{Name: "General", Active: true}, nil)
		fixture.appointments.On("Create", mock.Anything, mock.MatchedBy(func(appointment *models.Appointment) bool {
			return appointment.PatientID == "P1" && appointment.DoctorID == "D" && appointment.FeeAmount == defaultConsultationFee
		})).Return(&models.Appointment{
			ID:            "AP1",
			PatientID:     "P1",
			DoctorID:      "D",
			ServiceID:     "S",
			Status:        constvars.AppointmentStatusPending,
			PaymentStatus: constvars.PaymentStatusPending,
			FeeAmount:     defaultConsultationFee,
		}, nil)
		fixture.notifications.On("Notify", mock.Anything, mock.MatchedBy(func(target *string) bool {
			return target != nil && *target == "U-doc"
		}), constvars.NotificationAppointmentForDoctor, constvars.NotificationCategoryAppointment).Return(&models.Notification{}, nil)
		fixture.notifications.On("NotifyAdministrators", mock.Anything, "New appointment AP1 requested by p@x.com.", constvars.NotificationCategoryAppointment).Return(nil)

		appointment, err := fixture.usecase.CreateAppointment(context.Background(), patient, bookingRequest())
		require.NoError(t, err)
		assert.Equal(t, constvars.AppointmentStatusPending, appointment.Status)
		assert.Equal(t, constvars.PaymentStatusPending, appointment.PaymentStatus)
		fixture.notifications.AssertExpectations(t)
	})

	t.Run("notification failures do not fail booking", func(t *testing.T) {
		fixture := newAppointmentFixture(2500)
		fixture.doctors.On("FindByID", mock.Anything, "D").Return(&models.DoctorProfile{ID: "D", UserID: "U-doc"}, nil)
		fixture.services.On("FindByID", mock.Anything, "S").Return(&models.ConsultationService{Active: true}, nil)
		fixture.appointments.On("Create", mock.Anything, mock.MatchedBy(func(appointment *models.Appointment) bool {
			return appointment.FeeAmount == 2500
		})).Return(&models.Appointment{ID: "AP1", FeeAmount: 2500}, nil)
		fixture.notifications.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("down"))
		fixture.notifications.On("NotifyAdministrators", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("down"))

		appointment, err := fixture.usecase.CreateAppointment(context.Background(), patient, bookingRequest())
		require.NoError(t, err)
		assert.Equal(t, int64(2500), appointment.FeeAmount)
	})

	t.Run("unknown doctor", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.doctors.On("FindByID", mock.Anything, "D").Return(nil, nil)

		_, err := fixture.usecase.CreateAppointment(context.Background(), patient, bookingRequest())
		assert.Equal(t, exceptions.CodeNotFound, exceptions.CodeOf(err))
		fixture.appointments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("inactive service", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.doctors.On("FindByID", mock.Anything, "D").Return(&models.DoctorProfile{ID: "D"}, nil)
		fixture.services.On("FindByID", mock.Anything, "S").Return(&models.ConsultationService{Active: false}, nil)

		_, err := fixture.usecase.CreateAppointment(context.Background(), patient, bookingRequest())
		assert.Equal(t, exceptions.CodeNotFound, exceptions.CodeOf(err))
	})
}

func TestAppointmentUsecase_ListAppointmentsByRole(t *testing.T) {
	rows := []models.Appointment{{ID: "AP1"}, {ID: "AP2"}}

	t.Run("patient", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.appointments.On("ListByPatient", mock.Anything, "P1").Return(rows, nil)

		listed, err := fixture.usecase.ListAppointments(context.Background(), &models.User{ID: "P1", Role: constvars.RolePatient})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("doctor", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.doctors.On("FindByUserID", mock.Anything, "U-doc").Return(&models.DoctorProfile{ID: "D"}, nil)
		fixture.appointments.On("ListByDoctor", mock.Anything, "D").Return(rows[:1], nil)

		listed, err := fixture.usecase.ListAppointments(context.Background(), &models.User{ID: "U-doc", Role: constvars.RoleDoctor})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "AP1", listed[0].AppointmentID)
	})

	t.Run("doctor without profile", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.doctors.On("FindByUserID", mock.Anything, "U-doc").Return(nil, nil)

		listed, err := fixture.usecase.ListAppointments(context.Background(), &models.User{ID: "U-doc", Role: constvars.RoleDoctor})
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("administrator", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.appointments.On("ListAll", mock.Anything).Return(rows, nil)

		listed, err := fixture.usecase.ListAppointments(context.Background(), &models.User{ID: "A1", Role: constvars.RoleAdministrator})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
		fixture.appointments.AssertNotCalled(t, "ListByPatient", mock.Anything, mock.Anything)
	})
}

func TestAppointmentUsecase_AssignDoctor(t *testing.T) {
	admin := &models.User{ID: "A1", Role: constvars.RoleAdministrator}

	t.Run("records assignment and notifies the doctor", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.doctors.On("FindByID", mock.Anything, "D2").Return(&models.DoctorProfile{ID: "D2", UserID: "U-doc2"}, nil)
		fixture.appointments.On("AssignDoctor", mock.Anything, "AP1", "D2", "A1").Return(&models.Appointment{ID: "AP1", DoctorID: "D2"}, nil)
		fixture.notifications.On("Notify", mock.Anything, mock.MatchedBy(func(target *string) bool {
			return target != nil && *target == "U-doc2"
		}), constvars.NotificationAppointmentAssigned, constvars.NotificationCategoryAppointment).Return(&models.Notification{}, nil)

		updated, err := fixture.usecase.AssignDoctor(context.Background(), admin, "AP1", &requests.AssignDoctor{DoctorID: "D2"})
		require.NoError(t, err)
		assert.Equal(t, "D2", updated.DoctorID)
		fixture.notifications.AssertExpectations(t)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		fixture := newAppointmentFixture(0)
		fixture.doctors.On("FindByID", mock.Anything, "D2").Return(&models.DoctorProfile{ID: "D2"}, nil)
		fixture.appointments.On("AssignDoctor", mock.Anything, "missing", "D2", "A1").Return(nil, nil)

		_, err := fixture.usecase.AssignDoctor(context.Background(), admin, "missing", &requests.AssignDoctor{DoctorID: "D2"})
		assert.Equal(t, exceptions.CodeNotFound, exceptions.CodeOf(err))
		fixture.notifications.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

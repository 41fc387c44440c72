package payments

import (
	"context"
	"errors"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/contracts/mocks"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryAppointments applies the same pending-only guards as the SQL updates.
type memoryAppointments struct {
	contracts.AppointmentRepository
	mu         sync.Mutex
	rows       map[string]*models.Appointment
	recordedAt time.Time
}

func newMemoryAppointments(appointments ...models.Appointment) *memoryAppointments {
	store := &memoryAppointments{
		rows:       map[string]*models.Appointment{},
		recordedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	for i := range appointments {
		row := appointments[i]
		store.rows[row.ID] = &row
	}
	return store
}

func (m *memoryAppointments) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[appointmentID]
	if !ok {
		return nil, nil
	}
	found := *row
	return &found, nil
}

func (m *memoryAppointments) FindByPaymentReference(ctx context.Context, reference string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.PaymentReference != nil && *row.PaymentReference == reference {
			found := *row
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memoryAppointments) ListAwaitingSettlement(ctx context.Context, requestedBefore time.Time, limit int) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []models.Appointment
	for _, row := range m.rows {
		if row.PaymentStatus == constvars.PaymentStatusPending && row.PaymentReference != nil &&
			row.PaymentRequested != nil && row.PaymentRequested.Before(requestedBefore) {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (m *memoryAppointments) UpdatePaymentStatusFromPending(ctx context.Context, appointmentID, status string, message *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[appointmentID]
	if !ok || row.PaymentStatus != constvars.PaymentStatusPending {
		return false, nil
	}
	row.PaymentStatus = status
	if message != nil {
		row.PaymentMessage = message
	}
	return true, nil
}

func (m *memoryAppointments) RecordPaymentRequest(ctx context.Context, appointmentID, reference, payerPhone string, message *string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[appointmentID]
	if !ok || row.PaymentStatus != constvars.PaymentStatusPending || row.PaymentReference != nil {
		return false, nil
	}
	requestedAt := m.recordedAt
	row.PaymentReference = &reference
	row.PayerPhone = &payerPhone
	row.PaymentMessage = message
	row.PaymentRequested = &requestedAt
	return true, nil
}

func (m *memoryAppointments) status(appointmentID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[appointmentID].PaymentStatus
}

type paymentFixture struct {
	usecase       *paymentUsecase
	appointments  *memoryAppointments
	callbacks     *mocks.PaymentCallbackRepository
	transactions  *mocks.TransactionManager
	gateway       *mocks.PaymentGateway
	locker        *mocks.LockerService
	notifications *mocks.NotificationUsecase
}

func newPaymentFixture(mode string, appointments ...models.Appointment) *paymentFixture {
	fixture := &paymentFixture{
		appointments:  newMemoryAppointments(appointments...),
		callbacks:     new(mocks.PaymentCallbackRepository),
		transactions:  new(mocks.TransactionManager),
		gateway:       new(mocks.PaymentGateway),
		locker:        new(mocks.LockerService),
		notifications: new(mocks.NotificationUsecase),
	}
	internalConfig := &config.InternalConfig{
		Payment: config.AppPayment{ConfirmationMode: mode, ReconcileAfterInMinutes: 5},
	}
	fixture.usecase = NewPaymentUsecase(
		fixture.appointments,
		fixture.callbacks,
		fixture.transactions,
		fixture.gateway,
		fixture.locker,
		fixture.notifications,
		internalConfig,
		zap.NewNop(),
	).(*paymentUsecase)
	fixture.usecase.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	fixture.locker.On("TryLock", mock.Anything, "lock:payment:AP1", defaultPaymentLockTime).Return(true, "lock-token", nil).Maybe()
	fixture.locker.On("Unlock", mock.Anything, "lock:payment:AP1", "lock-token").Return(nil).Maybe()
	fixture.notifications.On("Notify", mock.Anything, mock.Anything, mock.Anything, constvars.NotificationCategoryPayment).Return(&models.Notification{}, nil).Maybe()
	return fixture
}

func pendingAppointment() models.Appointment {
	return models.Appointment{
		ID:            "AP1",
		PatientID:     "P1",
		DoctorID:      "D",
		ServiceID:     "S",
		Status:        constvars.AppointmentStatusPending,
		PaymentStatus: constvars.PaymentStatusPending,
		FeeAmount:     1000,
	}
}

var patient = &models.User{ID: "P1", Phone: "0712345678", Role: constvars.RolePatient}

func acceptedPush() *responses.DarajaSTKPush {
	return &responses.DarajaSTKPush{
		MerchantRequestID:   "M-1",
		CheckoutRequestID:   "ws_CO_1",
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}
}

func TestPaymentUsecase_RequestPaymentOptimistic(t *testing.T) {
	fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, pendingAppointment())
	fixture.gateway.On("PushPayment", mock.Anything, &contracts.PushPaymentInput{
		Amount:           1000,
		PhoneNumber:      "254712345678",
		AccountReference: "AP1",
	}).Return(acceptedPush(), nil)

	result, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
	require.NoError(t, err)
	assert.Equal(t, constvars.PaymentStatusPaid, result.PaymentStatus)
	assert.False(t, result.AwaitingCallback)
	assert.Equal(t, constvars.PaymentStatusPaid, fixture.appointments.status("AP1"))
	assert.Equal(t, 1, fixture.transactions.Calls)
	fixture.locker.AssertCalled(t, "Unlock", mock.Anything, "lock:payment:AP1", "lock-token")
}

func TestPaymentUsecase_RequestPaymentDeclinedLeavesPending(t *testing.T) {
	fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, pendingAppointment())
	fixture.gateway.On("PushPayment", mock.Anything, mock.Anything).Return(&responses.DarajaSTKPush{
		ResponseCode:        "1",
		ResponseDescription: "Insufficient balance",
	}, nil)

	_, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
	require.Error(t, err)
	assert.Equal(t, exceptions.CodePaymentDeclined, exceptions.CodeOf(err))

	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, "Insufficient balance", customErr.ClientMessage)
	assert.Equal(t, constvars.PaymentStatusPending, fixture.appointments.status("AP1"))
}

func TestPaymentUsecase_RequestPaymentGatewayFailure(t *testing.T) {
	fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, pendingAppointment())
	fixture.gateway.On("PushPayment", mock.Anything, mock.Anything).Return(nil, exceptions.ErrPaymentGateway(errors.New("503 after retries")))

	_, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{Phone: "254700000009"})
	assert.Equal(t, exceptions.CodePaymentGatewayError, exceptions.CodeOf(err))
	assert.Equal(t, constvars.PaymentStatusPending, fixture.appointments.status("AP1"))
	fixture.locker.AssertCalled(t, "Unlock", mock.Anything, "lock:payment:AP1", "lock-token")
}

func TestPaymentUsecase_RequestPaymentPreconditions(t *testing.T) {
	t.Run("someone else's appointment is not found", func(t *testing.T) {
		fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, pendingAppointment())

		_, err := fixture.usecase.RequestPayment(context.Background(), &models.User{ID: "P2", Role: constvars.RolePatient}, "AP1", &requests.RequestPayment{})
		assert.Equal(t, exceptions.CodeNotFound, exceptions.CodeOf(err))
		fixture.gateway.AssertNotCalled(t, "PushPayment", mock.Anything, mock.Anything)
	})

	t.Run("already paid is a conflict", func(t *testing.T) {
		paid := pendingAppointment()
		paid.PaymentStatus = constvars.PaymentStatusPaid
		fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, paid)

		_, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
		assert.Equal(t, exceptions.CodeConflict, exceptions.CodeOf(err))
		fixture.gateway.AssertNotCalled(t, "PushPayment", mock.Anything, mock.Anything)
	})

	t.Run("concurrent request holds the lock", func(t *testing.T) {
		fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, pendingAppointment())
		fixture.locker.ExpectedCalls = nil
		fixture.locker.On("TryLock", mock.Anything, "lock:payment:AP1", defaultPaymentLockTime).Return(false, "", nil)

		_, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
		assert.Equal(t, exceptions.CodeConflict, exceptions.CodeOf(err))
		fixture.gateway.AssertNotCalled(t, "PushPayment", mock.Anything, mock.Anything)
	})
}

func TestPaymentUsecase_CallbackModeSettlesOnCallback(t *testing.T) {
	fixture := newPaymentFixture(config.PaymentConfirmationCallback, pendingAppointment())
	fixture.gateway.On("PushPayment", mock.Anything, mock.Anything).Return(acceptedPush(), nil)

	result, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
	require.NoError(t, err)
	assert.True(t, result.AwaitingCallback)
	assert.Equal(t, "ws_CO_1", result.CheckoutRequestID)
	assert.Equal(t, constvars.PaymentStatusPending, fixture.appointments.status("AP1"))

	fixture.callbacks.On("Store", mock.Anything, mock.MatchedBy(func(callback *models.PaymentCallback) bool {
		return callback.CheckoutRequestID == "ws_CO_1" && callback.ResultCode != nil && *callback.ResultCode == 0
	})).Return("cb-1", nil)
	fixture.callbacks.On("MarkReconciled", mock.Anything, "cb-1").Return(nil)

	payload := []byte(`{"Body":{"stkCallback":{"MerchantRequestID":"M-1","CheckoutRequestID":"ws_CO_1","ResultCode":0,"ResultDesc":"The service request is processed successfully."}}}`)
	ack := fixture.usecase.HandleCallback(context.Background(), payload)
	assert.Equal(t, 0, ack.ResultCode)
	assert.Equal(t, "Accepted", ack.ResultDesc)
	assert.Equal(t, constvars.PaymentStatusPaid, fixture.appointments.status("AP1"))
	fixture.callbacks.AssertExpectations(t)
}

func TestPaymentUsecase_CallbackNeverMovesBackward(t *testing.T) {
	paid := pendingAppointment()
	reference := "ws_CO_1"
	paid.PaymentStatus = constvars.PaymentStatusPaid
	paid.PaymentReference = &reference
	fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, paid)
	fixture.callbacks.On("Store", mock.Anything, mock.Anything).Return("cb-1", nil)

	payload := []byte(`{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`)
	ack := fixture.usecase.HandleCallback(context.Background(), payload)
	assert.Equal(t, 0, ack.ResultCode)
	assert.Equal(t, constvars.PaymentStatusPaid, fixture.appointments.status("AP1"))
	fixture.callbacks.AssertNotCalled(t, "MarkReconciled", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CallbackAlwaysAcknowledges(t *testing.T) {
	fixture := newPaymentFixture(config.PaymentConfirmationCallback)
	fixture.callbacks.On("Store", mock.Anything, mock.MatchedBy(func(callback *models.PaymentCallback) bool {
		return callback.Payload["raw"] == "not json"
	})).Return("", errors.New("mongo down"))

	ack := fixture.usecase.HandleCallback(context.Background(), []byte("not json"))
	require.NotNil(t, ack)
	assert.Equal(t, 0, ack.ResultCode)
}

func TestPaymentUsecase_ReconcileAwaitingSettlement(t *testing.T) {
	awaiting := pendingAppointment()
	reference := "ws_CO_1"
	requestedAt := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	awaiting.PaymentReference = &reference
	awaiting.PaymentRequested = &requestedAt

	t.Run("callback mode settles a failed push", func(t *testing.T) {
		fixture := newPaymentFixture(config.PaymentConfirmationCallback, awaiting)
		fixture.gateway.On("QueryPayment", mock.Anything, "ws_CO_1").Return(&responses.DarajaSTKQuery{
			ResponseCode: "0",
			ResultCode:   "1037",
			ResultDesc:   "DS timeout user cannot be reached",
		}, nil)

		settled, err := fixture.usecase.ReconcileAwaitingSettlement(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, settled)
		assert.Equal(t, constvars.PaymentStatusFailed, fixture.appointments.status("AP1"))
	})

	t.Run("query errors are skipped", func(t *testing.T) {
		fixture := newPaymentFixture(config.PaymentConfirmationCallback, awaiting)
		fixture.gateway.On("QueryPayment", mock.Anything, "ws_CO_1").Return(nil, exceptions.ErrPaymentGateway(errors.New("still processing")))

		settled, err := fixture.usecase.ReconcileAwaitingSettlement(context.Background())
		require.NoError(t, err)
		assert.Zero(t, settled)
		assert.Equal(t, constvars.PaymentStatusPending, fixture.appointments.status("AP1"))
	})

	t.Run("optimistic mode does nothing", func(t *testing.T) {
		fixture := newPaymentFixture(config.PaymentConfirmationOptimistic, awaiting)

		settled, err := fixture.usecase.ReconcileAwaitingSettlement(context.Background())
		require.NoError(t, err)
		assert.Zero(t, settled)
		fixture.gateway.AssertNotCalled(t, "QueryPayment", mock.Anything, mock.Anything)
	})
}

func TestPaymentUsecase_CallbackModeKeepsOutstandingCheckout(t *testing.T) {
	fixture := newPaymentFixture(config.PaymentConfirmationCallback, pendingAppointment())
	fixture.gateway.On("PushPayment", mock.Anything, mock.Anything).Return(acceptedPush(), nil).Once()

	first, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_1", first.CheckoutRequestID)

	_, err = fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
	assert.Equal(t, exceptions.CodeConflict, exceptions.CodeOf(err))
	fixture.gateway.AssertNumberOfCalls(t, "PushPayment", 1)
	fixture.gateway.AssertNotCalled(t, "QueryPayment", mock.Anything, mock.Anything)

	fixture.callbacks.On("Store", mock.Anything, mock.Anything).Return("cb-1", nil)
	fixture.callbacks.On("MarkReconciled", mock.Anything, "cb-1").Return(nil)

	payload := []byte(`{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultCode":0,"ResultDesc":"The service request is processed successfully."}}}`)
	fixture.usecase.HandleCallback(context.Background(), payload)
	assert.Equal(t, constvars.PaymentStatusPaid, fixture.appointments.status("AP1"))
}

func TestPaymentUsecase_RequestPaymentSettlesStaleCheckoutFirst(t *testing.T) {
	stale := pendingAppointment()
	reference := "ws_CO_1"
	requestedAt := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	stale.PaymentReference = &reference
	stale.PaymentRequested = &requestedAt

	t.Run("provider reports it paid", func(t *testing.T) {
		fixture := newPaymentFixture(config.PaymentConfirmationCallback, stale)
		fixture.gateway.On("QueryPayment", mock.Anything, "ws_CO_1").Return(&responses.DarajaSTKQuery{
			ResponseCode: "0",
			ResultCode:   "0",
			ResultDesc:   "The service request is processed successfully.",
		}, nil)

		_, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
		assert.Equal(t, exceptions.CodeConflict, exceptions.CodeOf(err))
		assert.Equal(t, constvars.PaymentStatusPaid, fixture.appointments.status("AP1"))
		fixture.gateway.AssertNotCalled(t, "PushPayment", mock.Anything, mock.Anything)
	})

	t.Run("provider still processing", func(t *testing.T) {
		fixture := newPaymentFixture(config.PaymentConfirmationCallback, stale)
		fixture.gateway.On("QueryPayment", mock.Anything, "ws_CO_1").Return(nil, exceptions.ErrPaymentGateway(errors.New("still processing")))

		_, err := fixture.usecase.RequestPayment(context.Background(), patient, "AP1", &requests.RequestPayment{})
		assert.Equal(t, exceptions.CodeConflict, exceptions.CodeOf(err))
		assert.Equal(t, constvars.PaymentStatusPending, fixture.appointments.status("AP1"))
		fixture.gateway.AssertNotCalled(t, "PushPayment", mock.Anything, mock.Anything)
	})
}

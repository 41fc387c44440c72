package payments

import (
	"context"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	defaultPaymentLockTime         = 60 * time.Second
	defaultReconcileAfter          = 5 * time.Minute
	reconcileBatchSize             = 50
	darajaAccountReferenceMaxChars = 12
)

type paymentUsecase struct {
	AppointmentRepository     contracts.AppointmentRepository
	PaymentCallbackRepository contracts.PaymentCallbackRepository
	TransactionManager        contracts.TransactionManager
	PaymentGateway            contracts.PaymentGateway
	LockService               contracts.LockerService
	NotificationUsecase       contracts.NotificationUsecase
	InternalConfig            *config.InternalConfig
	Log                       *zap.Logger
	now                       func() time.Time
}

func NewPaymentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	paymentCallbackRepository contracts.PaymentCallbackRepository,
	transactionManager contracts.TransactionManager,
	paymentGateway contracts.PaymentGateway,
	lockService contracts.LockerService,
	notificationUsecase contracts.NotificationUsecase,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	return &paymentUsecase{
		AppointmentRepository:     appointmentRepository,
		PaymentCallbackRepository: paymentCallbackRepository,
		TransactionManager:        transactionManager,
		PaymentGateway:            paymentGateway,
		LockService:               lockService,
		NotificationUsecase:       notificationUsecase,
		InternalConfig:            internalConfig,
		Log:                       logger,
		now:                       time.Now,
	}
}

// RequestPayment pushes the consultation fee to the payer's phone. In
// optimistic mode an accepted push marks the appointment paid at once; in
// callback mode the checkout id is stored and the status stays pending until
// the provider confirms settlement.
func (uc *paymentUsecase) RequestPayment(ctx context.Context, patient *models.User, appointmentID string, request *requests.RequestPayment) (*responses.RequestPayment, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.RequestPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingUserIDKey, patient.ID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.PatientID != patient.ID {
		return nil, exceptions.ErrNotFound(nil, "appointment")
	}
	if appointment.PaymentStatus != constvars.PaymentStatusPending {
		return nil, exceptions.ErrPaymentNotPending(nil, appointment.PaymentStatus)
	}

	lockKey := fmt.Sprintf(constvars.RedisKeyPaymentLockFormat, appointment.ID)
	acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, uc.paymentLockTime())
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrPaymentInProgress(nil, appointment.ID)
	}
	defer func() {
		unlockErr := uc.LockService.Unlock(ctx, lockKey, lockValue)
		if unlockErr != nil {
			uc.Log.Warn("paymentUsecase.RequestPayment failed to release payment lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(unlockErr),
			)
		}
	}()

	// Re-read under the lock: a push recorded by a concurrent request must be
	// settled before another prompt goes out.
	appointment, err = uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrNotFound(nil, "appointment")
	}
	if appointment.PaymentStatus != constvars.PaymentStatusPending {
		return nil, exceptions.ErrPaymentNotPending(nil, appointment.PaymentStatus)
	}
	if appointment.PaymentReference != nil {
		return nil, uc.outstandingCheckout(ctx, appointment)
	}

	payerPhone := request.Phone
	if payerPhone == "" {
		payerPhone = patient.Phone
	}
	payerPhone = utils.ToMSISDN(payerPhone)

	push, err := uc.PaymentGateway.PushPayment(ctx, &contracts.PushPaymentInput{
		Amount:           appointment.FeeAmount,
		PhoneNumber:      payerPhone,
		AccountReference: uc.accountReference(appointment.ID),
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.RequestPayment push payment failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}
	if !push.Accepted() {
		uc.Log.Info("paymentUsecase.RequestPayment push payment declined",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.String(constvars.LoggingGatewayResponseKey, push.ResponseCode),
		)
		return nil, exceptions.ErrPaymentDeclined(push.ResponseCode, push.Message())
	}

	gatewayMessage := push.Message()
	if uc.InternalConfig.Payment.IsOptimistic() {
		return uc.markPaidOnAcceptance(ctx, appointment, push, payerPhone, gatewayMessage)
	}

	recorded, err := uc.AppointmentRepository.RecordPaymentRequest(ctx, appointment.ID, push.CheckoutRequestID, payerPhone, &gatewayMessage)
	if err != nil {
		return nil, err
	}
	if !recorded {
		return nil, uc.notPendingAnymore(ctx, appointment.ID)
	}

	uc.Log.Info("paymentUsecase.RequestPayment awaiting provider confirmation",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingCheckoutRequestIDKey, push.CheckoutRequestID),
	)
	return &responses.RequestPayment{
		AppointmentID:     appointment.ID,
		PaymentStatus:     constvars.PaymentStatusPending,
		CheckoutRequestID: push.CheckoutRequestID,
		GatewayMessage:    gatewayMessage,
		AwaitingCallback:  true,
	}, nil
}

func (uc *paymentUsecase) markPaidOnAcceptance(ctx context.Context, appointment *models.Appointment, push *responses.DarajaSTKPush, payerPhone, gatewayMessage string) (*responses.RequestPayment, error) {
	requestID := utils.GetRequestID(ctx)

	var moved bool
	err := uc.TransactionManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		recorded, err := uc.AppointmentRepository.RecordPaymentRequest(txCtx, appointment.ID, push.CheckoutRequestID, payerPhone, &gatewayMessage)
		if err != nil || !recorded {
			return err
		}
		moved, err = uc.AppointmentRepository.UpdatePaymentStatusFromPending(txCtx, appointment.ID, constvars.PaymentStatusPaid, &gatewayMessage)
		return err
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.RequestPayment error marking appointment paid",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return nil, err
	}
	if !moved {
		return nil, uc.notPendingAnymore(ctx, appointment.ID)
	}

	uc.notifyPatient(ctx, appointment, constvars.PaymentStatusPaid, gatewayMessage)

	uc.Log.Info("paymentUsecase.RequestPayment marked appointment paid on acceptance",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingCheckoutRequestIDKey, push.CheckoutRequestID),
	)
	return &responses.RequestPayment{
		AppointmentID:     appointment.ID,
		PaymentStatus:     constvars.PaymentStatusPaid,
		CheckoutRequestID: push.CheckoutRequestID,
		GatewayMessage:    gatewayMessage,
	}, nil
}

// HandleCallback records the provider notification and settles the matching
// appointment. The provider always gets an acceptance back.
func (uc *paymentUsecase) HandleCallback(ctx context.Context, rawPayload []byte) *responses.DarajaCallbackAck {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("paymentUsecase.HandleCallback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	ack := &responses.DarajaCallbackAck{
		ResultCode: 0,
		ResultDesc: constvars.DarajaCallbackAckDesc,
	}

	var callback requests.DarajaCallback
	err := json.Unmarshal(rawPayload, &callback)
	if err != nil {
		uc.Log.Warn("paymentUsecase.HandleCallback received an unparseable payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	stk := callback.Body.STKCallback

	callbackID, err := uc.PaymentCallbackRepository.Store(ctx, &models.PaymentCallback{
		CheckoutRequestID: stk.CheckoutRequestID,
		ResultCode:        stk.ResultCode,
		ResultDesc:        stk.ResultDesc,
		Payload:           auditPayload(rawPayload),
		ReceivedAt:        uc.now().UTC(),
	})
	if err != nil {
		uc.Log.Error("paymentUsecase.HandleCallback error storing callback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if stk.CheckoutRequestID == "" || stk.ResultCode == nil {
		return ack
	}

	settled := uc.settle(ctx, stk.CheckoutRequestID, *stk.ResultCode, stk.ResultDesc)
	if settled && callbackID != "" {
		err = uc.PaymentCallbackRepository.MarkReconciled(ctx, callbackID)
		if err != nil {
			uc.Log.Warn("paymentUsecase.HandleCallback failed to flag callback reconciled",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}
	return ack
}

// ReconcileAwaitingSettlement asks the provider for the outcome of pushes
// that never got a callback. It only runs in callback mode.
func (uc *paymentUsecase) ReconcileAwaitingSettlement(ctx context.Context) (int, error) {
	if uc.InternalConfig.Payment.IsOptimistic() {
		return 0, nil
	}

	appointments, err := uc.AppointmentRepository.ListAwaitingSettlement(ctx, uc.now().Add(-uc.reconcileAfter()), reconcileBatchSize)
	if err != nil {
		return 0, err
	}

	settledCount := 0
	for i := range appointments {
		appointment := appointments[i]
		if appointment.PaymentReference == nil {
			continue
		}
		if uc.reconcileCheckout(ctx, appointment.ID, *appointment.PaymentReference) {
			settledCount++
		}
	}

	uc.Log.Info("paymentUsecase.ReconcileAwaitingSettlement finished",
		zap.Int(constvars.LoggingCountKey, settledCount),
	)
	return settledCount, nil
}

// outstandingCheckout handles a payment request for an appointment whose
// earlier push has not been settled yet. A recent push is left alone; an old
// one is queried and settled first. No second prompt is sent either way.
func (uc *paymentUsecase) outstandingCheckout(ctx context.Context, appointment *models.Appointment) error {
	checkoutID := *appointment.PaymentReference
	uc.Log.Info("paymentUsecase.RequestPayment found an outstanding checkout",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingCheckoutRequestIDKey, checkoutID),
	)

	requestedAt := appointment.PaymentRequested
	if requestedAt != nil && uc.now().Sub(*requestedAt) < uc.reconcileAfter() {
		return exceptions.ErrPaymentInProgress(nil, appointment.ID)
	}

	if uc.reconcileCheckout(ctx, appointment.ID, checkoutID) {
		return uc.notPendingAnymore(ctx, appointment.ID)
	}
	return exceptions.ErrPaymentInProgress(nil, appointment.ID)
}

// reconcileCheckout asks the provider for the outcome of checkoutID and
// settles the appointment when the provider reports a final result.
func (uc *paymentUsecase) reconcileCheckout(ctx context.Context, appointmentID, checkoutID string) bool {
	query, err := uc.PaymentGateway.QueryPayment(ctx, checkoutID)
	if err != nil {
		uc.Log.Warn("paymentUsecase.reconcileCheckout query failed",
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingCheckoutRequestIDKey, checkoutID),
			zap.Error(err),
		)
		return false
	}
	if query.ResultCode == "" {
		return false
	}
	resultCode, err := strconv.Atoi(query.ResultCode)
	if err != nil {
		uc.Log.Warn("paymentUsecase.reconcileCheckout unexpected result code",
			zap.String(constvars.LoggingCheckoutRequestIDKey, checkoutID),
			zap.String(constvars.LoggingGatewayResponseKey, query.ResultCode),
		)
		return false
	}
	return uc.settle(ctx, checkoutID, resultCode, query.ResultDesc)
}

// settle moves the appointment behind checkoutID out of pending. A settled
// appointment never moves backward; a failure reported for an already paid
// appointment is logged as a mismatch.
func (uc *paymentUsecase) settle(ctx context.Context, checkoutID string, resultCode int, resultDesc string) bool {
	requestID := utils.GetRequestID(ctx)

	appointment, err := uc.AppointmentRepository.FindByPaymentReference(ctx, checkoutID)
	if err != nil {
		uc.Log.Error("paymentUsecase.settle error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCheckoutRequestIDKey, checkoutID),
			zap.Error(err),
		)
		return false
	}
	if appointment == nil {
		uc.Log.Warn("paymentUsecase.settle no appointment matches checkout id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCheckoutRequestIDKey, checkoutID),
		)
		return false
	}

	status := constvars.PaymentStatusFailed
	if resultCode == 0 {
		status = constvars.PaymentStatusPaid
	}

	if appointment.PaymentStatus != constvars.PaymentStatusPending {
		if appointment.PaymentStatus != status {
			uc.Log.Warn("paymentUsecase.settle settlement mismatch",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
				zap.String(constvars.LoggingPaymentStatusKey, appointment.PaymentStatus),
				zap.Int(constvars.LoggingGatewayResponseKey, resultCode),
			)
			return false
		}
		return true
	}

	message := resultDesc
	moved, err := uc.AppointmentRepository.UpdatePaymentStatusFromPending(ctx, appointment.ID, status, &message)
	if err != nil {
		uc.Log.Error("paymentUsecase.settle error updating payment status",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
		return false
	}
	if !moved {
		return false
	}

	uc.notifyPatient(ctx, appointment, status, resultDesc)
	uc.Log.Info("paymentUsecase.settle appointment settled",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingPaymentStatusKey, status),
	)
	return true
}

func (uc *paymentUsecase) notifyPatient(ctx context.Context, appointment *models.Appointment, status, reason string) {
	message := fmt.Sprintf(constvars.NotificationPaymentPaidFormat, appointment.ID)
	if status == constvars.PaymentStatusFailed {
		message = fmt.Sprintf(constvars.NotificationPaymentFailedFormat, appointment.ID, reason)
	}
	_, err := uc.NotificationUsecase.Notify(ctx, &appointment.PatientID, message, constvars.NotificationCategoryPayment)
	if err != nil {
		uc.Log.Warn("paymentUsecase.notifyPatient failed",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
			zap.Error(err),
		)
	}
}

func (uc *paymentUsecase) notPendingAnymore(ctx context.Context, appointmentID string) error {
	current, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		return err
	}
	status := constvars.ResponseUnknown
	if current != nil {
		status = current.PaymentStatus
	}
	return exceptions.ErrPaymentNotPending(nil, status)
}

func (uc *paymentUsecase) paymentLockTime() time.Duration {
	if uc.InternalConfig.Payment.PaymentLockTimeInSeconds <= 0 {
		return defaultPaymentLockTime
	}
	return time.Duration(uc.InternalConfig.Payment.PaymentLockTimeInSeconds) * time.Second
}

func (uc *paymentUsecase) reconcileAfter() time.Duration {
	if uc.InternalConfig.Payment.ReconcileAfterInMinutes <= 0 {
		return defaultReconcileAfter
	}
	return time.Duration(uc.InternalConfig.Payment.ReconcileAfterInMinutes) * time.Minute
}

func (uc *paymentUsecase) accountReference(appointmentID string) string {
	if uc.InternalConfig.Daraja.AccountReference != "" {
		return uc.InternalConfig.Daraja.AccountReference
	}
	if len(appointmentID) > darajaAccountReferenceMaxChars {
		return appointmentID[:darajaAccountReferenceMaxChars]
	}
	return appointmentID
}

// auditPayload keeps the body as a document when it is JSON, else as a string.
func auditPayload(rawPayload []byte) primitive.M {
	var payload map[string]interface{}
	if err := json.Unmarshal(rawPayload, &payload); err != nil || payload == nil {
		return primitive.M{"raw": string(rawPayload)}
	}
	return primitive.M(payload)
}

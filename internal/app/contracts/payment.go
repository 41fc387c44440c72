package contracts

import (
	"context"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
)

type PaymentCallbackRepository interface {
	Store(ctx context.Context, callback *models.PaymentCallback) (string, error)
	MarkReconciled(ctx context.Context, callbackID string) error
}

type PaymentUsecase interface {
	RequestPayment(ctx context.Context, patient *models.User, appointmentID string, request *requests.RequestPayment) (*responses.RequestPayment, error)
	// HandleCallback never fails towards the provider; the returned ack is always written.
	HandleCallback(ctx context.Context, rawPayload []byte) *responses.DarajaCallbackAck
	ReconcileAwaitingSettlement(ctx context.Context) (int, error)
}

package contracts

import (
	"context"
	"medconsult-service/internal/pkg/dto/responses"
)

type PushPaymentInput struct {
	Amount           int64
	PhoneNumber      string
	AccountReference string
}

type PaymentGateway interface {
	// PushPayment returns the provider's 2xx answer, whose ResponseCode may
	// still be a rejection. 4xx answers return a payment declined error;
	// transport failures and exhausted retries a payment gateway error.
	PushPayment(ctx context.Context, input *PushPaymentInput) (*responses.DarajaSTKPush, error)
	QueryPayment(ctx context.Context, checkoutRequestID string) (*responses.DarajaSTKQuery, error)
}

package contracts

import (
	"context"
	"medconsult-service/internal/pkg/dto/requests"
)

type MailerService interface {
	SendEmail(ctx context.Context, request *requests.EmailPayload) error
}

type SMSService interface {
	SendSMS(ctx context.Context, request *requests.SMSPayload) error
}

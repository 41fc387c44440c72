package otp

import (
	"context"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
)

type otpDispatcher struct {
	Mailer         contracts.MailerService
	SMS            contracts.SMSService
	InternalConfig *config.InternalConfig
}

func NewOTPDispatcher(mailer contracts.MailerService, sms contracts.SMSService, internalConfig *config.InternalConfig) contracts.OTPDispatcher {
	return &otpDispatcher{
		Mailer:         mailer,
		SMS:            sms,
		InternalConfig: internalConfig,
	}
}

func (d *otpDispatcher) Dispatch(ctx context.Context, user *models.User, channel, code string) error {
	expiry := d.InternalConfig.OTP.ExpiredTimeInMinutes
	switch channel {
	case constvars.OTPChannelEmail:
		return d.Mailer.SendEmail(ctx, &requests.EmailPayload{
			To:      []string{user.Email},
			Subject: constvars.OTPEmailSubject,
			Body:    fmt.Sprintf(constvars.OTPEmailBodyFormat, user.DisplayName(), code, expiry),
		})
	case constvars.OTPChannelPhone:
		return d.SMS.SendSMS(ctx, &requests.SMSPayload{
			To:      user.Phone,
			Message: fmt.Sprintf(constvars.OTPSMSBodyFormat, code, expiry),
		})
	default:
		return fmt.Errorf("unsupported otp channel %q", channel)
	}
}

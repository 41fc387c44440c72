package otp

import (
	"context"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/app/services/shared/ratelimiter"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type otpLedger struct {
	PasscodeRepository contracts.PasscodeRepository
	Dispatcher         contracts.OTPDispatcher
	Limiter            *ratelimiter.ResourceLimiter
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
	generateCode       func(length int) (string, error)
	now                func() time.Time
}

func NewOTPLedger(
	passcodeRepository contracts.PasscodeRepository,
	dispatcher contracts.OTPDispatcher,
	limiter *ratelimiter.ResourceLimiter,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.OTPLedger {
	return &otpLedger{
		PasscodeRepository: passcodeRepository,
		Dispatcher:         dispatcher,
		Limiter:            limiter,
		InternalConfig:     internalConfig,
		Log:                logger,
		generateCode:       utils.GenerateOTP,
		now:                time.Now,
	}
}

// IssueOTP stores a fresh code for the user and channel. Codes issued
// earlier stay valid until their own expiry.
func (l *otpLedger) IssueOTP(ctx context.Context, user *models.User, channel string) (*models.Passcode, error) {
	requestID := utils.GetRequestID(ctx)
	l.Log.Info("otpLedger.IssueOTP called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String(constvars.LoggingChannelKey, channel),
	)

	now := l.now().UTC()
	window := l.expiryWindow()

	limit, err := l.Limiter.ApplyResourceLimiter(ctx, &ratelimiter.ApplyResourceLimiterInput{
		ResourceName:     fmt.Sprintf("%s:%s", channel, user.ID),
		LimiterGroupName: constvars.OTPLimiterGroup,
		WindowDuration:   window,
		MaxQuota:         l.InternalConfig.OTP.MaxIssuePerWindow,
		NowUTC:           now,
	})
	if err != nil {
		return nil, err
	}
	if !limit.Allowed {
		l.Log.Warn("otpLedger.IssueOTP issue limit reached",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, user.ID),
		)
		return nil, exceptions.ErrTooManyRequests(nil, user.ID)
	}

	code, err := l.generateCode(l.InternalConfig.OTP.Length)
	if err != nil {
		return nil, exceptions.ErrOTPGenerate(err)
	}

	passcode, err := l.PasscodeRepository.Create(ctx, &models.Passcode{
		UserID:    user.ID,
		CodeHash:  utils.HashOTP(l.InternalConfig.JWT.Secret, code),
		Channel:   channel,
		ExpiresAt: now.Add(window),
		CreatedAt: now,
	})
	if err != nil {
		l.Log.Error("otpLedger.IssueOTP error storing passcode",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = l.Dispatcher.Dispatch(ctx, user, channel, code)
	if err != nil {
		l.Log.Warn("otpLedger.IssueOTP dispatch failed, passcode kept",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingChannelKey, channel),
			zap.Error(err),
		)
	}

	return passcode, nil
}

func (l *otpLedger) VerifyOTP(ctx context.Context, user *models.User, channel, code string) (*models.Passcode, error) {
	requestID := utils.GetRequestID(ctx)
	l.Log.Info("otpLedger.VerifyOTP called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
		zap.String(constvars.LoggingChannelKey, channel),
	)

	codeHash := utils.HashOTP(l.InternalConfig.JWT.Secret, code)
	passcode, err := l.PasscodeRepository.Consume(ctx, user.ID, channel, codeHash, l.now().UTC())
	if err != nil {
		return nil, err
	}
	if passcode == nil {
		return nil, exceptions.ErrOTPInvalidOrExpired(nil)
	}
	return passcode, nil
}

func (l *otpLedger) expiryWindow() time.Duration {
	minutes := l.InternalConfig.OTP.ExpiredTimeInMinutes
	if minutes <= 0 {
		minutes = 10
	}
	return time.Duration(minutes) * time.Minute
}

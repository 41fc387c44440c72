package contracts

import (
	"context"
	"medconsult-service/internal/app/models"
	"time"
)

type PasscodeRepository interface {
	Create(ctx context.Context, passcode *models.Passcode) (*models.Passcode, error)
	// Consume atomically marks the newest outstanding match consumed and
	// returns it, or returns nil when nothing matched.
	Consume(ctx context.Context, userID, channel, codeHash string, now time.Time) (*models.Passcode, error)
}

type OTPLedger interface {
	IssueOTP(ctx context.Context, user *models.User, channel string) (*models.Passcode, error)
	VerifyOTP(ctx context.Context, user *models.User, channel, code string) (*models.Passcode, error)
}

// OTPDispatcher delivers a code over the channel. Failures are reported
// to the caller but never undo issuance.
type OTPDispatcher interface {
	Dispatch(ctx context.Context, user *models.User, channel, code string) error
}

package otp

import (
	"context"
	"errors"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts/mocks"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/app/services/shared/ratelimiter"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memoryPasscodes mirrors the conditional consume of the postgres query.
type memoryPasscodes struct {
	mu   sync.Mutex
	rows []*models.Passcode
}

func (m *memoryPasscodes) Create(ctx context.Context, passcode *models.Passcode) (*models.Passcode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *passcode
	stored.ID = uuid.NewString()
	m.rows = append(m.rows, &stored)
	return &stored, nil
}

func (m *memoryPasscodes) Consume(ctx context.Context, userID, channel, codeHash string, now time.Time) (*models.Passcode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	candidates := make([]*models.Passcode, 0)
	for _, row := range m.rows {
		if row.UserID == userID && row.Channel == channel && row.CodeHash == codeHash && !row.Consumed && row.ExpiresAt.After(now) {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].CreatedAt.After(candidates[j].CreatedAt) })
	winner := candidates[0]
	winner.Consumed = true
	winner.ConsumedAt = &now
	consumed := *winner
	return &consumed, nil
}

type otpFixture struct {
	ledger     *otpLedger
	passcodes  *memoryPasscodes
	dispatcher *mocks.OTPDispatcher
	redis      *mocks.RedisRepository
	clock      time.Time
}

func newOTPFixture(t *testing.T) *otpFixture {
	t.Helper()
	fixture := &otpFixture{
		passcodes:  &memoryPasscodes{},
		dispatcher: new(mocks.OTPDispatcher),
		redis:      new(mocks.RedisRepository),
		clock:      time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
	}
	internalConfig := &config.InternalConfig{
		JWT: config.AppJWT{Secret: "test-secret"},
		OTP: config.AppOTP{Length: 6, ExpiredTimeInMinutes: 10, MaxIssuePerWindow: 3},
	}
	logger := zap.NewNop()
	ledger := NewOTPLedger(fixture.passcodes, fixture.dispatcher, ratelimiter.NewResourceLimiter(fixture.redis, logger), internalConfig, logger).(*otpLedger)
	ledger.now = func() time.Time { return fixture.clock }
	ledger.generateCode = func(int) (string, error) { return "123456", nil }
	fixture.ledger = ledger
	return fixture
}

func testUser() *models.User {
	return &models.User{ID: "user-1", Email: "jane@example.com", Phone: "254712345678", Role: constvars.RolePatient}
}

func TestOTPLedger_IssueAndVerifyOnce(t *testing.T) {
	fixture := newOTPFixture(t)
	user := testUser()
	fixture.redis.On("IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	fixture.dispatcher.On("Dispatch", mock.Anything, user, constvars.OTPChannelEmail, "123456").Return(nil)

	issued, err := fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelEmail)
	require.NoError(t, err)
	assert.Equal(t, fixture.clock.Add(10*time.Minute), issued.ExpiresAt)

	consumed, err := fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelEmail, "123456")
	require.NoError(t, err)
	assert.Equal(t, issued.ID, consumed.ID)

	_, err = fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelEmail, "123456")
	assert.True(t, exceptions.Is(err, exceptions.CodeInvalidOrExpiredOTP))
	fixture.dispatcher.AssertExpectations(t)
}

func TestOTPLedger_VerifyRejections(t *testing.T) {
	fixture := newOTPFixture(t)
	user := testUser()
	fixture.redis.On("IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	fixture.dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelEmail, "000000")
	assert.True(t, exceptions.Is(err, exceptions.CodeInvalidOrExpiredOTP), "never issued")

	_, err = fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelEmail)
	require.NoError(t, err)

	_, err = fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelPhone, "123456")
	assert.True(t, exceptions.Is(err, exceptions.CodeInvalidOrExpiredOTP), "wrong channel")

	fixture.clock = fixture.clock.Add(10 * time.Minute)
	_, err = fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelEmail, "123456")
	assert.True(t, exceptions.Is(err, exceptions.CodeInvalidOrExpiredOTP), "expired")
}

func TestOTPLedger_ConcurrentVerifyHasOneWinner(t *testing.T) {
	fixture := newOTPFixture(t)
	user := testUser()
	fixture.redis.On("IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	fixture.dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelPhone)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelPhone, "123456"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestOTPLedger_ReissueKeepsEarlierCodes(t *testing.T) {
	fixture := newOTPFixture(t)
	user := testUser()
	fixture.redis.On("IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	fixture.dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelEmail)
	require.NoError(t, err)

	fixture.ledger.generateCode = func(int) (string, error) { return "654321", nil }
	fixture.clock = fixture.clock.Add(time.Minute)
	_, err = fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelEmail)
	require.NoError(t, err)

	_, err = fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelEmail, "123456")
	assert.NoError(t, err)
	_, err = fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelEmail, "654321")
	assert.NoError(t, err)
}

func TestOTPLedger_DispatchFailureKeepsPasscode(t *testing.T) {
	fixture := newOTPFixture(t)
	user := testUser()
	fixture.redis.On("IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	fixture.dispatcher.On("Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	issued, err := fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelEmail)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)
	assert.Len(t, fixture.passcodes.rows, 1)
}

func TestOTPLedger_IssueLimit(t *testing.T) {
	fixture := newOTPFixture(t)
	user := testUser()
	fixture.redis.On("IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything).Return(int64(4), nil)

	_, err := fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelEmail)
	assert.True(t, exceptions.Is(err, exceptions.CodeTooManyRequests))
	assert.Empty(t, fixture.passcodes.rows)
	fixture.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOTPLedger_StoresOnlyCodeDigest(t *testing.T) {
	fixture := newOTPFixture(t)
	user := testUser()
	fixture.redis.On("IncrementWithExpiry", mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	fixture.dispatcher.On("Dispatch", mock.Anything, user, constvars.OTPChannelEmail, "123456").Return(nil)

	_, err := fixture.ledger.IssueOTP(context.Background(), user, constvars.OTPChannelEmail)
	require.NoError(t, err)

	require.Len(t, fixture.passcodes.rows, 1)
	stored := fixture.passcodes.rows[0].CodeHash
	assert.NotContains(t, stored, "123456")
	assert.Equal(t, utils.HashOTP("test-secret", "123456"), stored)
	assert.Len(t, stored, 64)

	fixture.ledger.InternalConfig.JWT.Secret = "rotated"
	_, err = fixture.ledger.VerifyOTP(context.Background(), user, constvars.OTPChannelEmail, "123456")
	assert.True(t, exceptions.Is(err, exceptions.CodeInvalidOrExpiredOTP), "digest is keyed")
}

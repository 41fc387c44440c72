// Package mocks holds testify mocks for the contracts package.
package mocks

import (
	"context"
	"io"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"time"

	"github.com/stretchr/testify/mock"
)

type RedisRepository struct {
	mock.Mock
}

func (m *RedisRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *RedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	return m.Called(ctx, key, value, exp).Error(0)
}

func (m *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *RedisRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepository) IncrementWithExpiry(ctx context.Context, key string, exp time.Duration) (int64, error) {
	args := m.Called(ctx, key, exp)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *RedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	return m.Called(ctx, key, exp).Error(0)
}

type LockerService struct {
	mock.Mock
}

func (m *LockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *LockerService) Unlock(ctx context.Context, key, lockValue string) error {
	return m.Called(ctx, key, lockValue).Error(0)
}

func (m *LockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	return m.Called(ctx, key, lockValue, expiration).Error(0)
}

// TransactionManager runs fn directly and counts the calls.
type TransactionManager struct {
	Calls int
}

func (m *TransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Calls++
	return fn(ctx)
}

type TokenService struct {
	mock.Mock
}

func (m *TokenService) Issue(subjectID string) (string, *contracts.TokenClaims, error) {
	args := m.Called(subjectID)
	claims, _ := args.Get(1).(*contracts.TokenClaims)
	return args.String(0), claims, args.Error(2)
}

func (m *TokenService) Validate(token string) (*contracts.TokenClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*contracts.TokenClaims)
	return claims, args.Error(1)
}

type StorageService struct {
	mock.Mock
}

func (m *StorageService) UploadFile(ctx context.Context, file io.Reader, size int64, contentType, objectName string) (string, error) {
	args := m.Called(ctx, file, size, contentType, objectName)
	return args.String(0), args.Error(1)
}

func (m *StorageService) GetFile(ctx context.Context, objectName string) (io.ReadCloser, *contracts.StoredObjectInfo, error) {
	args := m.Called(ctx, objectName)
	content, _ := args.Get(0).(io.ReadCloser)
	info, _ := args.Get(1).(*contracts.StoredObjectInfo)
	return content, info, args.Error(2)
}

type MailerService struct {
	mock.Mock
}

func (m *MailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	return m.Called(ctx, request).Error(0)
}

type SMSService struct {
	mock.Mock
}

func (m *SMSService) SendSMS(ctx context.Context, request *requests.SMSPayload) error {
	return m.Called(ctx, request).Error(0)
}

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) PushPayment(ctx context.Context, input *contracts.PushPaymentInput) (*responses.DarajaSTKPush, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).(*responses.DarajaSTKPush)
	return result, args.Error(1)
}

func (m *PaymentGateway) QueryPayment(ctx context.Context, checkoutRequestID string) (*responses.DarajaSTKQuery, error) {
	args := m.Called(ctx, checkoutRequestID)
	result, _ := args.Get(0).(*responses.DarajaSTKQuery)
	return result, args.Error(1)
}

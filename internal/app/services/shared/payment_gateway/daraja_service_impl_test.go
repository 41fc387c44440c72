package payment_gateway

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/contracts/mocks"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/exceptions"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDaraja(t *testing.T, handler http.HandlerFunc) (*darajaService, *mocks.RedisRepository) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	redis := new(mocks.RedisRepository)
	redis.On("Get", mock.Anything, constvars.RedisKeyDarajaAccessToken).Return("", nil).Maybe()
	redis.On("Set", mock.Anything, constvars.RedisKeyDarajaAccessToken, "token-1", mock.Anything).Return(nil).Maybe()
	redis.On("Delete", mock.Anything, constvars.RedisKeyDarajaAccessToken).Return(nil).Maybe()

	internalConfig := &config.InternalConfig{Daraja: config.AppDaraja{
		BaseUrl:                 server.URL,
		ConsumerKey:             "key",
		ConsumerSecret:          "secret",
		Passkey:                 "passkey",
		Shortcode:               "174379",
		CallbackURL:             "https://example.test/callback",
		RequestTimeoutInSeconds: 5,
		MaxRetries:              2,
		RetryBackoffInMillis:    1,
	}}
	service := NewDarajaService(internalConfig, redis, zap.NewNop()).(*darajaService)
	service.now = func() time.Time { return time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC) }
	service.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return service, redis
}

func serveOAuth(w http.ResponseWriter, r *http.Request) bool {
	if r.URL.Path != "/oauth/v1/generate" {
		return false
	}
	_, _ = w.Write([]byte(`{"access_token":"token-1","expires_in":"3599"}`))
	return true
}

func TestDarajaService_PushPaymentAccepted(t *testing.T) {
	var received requests.DarajaSTKPush
	service, redis := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		if serveOAuth(w, r) {
			return
		}
		assert.Equal(t, constvars.DarajaSTKPushPath, r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get(constvars.HeaderAuthorization))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"MerchantRequestID":"M-1","CheckoutRequestID":"ws_CO_1","ResponseCode":"0","ResponseDescription":"Success. Request accepted for processing","CustomerMessage":"Success. Request accepted for processing"}`))
	})

	result, err := service.PushPayment(context.Background(), &contracts.PushPaymentInput{
		Amount:           1000,
		PhoneNumber:      "254712345678",
		AccountReference: "AP1",
	})
	require.NoError(t, err)
	assert.True(t, result.Accepted())
	assert.Equal(t, "ws_CO_1", result.CheckoutRequestID)

	assert.Equal(t, "20240601090000", received.Timestamp)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("174379passkey20240601090000")), received.Password)
	assert.Equal(t, int64(1000), received.Amount)
	assert.Equal(t, "254712345678", received.PartyA)
	assert.Equal(t, "174379", received.PartyB)
	redis.AssertCalled(t, "Set", mock.Anything, constvars.RedisKeyDarajaAccessToken, "token-1", 3539*time.Second)
}

func TestDarajaService_PushPaymentRetriesServerErrors(t *testing.T) {
	var attempts int32
	service, _ := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		if serveOAuth(w, r) {
			return
		}
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"CheckoutRequestID":"ws_CO_2","ResponseCode":"0"}`))
	})

	result, err := service.PushPayment(context.Background(), &contracts.PushPaymentInput{Amount: 1, PhoneNumber: "254700000001"})
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_2", result.CheckoutRequestID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestDarajaService_PushPaymentGivesUpAfterRetries(t *testing.T) {
	var attempts int32
	service, _ := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		if serveOAuth(w, r) {
			return
		}
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := service.PushPayment(context.Background(), &contracts.PushPaymentInput{Amount: 1, PhoneNumber: "254700000001"})
	assert.Equal(t, exceptions.CodePaymentGatewayError, exceptions.CodeOf(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestDarajaService_PushPaymentClientErrorIsNotRetried(t *testing.T) {
	var attempts int32
	service, _ := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		if serveOAuth(w, r) {
			return
		}
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorCode":"400.002.02","errorMessage":"Bad Request - Invalid PhoneNumber"}`))
	})

	_, err := service.PushPayment(context.Background(), &contracts.PushPaymentInput{Amount: 1, PhoneNumber: "12"})
	require.Error(t, err)
	assert.Equal(t, exceptions.CodePaymentDeclined, exceptions.CodeOf(err))

	customErr, ok := err.(*exceptions.CustomError)
	require.True(t, ok)
	assert.Equal(t, "Bad Request - Invalid PhoneNumber", customErr.ClientMessage)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestDarajaService_ExpiredTokenIsRefetched(t *testing.T) {
	var oauthCalls, pushCalls int32
	service, redis := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/v1/generate" {
			atomic.AddInt32(&oauthCalls, 1)
			_, _ = w.Write([]byte(`{"access_token":"token-1","expires_in":"3599"}`))
			return
		}
		if atomic.AddInt32(&pushCalls, 1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"CheckoutRequestID":"ws_CO_3","ResponseCode":"0"}`))
	})

	result, err := service.PushPayment(context.Background(), &contracts.PushPaymentInput{Amount: 1, PhoneNumber: "254700000001"})
	require.NoError(t, err)
	assert.Equal(t, "ws_CO_3", result.CheckoutRequestID)
	assert.Equal(t, int32(2), atomic.LoadInt32(&oauthCalls))
	redis.AssertCalled(t, "Delete", mock.Anything, constvars.RedisKeyDarajaAccessToken)
}

func TestDarajaService_QueryPaymentUsesCachedToken(t *testing.T) {
	service, redis := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, "/oauth/v1/generate", r.URL.Path)
		assert.Equal(t, "Bearer cached-token", r.Header.Get(constvars.HeaderAuthorization))
		var body requests.DarajaSTKQuery
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ws_CO_9", body.CheckoutRequestID)
		_, _ = w.Write([]byte(`{"ResponseCode":"0","CheckoutRequestID":"ws_CO_9","ResultCode":"1032","ResultDesc":"Request cancelled by user"}`))
	})
	redis.ExpectedCalls = nil
	redis.On("Get", mock.Anything, constvars.RedisKeyDarajaAccessToken).Return(`"cached-token"`, nil)

	result, err := service.QueryPayment(context.Background(), "ws_CO_9")
	require.NoError(t, err)
	assert.Equal(t, "1032", result.ResultCode)
	assert.Equal(t, "Request cancelled by user", result.ResultDesc)
}

func TestDarajaService_PushPaymentTimeoutIsNotRetried(t *testing.T) {
	var attempts int32
	service, _ := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		if serveOAuth(w, r) {
			return
		}
		atomic.AddInt32(&attempts, 1)
		time.Sleep(200 * time.Millisecond)
	})
	service.HTTPClient.Timeout = 50 * time.Millisecond
	service.Redis.(*mocks.RedisRepository).ExpectedCalls = nil
	service.Redis.(*mocks.RedisRepository).On("Get", mock.Anything, constvars.RedisKeyDarajaAccessToken).Return(`"cached-token"`, nil)

	_, err := service.PushPayment(context.Background(), &contracts.PushPaymentInput{Amount: 1, PhoneNumber: "254700000001"})
	assert.Equal(t, exceptions.CodePaymentGatewayError, exceptions.CodeOf(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestDarajaService_QueryPaymentTimeoutIsRetried(t *testing.T) {
	var attempts int32
	service, _ := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		if serveOAuth(w, r) {
			return
		}
		atomic.AddInt32(&attempts, 1)
		time.Sleep(200 * time.Millisecond)
	})
	service.HTTPClient.Timeout = 50 * time.Millisecond
	service.Redis.(*mocks.RedisRepository).ExpectedCalls = nil
	service.Redis.(*mocks.RedisRepository).On("Get", mock.Anything, constvars.RedisKeyDarajaAccessToken).Return(`"cached-token"`, nil)

	_, err := service.QueryPayment(context.Background(), "ws_CO_1")
	assert.Equal(t, exceptions.CodePaymentGatewayError, exceptions.CodeOf(err))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestDarajaService_PushPaymentRetriesRefusedConnections(t *testing.T) {
	service, redis := newTestDaraja(t, func(w http.ResponseWriter, r *http.Request) {})
	closed := httptest.NewServer(http.NotFoundHandler())
	service.Config.BaseUrl = closed.URL
	closed.Close()

	redis.ExpectedCalls = nil
	redis.On("Get", mock.Anything, constvars.RedisKeyDarajaAccessToken).Return(`"cached-token"`, nil)

	var sleeps int32
	service.sleep = func(ctx context.Context, d time.Duration) error {
		atomic.AddInt32(&sleeps, 1)
		return nil
	}

	_, err := service.PushPayment(context.Background(), &contracts.PushPaymentInput{Amount: 1, PhoneNumber: "254700000001"})
	assert.Equal(t, exceptions.CodePaymentGatewayError, exceptions.CodeOf(err))
	assert.Equal(t, int32(2), atomic.LoadInt32(&sleeps))
}

func TestRequestNotSent(t *testing.T) {
	assert.True(t, requestNotSent(&net.OpError{Op: "dial", Err: errors.New("connection refused")}))
	assert.True(t, requestNotSent(fmt.Errorf("%w: %w", errAccessTokenUnavailable, errors.New("oauth 503"))))
	assert.False(t, requestNotSent(&net.OpError{Op: "read", Err: errors.New("i/o timeout")}))
	assert.False(t, requestNotSent(context.DeadlineExceeded))
}

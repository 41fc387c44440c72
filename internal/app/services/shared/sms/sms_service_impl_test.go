package sms

import (
	"context"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/pkg/dto/requests"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSMSService(t *testing.T, apiURL string, sendTimeoutMs int) *smsService {
	t.Helper()
	internalConfig := &config.InternalConfig{
		SMS:    config.AppSMS{ApiUrl: apiURL, ApiKey: "sms-key"},
		Mailer: config.AppMailer{SendTimeoutMs: sendTimeoutMs},
	}
	service, err := NewSMSService(nil, internalConfig, zap.NewNop())
	require.NoError(t, err)
	return service.(*smsService)
}

func TestNewSMSService_HTTPClientTimeout(t *testing.T) {
	t.Run("defaults when no send timeout", func(t *testing.T) {
		service := newTestSMSService(t, "", 0)
		assert.Equal(t, defaultSMSHTTPTimeout, service.HTTPClient.Timeout)
	})

	t.Run("follows send timeout", func(t *testing.T) {
		service := newTestSMSService(t, "", 1500)
		assert.Equal(t, 1500*time.Millisecond, service.HTTPClient.Timeout)
	})
}

func TestSMSService_SendSMS(t *testing.T) {
	t.Run("posts payload with api key", func(t *testing.T) {
		var received requests.SMSPayload
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		service := newTestSMSService(t, server.URL, 0)
		err := service.SendSMS(context.Background(), &requests.SMSPayload{To: "254700000001", Message: "Your code is 123456"})
		require.NoError(t, err)
		assert.Equal(t, "254700000001", received.To)
		assert.Equal(t, "sms-key", received.ApiKey)
	})

	t.Run("provider error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		service := newTestSMSService(t, server.URL, 0)
		err := service.SendSMS(context.Background(), &requests.SMSPayload{To: "254700000001", Message: "hi"})
		assert.Error(t, err)
	})

	t.Run("hung provider is cut off", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
		}))
		defer server.Close()
		defer close(release)

		service := newTestSMSService(t, server.URL, 0)
		service.HTTPClient.Timeout = 50 * time.Millisecond

		started := time.Now()
		err := service.SendSMS(context.Background(), &requests.SMSPayload{To: "254700000001", Message: "hi"})
		assert.Error(t, err)
		assert.Less(t, time.Since(started), time.Second)
	})

	t.Run("no transport logs only", func(t *testing.T) {
		service := newTestSMSService(t, "", 0)
		assert.NoError(t, service.SendSMS(context.Background(), &requests.SMSPayload{To: "254700000001", Message: "hi"}))
	})
}

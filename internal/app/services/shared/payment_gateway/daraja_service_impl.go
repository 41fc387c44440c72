package payment_gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	errUnauthorizedAccessToken = errors.New("daraja rejected the cached access token")
	errAccessTokenUnavailable  = errors.New("daraja access token unavailable")
)

type darajaService struct {
	Config     config.AppDaraja
	HTTPClient *http.Client
	Redis      contracts.RedisRepository
	Log        *zap.Logger
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewDarajaService(internalConfig *config.InternalConfig, redisRepository contracts.RedisRepository, logger *zap.Logger) contracts.PaymentGateway {
	return &darajaService{
		Config: internalConfig.Daraja,
		HTTPClient: &http.Client{
			Timeout: time.Duration(internalConfig.Daraja.RequestTimeoutInSeconds) * time.Second,
		},
		Redis: redisRepository,
		Log:   logger,
		now:   time.Now,
		sleep: sleepContext,
	}
}

func (s *darajaService) PushPayment(ctx context.Context, input *contracts.PushPaymentInput) (*responses.DarajaSTKPush, error) {
	requestID := utils.GetRequestID(ctx)
	s.Log.Info("darajaService.PushPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String("account_reference", input.AccountReference),
	)

	timestamp := s.now().In(nairobi).Format(constvars.DarajaTimestampLayout)
	payload := &requests.DarajaSTKPush{
		BusinessShortCode: s.Config.Shortcode,
		Password:          s.password(timestamp),
		Timestamp:         timestamp,
		TransactionType:   constvars.DarajaTransactionType,
		Amount:            input.Amount,
		PartyA:            input.PhoneNumber,
		PartyB:            s.Config.Shortcode,
		PhoneNumber:       input.PhoneNumber,
		CallBackURL:       s.Config.CallbackURL,
		AccountReference:  input.AccountReference,
		TransactionDesc:   constvars.DarajaTransactionDesc,
	}

	result := new(responses.DarajaSTKPush)
	err := s.doWithRetry(ctx, constvars.DarajaSTKPushPath, payload, result, false)
	if err != nil {
		return nil, err
	}

	s.Log.Info("darajaService.PushPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCheckoutRequestIDKey, result.CheckoutRequestID),
		zap.String(constvars.LoggingGatewayResponseKey, result.ResponseCode),
	)
	return result, nil
}

func (s *darajaService) QueryPayment(ctx context.Context, checkoutRequestID string) (*responses.DarajaSTKQuery, error) {
	timestamp := s.now().In(nairobi).Format(constvars.DarajaTimestampLayout)
	payload := &requests.DarajaSTKQuery{
		BusinessShortCode: s.Config.Shortcode,
		Password:          s.password(timestamp),
		Timestamp:         timestamp,
		CheckoutRequestID: checkoutRequestID,
	}

	result := new(responses.DarajaSTKQuery)
	err := s.doWithRetry(ctx, constvars.DarajaSTKQueryPath, payload, result, true)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// doWithRetry posts payload and decodes a 2xx body into out. 5xx and 429 are
// retried with exponential backoff; other 4xx are declines carrying the
// provider message. Transport errors are retried when the call is idempotent
// or when the request never reached the provider.
func (s *darajaService) doWithRetry(ctx context.Context, path string, payload, out interface{}, idempotent bool) error {
	requestID := utils.GetRequestID(ctx)
	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	attempts := s.Config.MaxRetries + 1
	if attempts < 1 {
		attempts = 1
	}
	backoff := time.Duration(s.Config.RetryBackoffInMillis) * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			wait := backoff * time.Duration(1<<(attempt-2))
			if err := s.sleep(ctx, wait); err != nil {
				return exceptions.ErrPaymentGateway(err)
			}
		}

		statusCode, respBody, err := s.post(ctx, path, body)
		switch {
		case errors.Is(err, errUnauthorizedAccessToken):
			lastErr = err
		case err != nil:
			if ctx.Err() != nil {
				return exceptions.ErrPaymentGateway(ctx.Err())
			}
			var customErr *exceptions.CustomError
			if errors.As(err, &customErr) {
				return err
			}
			if !idempotent && !requestNotSent(err) {
				s.Log.Warn("darajaService.doWithRetry outcome unknown, not retrying",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingEndpointKey, path),
					zap.Error(err),
				)
				return exceptions.ErrPaymentGateway(err)
			}
			lastErr = err
		case statusCode >= constvars.StatusInternalServerError || statusCode == constvars.StatusTooManyRequests:
			lastErr = fmt.Errorf("daraja responded with status %d: %s", statusCode, truncate(respBody))
		case statusCode >= constvars.StatusBadRequest:
			code, message := declineDetails(statusCode, respBody)
			return exceptions.ErrPaymentDeclined(code, message)
		default:
			err = json.Unmarshal(respBody, out)
			if err != nil {
				return exceptions.ErrPaymentGateway(fmt.Errorf("decode daraja response: %w", err))
			}
			return nil
		}

		s.Log.Warn("darajaService.doWithRetry attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEndpointKey, path),
			zap.Int(constvars.LoggingAttemptKey, attempt),
			zap.Error(lastErr),
		)
	}

	return exceptions.ErrPaymentGateway(lastErr)
}

func (s *darajaService) post(ctx context.Context, path string, body []byte) (int, []byte, error) {
	token, err := s.accessToken(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %w", errAccessTokenUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.Config.BaseUrl+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAuthorization, constvars.AuthorizationBearerPrefix+token)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	if resp.StatusCode == constvars.StatusUnauthorized {
		s.forgetAccessToken(ctx)
		return resp.StatusCode, respBody, errUnauthorizedAccessToken
	}
	return resp.StatusCode, respBody, nil
}

// accessToken returns the cached OAuth token or fetches a new one. A cache
// failure only costs an extra OAuth round trip.
func (s *darajaService) accessToken(ctx context.Context) (string, error) {
	cached, err := s.Redis.Get(ctx, constvars.RedisKeyDarajaAccessToken)
	if err != nil {
		s.Log.Warn("darajaService.accessToken cache read failed", zap.Error(err))
	}
	if cached != "" {
		var token string
		if json.Unmarshal([]byte(cached), &token) == nil && token != "" {
			return token, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, s.Config.BaseUrl+constvars.DarajaOAuthPath, nil)
	if err != nil {
		return "", exceptions.ErrCreateHTTPRequest(err)
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(s.Config.ConsumerKey + ":" + s.Config.ConsumerSecret))
	req.Header.Set(constvars.HeaderAuthorization, "Basic "+credentials)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != constvars.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		oauthErr := fmt.Errorf("daraja oauth responded with status %d: %s", resp.StatusCode, truncate(respBody))
		if resp.StatusCode >= constvars.StatusInternalServerError || resp.StatusCode == constvars.StatusTooManyRequests {
			return "", oauthErr
		}
		return "", exceptions.ErrPaymentGateway(oauthErr)
	}

	var oauth responses.DarajaOAuth
	err = json.NewDecoder(resp.Body).Decode(&oauth)
	if err != nil || oauth.AccessToken == "" {
		return "", exceptions.ErrPaymentGateway(fmt.Errorf("invalid daraja oauth response: %v", err))
	}

	expiresIn, _ := strconv.Atoi(strings.TrimSpace(oauth.ExpiresIn))
	ttl := time.Duration(expiresIn-constvars.RedisDarajaTokenSafetyMargin) * time.Second
	if ttl > 0 {
		if err := s.Redis.Set(ctx, constvars.RedisKeyDarajaAccessToken, oauth.AccessToken, ttl); err != nil {
			s.Log.Warn("darajaService.accessToken cache write failed", zap.Error(err))
		}
	}

	return oauth.AccessToken, nil
}

func (s *darajaService) forgetAccessToken(ctx context.Context) {
	if err := s.Redis.Delete(ctx, constvars.RedisKeyDarajaAccessToken); err != nil {
		s.Log.Warn("darajaService.forgetAccessToken failed", zap.Error(err))
	}
}

// requestNotSent reports whether err happened before the request reached the
// provider.
func requestNotSent(err error) bool {
	if errors.Is(err, errAccessTokenUnavailable) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

func (s *darajaService) password(timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(s.Config.Shortcode + s.Config.Passkey + timestamp))
}

func declineDetails(statusCode int, body []byte) (string, string) {
	var parsed responses.DarajaSTKPush
	if json.Unmarshal(body, &parsed) == nil {
		code := parsed.ErrorCode
		if code == "" {
			code = parsed.ResponseCode
		}
		if message := parsed.Message(); message != "" {
			return code, message
		}
	}
	return strconv.Itoa(statusCode), http.StatusText(statusCode)
}

func truncate(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit])
	}
	return string(body)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

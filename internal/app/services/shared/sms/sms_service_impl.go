package sms

import (
	"bytes"
	"context"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const defaultSMSHTTPTimeout = 10 * time.Second

type smsService struct {
	Channel     *amqp091.Channel
	Queue       string
	ApiUrl      string
	ApiKey      string
	HTTPClient  *http.Client
	SendTimeout time.Duration
	Log         *zap.Logger
}

// NewSMSService picks RabbitMQ, then the provider HTTP API, then a log-only stub.
func NewSMSService(rabbitMQConnection *amqp091.Connection, internalConfig *config.InternalConfig, logger *zap.Logger) (contracts.SMSService, error) {
	sendTimeout := time.Duration(internalConfig.Mailer.SendTimeoutMs) * time.Millisecond
	httpTimeout := sendTimeout
	if httpTimeout <= 0 {
		httpTimeout = defaultSMSHTTPTimeout
	}

	service := &smsService{
		Queue:  internalConfig.Mailer.SMSQueue,
		ApiUrl: internalConfig.SMS.ApiUrl,
		ApiKey: internalConfig.SMS.ApiKey,
		HTTPClient: &http.Client{
			Timeout: httpTimeout,
		},
		SendTimeout: sendTimeout,
		Log:         logger,
	}

	if rabbitMQConnection != nil {
		channel, err := rabbitMQConnection.Channel()
		if err != nil {
			return nil, err
		}
		_, err = channel.QueueDeclare(service.Queue, true, false, false, false, nil)
		if err != nil {
			return nil, err
		}
		service.Channel = channel
	}

	return service, nil
}

func (s *smsService) SendSMS(ctx context.Context, request *requests.SMSPayload) error {
	requestID := utils.GetRequestID(ctx)

	if s.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SendTimeout)
		defer cancel()
	}

	switch {
	case s.Channel != nil:
		return s.publish(ctx, request)
	case s.ApiUrl != "":
		return s.post(ctx, request)
	default:
		s.Log.Info("smsService.SendSMS no transport configured, message logged only",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("to", request.To),
			zap.String("message", request.Message),
		)
		return nil
	}
}

func (s *smsService) publish(ctx context.Context, request *requests.SMSPayload) error {
	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Headers: amqp091.Table{
			constvars.AMQPHeaderMessageType: constvars.AMQPMessageTypeJSON,
			constvars.AMQPHeaderRequeue:     constvars.AMQPRequeueStrategyDrop,
		},
	}

	err = s.Channel.PublishWithContext(ctx, "", s.Queue, false, false, message)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.Queue)
	}
	return nil
}

func (s *smsService) post(ctx context.Context, request *requests.SMSPayload) error {
	payload := *request
	payload.ApiKey = s.ApiKey

	body, err := json.Marshal(payload)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.ApiUrl, bytes.NewBuffer(body))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= constvars.StatusBadRequest {
		return exceptions.ErrSendHTTPRequest(fmt.Errorf("sms provider responded with status %d", resp.StatusCode))
	}
	return nil
}

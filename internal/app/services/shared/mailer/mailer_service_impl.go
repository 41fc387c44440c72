package mailer

import (
	"context"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/drivers/mailer"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net/smtp"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type mailerService struct {
	Channel     *amqp091.Channel
	Client      *mailer.SMTPClient
	Queue       string
	Sender      string
	SendTimeout time.Duration
	Log         *zap.Logger
}

// NewMailerService publishes to RabbitMQ when a connection is given, else
// sends through SMTP when a client is given, else only logs the message.
func NewMailerService(client *mailer.SMTPClient, rabbitMQConnection *amqp091.Connection, internalConfig *config.InternalConfig, logger *zap.Logger) (contracts.MailerService, error) {
	service := &mailerService{
		Client:      client,
		Queue:       internalConfig.Mailer.MailerQueue,
		Sender:      internalConfig.Mailer.EmailSender,
		SendTimeout: time.Duration(internalConfig.Mailer.SendTimeoutMs) * time.Millisecond,
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

func (s *mailerService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	requestID := utils.GetRequestID(ctx)
	if request.From == "" {
		request.From = s.Sender
	}

	if s.SendTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.SendTimeout)
		defer cancel()
	}

	switch {
	case s.Channel != nil:
		return s.publish(ctx, request)
	case s.Client != nil:
		return s.sendSMTP(ctx, request)
	default:
		s.Log.Info("mailerService.SendEmail no transport configured, message logged only",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings("to", request.To),
			zap.String("subject", request.Subject),
			zap.String("body", request.Body),
		)
		return nil
	}
}

func (s *mailerService) publish(ctx context.Context, request *requests.EmailPayload) error {
	body, err := json.Marshal(request)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
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

// net/smtp has no context support, so the send runs in a goroutine and the
// caller stops waiting when ctx ends.
func (s *mailerService) sendSMTP(ctx context.Context, request *requests.EmailPayload) error {
	message := []byte(fmt.Sprintf(constvars.EmailPlainMessageFormat, request.From, strings.Join(request.To, ", "), request.Subject, request.Body))
	addr := fmt.Sprintf("%s:%d", s.Client.Host, s.Client.Port)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, s.Client.Auth, request.From, request.To, message)
	}()

	select {
	case err := <-done:
		if err != nil {
			return exceptions.ErrSMTPSendEmail(err, s.Client.Host)
		}
		return nil
	case <-ctx.Done():
		return exceptions.ErrSMTPSendEmail(ctx.Err(), s.Client.Host)
	}
}

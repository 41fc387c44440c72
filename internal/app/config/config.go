package config

import (
	"medconsult-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Postgres: Postgres{
			Host:         utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Port:         utils.GetEnvString("POSTGRES_PORT", "5432"),
			DBName:       utils.GetEnvString("POSTGRES_DB_NAME", "medconsult"),
			Username:     utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password:     utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			SSLMode:      utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxOpenConns: utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 20),
			MaxIdleConns: utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
			DBName:   utils.GetEnvString("MONGODB_DB_NAME", "medconsult"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", ""),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
		SMTP: SMTP{
			Host:     utils.GetEnvString("SMTP_HOST", ""),
			Port:     utils.GetEnvInt("SMTP_PORT", 587),
			Username: utils.GetEnvString("SMTP_USERNAME", ""),
			Password: utils.GetEnvString("SMTP_PASSWORD", ""),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Africa/Nairobi"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 30),
			OTPMaxRequestsPerMinute:    utils.GetEnvInt("APP_OTP_MAX_REQUESTS_PER_MINUTE", 5),
			OTPBlockTimeInMinutes:      utils.GetEnvInt("APP_OTP_BLOCK_TIME_IN_MINUTES", 5),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "change-me"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		OTP: AppOTP{
			Length:               utils.GetEnvInt("OTP_LENGTH", 6),
			ExpiredTimeInMinutes: utils.GetEnvInt("OTP_EXPIRED_TIME_IN_MINUTES", 10),
			MaxIssuePerWindow:    utils.GetEnvInt("OTP_MAX_ISSUE_PER_WINDOW", 5),
		},
		Payment: AppPayment{
			ConsultationFee:          utils.GetEnvInt64("PAYMENT_CONSULTATION_FEE", 1000),
			ConfirmationMode:         utils.GetEnvString("PAYMENT_CONFIRMATION_MODE", PaymentConfirmationOptimistic),
			ReconcileCronSpec:        utils.GetEnvString("PAYMENT_RECONCILE_CRON_SPEC", "@every 5m"),
			ReconcileAfterInMinutes:  utils.GetEnvInt("PAYMENT_RECONCILE_AFTER_IN_MINUTES", 3),
			PaymentLockTimeInSeconds: utils.GetEnvInt("PAYMENT_LOCK_TIME_IN_SECONDS", 60),
		},
		Daraja: AppDaraja{
			BaseUrl:                 utils.GetEnvString("DARAJA_BASE_URL", "https://sandbox.safaricom.co.ke"),
			ConsumerKey:             utils.GetEnvString("DARAJA_CONSUMER_KEY", ""),
			ConsumerSecret:          utils.GetEnvString("DARAJA_CONSUMER_SECRET", ""),
			Passkey:                 utils.GetEnvString("DARAJA_PASSKEY", ""),
			Shortcode:               utils.GetEnvString("DARAJA_SHORTCODE", "174379"),
			CallbackURL:             utils.GetEnvString("DARAJA_CALLBACK_URL", ""),
			CallbackToken:           utils.GetEnvString("DARAJA_CALLBACK_TOKEN", ""),
			AccountReference:        utils.GetEnvString("DARAJA_ACCOUNT_REFERENCE", "Consultation"),
			RequestTimeoutInSeconds: utils.GetEnvInt("DARAJA_REQUEST_TIMEOUT_IN_SECONDS", 15),
			MaxRetries:              utils.GetEnvInt("DARAJA_MAX_RETRIES", 3),
			RetryBackoffInMillis:    utils.GetEnvInt("DARAJA_RETRY_BACKOFF_IN_MILLIS", 500),
		},
		SMS: AppSMS{
			ApiUrl: utils.GetEnvString("SMS_API_URL", ""),
			ApiKey: utils.GetEnvString("SMS_API_KEY", ""),
		},
		Mailer: AppMailer{
			EmailSender:   utils.GetEnvString("MAILER_EMAIL_SENDER", "no-reply@medconsult.local"),
			MailerQueue:   utils.GetEnvString("MAILER_RABBITMQ_MAILER_QUEUE", "medconsult.email"),
			SMSQueue:      utils.GetEnvString("MAILER_RABBITMQ_SMS_QUEUE", "medconsult.sms"),
			SendTimeoutMs: utils.GetEnvInt("MAILER_SEND_TIMEOUT_MS", 5000),
		},
		Minio: AppMinio{
			BucketName:                utils.GetEnvString("MINIO_BUCKET_NAME", "doctor-evidence"),
			EvidenceMaxUploadSizeInMB: utils.GetEnvInt64("MINIO_EVIDENCE_MAX_UPLOAD_SIZE_IN_MB", 5),
		},
	}
}

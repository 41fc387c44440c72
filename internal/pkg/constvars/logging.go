package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingErrorTypeKey          = "error_type"
	LoggingUserIDKey             = "user_id"
	LoggingRoleKey               = "role"
	LoggingOperationKey          = "operation"
	LoggingChannelKey            = "channel"
	LoggingDoctorIDKey           = "doctor_id"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingNotificationIDKey     = "notification_id"
	LoggingServiceIDKey          = "service_id"
	LoggingPaymentStatusKey      = "payment_status"
	LoggingCheckoutRequestIDKey  = "checkout_request_id"
	LoggingGatewayResponseKey    = "gateway_response_code"
	LoggingAttemptKey            = "attempt"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingQueueNameKey          = "queue_name"
	LoggingObjectNameKey         = "object_name"
	LoggingCountKey              = "count"
)

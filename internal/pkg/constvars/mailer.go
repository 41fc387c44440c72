package constvars

const (
	EmailPlainMessageFormat = "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n"

	OTPEmailSubject    = "Your verification code"
	OTPEmailBodyFormat = "Hello %s,\n\nYour verification code is %s. It expires in %d minutes.\n\nIf you did not request this code, ignore this message."
	OTPSMSBodyFormat   = "Your verification code is %s. It expires in %d minutes."
	OTPLimiterGroup    = "OTP"
)

const (
	AMQPHeaderMessageType   = "message_type"
	AMQPHeaderRequeue       = "requeue_strategy"
	AMQPMessageTypeJSON     = "JSON"
	AMQPRequeueStrategyDrop = "DROP"
)

const (
	NotificationNewDoctorPendingFormat = "Doctor %s submitted a profile and is awaiting approval."
	NotificationDoctorApproved         = "Your doctor profile has been approved. You can now receive appointments."
	NotificationDoctorRejectedFormat   = "Your doctor profile was rejected. %s"
	NotificationNewAppointmentFormat   = "New appointment %s requested by %s."
	NotificationAppointmentForDoctor   = "You have a new appointment request."
	NotificationAppointmentAssigned    = "An appointment has been assigned to you."
	NotificationPaymentPaidFormat      = "Payment for appointment %s was received."
	NotificationPaymentFailedFormat    = "Payment for appointment %s failed: %s"
)

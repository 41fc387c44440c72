package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_AUTHENTICATED_USER_KEY   ContextKey = "authenticated_user"
	CONTEXT_ACCESS_TOKEN_KEY         ContextKey = "access_token"
)

const (
	REQUEST_ID_PREFIX = "MDCNSLT_SVC_"
)

const (
	RolePatient       = "patient"
	RoleDoctor        = "doctor"
	RoleAdministrator = "administrator"
)

const (
	OTPChannelEmail = "email"
	OTPChannelPhone = "phone"
)

const (
	ApprovalStatusPending  = "pending"
	ApprovalStatusApproved = "approved"
	ApprovalStatusRejected = "rejected"
)

const (
	AppointmentStatusPending = "pending"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	NotificationCategoryGeneral     = "general"
	NotificationCategoryApproval    = "doctor_approval"
	NotificationCategoryAppointment = "appointment"
	NotificationCategoryPayment     = "payment"
)

const (
	URLParamDoctorID       = "doctorID"
	URLParamAppointmentID  = "appointmentID"
	URLParamNotificationID = "notificationID"
	URLParamServiceID      = "serviceID"

	QueryParamSpecialty     = "specialty"
	QueryParamCallbackToken = "token"

	FormFieldEvidence = "evidence"
)

const (
	MongoCollectionConsultationServices = "consultation_services"
	MongoCollectionPaymentCallbacks     = "payment_callbacks"
)

const (
	EvidenceObjectPrefix = "evidence"
)

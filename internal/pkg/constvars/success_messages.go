package constvars

const (
	ResponseUnknown = "unknown"

	SignupSuccessMessage            = "account created successfully"
	LoginSuccessMessage             = "successfully login"
	LogoutSuccessMessage            = "successfully logout"
	OTPSentSuccessMessage           = "verification code sent"
	OTPVerifiedSuccessMessage       = "verification succeeded"
	GetProfileSuccessMessage        = "get profile successfully"
	UpdateProfileSuccessMessage     = "profile updated successfully"
	GetDoctorsSuccessMessage        = "get doctors successfully"
	SubmitDoctorProfileSuccess      = "profile submitted for review"
	DecideApprovalSuccessMessage    = "approval decision recorded"
	CreateAppointmentSuccessMessage = "appointment created successfully"
	GetAppointmentsSuccessMessage   = "get appointments successfully"
	AssignDoctorSuccessMessage      = "doctor assigned successfully"
	RequestPaymentSuccessMessage    = "payment request accepted"
	GetNotificationsSuccessMessage  = "get notifications successfully"
	CreateNotificationSuccess       = "notification created successfully"
	MarkNotificationReadSuccess     = "notification marked as read"
	GetServicesSuccessMessage       = "get services successfully"
	CreateServiceSuccessMessage     = "service created successfully"
)

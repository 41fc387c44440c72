package requests

type CreateAppointment struct {
	DoctorID  string  `json:"doctor_id" validate:"required,uuid"`
	ServiceID string  `json:"service_id" validate:"required"`
	Gender    *string `json:"gender" validate:"omitempty,max=20"`
	Symptoms  string  `json:"symptoms" validate:"required,max=2000"`
	Details   *string `json:"details" validate:"omitempty,max=4000"`
}

type AssignDoctor struct {
	DoctorID string `json:"doctor_id" validate:"required,uuid"`
}

// RequestPayment carries the payer's phone. When empty the patient's own
// phone is charged.
type RequestPayment struct {
	Phone string `json:"phone" validate:"omitempty,phone_number"`
}

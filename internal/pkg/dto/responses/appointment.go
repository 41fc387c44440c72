package responses

import "time"

type Appointment struct {
	AppointmentID    string     `json:"appointment_id"`
	PatientID        string     `json:"patient_id"`
	DoctorID         string     `json:"doctor_id"`
	ServiceID        string     `json:"service_id"`
	Gender           *string    `json:"gender"`
	Symptoms         string     `json:"symptoms"`
	Details          *string    `json:"details"`
	Status           string     `json:"status"`
	PaymentStatus    string     `json:"payment_status"`
	FeeAmount        int64      `json:"fee_amount"`
	PaymentReference *string    `json:"payment_reference,omitempty"`
	AssignedAt       *time.Time `json:"assigned_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type RequestPayment struct {
	AppointmentID     string `json:"appointment_id"`
	PaymentStatus     string `json:"payment_status"`
	CheckoutRequestID string `json:"checkout_request_id,omitempty"`
	GatewayMessage    string `json:"gateway_message,omitempty"`
	AwaitingCallback  bool   `json:"awaiting_callback"`
}

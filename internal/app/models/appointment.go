package models

import "time"

type Appointment struct {
	ID               string
	PatientID        string
	DoctorID         string
	ServiceID        string
	Gender           *string
	Symptoms         string
	Details          *string
	Status           string
	PaymentStatus    string
	FeeAmount        int64
	PaymentReference *string
	PayerPhone       *string
	PaymentMessage   *string
	PaymentRequested *time.Time
	AssignedBy       *string
	AssignedAt       *time.Time
	TimeModel
}

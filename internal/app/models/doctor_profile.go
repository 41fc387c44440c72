package models

import (
	"medconsult-service/internal/pkg/constvars"
	"time"
)

type DoctorProfile struct {
	ID             string
	UserID         string
	Email          string
	Name           *string
	Specialty      *string
	Gender         *string
	Qualifications *string
	LicenceID      *string
	EvidenceRef    *string
	EvidenceURL    *string
	ApprovalStatus string
	ApprovalNotes  *string
	Approved       bool
	ReviewedBy     *string
	ReviewedAt     *time.Time
	TimeModel
}

// SetApprovalStatus keeps Approved derived from ApprovalStatus.
func (d *DoctorProfile) SetApprovalStatus(status string) {
	d.ApprovalStatus = status
	d.Approved = status == constvars.ApprovalStatusApproved
}

func (d *DoctorProfile) HasEvidence() bool {
	return (d.EvidenceRef != nil && *d.EvidenceRef != "") || (d.EvidenceURL != nil && *d.EvidenceURL != "")
}

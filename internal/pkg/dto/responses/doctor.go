package responses

import "time"

type DoctorProfile struct {
	DoctorID       string     `json:"doctor_id"`
	UserID         string     `json:"user_id"`
	Name           *string    `json:"name"`
	Email          string     `json:"email"`
	Specialty      *string    `json:"specialty"`
	Gender         *string    `json:"gender"`
	Qualifications *string    `json:"qualifications,omitempty"`
	LicenceID      *string    `json:"licence_id,omitempty"`
	HasEvidence    bool       `json:"has_evidence"`
	EvidenceURL    *string    `json:"evidence_url,omitempty"`
	ApprovalStatus string     `json:"approval_status"`
	ApprovalNotes  *string    `json:"approval_notes,omitempty"`
	Approved       bool       `json:"approved"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
}

type DoctorListItem struct {
	DoctorID       string  `json:"doctor_id"`
	Name           *string `json:"name"`
	Specialty      *string `json:"specialty"`
	Gender         *string `json:"gender"`
	ApprovalStatus string  `json:"approval_status,omitempty"`
	Approved       bool    `json:"approved"`
}

package requests

import "io"

type EvidenceFile struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

// SubmitDoctorProfile is bound from a multipart form. Evidence is the
// uploaded file part; EvidenceURL is the alternative when no file is sent.
type SubmitDoctorProfile struct {
	Qualifications string        `validate:"required,max=2000"`
	LicenceID      string        `validate:"required,max=100"`
	EvidenceURL    *string       `validate:"omitempty,url"`
	Specialty      *string       `validate:"omitempty,max=100"`
	Gender         *string       `validate:"omitempty,max=20"`
	Evidence       *EvidenceFile `validate:"-"`
}

type DecideApproval struct {
	Decision string  `json:"decision" validate:"required,approval_decision"`
	Notes    *string `json:"notes" validate:"omitempty,max=2000"`
}

type ListDoctors struct {
	Specialty string
}

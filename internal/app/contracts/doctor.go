package contracts

import (
	"context"
	"io"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
)

type DoctorListFilter struct {
	OnlyApproved bool
	Specialty    *string
}

type DoctorRepository interface {
	Create(ctx context.Context, profile *models.DoctorProfile) (string, error)
	FindByID(ctx context.Context, doctorID string) (*models.DoctorProfile, error)
	FindByUserID(ctx context.Context, userID string) (*models.DoctorProfile, error)
	List(ctx context.Context, filter DoctorListFilter) ([]models.DoctorProfile, error)
	ListByStatus(ctx context.Context, status string) ([]models.DoctorProfile, error)
	Submit(ctx context.Context, profile *models.DoctorProfile) error
	Decide(ctx context.Context, profile *models.DoctorProfile) error
}

// EvidenceDownload holds either an open object stream or the external URL
// the doctor supplied instead of a file.
type EvidenceDownload struct {
	Content     io.ReadCloser
	ContentType string
	Size        int64
	FileName    string
	RedirectURL string
}

type DoctorUsecase interface {
	SubmitProfile(ctx context.Context, doctor *models.User, request *requests.SubmitDoctorProfile) (*responses.DoctorProfile, error)
	DecideApproval(ctx context.Context, admin *models.User, doctorID string, request *requests.DecideApproval) (*responses.DoctorProfile, error)
	ListDoctors(ctx context.Context, caller *models.User, request *requests.ListDoctors) ([]responses.DoctorListItem, error)
	ListPendingDoctors(ctx context.Context, admin *models.User) ([]responses.DoctorProfile, error)
	GetOwnProfile(ctx context.Context, doctor *models.User) (*responses.DoctorProfile, error)
	DownloadEvidence(ctx context.Context, caller *models.User, doctorID string) (*EvidenceDownload, error)
}

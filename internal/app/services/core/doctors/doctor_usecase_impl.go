package doctors

import (
	"context"
	"fmt"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/app/services/core/roles"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

type doctorUsecase struct {
	DoctorRepository    contracts.DoctorRepository
	StorageService      contracts.StorageService
	NotificationUsecase contracts.NotificationUsecase
	Log                 *zap.Logger
	now                 func() time.Time
}

func NewDoctorUsecase(
	doctorRepository contracts.DoctorRepository,
	storageService contracts.StorageService,
	notificationUsecase contracts.NotificationUsecase,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	return &doctorUsecase{
		DoctorRepository:    doctorRepository,
		StorageService:      storageService,
		NotificationUsecase: notificationUsecase,
		Log:                 logger,
		now:                 time.Now,
	}
}

// SubmitProfile stores the qualifications and evidence and puts the profile
// back into review. Administrators are notified best effort.
func (uc *doctorUsecase) SubmitProfile(ctx context.Context, doctor *models.User, request *requests.SubmitDoctorProfile) (*responses.DoctorProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.SubmitProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, doctor.ID),
	)

	hasEvidenceURL := request.EvidenceURL != nil && strings.TrimSpace(*request.EvidenceURL) != ""
	if request.Evidence == nil && !hasEvidenceURL {
		return nil, exceptions.ErrMissingEvidence(nil)
	}

	profile, err := uc.DoctorRepository.FindByUserID(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor profile")
	}

	profile.EvidenceRef = nil
	profile.EvidenceURL = nil
	if request.Evidence != nil {
		objectName := utils.GenerateEvidenceObjectName(profile.ID, request.Evidence.FileName)
		storedName, err := uc.StorageService.UploadFile(ctx, request.Evidence.Reader, request.Evidence.Size, request.Evidence.ContentType, objectName)
		if err != nil {
			uc.Log.Error("doctorUsecase.SubmitProfile error uploading evidence",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingObjectNameKey, objectName),
				zap.Error(err),
			)
			return nil, err
		}
		profile.EvidenceRef = &storedName
	}
	if hasEvidenceURL {
		profile.EvidenceURL = request.EvidenceURL
	}

	profile.Qualifications = &request.Qualifications
	profile.LicenceID = &request.LicenceID
	if request.Specialty != nil {
		profile.Specialty = request.Specialty
	}
	if request.Gender != nil {
		profile.Gender = request.Gender
	}
	profile.SetApprovalStatus(constvars.ApprovalStatusPending)
	profile.ApprovalNotes = nil
	profile.ReviewedBy = nil
	profile.ReviewedAt = nil

	err = uc.DoctorRepository.Submit(ctx, profile)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf(constvars.NotificationNewDoctorPendingFormat, doctor.DisplayName())
	err = uc.NotificationUsecase.NotifyAdministrators(ctx, message, constvars.NotificationCategoryApproval)
	if err != nil {
		uc.Log.Warn("doctorUsecase.SubmitProfile failed to notify administrators",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, profile.ID),
			zap.Error(err),
		)
	}

	uc.Log.Info("doctorUsecase.SubmitProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, profile.ID),
	)
	return toDoctorProfileResponse(profile), nil
}

func (uc *doctorUsecase) DecideApproval(ctx context.Context, admin *models.User, doctorID string, request *requests.DecideApproval) (*responses.DoctorProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.DecideApproval called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingUserIDKey, admin.ID),
	)

	if request.Decision != constvars.ApprovalStatusApproved && request.Decision != constvars.ApprovalStatusRejected {
		return nil, exceptions.ErrInputValidation(nil)
	}

	profile, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}

	reviewedAt := uc.now().UTC()
	reviewedBy := admin.ID
	profile.SetApprovalStatus(request.Decision)
	profile.ApprovalNotes = request.Notes
	profile.ReviewedBy = &reviewedBy
	profile.ReviewedAt = &reviewedAt

	err = uc.DoctorRepository.Decide(ctx, profile)
	if err != nil {
		return nil, err
	}

	message := constvars.NotificationDoctorApproved
	if !profile.Approved {
		notes := ""
		if request.Notes != nil {
			notes = *request.Notes
		}
		message = strings.TrimSpace(fmt.Sprintf(constvars.NotificationDoctorRejectedFormat, notes))
	}
	_, err = uc.NotificationUsecase.Notify(ctx, &profile.UserID, message, constvars.NotificationCategoryApproval)
	if err != nil {
		uc.Log.Warn("doctorUsecase.DecideApproval failed to notify doctor",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, profile.ID),
			zap.Error(err),
		)
	}

	uc.Log.Info("doctorUsecase.DecideApproval succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, profile.ID),
		zap.Bool("approved", profile.Approved),
	)
	return toDoctorProfileResponse(profile), nil
}

// ListDoctors shows administrators every profile with its review state.
// Everyone else, including anonymous callers, only sees approved doctors.
func (uc *doctorUsecase) ListDoctors(ctx context.Context, caller *models.User, request *requests.ListDoctors) ([]responses.DoctorListItem, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.ListDoctors called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	isAdministrator := caller.IsAdministrator()
	filter := contracts.DoctorListFilter{OnlyApproved: !isAdministrator}
	if request != nil && strings.TrimSpace(request.Specialty) != "" {
		specialty := strings.TrimSpace(request.Specialty)
		filter.Specialty = &specialty
	}

	profiles, err := uc.DoctorRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]responses.DoctorListItem, 0, len(profiles))
	for _, profile := range profiles {
		item := responses.DoctorListItem{
			DoctorID:  profile.ID,
			Name:      profile.Name,
			Specialty: profile.Specialty,
			Gender:    profile.Gender,
			Approved:  profile.Approved,
		}
		if isAdministrator {
			item.ApprovalStatus = profile.ApprovalStatus
		}
		result = append(result, item)
	}
	return result, nil
}

func (uc *doctorUsecase) ListPendingDoctors(ctx context.Context, admin *models.User) ([]responses.DoctorProfile, error) {
	uc.Log.Info("doctorUsecase.ListPendingDoctors called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingUserIDKey, admin.ID),
	)

	profiles, err := uc.DoctorRepository.ListByStatus(ctx, constvars.ApprovalStatusPending)
	if err != nil {
		return nil, err
	}

	result := make([]responses.DoctorProfile, 0, len(profiles))
	for i := range profiles {
		result = append(result, *toDoctorProfileResponse(&profiles[i]))
	}
	return result, nil
}

func (uc *doctorUsecase) GetOwnProfile(ctx context.Context, doctor *models.User) (*responses.DoctorProfile, error) {
	profile, err := uc.DoctorRepository.FindByUserID(ctx, doctor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor profile")
	}
	return toDoctorProfileResponse(profile), nil
}

// DownloadEvidence opens the stored evidence for an administrator or the
// owning doctor. URL evidence comes back as a redirect target.
func (uc *doctorUsecase) DownloadEvidence(ctx context.Context, caller *models.User, doctorID string) (*contracts.EvidenceDownload, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("doctorUsecase.DownloadEvidence called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	profile, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, exceptions.ErrNotFound(nil, "doctor")
	}
	if !caller.IsAdministrator() && profile.UserID != caller.ID {
		return nil, exceptions.ErrForbidden(nil, caller.Role, roles.OperationDownloadDoctorEvidence)
	}

	if profile.EvidenceRef != nil && *profile.EvidenceRef != "" {
		content, info, err := uc.StorageService.GetFile(ctx, *profile.EvidenceRef)
		if err != nil {
			return nil, err
		}
		contentType := info.ContentType
		if contentType == "" {
			contentType = constvars.MIMEOctetStream
		}
		return &contracts.EvidenceDownload{
			Content:     content,
			ContentType: contentType,
			Size:        info.Size,
			FileName:    path.Base(*profile.EvidenceRef),
		}, nil
	}

	if profile.EvidenceURL != nil && *profile.EvidenceURL != "" {
		return &contracts.EvidenceDownload{RedirectURL: *profile.EvidenceURL}, nil
	}

	return nil, exceptions.ErrNotFound(nil, "evidence")
}

func toDoctorProfileResponse(profile *models.DoctorProfile) *responses.DoctorProfile {
	return &responses.DoctorProfile{
		DoctorID:       profile.ID,
		UserID:         profile.UserID,
		Name:           profile.Name,
		Email:          profile.Email,
		Specialty:      profile.Specialty,
		Gender:         profile.Gender,
		Qualifications: profile.Qualifications,
		LicenceID:      profile.LicenceID,
		HasEvidence:    profile.HasEvidence(),
		EvidenceURL:    profile.EvidenceURL,
		ApprovalStatus: profile.ApprovalStatus,
		ApprovalNotes:  profile.ApprovalNotes,
		Approved:       profile.Approved,
		ReviewedAt:     profile.ReviewedAt,
	}
}

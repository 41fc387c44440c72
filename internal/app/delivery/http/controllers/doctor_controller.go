package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	defaultEvidenceMaxUploadSizeInMB int64 = 5
	multipartOverheadInBytes         int64 = 1 << 20
)

type DoctorController struct {
	Log            *zap.Logger
	DoctorUsecase  contracts.DoctorUsecase
	InternalConfig *config.InternalConfig
}

func NewDoctorController(logger *zap.Logger, doctorUsecase contracts.DoctorUsecase, internalConfig *config.InternalConfig) *DoctorController {
	return &DoctorController{
		Log:            logger,
		DoctorUsecase:  doctorUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *DoctorController) ListDoctors(w http.ResponseWriter, r *http.Request) {
	request := &requests.ListDoctors{
		Specialty: r.URL.Query().Get(constvars.QueryParamSpecialty),
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.DoctorUsecase.ListDoctors(ctx, authenticatedUser(r), request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorsSuccessMessage, result)
}

func (ctrl *DoctorController) ListPendingDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.DoctorUsecase.ListPendingDoctors(ctx, authenticatedUser(r))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetDoctorsSuccessMessage, result)
}

func (ctrl *DoctorController) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.DoctorUsecase.GetOwnProfile(ctx, authenticatedUser(r))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, result)
}

// SubmitProfile accepts a multipart form with the text fields and either an
// "evidence" file part or an "evidence_url" field.
func (ctrl *DoctorController) SubmitProfile(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("DoctorController.SubmitProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	maxSizeInMB := ctrl.evidenceMaxUploadSizeInMB()
	maxSizeInBytes := maxSizeInMB << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxSizeInBytes+multipartOverheadInBytes)
	err := r.ParseMultipartForm(maxSizeInBytes)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFileTooLarge(err, maxSizeInMB))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	request := &requests.SubmitDoctorProfile{
		Qualifications: r.FormValue("qualifications"),
		LicenceID:      r.FormValue("licence_id"),
		EvidenceURL:    optionalFormValue(r, "evidence_url"),
		Specialty:      optionalFormValue(r, "specialty"),
		Gender:         optionalFormValue(r, "gender"),
	}

	file, header, err := r.FormFile(constvars.FormFieldEvidence)
	switch {
	case err == nil:
		defer file.Close()
		if header.Size > maxSizeInBytes {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrFileTooLarge(nil, maxSizeInMB))
			return
		}
		request.Evidence = &requests.EvidenceFile{
			Reader:      file,
			Size:        header.Size,
			FileName:    header.Filename,
			ContentType: header.Header.Get(constvars.HeaderContentType),
		}
	case !errors.Is(err, http.ErrMissingFile):
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	utils.SanitizeSubmitDoctorProfileRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.DoctorUsecase.SubmitProfile(ctx, authenticatedUser(r), request)
	if err != nil {
		ctrl.Log.Error("DoctorController.SubmitProfile error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SubmitDoctorProfileSuccess, result)
}

func (ctrl *DoctorController) DecideApproval(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID, err := uuidURLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.Log.Info("DoctorController.DecideApproval called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	request := new(requests.DecideApproval)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeDecideApprovalRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.DoctorUsecase.DecideApproval(ctx, authenticatedUser(r), doctorID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DecideApprovalSuccessMessage, result)
}

// DownloadEvidence streams the stored file, or redirects when the doctor
// supplied an external URL.
func (ctrl *DoctorController) DownloadEvidence(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	doctorID, err := uuidURLParam(r, constvars.URLParamDoctorID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout(ctrl.InternalConfig))
	defer cancel()

	download, err := ctrl.DoctorUsecase.DownloadEvidence(ctx, authenticatedUser(r), doctorID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}

	if download.RedirectURL != "" {
		http.Redirect(w, r, download.RedirectURL, constvars.StatusFound)
		return
	}
	defer download.Content.Close()

	w.Header().Set(constvars.HeaderContentType, download.ContentType)
	w.Header().Set(constvars.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", download.FileName))
	if download.Size > 0 {
		w.Header().Set(constvars.HeaderContentLength, strconv.FormatInt(download.Size, 10))
	}
	w.WriteHeader(constvars.StatusOK)

	_, err = io.Copy(w, download.Content)
	if err != nil {
		ctrl.Log.Warn("DoctorController.DownloadEvidence stream interrupted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	}
}

func (ctrl *DoctorController) evidenceMaxUploadSizeInMB() int64 {
	if ctrl.InternalConfig == nil || ctrl.InternalConfig.Minio.EvidenceMaxUploadSizeInMB <= 0 {
		return defaultEvidenceMaxUploadSizeInMB
	}
	return ctrl.InternalConfig.Minio.EvidenceMaxUploadSizeInMB
}

func optionalFormValue(r *http.Request, key string) *string {
	value := r.FormValue(key)
	if value == "" {
		return nil
	}
	return &value
}

package utils

import (
	"medconsult-service/internal/pkg/dto/requests"
	"strings"
)

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func SanitizeSignupRequest(input *requests.Signup) {
	input.Name = trimOptional(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = ToMSISDN(input.Phone)
	input.Role = strings.ToLower(strings.TrimSpace(input.Role))
	input.Specialty = trimOptional(input.Specialty)
	input.Gender = trimOptional(input.Gender)
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeSendOTPRequest(input *requests.SendOTP) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = ToMSISDN(input.Phone)
	input.Channel = strings.ToLower(strings.TrimSpace(input.Channel))
}

func SanitizeVerifyOTPRequest(input *requests.VerifyOTP) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = ToMSISDN(input.Phone)
	input.Channel = strings.ToLower(strings.TrimSpace(input.Channel))
	input.Code = strings.TrimSpace(input.Code)
}

func SanitizeBootstrapAdministratorRequest(input *requests.BootstrapAdministrator) {
	input.Name = trimOptional(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = ToMSISDN(input.Phone)
}

func SanitizeUpdateProfileRequest(input *requests.UpdateProfile) {
	input.Name = trimOptional(input.Name)
	if input.Phone != nil {
		phone := ToMSISDN(*input.Phone)
		input.Phone = &phone
		if phone == "" {
			input.Phone = nil
		}
	}
}

func SanitizeSubmitDoctorProfileRequest(input *requests.SubmitDoctorProfile) {
	input.Qualifications = strings.TrimSpace(input.Qualifications)
	input.LicenceID = strings.TrimSpace(input.LicenceID)
	input.EvidenceURL = trimOptional(input.EvidenceURL)
	input.Specialty = trimOptional(input.Specialty)
	input.Gender = trimOptional(input.Gender)
}

func SanitizeDecideApprovalRequest(input *requests.DecideApproval) {
	input.Decision = strings.ToLower(strings.TrimSpace(input.Decision))
	input.Notes = trimOptional(input.Notes)
}

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointment) {
	input.DoctorID = strings.TrimSpace(input.DoctorID)
	input.ServiceID = strings.TrimSpace(input.ServiceID)
	input.Gender = trimOptional(input.Gender)
	input.Symptoms = strings.TrimSpace(input.Symptoms)
	input.Details = trimOptional(input.Details)
}

func SanitizeRequestPaymentRequest(input *requests.RequestPayment) {
	input.Phone = ToMSISDN(input.Phone)
}

func SanitizeCreateNotificationRequest(input *requests.CreateNotification) {
	input.TargetUserID = trimOptional(input.TargetUserID)
	input.Message = strings.TrimSpace(input.Message)
	input.Category = strings.TrimSpace(input.Category)
}

func SanitizeCreateConsultationServiceRequest(input *requests.CreateConsultationService) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
}

package utils

import (
	"medconsult-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate                  *validator.Validate
	regexSpecialChar          = regexp.MustCompile(constvars.RegexContainAtLeastOneSpecialChar)
	regexUppercase            = regexp.MustCompile(constvars.RegexContainAtLeastOneUppercase)
	regexInternationalPhoneNo = regexp.MustCompile(constvars.RegexPhoneNumberDigitsInternational)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("otp_channel", validateOTPChannel)
	validate.RegisterValidation("signup_role", validateSignupRole)
	validate.RegisterValidation("approval_decision", validateApprovalDecision)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateUUID(value string) error {
	return validate.Var(value, "required,uuid")
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	return len(password) >= 8 && regexSpecialChar.MatchString(password) && regexUppercase.MatchString(password)
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return regexInternationalPhoneNo.MatchString(ToMSISDN(fl.Field().String()))
}

func validateOTPChannel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.OTPChannelEmail || value == constvars.OTPChannelPhone
}

// Administrators are never created through signup.
func validateSignupRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.RolePatient || value == constvars.RoleDoctor
}

func validateApprovalDecision(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == constvars.ApprovalStatusApproved || value == constvars.ApprovalStatusRejected
}

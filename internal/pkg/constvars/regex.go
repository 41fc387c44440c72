package constvars

const (
	RegexContainAtLeastOneSpecialChar = `.*[!@#$%^&*(),.?":{}|<>].*`
	RegexContainAtLeastOneUppercase   = `.*[A-Z].*`
	RegexContainAtLeastOneDigit       = `.*\d.*`
	RegexEmail                        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexNumeric                      = `^\d+$`
	// RegexPhoneNumberDigitsInternational matches E.164 without the plus sign.
	RegexPhoneNumberDigitsInternational = `^[1-9]\d{9,14}$`
)

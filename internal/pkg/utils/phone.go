package utils

import (
	"strings"
)

// NormalizePhoneDigits trims spaces, removes inner spaces and dashes, and strips a single leading '+'.
func NormalizePhoneDigits(input string) string {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.TrimPrefix(s, "+")
	return s
}

// ToMSISDN converts a Kenyan number in local (07XX / 01XX) or international
// form to the 2547XXXXXXXX format the payment provider expects. Numbers
// already carrying a country code are returned normalized.
func ToMSISDN(input string) string {
	s := NormalizePhoneDigits(input)
	if strings.HasPrefix(s, "0") && len(s) == 10 {
		return "254" + s[1:]
	}
	return s
}

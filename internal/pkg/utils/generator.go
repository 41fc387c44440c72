package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"medconsult-service/internal/pkg/constvars"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateOTP(otpLength int) (string, error) {
	const otpDigits = "0123456789"
	max := big.NewInt(int64(len(otpDigits)))

	otp := make([]byte, otpLength)
	for i := range otp {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		otp[i] = otpDigits[num.Int64()]
	}

	return string(otp), nil
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

// GenerateEvidenceObjectName builds a collision free object key that keeps
// the uploaded file extension.
func GenerateEvidenceObjectName(doctorID, originalFileName string) string {
	extension := strings.ToLower(filepath.Ext(originalFileName))
	timestamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("%s/%s/%s_%s%s", constvars.EvidenceObjectPrefix, doctorID, timestamp, uuid.NewString(), extension)
}

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// dummyPasswordHash is compared against when the account does not exist so
// both branches of a login spend the same bcrypt time.
const dummyPasswordHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOHi5BBWc5p8sGZ5rJ6yUj3xDF8aDHmR6"

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		hash = dummyPasswordHash
		_ = bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// HashOTP returns the hex HMAC-SHA256 of code keyed with secret. Passcodes are
// stored and matched by this digest only.
func HashOTP(secret, code string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

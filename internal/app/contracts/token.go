package contracts

import "time"

type TokenClaims struct {
	Subject   string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenService interface {
	Issue(subjectID string) (string, *TokenClaims, error)
	// Validate returns the same invalid-token error for every failure mode.
	Validate(token string) (*TokenClaims, error)
}

package jwtmanager

import (
	"errors"
	"fmt"
	"medconsult-service/internal/app/config"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/pkg/exceptions"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var errInvalidClaims = errors.New("token claims are incomplete")

// JWTManager issues and validates HS256 session tokens.
type JWTManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTManager(cfg *config.InternalConfig) (*JWTManager, error) {
	secret := strings.TrimSpace(cfg.JWT.Secret)
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	ttl := time.Duration(cfg.JWT.ExpTimeInHour) * time.Hour
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock replaces the time source; used by tests.
func (j *JWTManager) WithClock(now func() time.Time) *JWTManager {
	j.now = now
	return j
}

func (j *JWTManager) Issue(subjectID string) (string, *contracts.TokenClaims, error) {
	if strings.TrimSpace(subjectID) == "" {
		return "", nil, exceptions.ErrTokenGenerate(fmt.Errorf("subject is required"))
	}

	issuedAt := j.now().UTC().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(j.ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return "", nil, exceptions.ErrTokenGenerate(err)
	}

	return signed, &contracts.TokenClaims{
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		IssuedAt:  issuedAt,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Validate fails closed. Bad signatures, expiry, foreign algorithms and
// malformed input all produce the same invalid token error.
func (j *JWTManager) Validate(token string) (*contracts.TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	parser := jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	claims := &jwt.RegisteredClaims{}

	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	if claims.Subject == "" || claims.ExpiresAt == nil || claims.ID == "" {
		return nil, exceptions.ErrTokenInvalidOrExpired(errInvalidClaims)
	}

	now := j.now()
	if !claims.VerifyExpiresAt(now, true) || !claims.VerifyNotBefore(now, false) {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}

	result := &contracts.TokenClaims{
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	return result, nil
}

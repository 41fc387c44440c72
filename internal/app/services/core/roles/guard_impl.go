package roles

import (
	"fmt"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/exceptions"
)

type guard struct {
	policies map[string][]string
}

func NewGuard() contracts.AuthorizationGuard {
	return &guard{policies: Policies}
}

// Authorize denies unknown operations and anonymous callers.
func (g *guard) Authorize(user *models.User, operation string) error {
	if user == nil {
		return exceptions.ErrTokenMissing(nil)
	}

	allowed, ok := g.policies[operation]
	if !ok {
		return exceptions.ErrForbidden(fmt.Errorf("no policy for operation"), user.Role, operation)
	}

	for _, role := range allowed {
		if role == user.Role {
			return nil
		}
	}
	return exceptions.ErrForbidden(nil, user.Role, operation)
}

func (g *guard) AllowedRoles(operation string) []string {
	allowed := g.policies[operation]
	result := make([]string, len(allowed))
	copy(result, allowed)
	return result
}

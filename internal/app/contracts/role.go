package contracts

import "medconsult-service/internal/app/models"

type AuthorizationGuard interface {
	Authorize(user *models.User, operation string) error
	AllowedRoles(operation string) []string
}

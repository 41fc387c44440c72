package contracts

import (
	"context"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByRole(ctx context.Context, role string) ([]models.User, error)
	CountByRole(ctx context.Context, role string) (int, error)
	UpdateProfile(ctx context.Context, userID string, name *string, phone string) (*models.User, error)
	MarkVerified(ctx context.Context, userID string) error
	LockBootstrapAdministrator(ctx context.Context) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, user *models.User) (*responses.UserProfile, error)
	UpdateProfile(ctx context.Context, user *models.User, request *requests.UpdateProfile) (*responses.UserProfile, error)
}

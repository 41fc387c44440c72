package contracts

import (
	"context"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	SendOTP(ctx context.Context, request *requests.SendOTP) error
	VerifyOTP(ctx context.Context, request *requests.VerifyOTP) (*responses.VerifyOTP, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*models.User, error)
	BootstrapAdministrator(ctx context.Context, request *requests.BootstrapAdministrator) (*models.User, error)
}

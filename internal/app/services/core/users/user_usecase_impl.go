package users

import (
	"context"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type userUsecase struct {
	UserRepository contracts.UserRepository
	Log            *zap.Logger
}

func NewUserUsecase(userRepository contracts.UserRepository, logger *zap.Logger) contracts.UserUsecase {
	return &userUsecase{
		UserRepository: userRepository,
		Log:            logger,
	}
}

func (uc *userUsecase) GetProfile(ctx context.Context, user *models.User) (*responses.UserProfile, error) {
	uc.Log.Info("userUsecase.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return ToUserProfile(user), nil
}

func (uc *userUsecase) UpdateProfile(ctx context.Context, user *models.User, request *requests.UpdateProfile) (*responses.UserProfile, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("userUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)

	name := user.Name
	if request.Name != nil {
		name = request.Name
	}

	phone := user.Phone
	if request.Phone != nil && *request.Phone != user.Phone {
		existing, err := uc.UserRepository.FindByPhone(ctx, *request.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != user.ID {
			return nil, exceptions.ErrPhoneAlreadyExist(nil)
		}
		phone = *request.Phone
	}

	updated, err := uc.UserRepository.UpdateProfile(ctx, user.ID, name, phone)
	if err != nil {
		uc.Log.Error("userUsecase.UpdateProfile error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if updated == nil {
		return nil, exceptions.ErrUnauthorizedSubject(nil)
	}

	return ToUserProfile(updated), nil
}

func ToUserProfile(user *models.User) *responses.UserProfile {
	return &responses.UserProfile{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Phone:      user.Phone,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}

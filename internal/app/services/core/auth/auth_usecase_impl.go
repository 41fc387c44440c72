package auth

import (
	"context"
	"fmt"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/exceptions"
	"medconsult-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository     contracts.UserRepository
	DoctorRepository   contracts.DoctorRepository
	TransactionManager contracts.TransactionManager
	OTPLedger          contracts.OTPLedger
	TokenService       contracts.TokenService
	RedisRepository    contracts.RedisRepository
	Log                *zap.Logger
	hashPassword       func(password string) (string, error)
	now                func() time.Time
}

func NewAuthUsecase(
	userRepository contracts.UserRepository,
	doctorRepository contracts.DoctorRepository,
	transactionManager contracts.TransactionManager,
	otpLedger contracts.OTPLedger,
	tokenService contracts.TokenService,
	redisRepository contracts.RedisRepository,
	logger *zap.Logger,
) contracts.AuthUsecase {
	return &authUsecase{
		UserRepository:     userRepository,
		DoctorRepository:   doctorRepository,
		TransactionManager: transactionManager,
		OTPLedger:          otpLedger,
		TokenService:       tokenService,
		RedisRepository:    redisRepository,
		Log:                logger,
		hashPassword:       utils.HashPassword,
		now:                time.Now,
	}
}

func (uc *authUsecase) Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Signup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	role := request.Role
	if role == "" {
		role = constvars.RolePatient
	}
	if role != constvars.RolePatient && role != constvars.RoleDoctor {
		return nil, exceptions.ErrForbidden(nil, role, "signup")
	}

	err := uc.ensureIdentityAvailable(ctx, request.Email, request.Phone)
	if err != nil {
		return nil, err
	}

	passwordHash, err := uc.hashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	var created *models.User
	err = uc.TransactionManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		user, err := uc.UserRepository.CreateUser(txCtx, &models.User{
			Name:         request.Name,
			Email:        request.Email,
			Phone:        request.Phone,
			PasswordHash: passwordHash,
			Role:         role,
		})
		if err != nil {
			return err
		}

		if role == constvars.RoleDoctor {
			profile := &models.DoctorProfile{
				UserID:    user.ID,
				Email:     user.Email,
				Specialty: request.Specialty,
				Gender:    request.Gender,
			}
			profile.SetApprovalStatus(constvars.ApprovalStatusPending)
			_, err = uc.DoctorRepository.Create(txCtx, profile)
			if err != nil {
				return err
			}
		}

		created = user
		return nil
	})
	if err != nil {
		uc.Log.Error("authUsecase.Signup error creating identity",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.Signup succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, created.ID),
		zap.String(constvars.LoggingRoleKey, created.Role),
	)
	return &responses.Signup{
		UserID:     created.ID,
		Email:      created.Email,
		Phone:      created.Phone,
		Role:       created.Role,
		IsVerified: created.IsVerified,
	}, nil
}

// Login answers the same way for an unknown email and a wrong password.
func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	user, err := uc.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}

	storedHash := ""
	if user != nil {
		storedHash = user.PasswordHash
	}
	if !utils.CheckPasswordHash(request.Password, storedHash) {
		uc.Log.Info("authUsecase.Login rejected credentials",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrInvalidCredentials(nil)
	}

	token, _, err := uc.TokenService.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.Login{
		AccessToken: token,
		TokenType:   constvars.TokenTypeBearer,
	}, nil
}

func (uc *authUsecase) SendOTP(ctx context.Context, request *requests.SendOTP) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.SendOTP called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingChannelKey, request.Channel),
	)

	user, err := uc.findByEmailOrPhone(ctx, request.Email, request.Phone)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrNotFound(nil, "user")
	}

	_, err = uc.OTPLedger.IssueOTP(ctx, user, request.Channel)
	if err != nil {
		uc.Log.Error("authUsecase.SendOTP error issuing passcode",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// VerifyOTP consumes the code and marks the identity verified in one
// transaction, then logs the user in.
func (uc *authUsecase) VerifyOTP(ctx context.Context, request *requests.VerifyOTP) (*responses.VerifyOTP, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.VerifyOTP called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingChannelKey, request.Channel),
	)

	user, err := uc.findByEmailOrPhone(ctx, request.Email, request.Phone)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrOTPInvalidOrExpired(nil)
	}

	err = uc.TransactionManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := uc.OTPLedger.VerifyOTP(txCtx, user, request.Channel, request.Code)
		if err != nil {
			return err
		}
		return uc.UserRepository.MarkVerified(txCtx, user.ID)
	})
	if err != nil {
		uc.Log.Info("authUsecase.VerifyOTP rejected passcode",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, user.ID),
			zap.Error(err),
		)
		return nil, err
	}

	token, _, err := uc.TokenService.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("authUsecase.VerifyOTP succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.VerifyOTP{
		AccessToken: token,
		TokenType:   constvars.TokenTypeBearer,
		Role:        user.Role,
	}, nil
}

// Logout stores the token id until the token would have expired anyway.
func (uc *authUsecase) Logout(ctx context.Context, token string) error {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	claims, err := uc.TokenService.Validate(token)
	if err != nil {
		return err
	}

	ttl := claims.ExpiresAt.Sub(uc.now())
	if ttl <= 0 {
		return nil
	}

	err = uc.RedisRepository.Set(ctx, fmt.Sprintf(constvars.RedisKeyRevokedTokenFormat, claims.TokenID), claims.Subject, ttl)
	if err != nil {
		uc.Log.Error("authUsecase.Logout error storing revoked token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (uc *authUsecase) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := uc.TokenService.Validate(token)
	if err != nil {
		return nil, err
	}

	revoked, err := uc.RedisRepository.Exists(ctx, fmt.Sprintf(constvars.RedisKeyRevokedTokenFormat, claims.TokenID))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, exceptions.ErrTokenRevoked(nil)
	}

	user, err := uc.UserRepository.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, exceptions.ErrUnauthorizedSubject(nil)
	}
	return user, nil
}

// BootstrapAdministrator creates the first administrator. The advisory lock
// serializes concurrent runs so at most one can observe zero administrators.
func (uc *authUsecase) BootstrapAdministrator(ctx context.Context, request *requests.BootstrapAdministrator) (*models.User, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("authUsecase.BootstrapAdministrator called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	passwordHash, err := uc.hashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	var created *models.User
	err = uc.TransactionManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		err := uc.UserRepository.LockBootstrapAdministrator(txCtx)
		if err != nil {
			return err
		}

		count, err := uc.UserRepository.CountByRole(txCtx, constvars.RoleAdministrator)
		if err != nil {
			return err
		}
		if count > 0 {
			return exceptions.ErrAdministratorAlreadyExist(nil, count)
		}

		err = uc.ensureIdentityAvailable(txCtx, request.Email, request.Phone)
		if err != nil {
			return err
		}

		created, err = uc.UserRepository.CreateUser(txCtx, &models.User{
			Name:         request.Name,
			Email:        request.Email,
			Phone:        request.Phone,
			PasswordHash: passwordHash,
			IsVerified:   true,
			Role:         constvars.RoleAdministrator,
		})
		return err
	})
	if err != nil {
		uc.Log.Error("authUsecase.BootstrapAdministrator failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.BootstrapAdministrator succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, created.ID),
	)
	return created, nil
}

func (uc *authUsecase) ensureIdentityAvailable(ctx context.Context, email, phone string) error {
	existing, err := uc.UserRepository.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return exceptions.ErrEmailAlreadyExist(nil)
	}

	existing, err = uc.UserRepository.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return exceptions.ErrPhoneAlreadyExist(nil)
	}
	return nil
}

func (uc *authUsecase) findByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	if email != "" {
		return uc.UserRepository.FindByEmail(ctx, email)
	}
	return uc.UserRepository.FindByPhone(ctx, phone)
}

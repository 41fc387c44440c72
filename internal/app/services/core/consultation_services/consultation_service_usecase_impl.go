package consultation_services

import (
	"context"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
	"medconsult-service/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type consultationServiceUsecase struct {
	ConsultationServiceRepository contracts.ConsultationServiceRepository
	Log                           *zap.Logger
	now                           func() time.Time
}

func NewConsultationServiceUsecase(consultationServiceRepository contracts.ConsultationServiceRepository, logger *zap.Logger) contracts.ConsultationServiceUsecase {
	return &consultationServiceUsecase{
		ConsultationServiceRepository: consultationServiceRepository,
		Log:                           logger,
		now:                           time.Now,
	}
}

func (uc *consultationServiceUsecase) ListServices(ctx context.Context) ([]responses.ConsultationService, error) {
	services, err := uc.ConsultationServiceRepository.ListActive(ctx)
	if err != nil {
		uc.Log.Error("consultationServiceUsecase.ListServices error fetching services",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]responses.ConsultationService, 0, len(services))
	for _, service := range services {
		result = append(result, responses.ConsultationService{
			ServiceID:   service.ID.Hex(),
			Name:        service.Name,
			Description: service.Description,
			Active:      service.Active,
		})
	}
	return result, nil
}

func (uc *consultationServiceUsecase) CreateService(ctx context.Context, request *requests.CreateConsultationService) (*responses.ConsultationService, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("consultationServiceUsecase.CreateService called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	now := uc.now().UTC()
	service := &models.ConsultationService{
		Name:        request.Name,
		Description: request.Description,
		Active:      true,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	serviceID, err := uc.ConsultationServiceRepository.Create(ctx, service)
	if err != nil {
		uc.Log.Error("consultationServiceUsecase.CreateService error inserting service",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("consultationServiceUsecase.CreateService succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)
	return &responses.ConsultationService{
		ServiceID:   serviceID,
		Name:        service.Name,
		Description: service.Description,
		Active:      service.Active,
	}, nil
}

package contracts

import (
	"context"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/dto/requests"
	"medconsult-service/internal/pkg/dto/responses"
)

type ConsultationServiceRepository interface {
	Create(ctx context.Context, service *models.ConsultationService) (string, error)
	FindByID(ctx context.Context, serviceID string) (*models.ConsultationService, error)
	ListActive(ctx context.Context) ([]models.ConsultationService, error)
}

type ConsultationServiceUsecase interface {
	ListServices(ctx context.Context) ([]responses.ConsultationService, error)
	CreateService(ctx context.Context, request *requests.CreateConsultationService) (*responses.ConsultationService, error)
}

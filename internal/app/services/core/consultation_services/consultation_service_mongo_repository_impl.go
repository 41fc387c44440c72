package consultation_services

import (
	"context"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type consultationServiceMongoRepository struct {
	Collection *mongo.Collection
}

func NewConsultationServiceMongoRepository(db *mongo.Client, dbName string) contracts.ConsultationServiceRepository {
	return &consultationServiceMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionConsultationServices),
	}
}

func (repo *consultationServiceMongoRepository) Create(ctx context.Context, service *models.ConsultationService) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, service)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

// FindByID treats an id that is not an ObjectID as a missing service.
func (repo *consultationServiceMongoRepository) FindByID(ctx context.Context, serviceID string) (*models.ConsultationService, error) {
	objectID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return nil, nil
	}

	var service models.ConsultationService
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &service, nil
}

func (repo *consultationServiceMongoRepository) ListActive(ctx context.Context) ([]models.ConsultationService, error) {
	var services []models.ConsultationService
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{"active": true}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &services)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return services, nil
}

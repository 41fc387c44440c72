package payments

import (
	"context"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/models"
	"medconsult-service/internal/pkg/constvars"
	"medconsult-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type paymentCallbackMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentCallbackMongoRepository(db *mongo.Client, dbName string) contracts.PaymentCallbackRepository {
	return &paymentCallbackMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPaymentCallbacks),
	}
}

func (repo *paymentCallbackMongoRepository) Store(ctx context.Context, callback *models.PaymentCallback) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, callback)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *paymentCallbackMongoRepository) MarkReconciled(ctx context.Context, callbackID string) error {
	objectID, err := primitive.ObjectIDFromHex(callbackID)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	_, err = repo.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{"reconciled": true}})
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

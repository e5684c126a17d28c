package payments

import (
	"context"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentIntentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentIntentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentIntentRepository {
	return &PaymentIntentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPaymentIntents),
	}
}

// CreateIntent inserts a pending intent. The collection has a unique index
// on appointmentId, partial over the active statuses, so a second active
// intent for the same slot surfaces as a duplicate-key error.
func (r *PaymentIntentMongoRepository) CreateIntent(ctx context.Context, intent *models.PaymentIntent) (*models.PaymentIntent, error) {
	now := time.Now().UTC()
	intent.CreatedAt = now
	intent.UpdatedAt = now
	intent.Status = models.PaymentIntentStatusPending

	result, err := r.Collection.InsertOne(ctx, intent)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrActivePaymentIntentExists(err)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	intent.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return intent, nil
}

func (r *PaymentIntentMongoRepository) FindByID(ctx context.Context, intentID string) (*models.PaymentIntent, error) {
	objectID, err := primitive.ObjectIDFromHex(intentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var intent models.PaymentIntent
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&intent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &intent, nil
}

func (r *PaymentIntentMongoRepository) FindActiveByAppointmentID(ctx context.Context, appointmentID string) (*models.PaymentIntent, error) {
	filter := bson.M{
		"appointmentId": appointmentID,
		"status":        bson.M{"$in": models.ActivePaymentIntentStatuses},
	}
	var intent models.PaymentIntent
	err := r.Collection.FindOne(ctx, filter).Decode(&intent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &intent, nil
}

// UpdateStatus transitions an intent, refusing to move one that has already
// reached a terminal status. A nil result means the intent was missing or
// terminal; the caller decides which it is.
func (r *PaymentIntentMongoRepository) UpdateStatus(ctx context.Context, intentID string, status models.PaymentIntentStatus) (*models.PaymentIntent, error) {
	objectID, err := primitive.ObjectIDFromHex(intentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	filter := bson.M{
		"_id":    objectID,
		"status": bson.M{"$in": models.ActivePaymentIntentStatuses},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    status,
			"updatedAt": time.Now().UTC(),
		},
	}
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var intent models.PaymentIntent
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, updateOptions).Decode(&intent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &intent, nil
}

func (r *PaymentIntentMongoRepository) SetGatewayRef(ctx context.Context, intentID, externalRef, paymentURL string) error {
	objectID, err := primitive.ObjectIDFromHex(intentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{
		"$set": bson.M{
			"externalRef": externalRef,
			"paymentUrl":  paymentURL,
			"status":      models.PaymentIntentStatusProcessing,
			"updatedAt":   time.Now().UTC(),
		},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// SweepExpired cancels every active intent whose deadline has passed, so the
// one-active-intent index never blocks a retry after the slot lock lapses.
func (r *PaymentIntentMongoRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":    bson.M{"$in": models.ActivePaymentIntentStatuses},
		"expiresAt": bson.M{"$lte": now},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.PaymentIntentStatusCancelled,
			"updatedAt": now,
		},
	}
	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}

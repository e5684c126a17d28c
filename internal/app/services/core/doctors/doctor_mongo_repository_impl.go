package doctors

import (
	"context"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/contracts"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Client, dbName string) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

func (r *DoctorMongoRepository) FindAll(ctx context.Context) ([]models.Doctor, error) {
	findOptions := options.Find().SetSort(bson.M{"fullName": 1})
	cursor, err := r.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	doctors := make([]models.Doctor, 0)
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return doctors, nil
}

func (r *DoctorMongoRepository) FindByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var doctor models.Doctor
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

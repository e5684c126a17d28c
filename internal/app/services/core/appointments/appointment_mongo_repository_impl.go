package appointments

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

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

// CreateAppointment inserts a new pending slot. The collection carries a
// unique index over (doctorId, hospital, date, timeSlot), partial over the
// active statuses, so a concurrent insert for the same tuple surfaces here
// as a duplicate-key error rather than a double booking.
func (r *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	appointment.Status = models.AppointmentStatusPending

	result, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, exceptions.ErrSlotAlreadyBooked(err)
		}
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	appointment.ID = result.InsertedID.(primitive.ObjectID).Hex()
	return appointment, nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var appointment models.Appointment
	err = r.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.findAll(ctx, bson.M{"patientId": patientID})
}

func (r *AppointmentMongoRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.findAll(ctx, bson.M{"doctorId": doctorID})
}

func (r *AppointmentMongoRepository) FindActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	filter := bson.M{
		"doctorId": doctorID,
		"date":     date,
		"status":   bson.M{"$in": models.ActiveAppointmentStatuses},
	}
	return r.findAll(ctx, filter)
}

// findAll lists slots most recent first by appointment schedule. Dates are
// YYYY-MM-DD and slots HH:MM, so the lexicographic sort is chronological.
func (r *AppointmentMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "timeSlot", Value: -1}})
	cursor, err := r.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

// Lock atomically moves a slot to locked. The filter admits pending and
// locked so a payment retry refreshes the expiry instead of failing; any
// other status means the slot is not lockable and nil is returned.
func (r *AppointmentMongoRepository) Lock(ctx context.Context, appointmentID, paymentRef string, lockedUntil time.Time) (*models.Appointment, error) {
	filter := bson.M{
		"status": bson.M{"$in": []models.AppointmentStatus{
			models.AppointmentStatusPending,
			models.AppointmentStatusLocked,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":      models.AppointmentStatusLocked,
			"paymentRef":  paymentRef,
			"lockedUntil": lockedUntil,
			"updatedAt":   time.Now().UTC(),
		},
	}
	return r.conditionalUpdate(ctx, appointmentID, filter, update)
}

// Release moves a locked slot back to pending and clears the lock fields.
// The filter also matches paymentRef so only the intent holding the lock can
// release it; a lock refreshed by a newer intent is left alone.
func (r *AppointmentMongoRepository) Release(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error) {
	filter := bson.M{
		"status":     models.AppointmentStatusLocked,
		"paymentRef": paymentRef,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.AppointmentStatusPending,
			"updatedAt": time.Now().UTC(),
		},
		"$unset": bson.M{
			"paymentRef":  "",
			"lockedUntil": "",
		},
	}
	return r.conditionalUpdate(ctx, appointmentID, filter, update)
}

// Confirm moves a locked slot to confirmed. paymentRef becomes the permanent
// record of the gateway transaction that paid for it.
func (r *AppointmentMongoRepository) Confirm(ctx context.Context, appointmentID, paymentRef string) (*models.Appointment, error) {
	filter := bson.M{"status": models.AppointmentStatusLocked}
	update := bson.M{
		"$set": bson.M{
			"status":     models.AppointmentStatusConfirmed,
			"paymentRef": paymentRef,
			"updatedAt":  time.Now().UTC(),
		},
		"$unset": bson.M{
			"lockedUntil": "",
		},
	}
	return r.conditionalUpdate(ctx, appointmentID, filter, update)
}

func (r *AppointmentMongoRepository) conditionalUpdate(ctx context.Context, appointmentID string, filter, update bson.M) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	filter["_id"] = objectID

	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var appointment models.Appointment
	err = r.Collection.FindOneAndUpdate(ctx, filter, update, updateOptions).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &appointment, nil
}

// SweepExpired returns every locked slot whose lock has lapsed to pending.
func (r *AppointmentMongoRepository) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"status":      models.AppointmentStatusLocked,
		"lockedUntil": bson.M{"$lt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"status":    models.AppointmentStatusPending,
			"updatedAt": now,
		},
		"$unset": bson.M{
			"paymentRef":  "",
			"lockedUntil": "",
		},
	}
	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}

func (r *AppointmentMongoRepository) AppendAttachment(ctx context.Context, appointmentID, objectURL string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	update := bson.M{
		"$push": bson.M{"attachments": objectURL},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	_, err = r.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

package main

import (
	"context"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/drivers/database"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/drivers/logger"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/models"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/constvars"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Creates the indexes the booking invariants rely on. Run once per
// environment before starting the API.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewLogrusLogger(internalConfig)

	mongoDB := database.NewMongoDB(driverConfig)
	db := mongoDB.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// One active appointment per (doctor, hospital, date, time) tuple.
	// Partial over the active statuses so completed and cancelled bookings
	// free the slot for rebooking.
	appointmentIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "doctorId", Value: 1},
			{Key: "hospital", Value: 1},
			{Key: "date", Value: 1},
			{Key: "timeSlot", Value: 1},
		},
		Options: options.Index().
			SetName("uniq_active_slot").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": models.ActiveAppointmentStatuses},
			}),
	}
	name, err := db.Collection(constvars.MongoCollectionAppointments).Indexes().CreateOne(ctx, appointmentIndex)
	if err != nil {
		log.Fatalf("Failed to create appointment slot index: %v", err)
	}
	log.Infof("Created index %s on %s", name, constvars.MongoCollectionAppointments)

	// One active payment intent per appointment.
	intentIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "appointmentId", Value: 1}},
		Options: options.Index().
			SetName("uniq_active_intent").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{
				"status": bson.M{"$in": models.ActivePaymentIntentStatuses},
			}),
	}
	name, err = db.Collection(constvars.MongoCollectionPaymentIntents).Indexes().CreateOne(ctx, intentIndex)
	if err != nil {
		log.Fatalf("Failed to create payment intent index: %v", err)
	}
	log.Infof("Created index %s on %s", name, constvars.MongoCollectionPaymentIntents)

	// Sweep scan support.
	sweepIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "lockedUntil", Value: 1},
		},
		Options: options.Index().SetName("sweep_locked_until"),
	}
	name, err = db.Collection(constvars.MongoCollectionAppointments).Indexes().CreateOne(ctx, sweepIndex)
	if err != nil {
		log.Fatalf("Failed to create sweep index: %v", err)
	}
	log.Infof("Created index %s on %s", name, constvars.MongoCollectionAppointments)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/config"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/controllers"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/middlewares"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/delivery/http/routers"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/drivers/database"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/drivers/logger"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/drivers/messaging"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/drivers/storage"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/core/appointments"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/core/doctors"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/core/payments"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/core/sweep"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/core/users"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/jwtmanager"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/locker"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/notifier"
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/payment_gateway"
	redisrepo "github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/redis"
	minioStorage "github.com/Stepho-hub/HealthKonnect-sub001/internal/app/services/shared/storage"

	"github.com/go-chi/chi/v5"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	// Shared services
	redisRepository := redisrepo.NewRedisRepository(redisClient)
	lockerService := locker.NewLockService(redisRepository, zapLogger)
	notifierService, err := notifier.NewQueueNotifier(rabbitMQ, zapLogger, internalConfig.App.NotificationQueue)
	if err != nil {
		log.Fatalf("Failed to initialize queue notifier: %v", err)
	}
	momoService := payment_gateway.NewMomoService(internalConfig, zapLogger)
	storageService := minioStorage.NewMinioStorage(minioClient)
	jwtManager := jwtmanager.NewJWTManager(internalConfig)

	// Repositories
	dbName := driverConfig.MongoDB.DbName
	appointmentRepository := appointments.NewAppointmentMongoRepository(mongoDB, dbName)
	paymentIntentRepository := payments.NewPaymentIntentMongoRepository(mongoDB, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(mongoDB, dbName)
	userRepository := users.NewUserMongoRepository(mongoDB, dbName)

	// Usecases
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		paymentIntentRepository,
		doctorRepository,
		userRepository,
		redisRepository,
		internalConfig,
		zapLogger,
	)
	paymentUsecase := payments.NewPaymentUsecase(
		appointmentRepository,
		paymentIntentRepository,
		momoService,
		notifierService,
		internalConfig,
		zapLogger,
	)
	doctorUsecase := doctors.NewDoctorUsecase(
		doctorRepository,
		appointmentRepository,
		redisRepository,
		internalConfig,
		zapLogger,
	)

	// Controllers
	appointmentController := controllers.NewAppointmentController(zapLogger, appointmentUsecase)
	paymentController := controllers.NewPaymentController(zapLogger, paymentUsecase)
	doctorController := controllers.NewDoctorController(zapLogger, doctorUsecase)
	attachmentController := controllers.NewAttachmentController(zapLogger, appointmentUsecase, storageService, driverConfig, internalConfig)

	appMiddlewares := middlewares.NewMiddlewares(zapLogger, jwtManager, internalConfig)
	routers.SetupRoutes(
		chiRouter,
		internalConfig,
		appMiddlewares,
		appointmentController,
		paymentController,
		doctorController,
		attachmentController,
	)

	// Background sweep of lapsed slot locks
	sweepWorker := sweep.NewWorker(zapLogger, internalConfig, lockerService, appointmentUsecase)
	sweepWorker.Start(context.Background())

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	sweepWorker.Stop()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

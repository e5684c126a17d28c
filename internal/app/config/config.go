package config

import (
	"github.com/Stepho-hub/HealthKonnect-sub001/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "healthkonnect"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "defaultPassword"),
		},
		Minio: Minio{
			Port:       utils.GetEnvString("MINIO_PORT", "9000"),
			Host:       utils.GetEnvString("MINIO_HOST", "localhost"),
			Username:   utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password:   utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			BucketName: utils.GetEnvString("MINIO_BUCKET_NAME", "appointment-attachments"),
			UseSSL:     utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	config := &InternalConfig{
		App: App{
			Env:                         utils.GetEnvString("APP_ENV", "development"),
			Port:                        utils.GetEnvString("APP_PORT", ":8080"),
			Version:                     utils.GetEnvString("APP_VERSION", "v1"),
			Timezone:                    utils.GetEnvString("APP_TIMEZONE", "Africa/Douala"),
			EndpointPrefix:              utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                 utils.GetEnvInt("APP_MAX_REQUEST", 10),
			ShutdownTimeout:             utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			NotificationQueue:           utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_QUEUE", "booking-notifications"),
			AttachmentMaxUploadSizeInMB: utils.GetEnvInt64("APP_ATTACHMENT_UPLOAD_MAX_SIZE_IN_MB", 6),
		},
		JWT: JWT{
			Secret: utils.GetEnvString("JWT_SECRET", "anyjwt"),
		},
		Booking: Booking{
			LockDurationSeconds:  utils.GetEnvInt("BOOKING_LOCK_DURATION_SECONDS", 120),
			IntentTTLSeconds:     utils.GetEnvInt("BOOKING_INTENT_TTL_SECONDS", 120),
			SlotIntervalMinutes:  utils.GetEnvInt("BOOKING_SLOT_INTERVAL_MINUTES", 30),
			SweepCronSpec:        utils.GetEnvString("BOOKING_SWEEP_CRON_SPEC", "@every 1m"),
			AvailabilityCacheTTL: utils.GetEnvInt("BOOKING_AVAILABILITY_CACHE_TTL_SECONDS", 30),
		},
		PaymentGateway: PaymentGateway{
			BaseUrl:     utils.GetEnvString("PAYMENT_GATEWAY_BASE_URL", "http://localhost:7070"),
			Username:    utils.GetEnvString("PAYMENT_GATEWAY_USERNAME", ""),
			ApiKey:      utils.GetEnvString("PAYMENT_GATEWAY_API_KEY", ""),
			Currency:    utils.GetEnvString("PAYMENT_GATEWAY_CURRENCY", "XAF"),
			CallbackUrl: utils.GetEnvString("PAYMENT_GATEWAY_CALLBACK_URL", "http://localhost:8080/api/v1/payments/callback"),
		},
	}

	// A payment intent must never outlive the slot lock it was opened for.
	if config.Booking.IntentTTLSeconds > config.Booking.LockDurationSeconds {
		config.Booking.IntentTTLSeconds = config.Booking.LockDurationSeconds
	}
	return config
}

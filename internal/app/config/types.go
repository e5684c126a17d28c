package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port       string
		Host       string
		Username   string
		Password   string
		BucketName string
		UseSSL     bool
	}
)

type (
	InternalConfig struct {
		App            App
		JWT            JWT
		Booking        Booking
		PaymentGateway PaymentGateway
	}

	App struct {
		Env                         string
		Port                        string
		Version                     string
		Timezone                    string
		EndpointPrefix              string
		MaxRequests                 int
		ShutdownTimeout             int
		NotificationQueue           string
		AttachmentMaxUploadSizeInMB int64
	}

	JWT struct {
		Secret string
	}

	Booking struct {
		LockDurationSeconds  int
		IntentTTLSeconds     int
		SlotIntervalMinutes  int
		SweepCronSpec        string
		AvailabilityCacheTTL int
	}

	PaymentGateway struct {
		BaseUrl     string
		Username    string
		ApiKey      string
		Currency    string
		CallbackUrl string
	}
)

package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingRequestKey            = "request"
	LoggingResponseKey           = "response"
	LoggingResponseLengthKey     = "response_length"
	LoggingUserIDKey             = "user_id"
	LoggingRoleKey               = "role"
	LoggingAppointmentIDKey      = "appointment_id"
	LoggingPaymentIntentIDKey    = "payment_intent_id"
	LoggingDoctorIDKey           = "doctor_id"
	LoggingExternalRefKey        = "external_ref"
	LoggingPaymentStatusKey      = "payment_status"
	LoggingSweptCountKey         = "swept_count"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingObjectNameKey         = "object_name"
	LoggingQueueKey              = "queue"
	LoggingErrorTypeKey          = "error_type"
)

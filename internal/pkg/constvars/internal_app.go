package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_UID_KEY                  ContextKey = "uid"
	CONTEXT_ROLE_KEY                 ContextKey = "role"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "HK_SVC_"
)

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
)

const (
	MongoCollectionAppointments   = "appointments"
	MongoCollectionPaymentIntents = "payment_intents"
	MongoCollectionDoctors        = "doctors"
	MongoCollectionUsers          = "users"
)

// Statuses reported by the mobile-money routing gateway in its callback payload.
const (
	MOMO_SUCCESS_STATUS   = "SUCCESSFUL"
	MOMO_PENDING_STATUS   = "PENDING"
	MOMO_FAILED_STATUS    = "FAILED"
	MOMO_EXPIRED_STATUS   = "EXPIRED"
	MOMO_CANCELLED_STATUS = "CANCELLED"
)

const (
	BookingDateFormat = "2006-01-02"
	BookingTimeFormat = "15:04"
)

const (
	RedisKeySweepLeader              = "booking:sweep:leader"
	RedisKeyDoctorAvailabilityFormat = "booking:availability:%s:%s"
)

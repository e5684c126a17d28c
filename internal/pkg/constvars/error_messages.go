package constvars

// Client-facing messages. Keep these free of internals; DevMessages carry the detail.
const (
	ErrClientSomethingWrongWithApplication = "Something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "Cannot process your request, please check your input"
	ErrClientNotAuthorized                 = "You are not authorized to perform this action"
	ErrClientNotLoggedIn                   = "You are not logged in, please log in first"
	ErrClientServerLongRespond             = "Server took too long to respond, please try again"
	ErrClientSlotAlreadyBooked             = "This appointment slot is already taken, please pick another time"
	ErrClientSlotNotLockable               = "This appointment can no longer be reserved for payment"
	ErrClientAppointmentNotFound           = "Appointment not found"
	ErrClientDoctorNotFound                = "Doctor not found"
	ErrClientPaymentIntentNotFound         = "Payment attempt not found"
	ErrClientPaymentInProgress             = "A payment for this appointment is already in progress"
	ErrClientPaymentGatewayUnavailable     = "Payment provider is unavailable at the moment, please try again later"
	ErrClientDateInThePast                 = "Appointment date cannot be in the past"
	ErrClientFileTooLarge                  = "Uploaded file is too large"
)

// Developer-facing messages.
const (
	ErrDevValidationFailed               = "VALIDATION_FAILED"
	ErrDevInvalidRequestPayload          = "INVALID_REQUEST_PAYLOAD"
	ErrDevCannotParseJSON                = "CANNOT_PARSE_JSON"
	ErrDevCannotParseMultipartForm       = "CANNOT_PARSE_MULTIPART_FORM"
	ErrDevCannotMarshalJSON              = "CANNOT_MARSHAL_JSON"
	ErrDevMissingRequestID               = "MISSING_REQUEST_ID"
	ErrDevMissingAuthContext             = "MISSING_AUTH_CONTEXT"
	ErrDevServerDeadlineExceeded         = "SERVER_DEADLINE_EXCEEDED"
	ErrDevServerProcess                  = "SERVER_PROCESS_FAILED"
	ErrDevAuthTokenMissing               = "AUTH_TOKEN_MISSING"
	ErrDevAuthTokenInvalidOrExpired      = "AUTH_TOKEN_INVALID_OR_EXPIRED"
	ErrDevURLParamIDValidationFailed     = "URL_PARAM_%s_VALIDATION_FAILED"
	ErrDevDBFailedToFindDocument         = "DB_FAILED_TO_FIND_DOCUMENT"
	ErrDevDBFailedToInsertDocument       = "DB_FAILED_TO_INSERT_DOCUMENT"
	ErrDevDBFailedToUpdateDocument       = "DB_FAILED_TO_UPDATE_DOCUMENT"
	ErrDevDBFailedToDeleteDocument       = "DB_FAILED_TO_DELETE_DOCUMENT"
	ErrDevDBFailedToIterateDocuments     = "DB_FAILED_TO_ITERATE_DOCUMENTS"
	ErrDevDBStringNotObjectID            = "DB_STRING_NOT_OBJECT_ID"
	ErrDevDBDuplicateSlotTuple           = "DB_DUPLICATE_SLOT_TUPLE"
	ErrDevDBDuplicateActiveIntent        = "DB_DUPLICATE_ACTIVE_PAYMENT_INTENT"
	ErrDevSlotNotLockable                = "SLOT_NOT_LOCKABLE"
	ErrDevAppointmentNotFound            = "APPOINTMENT_NOT_FOUND"
	ErrDevDoctorNotFound                 = "DOCTOR_NOT_FOUND"
	ErrDevPaymentIntentNotFound          = "PAYMENT_INTENT_NOT_FOUND"
	ErrDevPaymentGatewayRequest          = "PAYMENT_GATEWAY_REQUEST_FAILED"
	ErrDevPaymentGatewayBadStatus        = "PAYMENT_GATEWAY_BAD_STATUS"
	ErrDevRedisGetNoData                 = "REDIS_GET_NO_DATA_KEY_%s"
	ErrDevRedisGetData                   = "REDIS_FAILED_TO_GET_DATA"
	ErrDevRedisSetData                   = "REDIS_FAILED_TO_SET_DATA"
	ErrDevRedisDeleteData                = "REDIS_FAILED_TO_DELETE_DATA"
	ErrDevRedisUnlockNotOwned            = "REDIS_UNLOCK_NOT_OWNED"
	ErrDevRabbitMQPublishMessage         = "RABBITMQ_FAILED_TO_PUBLISH_QUEUE_%s"
	ErrDevMinioFailedToCreateObject      = "MINIO_FAILED_TO_CREATE_OBJECT_BUCKET_%s"
	ErrDevInvalidInput                   = "INVALID_INPUT"
	ErrDevAppointmentNotOwnedByRequester = "APPOINTMENT_NOT_OWNED_BY_REQUESTER"
)

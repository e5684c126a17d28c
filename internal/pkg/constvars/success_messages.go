package constvars

const (
	CreateAppointmentSuccessMessage   = "Successfully created appointment"
	GetAppointmentSuccessMessage      = "Successfully retrieved appointments"
	InitiatePaymentSuccessMessage     = "Successfully initiated payment"
	PaymentCallbackSuccessMessage     = "Successfully processed payment callback"
	GetDoctorSuccessMessage           = "Successfully retrieved doctors"
	GetAvailableSlotsSuccessMessage   = "Successfully retrieved available time slots"
	UploadAttachmentSuccessMessage    = "Successfully uploaded attachment"
	SweepExpiredLocksSuccessMessage   = "Successfully swept expired slot locks"
	CustomValidationMessagePastDate   = "must not be in the past"
	CustomValidationMessageTimeFormat = "must be in HH:MM format"
)

// CustomValidationErrorMessages maps validator tags to client wording.
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"min":      "must be at least %s",
	"max":      "must be at most %s",
	"oneof":    "must be one of: %s",
	"datetime": "has an invalid format",
	"email":    "must be a valid email address",
	"e164":     "must be a valid phone number in international format",
}

// TagsWithParams marks tags whose message embeds the tag parameter.
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
}

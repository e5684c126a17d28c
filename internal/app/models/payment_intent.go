package models

import "time"

type PaymentIntentStatus string

const (
	PaymentIntentStatusPending    PaymentIntentStatus = "pending"
	PaymentIntentStatusProcessing PaymentIntentStatus = "processing"
	PaymentIntentStatusCompleted  PaymentIntentStatus = "completed"
	PaymentIntentStatusFailed     PaymentIntentStatus = "failed"
	PaymentIntentStatusCancelled  PaymentIntentStatus = "cancelled"
)

// ActivePaymentIntentStatuses are the non-terminal statuses. At most one
// intent per appointment may hold one of these at a time; the uniqueness
// index on the payment_intents collection is partial over this set.
var ActivePaymentIntentStatuses = []PaymentIntentStatus{
	PaymentIntentStatusPending,
	PaymentIntentStatusProcessing,
}

// Terminal reports whether the intent may no longer change status.
func (s PaymentIntentStatus) Terminal() bool {
	return s == PaymentIntentStatusCompleted ||
		s == PaymentIntentStatusFailed ||
		s == PaymentIntentStatusCancelled
}

// PaymentIntent tracks one payment attempt against one appointment slot.
// Amount and currency are copied from the slot at creation and never re-read,
// so a doctor's fee change mid-flow cannot alter an in-flight charge.
type PaymentIntent struct {
	ID            string              `json:"id" bson:"_id,omitempty"`
	AppointmentID string              `json:"appointmentId" bson:"appointmentId"`
	Amount        int64               `json:"amount" bson:"amount"`
	Currency      string              `json:"currency" bson:"currency"`
	Status        PaymentIntentStatus `json:"status" bson:"status"`
	ExternalRef   string              `json:"externalRef,omitempty" bson:"externalRef,omitempty"`
	PaymentURL    string              `json:"paymentUrl,omitempty" bson:"paymentUrl,omitempty"`
	ExpiresAt     time.Time           `json:"expiresAt" bson:"expiresAt"`
	TimeModel     `bson:",inline"`
}

package responses

import "time"

type InitiatePayment struct {
	PaymentIntentID string    `json:"payment_intent_id"`
	AppointmentID   string    `json:"appointment_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	PaymentURL      string    `json:"payment_url,omitempty"`
	ExternalRef     string    `json:"external_ref,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
}

package requests

// InitiatePayment starts a mobile-money charge for a pending appointment.
type InitiatePayment struct {
	PayerPhone string `json:"payer_phone" validate:"required,e164"`
}

// PaymentCallback is the asynchronous notification posted by the mobile-money
// routing gateway. PartnerTrxID carries our payment-intent ID as handed to the
// gateway at charge initiation.
type PaymentCallback struct {
	PartnerTrxID  string `json:"partner_trx_id" validate:"required"`
	TrxRef        string `json:"trx_ref"`
	PaymentStatus string `json:"payment_status" validate:"required"`
}

package requests

// GatewayCharge is the request-payment body sent to the mobile-money gateway.
type GatewayCharge struct {
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	PhoneNumber  string `json:"phone_number"`
	Description  string `json:"description"`
	PartnerTrxID string `json:"partner_trx_id"`
	CallbackURL  string `json:"callback_url"`
}

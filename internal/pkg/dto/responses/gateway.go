package responses

type GatewayCharge struct {
	TrxRef     string `json:"trx_ref"`
	Status     string `json:"status"`
	PaymentURL string `json:"payment_url"`
}

package request_models

type CreateSubscriptionRequest struct {
	PlanCode string `json:"plan_code" binding:"required"`
	// Signature of an already-settled first payment made by the client.
	// When empty the wallet service is asked to sign and submit one.
	Signature string `json:"signature"`
}

type RecordPaymentRequest struct {
	Signature string `json:"signature"`
}

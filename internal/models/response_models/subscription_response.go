package response_models

type SubscriptionResponse struct {
	ID              string  `json:"id"`
	PlanID          string  `json:"plan_id"`
	PlanCode        string  `json:"plan_code,omitempty"`
	PlanName        string  `json:"plan_name,omitempty"`
	WalletAddress   string  `json:"wallet_address"`
	MerchantAddress string  `json:"merchant_address"`
	AmountLamports  int64   `json:"amount_lamports"`
	AmountSOL       float64 `json:"amount_sol"`
	Cycle           string  `json:"cycle"`
	Status          string  `json:"status"`
	StartedAt       int64   `json:"started_at"`
	NextBillingAt   int64   `json:"next_billing_at"`
	DaysUntilDue    int     `json:"days_until_due"`
	IsDue           bool    `json:"is_due"`
	LastPaymentTx   string  `json:"last_payment_tx,omitempty"`
	CancelledAt     *int64  `json:"cancelled_at,omitempty"`
}

type PaymentResponse struct {
	ID             string  `json:"id"`
	SubscriptionID string  `json:"subscription_id"`
	Signature      string  `json:"signature"`
	AmountLamports int64   `json:"amount_lamports"`
	AmountSOL      float64 `json:"amount_sol"`
	PaidAt         int64   `json:"paid_at"`
}

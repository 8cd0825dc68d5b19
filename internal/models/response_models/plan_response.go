package response_models

type PlanResponse struct {
	ID              string   `json:"id"`
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	MerchantAddress string   `json:"merchant_address"`
	Cycle           string   `json:"cycle"`
	AmountLamports  int64    `json:"amount_lamports"`
	AmountSOL       float64  `json:"amount_sol"`
	Features        []string `json:"features"`
}

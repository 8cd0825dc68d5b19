package db_models

import (
	"github.com/lib/pq"
)

// Plan is a merchant subscription offer. Prices are lamports of the native
// token; the wallet pays the merchant address directly.
type Plan struct {
	BaseModel
	Code            string  `gorm:"uniqueIndex" json:"code"` // e.g. "pro_monthly"
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	MerchantAddress string  `gorm:"size:64" json:"merchant_address"`

	Cycle          BillingCycle `gorm:"size:16" json:"cycle"`
	AmountLamports int64        `json:"amount_lamports"`

	Features pq.StringArray `gorm:"type:text[]" json:"features"`
	IsActive bool           `gorm:"default:true" json:"is_active"`
}

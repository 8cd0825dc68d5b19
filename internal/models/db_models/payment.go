package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Payment is one settled renewal or first charge. The transaction signature
// is globally unique, which is what stops a signature from being replayed
// across subscriptions.
type Payment struct {
	BaseModel
	SubscriptionID  uuid.UUID `gorm:"index" json:"subscription_id"`
	WalletAddress   string    `gorm:"index;size:64" json:"wallet_address"`
	MerchantAddress string    `gorm:"size:64" json:"merchant_address"`
	AmountLamports  int64     `json:"amount_lamports"`

	Signature string `gorm:"uniqueIndex" json:"signature"`
	PaidAt    int64  `json:"paid_at"`

	// Raw provider response for the send, kept for auditing.
	Receipt datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`

	Subscription *Subscription `gorm:"foreignKey:SubscriptionID" json:"-"`
}

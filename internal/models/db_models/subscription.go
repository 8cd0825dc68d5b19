package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"solsub/pkg/utils"
)

type SubscriptionStatus string

const (
	SubStatusActive    SubscriptionStatus = "active"
	SubStatusCancelled SubscriptionStatus = "cancelled"
	SubStatusExpired   SubscriptionStatus = "expired"
)

type BillingCycle string

const (
	CycleWeekly  BillingCycle = "weekly"
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) Valid() bool {
	switch c {
	case CycleWeekly, CycleMonthly, CycleYearly:
		return true
	}
	return false
}

// Advance returns t plus one billing cycle. Month and year steps use
// calendar arithmetic, so Jan 31 + one month normalizes per time.AddDate.
func (c BillingCycle) Advance(t time.Time) time.Time {
	switch c {
	case CycleWeekly:
		return t.AddDate(0, 0, 7)
	case CycleYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

type statusTransition struct {
	from SubscriptionStatus
	to   SubscriptionStatus
}

// Cancelled and expired are terminal; only an active subscription moves.
var validTransitions = map[statusTransition]bool{
	{SubStatusActive, SubStatusCancelled}: true,
	{SubStatusActive, SubStatusExpired}:   true,
}

func CanTransition(from, to SubscriptionStatus) bool {
	return validTransitions[statusTransition{from: from, to: to}]
}

// Subscription is one row of the recurring-payment ledger. Amounts are
// lamports; times are unix seconds.
type Subscription struct {
	BaseModel
	PlanID          uuid.UUID `gorm:"index" json:"plan_id"`
	WalletAddress   string    `gorm:"index;size:64" json:"wallet_address"`
	MerchantAddress string    `gorm:"size:64" json:"merchant_address"`
	AmountLamports  int64     `json:"amount_lamports"`

	Cycle         BillingCycle       `gorm:"size:16" json:"cycle"`
	Status        SubscriptionStatus `gorm:"size:16;index" json:"status"`
	StartedAt     int64              `gorm:"not null" json:"started_at"`
	NextBillingAt int64              `gorm:"not null;index" json:"next_billing_at"`
	CancelledAt   *int64             `json:"cancelled_at,omitempty"`

	// Signature of the most recent on-chain payment for this subscription.
	LastPaymentTx string `json:"last_payment_tx"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"-"`

	Plan Plan `gorm:"foreignKey:PlanID" json:"-"`
}

// IsDue reports whether a renewal payment is owed at now. The boundary is
// inclusive: a subscription is due the moment now reaches NextBillingAt.
func (s *Subscription) IsDue(now time.Time) bool {
	return s.Status == SubStatusActive && now.Unix() >= s.NextBillingAt
}

// DaysUntilDue counts whole or partial days until the next billing date,
// clamped at zero once the date has passed.
func (s *Subscription) DaysUntilDue(now time.Time) int {
	return utils.DaysUntil(now, time.Unix(s.NextBillingAt, 0))
}

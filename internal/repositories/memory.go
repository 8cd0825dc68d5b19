package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"solsub/internal/models/db_models"
	"solsub/pkg/utils"
)

// In-memory implementations of the repositories. Tests use them in place of
// Postgres; they keep the behaviour callers depend on: key conflicts,
// not-found as nil, result ordering.

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]db_models.WalletSession
}

func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]db_models.WalletSession)}
}

func (m *memorySessionRepository) Save(_ context.Context, session *db_models.WalletSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session.UpdatedAt = time.Now().Unix()
	m.sessions[session.WalletAddress] = *session
	return nil
}

func (m *memorySessionRepository) Load(_ context.Context, walletAddress string) (*db_models.WalletSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[walletAddress]
	if !ok {
		return nil, nil
	}
	if session.ConnectedAt <= 0 {
		delete(m.sessions, walletAddress)
		return nil, nil
	}

	out := session
	return &out, nil
}

func (m *memorySessionRepository) Clear(_ context.Context, walletAddress string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, walletAddress)
	return nil
}

type memorySubscriptionRepository struct {
	mu    sync.RWMutex
	subs  map[uuid.UUID]db_models.Subscription
	order []uuid.UUID
}

func NewMemorySubscriptionRepository() SubscriptionRepository {
	return &memorySubscriptionRepository{subs: make(map[uuid.UUID]db_models.Subscription)}
}

func (m *memorySubscriptionRepository) Insert(_ context.Context, sub *db_models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sub.ID == uuid.Nil {
		sub.ID = uuid.New()
	}
	now := time.Now().Unix()
	sub.CreatedAt = now
	sub.UpdatedAt = now

	m.subs[sub.ID] = *sub
	m.order = append(m.order, sub.ID)
	return nil
}

func (m *memorySubscriptionRepository) FindByID(_ context.Context, id uuid.UUID) (*db_models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[id]
	if !ok {
		return nil, nil
	}

	out := sub
	return &out, nil
}

func (m *memorySubscriptionRepository) FindByWallet(_ context.Context, walletAddress string) ([]db_models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var subs []db_models.Subscription
	// newest first, matching the DB ordering
	for i := len(m.order) - 1; i >= 0; i-- {
		if sub, ok := m.subs[m.order[i]]; ok && sub.WalletAddress == walletAddress {
			subs = append(subs, sub)
		}
	}
	return subs, nil
}

func (m *memorySubscriptionRepository) Update(_ context.Context, sub *db_models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub.UpdatedAt = time.Now().Unix()
	m.subs[sub.ID] = *sub
	return nil
}

func (m *memorySubscriptionRepository) FindDue(_ context.Context, before int64) ([]db_models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var subs []db_models.Subscription
	for _, sub := range m.subs {
		if sub.Status == db_models.SubStatusActive && sub.NextBillingAt <= before {
			subs = append(subs, sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].NextBillingAt < subs[j].NextBillingAt })
	return subs, nil
}

type memoryPaymentRepository struct {
	mu       sync.RWMutex
	payments []db_models.Payment
	sigs     map[string]bool
}

func NewMemoryPaymentRepository() PaymentRepository {
	return &memoryPaymentRepository{sigs: make(map[string]bool)}
}

func (m *memoryPaymentRepository) Insert(_ context.Context, payment *db_models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sigs[payment.Signature] {
		return utils.ErrDuplicatePayment
	}

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	now := time.Now().Unix()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	m.sigs[payment.Signature] = true
	m.payments = append(m.payments, *payment)
	return nil
}

func (m *memoryPaymentRepository) HasSignature(_ context.Context, signature string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sigs[signature], nil
}

func (m *memoryPaymentRepository) ListBySubscription(_ context.Context, subscriptionID uuid.UUID) ([]db_models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var payments []db_models.Payment
	for _, p := range m.payments {
		if p.SubscriptionID == subscriptionID {
			payments = append(payments, p)
		}
	}
	sort.SliceStable(payments, func(i, j int) bool { return payments[i].PaidAt > payments[j].PaidAt })
	return payments, nil
}

type memoryPlanRepository struct {
	mu    sync.RWMutex
	plans []db_models.Plan
}

func NewMemoryPlanRepository() IPlanRepository {
	return &memoryPlanRepository{}
}

func (m *memoryPlanRepository) GetPlanInfoById(_ context.Context, planID string) (*db_models.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, plan := range m.plans {
		if plan.ID.String() == planID {
			out := plan
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memoryPlanRepository) GetPlanByCode(_ context.Context, code string) (*db_models.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, plan := range m.plans {
		if plan.Code == code {
			out := plan
			return &out, nil
		}
	}
	return nil, nil
}

func (m *memoryPlanRepository) GetActivePlans(_ context.Context) ([]db_models.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var plans []db_models.Plan
	for _, plan := range m.plans {
		if plan.IsActive {
			plans = append(plans, plan)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].AmountLamports < plans[j].AmountLamports })
	return plans, nil
}

func (m *memoryPlanRepository) Insert(_ context.Context, plan *db_models.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.plans {
		if existing.Code == plan.Code {
			return gorm.ErrDuplicatedKey
		}
	}

	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	now := time.Now().Unix()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	m.plans = append(m.plans, *plan)
	return nil
}

func (m *memoryPlanRepository) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.plans)), nil
}

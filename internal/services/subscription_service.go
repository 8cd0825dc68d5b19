package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"solsub/internal/models/db_models"
	"solsub/internal/models/response_models"
	"solsub/internal/repositories"
	"solsub/pkg/utils"
)

type SubscriptionServiceInterface interface {
	// Subscribe charges the first cycle and appends a new active row to the
	// ledger. A caller that already paid passes the signature; otherwise the
	// wallet service signs and submits the transfer.
	Subscribe(ctx context.Context, walletAddress, planCode, signature string) (*response_models.SubscriptionResponse, error)

	ListByWallet(ctx context.Context, walletAddress string) ([]response_models.SubscriptionResponse, error)
	GetByID(ctx context.Context, walletAddress string, id uuid.UUID) (*response_models.SubscriptionResponse, error)
	Cancel(ctx context.Context, walletAddress string, id uuid.UUID) (*response_models.SubscriptionResponse, error)

	// PayRenewal settles a renewal payment and pushes the next billing date
	// one cycle forward from the payment time.
	PayRenewal(ctx context.Context, walletAddress string, id uuid.UUID, signature string) (*response_models.SubscriptionResponse, error)

	ListPayments(ctx context.Context, walletAddress string, id uuid.UUID) ([]response_models.PaymentResponse, error)

	// SweepExpired retires active subscriptions left unpaid for a whole
	// extra cycle past their due date. Returns how many were flipped.
	SweepExpired(ctx context.Context) (int, error)
}

type SubscriptionService struct {
	subs     repositories.SubscriptionRepository
	payments repositories.PaymentRepository
	plans    repositories.IPlanRepository
	provider WalletProvider
	now      func() time.Time
}

func NewSubscriptionService(
	subs repositories.SubscriptionRepository,
	payments repositories.PaymentRepository,
	plans repositories.IPlanRepository,
	provider WalletProvider,
) SubscriptionServiceInterface {
	return &SubscriptionService{
		subs:     subs,
		payments: payments,
		plans:    plans,
		provider: provider,
		now:      time.Now,
	}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, walletAddress, planCode, signature string) (*response_models.SubscriptionResponse, error) {
	if err := utils.ValidateAddress(walletAddress); err != nil {
		return nil, err
	}

	plan, err := s.plans.GetPlanByCode(ctx, planCode)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil || !plan.IsActive {
		return nil, utils.ErrPlanNotFound
	}
	if !plan.Cycle.Valid() {
		return nil, utils.ErrInvalidCycle
	}

	signature, receipt, err := s.settlePayment(ctx, walletAddress, plan.MerchantAddress, plan.AmountLamports, signature, "subscribe:"+plan.Code)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub := &db_models.Subscription{
		PlanID:          plan.ID,
		WalletAddress:   walletAddress,
		MerchantAddress: plan.MerchantAddress,
		AmountLamports:  plan.AmountLamports,
		Cycle:           plan.Cycle,
		Status:          db_models.SubStatusActive,
		StartedAt:       now.Unix(),
		NextBillingAt:   plan.Cycle.Advance(now).Unix(),
		LastPaymentTx:   signature,
		Metadata:        jsonRaw(map[string]any{"plan_code": plan.Code}),
	}
	if err := s.subs.Insert(ctx, sub); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.recordPaymentRow(ctx, sub, signature, receipt, now); err != nil {
		return nil, err
	}

	resp := s.toResponse(sub, plan)
	return &resp, nil
}

func (s *SubscriptionService) ListByWallet(ctx context.Context, walletAddress string) ([]response_models.SubscriptionResponse, error) {
	subs, err := s.subs.FindByWallet(ctx, walletAddress)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, s.toResponse(&subs[i], nil))
	}
	return out, nil
}

func (s *SubscriptionService) GetByID(ctx context.Context, walletAddress string, id uuid.UUID) (*response_models.SubscriptionResponse, error) {
	sub, err := s.ownedSubscription(ctx, walletAddress, id)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.GetPlanInfoById(ctx, sub.PlanID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := s.toResponse(sub, plan)
	return &resp, nil
}

// Cancel stops future billing. The row and its payment history stay in the
// ledger; only the status changes, and only from active.
func (s *SubscriptionService) Cancel(ctx context.Context, walletAddress string, id uuid.UUID) (*response_models.SubscriptionResponse, error) {
	sub, err := s.ownedSubscription(ctx, walletAddress, id)
	if err != nil {
		return nil, err
	}

	if !db_models.CanTransition(sub.Status, db_models.SubStatusCancelled) {
		return nil, utils.ErrSubscriptionNotActive
	}

	now := s.now().Unix()
	sub.Status = db_models.SubStatusCancelled
	sub.CancelledAt = &now
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := s.toResponse(sub, nil)
	return &resp, nil
}

// PayRenewal advances NextBillingAt one cycle from the payment time, not
// from the old due date. A late payer resumes from now; missed cycles are
// never stacked into back charges.
func (s *SubscriptionService) PayRenewal(ctx context.Context, walletAddress string, id uuid.UUID, signature string) (*response_models.SubscriptionResponse, error) {
	sub, err := s.ownedSubscription(ctx, walletAddress, id)
	if err != nil {
		return nil, err
	}
	if sub.Status != db_models.SubStatusActive {
		return nil, utils.ErrSubscriptionNotActive
	}

	signature, receipt, err := s.settlePayment(ctx, walletAddress, sub.MerchantAddress, sub.AmountLamports, signature, "renewal:"+sub.ID.String())
	if err != nil {
		return nil, err
	}

	now := s.now()
	sub.LastPaymentTx = signature
	sub.NextBillingAt = sub.Cycle.Advance(now).Unix()
	if err := s.subs.Update(ctx, sub); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := s.recordPaymentRow(ctx, sub, signature, receipt, now); err != nil {
		return nil, err
	}

	resp := s.toResponse(sub, nil)
	return &resp, nil
}

func (s *SubscriptionService) ListPayments(ctx context.Context, walletAddress string, id uuid.UUID) ([]response_models.PaymentResponse, error) {
	sub, err := s.ownedSubscription(ctx, walletAddress, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListBySubscription(ctx, sub.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, response_models.PaymentResponse{
			ID:             p.ID.String(),
			SubscriptionID: p.SubscriptionID.String(),
			Signature:      p.Signature,
			AmountLamports: p.AmountLamports,
			AmountSOL:      utils.LamportsToSOL(p.AmountLamports),
			PaidAt:         p.PaidAt,
		})
	}
	return out, nil
}

func (s *SubscriptionService) SweepExpired(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.subs.FindDue(ctx, now.Unix())
	if err != nil {
		return 0, utils.ErrDatabaseError
	}

	expired := 0
	pending := 0
	for i := range due {
		sub := &due[i]
		// grace of one full cycle past the due date
		graceEnd := sub.Cycle.Advance(time.Unix(sub.NextBillingAt, 0))
		if now.Before(graceEnd) {
			pending++
			continue
		}
		if !db_models.CanTransition(sub.Status, db_models.SubStatusExpired) {
			continue
		}
		sub.Status = db_models.SubStatusExpired
		if err := s.subs.Update(ctx, sub); err != nil {
			log.Printf("Sweep: marking %s expired failed: %v", sub.ID, err)
			continue
		}
		expired++
	}

	if pending > 0 {
		log.Printf("Billing sweep: %d subscription(s) due, awaiting renewal", pending)
	}
	if expired > 0 {
		log.Printf("Billing sweep expired %d subscription(s)", expired)
	}
	return expired, nil
}

// settlePayment obtains a settled transaction signature for a charge:
// either the caller supplies one from a payment they already made, or the
// wallet service signs and submits the transfer. Replayed signatures are
// rejected before any ledger write.
func (s *SubscriptionService) settlePayment(ctx context.Context, walletAddress, merchantAddress string, lamports int64, signature, memo string) (string, datatypes.JSON, error) {
	var receipt datatypes.JSON

	if signature == "" {
		sig, err := s.provider.SignAndSend(ctx, walletAddress, PaymentInstruction{
			From:     walletAddress,
			To:       merchantAddress,
			Lamports: lamports,
			Memo:     memo,
		})
		if err != nil {
			return "", nil, err
		}
		signature = sig
		receipt = jsonRaw(map[string]any{"memo": memo, "sponsored": true})
	}

	seen, err := s.payments.HasSignature(ctx, signature)
	if err != nil {
		return "", nil, utils.ErrDatabaseError
	}
	if seen {
		return "", nil, utils.ErrDuplicatePayment
	}

	return signature, receipt, nil
}

func (s *SubscriptionService) recordPaymentRow(ctx context.Context, sub *db_models.Subscription, signature string, receipt datatypes.JSON, paidAt time.Time) error {
	payment := &db_models.Payment{
		SubscriptionID:  sub.ID,
		WalletAddress:   sub.WalletAddress,
		MerchantAddress: sub.MerchantAddress,
		AmountLamports:  sub.AmountLamports,
		Signature:       signature,
		PaidAt:          paidAt.Unix(),
		Receipt:         receipt,
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		if errors.Is(err, utils.ErrDuplicatePayment) {
			return err
		}
		return utils.ErrDatabaseError
	}
	return nil
}

// ownedSubscription loads a row and hides other wallets' rows behind
// not-found.
func (s *SubscriptionService) ownedSubscription(ctx context.Context, walletAddress string, id uuid.UUID) (*db_models.Subscription, error) {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if sub == nil || sub.WalletAddress != walletAddress {
		return nil, utils.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (s *SubscriptionService) toResponse(sub *db_models.Subscription, plan *db_models.Plan) response_models.SubscriptionResponse {
	now := s.now()
	resp := response_models.SubscriptionResponse{
		ID:              sub.ID.String(),
		PlanID:          sub.PlanID.String(),
		WalletAddress:   sub.WalletAddress,
		MerchantAddress: sub.MerchantAddress,
		AmountLamports:  sub.AmountLamports,
		AmountSOL:       utils.LamportsToSOL(sub.AmountLamports),
		Cycle:           string(sub.Cycle),
		Status:          string(sub.Status),
		StartedAt:       sub.StartedAt,
		NextBillingAt:   sub.NextBillingAt,
		DaysUntilDue:    sub.DaysUntilDue(now),
		IsDue:           sub.IsDue(now),
		LastPaymentTx:   sub.LastPaymentTx,
		CancelledAt:     sub.CancelledAt,
	}
	if plan != nil {
		resp.PlanCode = plan.Code
		resp.PlanName = plan.Name
	} else if len(sub.Metadata) > 0 {
		var meta struct {
			PlanCode string `json:"plan_code"`
		}
		if err := json.Unmarshal(sub.Metadata, &meta); err == nil {
			resp.PlanCode = meta.PlanCode
		}
	}
	return resp
}

func jsonRaw(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

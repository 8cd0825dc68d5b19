package services

import (
	"context"
	"log"
	"os"

	"github.com/lib/pq"

	"solsub/internal/models/db_models"
	"solsub/internal/models/response_models"
	"solsub/internal/repositories"
	"solsub/pkg/utils"
)

type PlanServiceInterface interface {
	GetPlans(ctx context.Context) ([]response_models.PlanResponse, error)
	GetPlanByCode(ctx context.Context, code string) (*response_models.PlanResponse, error)

	// EnsureDefaultPlans seeds the demo catalog into an empty database.
	EnsureDefaultPlans(ctx context.Context) error
}

type PlanService struct {
	planRepo repositories.IPlanRepository
}

func NewPlanService(planRepo repositories.IPlanRepository) PlanServiceInterface {
	return &PlanService{
		planRepo: planRepo,
	}
}

func (p *PlanService) GetPlans(ctx context.Context) ([]response_models.PlanResponse, error) {
	plans, err := p.planRepo.GetActivePlans(ctx)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.PlanResponse, 0, len(plans))
	for i := range plans {
		out = append(out, planResponse(&plans[i]))
	}
	return out, nil
}

func (p *PlanService) GetPlanByCode(ctx context.Context, code string) (*response_models.PlanResponse, error) {
	plan, err := p.planRepo.GetPlanByCode(ctx, code)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if plan == nil {
		return nil, utils.ErrPlanNotFound
	}

	resp := planResponse(plan)
	return &resp, nil
}

func (p *PlanService) EnsureDefaultPlans(ctx context.Context) error {
	count, err := p.planRepo.Count(ctx)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if count > 0 {
		return nil
	}

	merchant := os.Getenv("MERCHANT_WALLET")
	if merchant == "" {
		merchant = "11111111111111111111111111111111"
		log.Printf("MERCHANT_WALLET not set, seeding plans against the system address")
	}

	for _, plan := range defaultPlans(merchant) {
		if err := p.planRepo.Insert(ctx, &plan); err != nil {
			return err
		}
	}

	log.Printf("Seeded default plan catalog")
	return nil
}

func defaultPlans(merchant string) []db_models.Plan {
	describe := func(s string) *string { return &s }
	return []db_models.Plan{
		{
			Code:            "starter_weekly",
			Name:            "Starter",
			Description:     describe("Weekly starter tier for trying things out"),
			MerchantAddress: merchant,
			Cycle:           db_models.CycleWeekly,
			AmountLamports:  990_000_000, // 0.99 SOL
			Features:        pq.StringArray{"Core features", "Community support"},
			IsActive:        true,
		},
		{
			Code:            "pro_monthly",
			Name:            "Pro",
			Description:     describe("Full feature set billed monthly"),
			MerchantAddress: merchant,
			Cycle:           db_models.CycleMonthly,
			AmountLamports:  4_990_000_000, // 4.99 SOL
			Features:        pq.StringArray{"Everything in Starter", "Priority support", "Unlimited swaps"},
			IsActive:        true,
		},
		{
			Code:            "pro_yearly",
			Name:            "Pro (annual)",
			Description:     describe("Two months free compared to paying monthly"),
			MerchantAddress: merchant,
			Cycle:           db_models.CycleYearly,
			AmountLamports:  49_900_000_000, // 49.9 SOL
			Features:        pq.StringArray{"Everything in Pro", "Early access builds"},
			IsActive:        true,
		},
	}
}

func planResponse(plan *db_models.Plan) response_models.PlanResponse {
	resp := response_models.PlanResponse{
		ID:              plan.ID.String(),
		Code:            plan.Code,
		Name:            plan.Name,
		MerchantAddress: plan.MerchantAddress,
		Cycle:           string(plan.Cycle),
		AmountLamports:  plan.AmountLamports,
		AmountSOL:       utils.LamportsToSOL(plan.AmountLamports),
		Features:        []string(plan.Features),
	}
	if plan.Description != nil {
		resp.Description = *plan.Description
	}
	return resp
}

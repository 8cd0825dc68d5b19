package plan_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"solsub/internal/repositories"
	"solsub/internal/services"
)

var Module = fx.Options(
	fx.Provide(providePlanRepo, providePlanService),
	fx.Invoke(seedPlans),
)

func providePlanRepo(db *gorm.DB) repositories.IPlanRepository {
	return repositories.NewPlanRepository(db)
}

func providePlanService(planRepo repositories.IPlanRepository) services.PlanServiceInterface {
	return services.NewPlanService(planRepo)
}

func seedPlans(planService services.PlanServiceInterface) error {
	return planService.EnsureDefaultPlans(context.Background())
}

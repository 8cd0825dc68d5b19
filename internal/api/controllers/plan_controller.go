package controllers

import (
	"github.com/gin-gonic/gin"
	"solsub/internal/services"
	"solsub/pkg/utils"
)

type PlanController struct {
	planService services.PlanServiceInterface
}

func NewPlanController(planService services.PlanServiceInterface) *PlanController {
	return &PlanController{
		planService: planService,
	}
}

// ListPlans godoc
// @Summary List subscription plans
// @Description Fetch all active subscription plans, cheapest first
// @Tags Plans
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /plans [get]
func (p *PlanController) ListPlans(c *gin.Context) {

	plans, err := p.planService.GetPlans(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlanByCode godoc
// @Summary Get a plan by code
// @Description Fetch a single subscription plan by its code
// @Tags Plans
// @Produce json
// @Param code path string true "Plan code"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /plans/{code} [get]
func (p *PlanController) GetPlanByCode(c *gin.Context) {

	plan, err := p.planService.GetPlanByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

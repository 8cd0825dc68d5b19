package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"solsub/internal/models/response_models"
	"solsub/internal/services"
	"solsub/pkg/utils"
)

type fakePlanService struct {
	plans []response_models.PlanResponse
	err   error
}

func (f *fakePlanService) GetPlans(_ context.Context) ([]response_models.PlanResponse, error) {
	return f.plans, f.err
}

func (f *fakePlanService) GetPlanByCode(_ context.Context, code string) (*response_models.PlanResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.plans {
		if f.plans[i].Code == code {
			return &f.plans[i], nil
		}
	}
	return nil, utils.ErrPlanNotFound
}

func (f *fakePlanService) EnsureDefaultPlans(_ context.Context) error { return nil }

func planRouter(svc services.PlanServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewPlanController(svc)
	r.GET("/plans", ctrl.ListPlans)
	r.GET("/plans/:code", ctrl.GetPlanByCode)
	return r
}

func TestListPlansWrapsEnvelope(t *testing.T) {
	router := planRouter(&fakePlanService{plans: []response_models.PlanResponse{
		{Code: "pro_monthly", Name: "Pro", Cycle: "monthly", AmountLamports: 4_990_000_000, AmountSOL: 4.99},
	}})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "Plans fetched successfully", resp.Message)

	plans, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, plans, 1)
}

func TestGetPlanByCodeMapsNotFound(t *testing.T) {
	router := planRouter(&fakePlanService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans/enterprise", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "error", resp.Status)
	require.Equal(t, "Plan not found", resp.Message)
}

func TestListPlansHidesDatabaseFailure(t *testing.T) {
	router := planRouter(&fakePlanService{err: utils.ErrDatabaseError})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Internal server error", resp.Message)
}

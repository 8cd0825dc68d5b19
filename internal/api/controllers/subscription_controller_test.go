package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"solsub/internal/repositories"
	"solsub/internal/services"
	"solsub/pkg/middleware"
	"solsub/pkg/utils"
)

const (
	testWallet   = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	testMerchant = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

type stubProvider struct {
	signatures int
}

func (s *stubProvider) Connect(_ context.Context, walletAddress string) (*services.WalletConnection, error) {
	return &services.WalletConnection{WalletAddress: walletAddress, Connected: true}, nil
}

func (s *stubProvider) Disconnect(_ context.Context, _ string) error { return nil }

func (s *stubProvider) Status(_ context.Context, _ string) (*services.WalletStatus, error) {
	return &services.WalletStatus{Connected: true}, nil
}

func (s *stubProvider) SignAndSend(_ context.Context, _ string, _ services.PaymentInstruction) (string, error) {
	s.signatures++
	return fmt.Sprintf("stub-sig-%d", s.signatures), nil
}

func subscriptionRouter(t *testing.T) *gin.Engine {
	t.Setenv("MERCHANT_WALLET", testMerchant)
	gin.SetMode(gin.TestMode)

	plans := repositories.NewMemoryPlanRepository()
	require.NoError(t, services.NewPlanService(plans).EnsureDefaultPlans(context.Background()))

	svc := services.NewSubscriptionService(
		repositories.NewMemorySubscriptionRepository(),
		repositories.NewMemoryPaymentRepository(),
		plans,
		&stubProvider{},
	)
	ctrl := NewSubscriptionController(svc)

	r := gin.New()
	group := r.Group("/subscriptions", middleware.JWTAuthMiddleware())
	group.POST("", ctrl.Create)
	group.GET("", ctrl.List)
	group.GET("/:id", ctrl.Get)
	group.POST("/:id/cancel", ctrl.Cancel)
	return r
}

func authedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)

	token, err := utils.CreateToken(testWallet, time.Hour)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestCreateSubscriptionEndToEnd(t *testing.T) {
	router := subscriptionRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/subscriptions", gin.H{"plan_code": "pro_monthly"}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "success", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, testWallet, data["wallet_address"])
	require.Equal(t, "active", data["status"])
	require.Equal(t, "pro_monthly", data["plan_code"])

	// the new subscription shows up in the wallet's list
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/subscriptions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	list, ok := resp.Data.([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
}

func TestCreateSubscriptionRejectsAnonymous(t *testing.T) {
	router := subscriptionRouter(t)

	body := bytes.NewBufferString(`{"plan_code":"pro_monthly"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/subscriptions", body))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateSubscriptionUnknownPlan(t *testing.T) {
	router := subscriptionRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/subscriptions", gin.H{"plan_code": "enterprise"}))

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSubscriptionRejectsMalformedID(t *testing.T) {
	router := subscriptionRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodGet, "/subscriptions/not-a-uuid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Invalid subscription id", resp.Message)
}

func TestCancelSubscriptionTwiceConflicts(t *testing.T) {
	router := subscriptionRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/subscriptions", gin.H{"plan_code": "pro_monthly"}))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	id := resp.Data.(map[string]interface{})["id"].(string)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/subscriptions/"+id+"/cancel", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, http.MethodPost, "/subscriptions/"+id+"/cancel", nil))
	require.Equal(t, http.StatusConflict, rec.Code)
}

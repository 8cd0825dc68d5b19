package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"net/http"
	"solsub/internal/models/request_models"
	"solsub/internal/services"
	"solsub/pkg/utils"
)

type SubscriptionController struct {
	subscriptionService services.SubscriptionServiceInterface
}

func NewSubscriptionController(subscriptionService services.SubscriptionServiceInterface) *SubscriptionController {
	return &SubscriptionController{
		subscriptionService: subscriptionService,
	}
}

// Create godoc
// @Summary Subscribe to a plan
// @Description Settle the first payment and create an active subscription
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body request_models.CreateSubscriptionRequest true "Create Subscription Request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions [post]
func (s *SubscriptionController) Create(c *gin.Context) {

	var request request_models.CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	walletAddress := c.GetString("wallet_address")
	if walletAddress == "" {
		utils.RespondError(c, http.StatusBadRequest, "wallet_address is required")
		return
	}

	subscription, err := s.subscriptionService.Subscribe(c.Request.Context(), walletAddress, request.PlanCode, request.Signature)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subscription, "Subscription created successfully")
}

// List godoc
// @Summary List the wallet's subscriptions
// @Description Fetch all subscriptions of the authenticated wallet, newest first
// @Tags Subscriptions
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions [get]
func (s *SubscriptionController) List(c *gin.Context) {

	walletAddress := c.GetString("wallet_address")

	subscriptions, err := s.subscriptionService.ListByWallet(c.Request.Context(), walletAddress)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subscriptions, "Subscriptions fetched successfully")
}

// Get godoc
// @Summary Get a subscription
// @Description Fetch one subscription of the authenticated wallet
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/{id} [get]
func (s *SubscriptionController) Get(c *gin.Context) {

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subscription id")
		return
	}

	subscription, err := s.subscriptionService.GetByID(c.Request.Context(), c.GetString("wallet_address"), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subscription, "Subscription fetched successfully")
}

// Cancel godoc
// @Summary Cancel a subscription
// @Description Cancel an active subscription; no further renewals are charged
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/{id}/cancel [post]
func (s *SubscriptionController) Cancel(c *gin.Context) {

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subscription id")
		return
	}

	subscription, err := s.subscriptionService.Cancel(c.Request.Context(), c.GetString("wallet_address"), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subscription, "Subscription cancelled successfully")
}

// RecordPayment godoc
// @Summary Pay a renewal
// @Description Settle a renewal payment and push the next billing date one cycle out
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param id path string true "Subscription ID"
// @Param request body request_models.RecordPaymentRequest true "Record Payment Request"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/{id}/payments [post]
func (s *SubscriptionController) RecordPayment(c *gin.Context) {

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subscription id")
		return
	}

	var request request_models.RecordPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	subscription, err := s.subscriptionService.PayRenewal(c.Request.Context(), c.GetString("wallet_address"), id, request.Signature)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, subscription, "Payment recorded successfully")
}

// ListPayments godoc
// @Summary List payments of a subscription
// @Description Fetch the payment history of one subscription, latest first
// @Tags Subscriptions
// @Produce json
// @Param id path string true "Subscription ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /subscriptions/{id}/payments [get]
func (s *SubscriptionController) ListPayments(c *gin.Context) {

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid subscription id")
		return
	}

	payments, err := s.subscriptionService.ListPayments(c.Request.Context(), c.GetString("wallet_address"), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payments, "Payments fetched successfully")
}

package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"solsub/internal/models/request_models"
	"solsub/internal/services"
	"solsub/pkg/utils"
	"strconv"
)

type SwapController struct {
	swapService services.SwapService
}

func NewSwapController(swapService services.SwapService) *SwapController {
	return &SwapController{
		swapService: swapService,
	}
}

// GetQuote godoc
// @Summary Get a swap quote
// @Description Fetch the best route for swapping one token into another
// @Tags Swap
// @Produce json
// @Param inputMint query string true "Input token mint"
// @Param outputMint query string true "Output token mint"
// @Param amount query int true "Amount in the input mint's smallest units"
// @Param slippageBps query int false "Slippage tolerance in basis points (default: 50)"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /swap/quote [get]
func (s *SwapController) GetQuote(c *gin.Context) {

	amount, err := strconv.ParseInt(c.Query("amount"), 10, 64)
	if err != nil || amount <= 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid amount")
		return
	}

	slippageBps, _ := strconv.Atoi(c.DefaultQuery("slippageBps", "0"))

	quote, err := s.swapService.GetQuote(c.Request.Context(), services.QuoteParams{
		InputMint:   c.Query("inputMint"),
		OutputMint:  c.Query("outputMint"),
		Amount:      amount,
		SlippageBps: slippageBps,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, quote, "Quote fetched successfully")
}

// CreateSwap godoc
// @Summary Build a swap transaction
// @Description Build an unsigned swap transaction for the authenticated wallet
// @Tags Swap
// @Accept json
// @Produce json
// @Param request body request_models.SwapRequest true "Swap Request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Security BearerAuth
// @Router /swap [post]
func (s *SwapController) CreateSwap(c *gin.Context) {

	var request request_models.SwapRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	swap, err := s.swapService.BuildSwap(c.Request.Context(), c.GetString("wallet_address"), services.QuoteParams{
		InputMint:   request.InputMint,
		OutputMint:  request.OutputMint,
		Amount:      request.Amount,
		SlippageBps: request.SlippageBps,
	})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, swap, "Swap transaction created successfully")
}

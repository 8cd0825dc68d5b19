package controllers

import (
	"github.com/gin-gonic/gin"
	"net/http"
	"solsub/internal/models/request_models"
	"solsub/internal/services"
	"solsub/pkg/utils"
)

type WalletController struct {
	walletService services.WalletServiceInterface
}

func NewWalletController(walletService services.WalletServiceInterface) *WalletController {
	return &WalletController{
		walletService: walletService,
	}
}

// Connect godoc
// @Summary Connect a passkey wallet
// @Description Connect the wallet through the passkey provider and open a session
// @Tags Wallet
// @Accept json
// @Produce json
// @Param request body request_models.ConnectWalletRequest true "Connect Wallet Request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /wallet/connect [post]
func (w *WalletController) Connect(c *gin.Context) {

	var request request_models.ConnectWalletRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	resp, err := w.walletService.Connect(c.Request.Context(), request.WalletAddress)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Wallet connected successfully")
}

// GetSession godoc
// @Summary Restore the wallet session
// @Description Return the stored session if it is still inside the validity window
// @Tags Wallet
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wallet/session [get]
func (w *WalletController) GetSession(c *gin.Context) {

	walletAddress := c.GetString("wallet_address")
	if walletAddress == "" {
		utils.RespondError(c, http.StatusBadRequest, "wallet_address is required")
		return
	}

	session, err := w.walletService.RestoreSession(c.Request.Context(), walletAddress)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, session, "Session restored successfully")
}

// Disconnect godoc
// @Summary Disconnect the wallet
// @Description Disconnect at the provider and drop the stored session
// @Tags Wallet
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wallet/disconnect [post]
func (w *WalletController) Disconnect(c *gin.Context) {

	walletAddress := c.GetString("wallet_address")
	if walletAddress == "" {
		utils.RespondError(c, http.StatusBadRequest, "wallet_address is required")
		return
	}

	if err := w.walletService.Disconnect(c.Request.Context(), walletAddress); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Wallet disconnected successfully")
}

// GetBalance godoc
// @Summary Get the wallet's SOL balance
// @Description Fetch the native balance of the authenticated wallet from the RPC node
// @Tags Wallet
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 503 {object} utils.APIResponse
// @Security BearerAuth
// @Router /wallet/balance [get]
func (w *WalletController) GetBalance(c *gin.Context) {

	walletAddress := c.GetString("wallet_address")

	balance, err := w.walletService.GetBalance(c.Request.Context(), walletAddress)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, balance, "Balance fetched successfully")
}

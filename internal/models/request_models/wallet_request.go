package request_models

type ConnectWalletRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}

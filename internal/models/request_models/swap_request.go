package request_models

type SwapRequest struct {
	InputMint   string `json:"input_mint" binding:"required"`
	OutputMint  string `json:"output_mint" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	SlippageBps int    `json:"slippage_bps"`
}

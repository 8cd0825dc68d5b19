package response_models

type SessionResponse struct {
	WalletAddress string `json:"wallet_address"`
	SmartWallet   string `json:"smart_wallet,omitempty"`
	Connected     bool   `json:"connected"`
	ConnectedAt   int64  `json:"connected_at"`
	ExpiresAt     int64  `json:"expires_at"`
}

type ConnectResponse struct {
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

type BalanceResponse struct {
	WalletAddress string  `json:"wallet_address"`
	Lamports      int64   `json:"lamports"`
	SOL           float64 `json:"sol"`
}

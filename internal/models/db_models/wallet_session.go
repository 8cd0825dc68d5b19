package db_models

import (
	"time"
)

// WalletSession is the persisted snapshot of a wallet connection, keyed by
// wallet address. It exists so a returning client can resume without a fresh
// passkey ceremony. Deliberately no BaseModel: the wallet address is the
// natural key and rows must be hard-deleted on disconnect.
type WalletSession struct {
	WalletAddress string `gorm:"primaryKey;size:64" json:"wallet_address"`
	SmartWallet   string `gorm:"size:64" json:"smart_wallet"`
	Connected     bool   `json:"connected"`
	ConnectedAt   int64  `json:"connected_at"`
	ExpiresAt     int64  `json:"expires_at"`
	UpdatedAt     int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsValid reports whether the snapshot can still be resumed at now, given
// the configured session window. The boundary is exclusive: a session whose
// age equals the window is already stale.
func (s *WalletSession) IsValid(now time.Time, window time.Duration) bool {
	if s == nil || !s.Connected || s.ConnectedAt <= 0 {
		return false
	}
	return now.Sub(time.Unix(s.ConnectedAt, 0)) < window
}

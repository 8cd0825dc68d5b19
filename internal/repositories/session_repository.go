package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solsub/internal/models/db_models"
)

// SessionRepository persists wallet connection snapshots. Load treats a
// missing or unreadable row the same way: the caller sees no session and
// falls back to a fresh connect.
type SessionRepository interface {
	Save(ctx context.Context, session *db_models.WalletSession) error
	Load(ctx context.Context, walletAddress string) (*db_models.WalletSession, error)
	Clear(ctx context.Context, walletAddress string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Save writes the snapshot, replacing whatever was stored for the wallet.
// Last write wins when two requests race on the same address.
func (s *sessionRepository) Save(ctx context.Context, session *db_models.WalletSession) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(session).Error
}

func (s *sessionRepository) Load(ctx context.Context, walletAddress string) (*db_models.WalletSession, error) {
	var session db_models.WalletSession
	err := s.db.WithContext(ctx).First(&session, "wallet_address = ?", walletAddress).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	// A row without a connect timestamp is garbage from an interrupted
	// write. Drop it so the next connect starts clean.
	if session.ConnectedAt <= 0 {
		_ = s.Clear(ctx, walletAddress)
		return nil, nil
	}

	return &session, nil
}

// Clear removes the snapshot no matter what state it is in. Clearing an
// absent session is not an error.
func (s *sessionRepository) Clear(ctx context.Context, walletAddress string) error {
	return s.db.WithContext(ctx).
		Delete(&db_models.WalletSession{}, "wallet_address = ?", walletAddress).Error
}

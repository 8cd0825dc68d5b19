package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"solsub/internal/models/db_models"
)

const testWallet = "4Nd1mYqLkBzTuPxSoWmJrCvA7fGhQeX2bRsK9pZtVuEw"

func TestSessionSaveLoadRoundtrip(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	now := time.Now().Unix()
	err := repo.Save(ctx, &db_models.WalletSession{
		WalletAddress: testWallet,
		SmartWallet:   "smart-pda",
		Connected:     true,
		ConnectedAt:   now,
		ExpiresAt:     now + 86400,
	})
	require.NoError(t, err)

	got, err := repo.Load(ctx, testWallet)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, testWallet, got.WalletAddress)
	require.Equal(t, "smart-pda", got.SmartWallet)
	require.True(t, got.Connected)
	require.Equal(t, now, got.ConnectedAt)
}

func TestSessionLoadAbsent(t *testing.T) {
	repo := NewMemorySessionRepository()

	got, err := repo.Load(context.Background(), testWallet)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestSessionClear(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &db_models.WalletSession{
		WalletAddress: testWallet,
		Connected:     true,
		ConnectedAt:   time.Now().Unix(),
	}))
	require.NoError(t, repo.Clear(ctx, testWallet))

	got, err := repo.Load(ctx, testWallet)
	require.NoError(t, err)
	require.Nil(t, got)

	// clearing again is a no-op, not an error
	require.NoError(t, repo.Clear(ctx, testWallet))
}

func TestSessionSaveOverwrites(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &db_models.WalletSession{
		WalletAddress: testWallet,
		Connected:     true,
		ConnectedAt:   100,
	}))
	require.NoError(t, repo.Save(ctx, &db_models.WalletSession{
		WalletAddress: testWallet,
		Connected:     true,
		ConnectedAt:   200,
	}))

	got, err := repo.Load(ctx, testWallet)
	require.NoError(t, err)
	require.Equal(t, int64(200), got.ConnectedAt)
}

func TestSessionLoadDropsBrokenRecord(t *testing.T) {
	repo := NewMemorySessionRepository()
	ctx := context.Background()

	// a record with no connect timestamp reads as absent and is removed
	require.NoError(t, repo.Save(ctx, &db_models.WalletSession{
		WalletAddress: testWallet,
		Connected:     true,
		ConnectedAt:   0,
	}))

	got, err := repo.Load(ctx, testWallet)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = repo.Load(ctx, testWallet)
	require.NoError(t, err)
	require.Nil(t, got)
}

package services

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"solsub/internal/models/db_models"
	"solsub/internal/models/response_models"
	"solsub/internal/repositories"
	"solsub/pkg/utils"
)

const defaultSessionWindowHours = 24

type WalletServiceInterface interface {
	Connect(ctx context.Context, walletAddress string) (*response_models.ConnectResponse, error)
	RestoreSession(ctx context.Context, walletAddress string) (*response_models.SessionResponse, error)
	Disconnect(ctx context.Context, walletAddress string) error
	GetBalance(ctx context.Context, walletAddress string) (*response_models.BalanceResponse, error)
}

type WalletService struct {
	sessions repositories.SessionRepository
	provider WalletProvider
	rpc      RPCService
	window   time.Duration
	now      func() time.Time
}

func NewWalletService(sessions repositories.SessionRepository, provider WalletProvider, rpc RPCService) WalletServiceInterface {
	return &WalletService{
		sessions: sessions,
		provider: provider,
		rpc:      rpc,
		window:   sessionWindowFromEnv(),
		now:      time.Now,
	}
}

func sessionWindowFromEnv() time.Duration {
	hours, err := strconv.Atoi(os.Getenv("SESSION_WINDOW_HOURS"))
	if err != nil || hours <= 0 {
		hours = defaultSessionWindowHours
	}
	return time.Duration(hours) * time.Hour
}

func (w *WalletService) Connect(ctx context.Context, walletAddress string) (*response_models.ConnectResponse, error) {
	if err := utils.ValidateAddress(walletAddress); err != nil {
		return nil, err
	}

	conn, err := w.provider.Connect(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	now := w.now()
	session := &db_models.WalletSession{
		WalletAddress: walletAddress,
		SmartWallet:   conn.SmartWallet,
		Connected:     true,
		ConnectedAt:   now.Unix(),
		ExpiresAt:     now.Add(w.window).Unix(),
	}
	if err := w.sessions.Save(ctx, session); err != nil {
		log.Printf("Saving wallet session failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	token, err := utils.CreateToken(walletAddress, w.window)
	if err != nil {
		return nil, err
	}

	return &response_models.ConnectResponse{
		Token:   token,
		Session: sessionResponse(session),
	}, nil
}

// RestoreSession decides whether a returning client may resume without a
// fresh passkey ceremony. Anything doubtful clears the snapshot; the worst
// outcome is the user being asked to connect again.
func (w *WalletService) RestoreSession(ctx context.Context, walletAddress string) (*response_models.SessionResponse, error) {
	session, err := w.sessions.Load(ctx, walletAddress)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil {
		return nil, utils.ErrSessionNotFound
	}

	if !session.IsValid(w.now(), w.window) {
		_ = w.sessions.Clear(ctx, walletAddress)
		return nil, utils.ErrSessionExpired
	}

	status, err := w.provider.Status(ctx, walletAddress)
	if err != nil || !status.Connected {
		if err != nil {
			log.Printf("Wallet status check failed for %s: %v", walletAddress, err)
		}
		_ = w.sessions.Clear(ctx, walletAddress)
		return nil, utils.ErrSessionExpired
	}

	resp := sessionResponse(session)
	return &resp, nil
}

// Disconnect clears the snapshot unconditionally. A provider failure is
// logged but never keeps the local session alive.
func (w *WalletService) Disconnect(ctx context.Context, walletAddress string) error {
	if err := w.provider.Disconnect(ctx, walletAddress); err != nil {
		log.Printf("Provider disconnect failed for %s: %v", walletAddress, err)
	}
	if err := w.sessions.Clear(ctx, walletAddress); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (w *WalletService) GetBalance(ctx context.Context, walletAddress string) (*response_models.BalanceResponse, error) {
	lamports, err := w.rpc.GetBalance(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	return &response_models.BalanceResponse{
		WalletAddress: walletAddress,
		Lamports:      lamports,
		SOL:           utils.LamportsToSOL(lamports),
	}, nil
}

func sessionResponse(session *db_models.WalletSession) response_models.SessionResponse {
	return response_models.SessionResponse{
		WalletAddress: session.WalletAddress,
		SmartWallet:   session.SmartWallet,
		Connected:     session.Connected,
		ConnectedAt:   session.ConnectedAt,
		ExpiresAt:     session.ExpiresAt,
	}
}

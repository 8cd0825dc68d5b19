package services

import (
	"context"
	"fmt"
)

// Well-known 32-byte keys reused across the service tests.
const (
	testUserWallet = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	testMerchant   = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

type fakeWalletProvider struct {
	connectErr    error
	disconnectErr error
	statusErr     error
	signErr       error

	connected     bool
	smartWallet   string
	nextSignature string

	connectCalls    int
	disconnectCalls int
	statusCalls     int
	signCalls       int
	lastInstruction PaymentInstruction
}

func (f *fakeWalletProvider) Connect(_ context.Context, walletAddress string) (*WalletConnection, error) {
	f.connectCalls++
	if f.connectErr != nil {
		return nil, f.connectErr
	}
	return &WalletConnection{WalletAddress: walletAddress, SmartWallet: f.smartWallet, Connected: true}, nil
}

func (f *fakeWalletProvider) Disconnect(_ context.Context, _ string) error {
	f.disconnectCalls++
	return f.disconnectErr
}

func (f *fakeWalletProvider) Status(_ context.Context, _ string) (*WalletStatus, error) {
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &WalletStatus{Connected: f.connected}, nil
}

func (f *fakeWalletProvider) SignAndSend(_ context.Context, _ string, instruction PaymentInstruction) (string, error) {
	f.signCalls++
	f.lastInstruction = instruction
	if f.signErr != nil {
		return "", f.signErr
	}
	if f.nextSignature != "" {
		return f.nextSignature, nil
	}
	return fmt.Sprintf("sig-%d", f.signCalls), nil
}

type fakeRPCService struct {
	balance    int64
	balanceErr error
	healthErr  error

	balanceCalls int
}

func (f *fakeRPCService) GetBalance(_ context.Context, _ string) (int64, error) {
	f.balanceCalls++
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeRPCService) GetHealth(_ context.Context) error {
	return f.healthErr
}

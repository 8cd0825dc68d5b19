package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"solsub/pkg/utils"
)

// WalletProvider is the capability surface of the external passkey wallet
// service. Everything that touches a user's wallet goes through it, so
// tests can stand in a fake and the vendor stays swappable.
type WalletProvider interface {
	Connect(ctx context.Context, walletAddress string) (*WalletConnection, error)
	Disconnect(ctx context.Context, walletAddress string) error
	Status(ctx context.Context, walletAddress string) (*WalletStatus, error)

	// SignAndSend has the wallet service sign a transfer with the user's
	// passkey and submit it. Returns the transaction signature.
	SignAndSend(ctx context.Context, walletAddress string, instruction PaymentInstruction) (string, error)
}

type WalletConnection struct {
	WalletAddress string `json:"wallet_address"`
	SmartWallet   string `json:"smart_wallet"`
	Connected     bool   `json:"connected"`
}

type WalletStatus struct {
	Connected bool `json:"connected"`
}

// PaymentInstruction is a native transfer the provider builds and sponsors;
// the user only approves it.
type PaymentInstruction struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Lamports int64  `json:"lamports"`
	Memo     string `json:"memo,omitempty"`
}

type walletBridgeClient struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
}

func NewWalletBridgeClient() WalletProvider {
	baseURL := os.Getenv("WALLET_BRIDGE_URL")
	if baseURL == "" {
		panic("WALLET_BRIDGE_URL is empty")
	}
	return &walletBridgeClient{
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  os.Getenv("WALLET_BRIDGE_API_KEY"),
	}
}

func (c *walletBridgeClient) Connect(ctx context.Context, walletAddress string) (*WalletConnection, error) {
	var out WalletConnection
	err := c.call(ctx, http.MethodPost, "/v1/wallets/connect", map[string]string{"wallet_address": walletAddress}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *walletBridgeClient) Disconnect(ctx context.Context, walletAddress string) error {
	return c.call(ctx, http.MethodPost, "/v1/wallets/disconnect", map[string]string{"wallet_address": walletAddress}, nil)
}

func (c *walletBridgeClient) Status(ctx context.Context, walletAddress string) (*WalletStatus, error) {
	var out WalletStatus
	if err := c.call(ctx, http.MethodGet, "/v1/wallets/"+walletAddress+"/status", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *walletBridgeClient) SignAndSend(ctx context.Context, walletAddress string, instruction PaymentInstruction) (string, error) {
	payload := struct {
		WalletAddress string             `json:"wallet_address"`
		Instruction   PaymentInstruction `json:"instruction"`
	}{WalletAddress: walletAddress, Instruction: instruction}

	var out struct {
		Signature string `json:"signature"`
		Sponsored bool   `json:"sponsored"`
	}
	if err := c.call(ctx, http.MethodPost, "/v1/transactions", payload, &out); err != nil {
		return "", err
	}
	if out.Signature == "" {
		return "", utils.NewProviderError(utils.KindProvider, "wallet", "provider returned no signature")
	}
	return out.Signature, nil
}

func (c *walletBridgeClient) call(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wallet bridge encode: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("wallet bridge request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &utils.ProviderError{Kind: utils.KindUnavailable, Service: "wallet", Message: "wallet service unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return c.asProviderError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("wallet bridge decode: %w", err)
	}
	return nil
}

// asProviderError classifies a non-2xx bridge response. The provider's own
// message is kept verbatim; only the kind is ours.
func (c *walletBridgeClient) asProviderError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))

	var payload struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &payload)

	message := payload.Message
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = resp.Status
	}

	kind := utils.KindProvider
	switch {
	case payload.Code == "user_cancelled" || payload.Code == "user_rejected":
		kind = utils.KindCancelled
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = utils.KindSecurity
	case resp.StatusCode >= http.StatusInternalServerError:
		kind = utils.KindUnavailable
	case resp.StatusCode == http.StatusBadRequest:
		kind = utils.KindValidation
	}

	return utils.NewProviderError(kind, "wallet", message)
}

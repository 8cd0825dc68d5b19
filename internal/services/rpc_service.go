package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"solsub/pkg/utils"
)

const defaultRPCURL = "https://api.devnet.solana.com"

// RPCService is the thin slice of the chain's JSON-RPC surface the app
// actually uses: balances for display and guardrails, health for readiness.
type RPCService interface {
	GetBalance(ctx context.Context, walletAddress string) (int64, error)
	GetHealth(ctx context.Context) error
}

type solanaRPCClient struct {
	HTTP *http.Client
	URL  string
}

func NewSolanaRPCClient() RPCService {
	rpcURL := os.Getenv("SOLANA_RPC_URL")
	if rpcURL == "" {
		rpcURL = defaultRPCURL
	}
	return &solanaRPCClient{
		HTTP: &http.Client{Timeout: 15 * time.Second},
		URL:  rpcURL,
	}
}

// GetBalance returns the wallet's native balance in lamports.
func (c *solanaRPCClient) GetBalance(ctx context.Context, walletAddress string) (int64, error) {
	if err := utils.ValidateAddress(walletAddress); err != nil {
		return 0, err
	}

	var result struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value uint64 `json:"value"`
	}
	if err := c.call(ctx, "getBalance", []interface{}{walletAddress}, &result); err != nil {
		return 0, err
	}
	return int64(result.Value), nil
}

// GetHealth asks the node for its health. Anything but the "ok" sentinel,
// including the node answering with an RPC error, reads as unavailable.
func (c *solanaRPCClient) GetHealth(ctx context.Context) error {
	var status string
	if err := c.call(ctx, "getHealth", nil, &status); err != nil {
		var pe *utils.ProviderError
		if errors.As(err, &pe) && pe.Kind == utils.KindProvider {
			return utils.NewProviderError(utils.KindUnavailable, "rpc", pe.Message)
		}
		return err
	}
	if status != "ok" {
		return utils.NewProviderError(utils.KindUnavailable, "rpc", "rpc node unhealthy: "+status)
	}
	return nil
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *solanaRPCClient) call(ctx context.Context, method string, params []interface{}, result interface{}) error {
	buf, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("rpc encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &utils.ProviderError{Kind: utils.KindUnavailable, Service: "rpc", Message: "rpc node unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return utils.NewProviderError(utils.KindUnavailable, "rpc", "rpc bad status: "+resp.Status)
	}

	var payload struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("rpc decode: %w", err)
	}
	if payload.Error != nil {
		return utils.NewProviderError(utils.KindProvider, "rpc", payload.Error.Message)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(payload.Result, result); err != nil {
		return fmt.Errorf("rpc decode result: %w", err)
	}
	return nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	mem "solsub/pkg/memcache"
	"solsub/pkg/utils"
)

const (
	defaultJupiterURL  = "https://quote-api.jup.ag/v6"
	defaultSlippageBps = 50

	// Aggregator quotes go stale after roughly half a minute; the cache TTL
	// stays under that so a cached quote is always still executable.
	quoteCacheTTL = 20 * time.Second
)

type QuoteParams struct {
	InputMint   string
	OutputMint  string
	Amount      int64 // smallest units of the input mint
	SlippageBps int
}

// Wire shapes follow the aggregator's JSON: camelCase keys, amounts as
// decimal strings so u64 values survive JavaScript clients.
type QuoteResponse struct {
	InputMint            string      `json:"inputMint"`
	InAmount             string      `json:"inAmount"`
	OutputMint           string      `json:"outputMint"`
	OutAmount            string      `json:"outAmount"`
	OtherAmountThreshold string      `json:"otherAmountThreshold"`
	SwapMode             string      `json:"swapMode"`
	SlippageBps          int         `json:"slippageBps"`
	PriceImpactPct       string      `json:"priceImpactPct"`
	RoutePlan            []RouteStep `json:"routePlan"`
	ContextSlot          int64       `json:"contextSlot,omitempty"`
}

type RouteStep struct {
	SwapInfo SwapInfo `json:"swapInfo"`
	Percent  int      `json:"percent"`
}

type SwapInfo struct {
	AmmKey     string `json:"ammKey"`
	Label      string `json:"label,omitempty"`
	InputMint  string `json:"inputMint"`
	OutputMint string `json:"outputMint"`
	InAmount   string `json:"inAmount"`
	OutAmount  string `json:"outAmount"`
	FeeAmount  string `json:"feeAmount"`
	FeeMint    string `json:"feeMint"`
}

type SwapResponse struct {
	SwapTransaction           string `json:"swapTransaction"`
	LastValidBlockHeight      int64  `json:"lastValidBlockHeight"`
	PrioritizationFeeLamports int64  `json:"prioritizationFeeLamports,omitempty"`
}

type SwapService interface {
	GetQuote(ctx context.Context, params QuoteParams) (*QuoteResponse, error)

	// BuildSwap fetches a quote and asks the aggregator for an unsigned
	// transaction the user's wallet can sign.
	BuildSwap(ctx context.Context, userPublicKey string, params QuoteParams) (*SwapResponse, error)
}

type JupiterClient struct {
	HTTP     *http.Client
	BaseURL  string
	Cache    mem.QuoteStore
	QuoteTTL time.Duration
	RPC      RPCService
}

func NewJupiterClient(cache mem.QuoteStore, rpc RPCService) SwapService {
	baseURL := os.Getenv("JUPITER_API_URL")
	if baseURL == "" {
		baseURL = defaultJupiterURL
	}
	return &JupiterClient{
		HTTP:     &http.Client{Timeout: 15 * time.Second},
		BaseURL:  strings.TrimRight(baseURL, "/"),
		Cache:    cache,
		QuoteTTL: quoteCacheTTL,
		RPC:      rpc,
	}
}

func (c *JupiterClient) GetQuote(ctx context.Context, params QuoteParams) (*QuoteResponse, error) {
	if err := utils.ValidateAddress(params.InputMint); err != nil {
		return nil, err
	}
	if err := utils.ValidateAddress(params.OutputMint); err != nil {
		return nil, err
	}
	if params.Amount <= 0 {
		return nil, utils.ErrInvalidAmount
	}
	if params.SlippageBps <= 0 {
		params.SlippageBps = defaultSlippageBps
	}

	key := quoteKey(params)
	if cached, ok := c.Cache.Get(key); ok {
		if quote, ok := cached.(*QuoteResponse); ok {
			return quote, nil
		}
	}

	q := url.Values{}
	q.Set("inputMint", params.InputMint)
	q.Set("outputMint", params.OutputMint)
	q.Set("amount", strconv.FormatInt(params.Amount, 10))
	q.Set("slippageBps", strconv.Itoa(params.SlippageBps))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/quote?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("aggregator request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &utils.ProviderError{Kind: utils.KindUnavailable, Service: "aggregator", Message: "aggregator unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, aggregatorError(resp)
	}

	var quote QuoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("aggregator decode: %w", err)
	}

	c.Cache.Set(key, &quote, c.QuoteTTL)
	return &quote, nil
}

func (c *JupiterClient) BuildSwap(ctx context.Context, userPublicKey string, params QuoteParams) (*SwapResponse, error) {
	if err := utils.ValidateAddress(userPublicKey); err != nil {
		return nil, err
	}

	// native-token swaps are capped by what the wallet actually holds
	if params.InputMint == utils.NativeMint {
		balance, err := c.RPC.GetBalance(ctx, userPublicKey)
		if err != nil {
			return nil, err
		}
		if params.Amount > balance {
			return nil, utils.ErrInsufficientBalance
		}
	}

	quote, err := c.GetQuote(ctx, params)
	if err != nil {
		return nil, err
	}

	payload := struct {
		QuoteResponse    *QuoteResponse `json:"quoteResponse"`
		UserPublicKey    string         `json:"userPublicKey"`
		WrapAndUnwrapSol bool           `json:"wrapAndUnwrapSol"`
	}{QuoteResponse: quote, UserPublicKey: userPublicKey, WrapAndUnwrapSol: true}

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("aggregator encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/swap", bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("aggregator request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &utils.ProviderError{Kind: utils.KindUnavailable, Service: "aggregator", Message: "aggregator unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, aggregatorError(resp)
	}

	var swap SwapResponse
	if err := json.NewDecoder(resp.Body).Decode(&swap); err != nil {
		return nil, fmt.Errorf("aggregator decode: %w", err)
	}
	if swap.SwapTransaction == "" {
		return nil, utils.NewProviderError(utils.KindProvider, "aggregator", "aggregator returned no transaction")
	}

	return &swap, nil
}

// aggregatorError surfaces the aggregator's response body verbatim. Its
// error payloads vary by endpoint, so no shape is assumed.
func aggregatorError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 8<<10))
	message := strings.TrimSpace(string(raw))
	if message == "" {
		message = resp.Status
	}
	return utils.NewProviderError(utils.KindProvider, "aggregator", message)
}

func quoteKey(p QuoteParams) string {
	return fmt.Sprintf("quote:%s:%s:%d:%d", p.InputMint, p.OutputMint, p.Amount, p.SlippageBps)
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gregjones/httpcache"

	"solsub/pkg/utils"
)

const defaultTokenRegistryURL = "https://tokens.jup.ag/tokens?tags=verified"

type TokenInfo struct {
	Address  string `json:"address"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI,omitempty"`
}

type TokenServiceInterface interface {
	// ListTokens returns the verified token list, optionally filtered by a
	// case-insensitive symbol prefix.
	ListTokens(ctx context.Context, symbol string) ([]TokenInfo, error)
}

type TokenService struct {
	HTTP *http.Client
	URL  string
}

// NewTokenService builds the registry client. The registry serves proper
// cache headers, so responses flow through an in-memory HTTP cache rather
// than refetching the full list on every request.
func NewTokenService() TokenServiceInterface {
	registryURL := os.Getenv("TOKEN_REGISTRY_URL")
	if registryURL == "" {
		registryURL = defaultTokenRegistryURL
	}

	transport := httpcache.NewTransport(httpcache.NewMemoryCache())
	client := transport.Client()
	client.Timeout = 20 * time.Second

	return &TokenService{
		HTTP: client,
		URL:  registryURL,
	}
}

func (t *TokenService) ListTokens(ctx context.Context, symbol string) ([]TokenInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("token registry request: %w", err)
	}

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return nil, &utils.ProviderError{Kind: utils.KindUnavailable, Service: "registry", Message: "token registry unreachable", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, utils.NewProviderError(utils.KindProvider, "registry", "token registry bad status: "+resp.Status)
	}

	var tokens []TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("token registry decode: %w", err)
	}

	if symbol == "" {
		return tokens, nil
	}

	prefix := strings.ToLower(symbol)
	filtered := make([]TokenInfo, 0, 8)
	for _, token := range tokens {
		if strings.HasPrefix(strings.ToLower(token.Symbol), prefix) {
			filtered = append(filtered, token)
		}
	}
	return filtered, nil
}

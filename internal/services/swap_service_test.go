package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mem "solsub/pkg/memcache"
	"solsub/pkg/utils"
)

const quoteBody = `{
	"inputMint": "So11111111111111111111111111111111111111112",
	"inAmount": "1000000000",
	"outputMint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	"outAmount": "98650000",
	"otherAmountThreshold": "98156750",
	"swapMode": "ExactIn",
	"slippageBps": 50,
	"priceImpactPct": "0.0012",
	"routePlan": [
		{
			"swapInfo": {
				"ammKey": "5Q544fKrFoe6tsEbD7S8EmxGTJYAKtTVhAW5Q5pge4j1",
				"label": "Raydium",
				"inputMint": "So11111111111111111111111111111111111111112",
				"outputMint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
				"inAmount": "1000000000",
				"outAmount": "98650000",
				"feeAmount": "2500000",
				"feeMint": "So11111111111111111111111111111111111111112"
			},
			"percent": 100
		}
	],
	"contextSlot": 277930679
}`

func solToUSDC(amount int64) QuoteParams {
	return QuoteParams{
		InputMint:  utils.NativeMint,
		OutputMint: testMerchant,
		Amount:     amount,
	}
}

func newSwapClient(srv *httptest.Server, rpc RPCService) *JupiterClient {
	return &JupiterClient{
		HTTP:     srv.Client(),
		BaseURL:  srv.URL,
		Cache:    mem.NewQuotes(),
		QuoteTTL: 20 * time.Second,
		RPC:      rpc,
	}
}

func TestGetQuoteBuildsAggregatorQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/quote", r.URL.Path)
		require.Equal(t, utils.NativeMint, r.URL.Query().Get("inputMint"))
		require.Equal(t, testMerchant, r.URL.Query().Get("outputMint"))
		require.Equal(t, "1000000000", r.URL.Query().Get("amount"))
		require.Equal(t, "100", r.URL.Query().Get("slippageBps"))
		w.Write([]byte(quoteBody))
	}))
	defer srv.Close()

	params := solToUSDC(1_000_000_000)
	params.SlippageBps = 100

	quote, err := newSwapClient(srv, &fakeRPCService{}).GetQuote(context.Background(), params)
	require.NoError(t, err)
	require.Equal(t, "98650000", quote.OutAmount)
	require.Equal(t, "ExactIn", quote.SwapMode)
	require.Len(t, quote.RoutePlan, 1)
	require.Equal(t, "Raydium", quote.RoutePlan[0].SwapInfo.Label)
	require.Equal(t, 100, quote.RoutePlan[0].Percent)
}

func TestGetQuoteDefaultsSlippage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "50", r.URL.Query().Get("slippageBps"))
		w.Write([]byte(quoteBody))
	}))
	defer srv.Close()

	_, err := newSwapClient(srv, &fakeRPCService{}).GetQuote(context.Background(), solToUSDC(1_000_000_000))
	require.NoError(t, err)
}

func TestGetQuoteServedFromCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(quoteBody))
	}))
	defer srv.Close()

	client := newSwapClient(srv, &fakeRPCService{})
	first, err := client.GetQuote(context.Background(), solToUSDC(1_000_000_000))
	require.NoError(t, err)
	second, err := client.GetQuote(context.Background(), solToUSDC(1_000_000_000))
	require.NoError(t, err)

	require.Equal(t, 1, hits)
	require.Same(t, first, second)

	// a different amount is a different quote
	_, err = client.GetQuote(context.Background(), solToUSDC(2_000_000_000))
	require.NoError(t, err)
	require.Equal(t, 2, hits)
}

func TestGetQuoteExpiredCacheRefetches(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(quoteBody))
	}))
	defer srv.Close()

	client := newSwapClient(srv, &fakeRPCService{})
	client.QuoteTTL = -time.Second

	for i := 0; i < 2; i++ {
		_, err := client.GetQuote(context.Background(), solToUSDC(1_000_000_000))
		require.NoError(t, err)
	}
	require.Equal(t, 2, hits)
}

func TestGetQuoteValidatesParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("aggregator must not be called for invalid params")
	}))
	defer srv.Close()

	client := newSwapClient(srv, &fakeRPCService{})

	params := solToUSDC(1_000_000_000)
	params.InputMint = "not-a-mint"
	_, err := client.GetQuote(context.Background(), params)
	require.ErrorIs(t, err, utils.ErrInvalidAddress)

	_, err = client.GetQuote(context.Background(), solToUSDC(0))
	require.ErrorIs(t, err, utils.ErrInvalidAmount)
}

func TestGetQuoteSurfacesAggregatorErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Could not find any route","errorCode":"COULD_NOT_FIND_ANY_ROUTE"}`))
	}))
	defer srv.Close()

	_, err := newSwapClient(srv, &fakeRPCService{}).GetQuote(context.Background(), solToUSDC(1_000_000_000))
	require.Error(t, err)

	var pe *utils.ProviderError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, utils.KindProvider, pe.Kind)
	require.Equal(t, `{"error":"Could not find any route","errorCode":"COULD_NOT_FIND_ANY_ROUTE"}`, pe.Message)
}

func TestBuildSwapPostsQuoteBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			w.Write([]byte(quoteBody))
		case "/swap":
			require.Equal(t, http.MethodPost, r.Method)

			var body struct {
				QuoteResponse    *QuoteResponse `json:"quoteResponse"`
				UserPublicKey    string         `json:"userPublicKey"`
				WrapAndUnwrapSol bool           `json:"wrapAndUnwrapSol"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, testUserWallet, body.UserPublicKey)
			require.True(t, body.WrapAndUnwrapSol)
			require.Equal(t, "98650000", body.QuoteResponse.OutAmount)

			json.NewEncoder(w).Encode(SwapResponse{
				SwapTransaction:      "AQAAAA==",
				LastValidBlockHeight: 277930779,
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	rpc := &fakeRPCService{balance: 5_000_000_000}
	swap, err := newSwapClient(srv, rpc).BuildSwap(context.Background(), testUserWallet, solToUSDC(1_000_000_000))
	require.NoError(t, err)
	require.Equal(t, "AQAAAA==", swap.SwapTransaction)
	require.Equal(t, int64(277930779), swap.LastValidBlockHeight)
	require.Equal(t, 1, rpc.balanceCalls)
}

func TestBuildSwapRejectsOverdrawnNativeSwap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("aggregator must not be called when the wallet cannot cover the swap")
	}))
	defer srv.Close()

	rpc := &fakeRPCService{balance: 500_000_000}
	_, err := newSwapClient(srv, rpc).BuildSwap(context.Background(), testUserWallet, solToUSDC(1_000_000_000))
	require.ErrorIs(t, err, utils.ErrInsufficientBalance)
}

func TestBuildSwapSkipsBalanceCheckForTokenInputs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quote":
			w.Write([]byte(quoteBody))
		default:
			json.NewEncoder(w).Encode(SwapResponse{SwapTransaction: "AQAAAA=="})
		}
	}))
	defer srv.Close()

	rpc := &fakeRPCService{}
	params := QuoteParams{InputMint: testMerchant, OutputMint: utils.NativeMint, Amount: 98_650_000}

	_, err := newSwapClient(srv, rpc).BuildSwap(context.Background(), testUserWallet, params)
	require.NoError(t, err)
	require.Equal(t, 0, rpc.balanceCalls)
}

func TestBuildSwapWithoutTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/quote" {
			w.Write([]byte(quoteBody))
			return
		}
		json.NewEncoder(w).Encode(SwapResponse{})
	}))
	defer srv.Close()

	_, err := newSwapClient(srv, &fakeRPCService{balance: 5_000_000_000}).BuildSwap(context.Background(), testUserWallet, solToUSDC(1_000_000_000))
	require.Equal(t, utils.KindProvider, utils.KindOf(err))
}

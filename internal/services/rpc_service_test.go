package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"solsub/pkg/utils"
)

func newRPCClient(srv *httptest.Server) *solanaRPCClient {
	return &solanaRPCClient{HTTP: srv.Client(), URL: srv.URL}
}

func TestGetBalanceParsesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "2.0", req.JSONRPC)
		require.Equal(t, "getBalance", req.Method)
		require.Equal(t, []interface{}{testUserWallet}, req.Params)

		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"context":{"slot":277930679},"value":2500000000}}`))
	}))
	defer srv.Close()

	lamports, err := newRPCClient(srv).GetBalance(context.Background(), testUserWallet)
	require.NoError(t, err)
	require.Equal(t, int64(2_500_000_000), lamports)
}

func TestGetBalanceRejectsInvalidAddressLocally(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("rpc must not be called for an invalid address")
	}))
	defer srv.Close()

	_, err := newRPCClient(srv).GetBalance(context.Background(), "not-base58!")
	require.ErrorIs(t, err, utils.ErrInvalidAddress)
}

func TestGetBalanceSurfacesNodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid param: WrongSize"}}`))
	}))
	defer srv.Close()

	_, err := newRPCClient(srv).GetBalance(context.Background(), testUserWallet)
	require.Error(t, err)

	var pe *utils.ProviderError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, utils.KindProvider, pe.Kind)
	require.Equal(t, "Invalid param: WrongSize", pe.Message)
}

func TestGetBalanceBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newRPCClient(srv).GetBalance(context.Background(), testUserWallet)
	require.Equal(t, utils.KindUnavailable, utils.KindOf(err))
}

func TestGetHealthOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "getHealth", req.Method)
		require.Nil(t, req.Params)

		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"ok"}`))
	}))
	defer srv.Close()

	require.NoError(t, newRPCClient(srv).GetHealth(context.Background()))
}

func TestGetHealthBehindNodeReadsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32005,"message":"Node is behind by 211 slots"}}`))
	}))
	defer srv.Close()

	err := newRPCClient(srv).GetHealth(context.Background())
	require.Error(t, err)

	var pe *utils.ProviderError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, utils.KindUnavailable, pe.Kind)
	require.Equal(t, "Node is behind by 211 slots", pe.Message)
}

func TestGetHealthUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := (&solanaRPCClient{HTTP: http.DefaultClient, URL: srv.URL}).GetHealth(context.Background())
	require.Equal(t, utils.KindUnavailable, utils.KindOf(err))
}

package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/celestiaorg/hyperlane-go/sdk/chains"
	"github.com/celestiaorg/hyperlane-go/sdk/types"
	"github.com/stretchr/testify/require"
)

func explorerMetadata(apiURL string) chains.Metadata {
	return chains.Metadata{
		Name:     "rethlocal",
		ChainID:  1234,
		DomainID: 1234,
		Protocol: types.ProtocolEthereum,
		RpcURLs:  []chains.Endpoint{{HTTP: "http://localhost:8545"}},
		BlockExplorers: []chains.BlockExplorer{
			{Name: "scan", URL: "https://scan.io", ApiURL: apiURL, ApiKey: "testkey", Family: chains.FamilyEtherscan},
		},
	}
}

func testInput() ContractInput {
	return ContractInput{
		ContractAddress:  "0xb1c938F5BA4B3593377F399e12175e8db0C787Ff",
		ContractName:     "contracts/Mailbox.sol:Mailbox",
		CompilerVersion:  "v0.8.22+commit.4fc1097e",
		SourceCode:       "{}",
		OptimizationRuns: 200,
	}
}

func respond(t *testing.T, w http.ResponseWriter, status, message, result string) {
	t.Helper()
	require.NoError(t, json.NewEncoder(w).Encode(apiResponse{Status: status, Message: message, Result: result}))
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "verifysourcecode", r.FormValue("action"))
		require.Equal(t, "testkey", r.FormValue("apikey"))
		require.Equal(t, "1", r.FormValue("optimizationUsed"))
		require.Equal(t, "200", r.FormValue("runs"))
		respond(t, w, "1", "OK", "guid-123")
	}))
	defer srv.Close()

	client, err := NewClient(explorerMetadata(srv.URL))
	require.NoError(t, err)

	guid, err := client.Submit(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, "guid-123", guid)
}

func TestSubmit_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respond(t, w, "0", "NOTOK", "Contract source code already verified")
	}))
	defer srv.Close()

	client, err := NewClient(explorerMetadata(srv.URL))
	require.NoError(t, err)

	_, err = client.Submit(context.Background(), testInput())
	require.ErrorContains(t, err, "already verified")
}

func TestWaitForResult_EventuallyPasses(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "checkverifystatus", r.URL.Query().Get("action"))
		require.Equal(t, "guid-123", r.URL.Query().Get("guid"))
		if calls.Add(1) < 3 {
			respond(t, w, "0", "NOTOK", "Pending in queue")
			return
		}
		respond(t, w, "1", "OK", "Pass - Verified")
	}))
	defer srv.Close()

	client, err := NewClient(explorerMetadata(srv.URL), WithPolling(time.Millisecond, 10))
	require.NoError(t, err)

	require.NoError(t, client.WaitForResult(context.Background(), "guid-123"))
	require.GreaterOrEqual(t, calls.Load(), int64(3))
}

func TestWaitForResult_FailIsTerminal(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		respond(t, w, "0", "NOTOK", "Fail - Unable to verify")
	}))
	defer srv.Close()

	client, err := NewClient(explorerMetadata(srv.URL), WithPolling(time.Millisecond, 10))
	require.NoError(t, err)

	err = client.WaitForResult(context.Background(), "guid-123")
	require.ErrorContains(t, err, "verification failed")
	// unrecoverable: no further polls after the failure
	require.Equal(t, int64(1), calls.Load())
}

func TestNewClient_UnsupportedFamily(t *testing.T) {
	meta := explorerMetadata("https://api.scan.io/api")
	meta.BlockExplorers[0].Family = chains.FamilyVoyager

	_, err := NewClient(meta)
	require.ErrorContains(t, err, "does not support source verification")
}

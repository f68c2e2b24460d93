package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/avieira/paperbroker/internal/adapter/http"
	"github.com/avieira/paperbroker/internal/adapter/repository/memory"
	"github.com/avieira/paperbroker/internal/adapter/repository/sqlite"
	"github.com/avieira/paperbroker/internal/usecase/directory"
	"github.com/avieira/paperbroker/internal/usecase/seeder"
	"github.com/avieira/paperbroker/internal/usecase/trading"
)

// startStack wires the full production stack against a snapshot database at
// path and serves it over httptest.
func startStack(t *testing.T, path string) *httptest.Server {
	t.Helper()

	store, err := sqlite.NewUserStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	catalog := memory.NewCatalog()
	seeder.NewMarketSeeder(catalog).Seed()
	txLog := memory.NewTransactionLog()

	directoryService := directory.NewService(store)
	if err := directoryService.Load(context.Background()); err != nil {
		t.Fatalf("load snapshot: %v", err)
	}

	server := httpadapter.NewServer(directoryService, trading.NewService(catalog, txLog), catalog, txLog)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func call(t *testing.T, ts *httptest.Server, method, path, token, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader([]byte(body)))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]json.RawMessage
	json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func stringField(t *testing.T, fields map[string]json.RawMessage, key string) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(fields[key], &s), "field %q", key)
	return s
}

func TestEndToEnd_TradingSession(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")
	ts := startStack(t, dbPath)

	// Register and login
	code, _ := call(t, ts, http.MethodPost, "/register", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusCreated, code)

	code, fields := call(t, ts, http.MethodPost, "/login", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, code)
	token := stringField(t, fields, "token")

	// Opening balance
	code, fields = call(t, ts, http.MethodGet, "/balance", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "10000.00", stringField(t, fields, "balance"))

	// Buy 10 TTM at 425.27
	code, fields = call(t, ts, http.MethodPost, "/orders/buy", token, `{"symbol":"TTM","quantity":10}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "4252.70", stringField(t, fields, "total_amount"))

	code, fields = call(t, ts, http.MethodGet, "/balance", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "5747.30", stringField(t, fields, "balance"))

	// Sell 4 TTM back at the same quoted price
	code, fields = call(t, ts, http.MethodPost, "/orders/sell", token, `{"symbol":"TTM","quantity":4}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "1701.08", stringField(t, fields, "total_amount"))

	code, fields = call(t, ts, http.MethodGet, "/balance", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "7448.38", stringField(t, fields, "balance"))

	// History holds the two trades in execution order
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var history []struct {
		Side     string `json:"side"`
		Quantity int64  `json:"quantity"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 2)
	assert.Equal(t, "BUY", history[0].Side)
	assert.Equal(t, "SELL", history[1].Side)
}

func TestEndToEnd_RegistrationSurvivesRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")

	first := startStack(t, dbPath)
	code, _ := call(t, first, http.MethodPost, "/register", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusCreated, code)

	code, fields := call(t, first, http.MethodPost, "/login", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, code)
	token := stringField(t, fields, "token")

	code, _ = call(t, first, http.MethodPost, "/orders/buy", token, `{"symbol":"TTM","quantity":10}`)
	require.Equal(t, http.StatusOK, code)
	first.Close()

	// A fresh process sees the directory snapshot taken at registration:
	// credentials survive, trades made afterwards do not.
	second := startStack(t, dbPath)
	code, fields = call(t, second, http.MethodPost, "/login", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, code)
	token = stringField(t, fields, "token")

	code, fields = call(t, second, http.MethodGet, "/balance", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "10000.00", stringField(t, fields, "balance"))

	code, _ = call(t, second, http.MethodPost, "/register", "", `{"username":"alice","password":"other"}`)
	assert.Equal(t, http.StatusConflict, code)
}

func TestEndToEnd_SecondUserIsIsolated(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")
	ts := startStack(t, dbPath)

	for _, creds := range []string{
		`{"username":"alice","password":"secret"}`,
		`{"username":"bob","password":"hunter2"}`,
	} {
		code, _ := call(t, ts, http.MethodPost, "/register", "", creds)
		require.Equal(t, http.StatusCreated, code)
	}

	code, fields := call(t, ts, http.MethodPost, "/login", "", `{"username":"alice","password":"secret"}`)
	require.Equal(t, http.StatusOK, code)
	aliceToken := stringField(t, fields, "token")

	code, _ = call(t, ts, http.MethodPost, "/orders/buy", aliceToken, `{"symbol":"YSB","quantity":5}`)
	require.Equal(t, http.StatusOK, code)

	code, fields = call(t, ts, http.MethodPost, "/login", "", `{"username":"bob","password":"hunter2"}`)
	require.Equal(t, http.StatusOK, code)
	bobToken := stringField(t, fields, "token")

	code, fields = call(t, ts, http.MethodGet, "/balance", bobToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "10000.00", stringField(t, fields, "balance"))

	code, _ = call(t, ts, http.MethodPost, "/orders/sell", bobToken, `{"symbol":"YSB","quantity":1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

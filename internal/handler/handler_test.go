package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/avolkov/ledger-service/internal/repository"
	"github.com/avolkov/ledger-service/internal/service"
	"github.com/avolkov/ledger-service/internal/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	svc := service.NewService(repository.NewAccountStore(), repository.NewTransactionLog(), store, logger)
	snapshot, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	svc.Restore(snapshot)

	ts := httptest.NewServer(NewHandler(svc, logger).Router(""))
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a JSON request, checks the status code and decodes the
// response body into out when non-nil.
func doJSON(t *testing.T, client *http.Client, method, url string, body any, wantCode int, out any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantCode {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: code=%d want=%d body=%s", method, url, resp.StatusCode, wantCode, raw)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	var alice, bob service.AccountSummary
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "Alice", "initialDeposit": 100.00}, 201, &alice)
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "Bob"}, 201, &bob)
	if alice.Balance != "100.00" || bob.Balance != "0.00" {
		t.Fatalf("balances = %q / %q", alice.Balance, bob.Balance)
	}

	var list []service.AccountSummary
	doJSON(t, cli, "GET", ts.URL+"/accounts", nil, 200, &list)
	if len(list) != 2 || list[0].ID != alice.ID || list[1].ID != bob.ID {
		t.Fatalf("account list = %+v", list)
	}

	var renamed service.AccountSummary
	doJSON(t, cli, "PUT", ts.URL+"/accounts/"+bob.ID, map[string]any{"name": "Robert"}, 200, &renamed)
	if renamed.Name != "Robert" {
		t.Fatalf("renamed = %+v", renamed)
	}

	var fetched service.AccountSummary
	doJSON(t, cli, "GET", ts.URL+"/accounts/"+alice.ID, nil, 200, &fetched)
	if fetched.Balance != "100.00" {
		t.Fatalf("fetched balance = %q", fetched.Balance)
	}
}

func TestMoneyMovementOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	var alice, bob service.AccountSummary
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "Alice", "initialDeposit": 100.00}, 201, &alice)
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "Bob"}, 201, &bob)

	var deposit service.TransactionResult
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+bob.ID+"/deposit", map[string]any{"amount": 25.50, "description": "gift"}, 200, &deposit)
	if deposit.Balance != "25.50" || deposit.TransactionID == "" {
		t.Fatalf("deposit = %+v", deposit)
	}

	var withdraw service.TransactionResult
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+bob.ID+"/withdraw", map[string]any{"amount": 5.50}, 200, &withdraw)
	if withdraw.Balance != "20.00" {
		t.Fatalf("withdraw = %+v", withdraw)
	}

	var transfer service.TransferResult
	doJSON(t, cli, "POST", ts.URL+"/transfer",
		map[string]any{"fromAccountId": alice.ID, "toAccountId": bob.ID, "amount": 30.00}, 200, &transfer)
	if transfer.From.Balance != "70.00" || transfer.To.Balance != "50.00" || transfer.TransferID == "" {
		t.Fatalf("transfer = %+v", transfer)
	}

	var history []service.TransactionSummary
	doJSON(t, cli, "GET", ts.URL+"/transactions?accountId="+bob.ID, nil, 200, &history)
	if len(history) != 3 {
		t.Fatalf("bob history = %d entries, want 3", len(history))
	}
	if history[0].Type != "TRANSFER_IN" || history[0].TransferID != transfer.TransferID {
		t.Fatalf("latest entry = %+v", history[0])
	}

	var aliceHistory []service.TransactionSummary
	doJSON(t, cli, "GET", ts.URL+"/accounts/"+alice.ID+"/transactions", nil, 200, &aliceHistory)
	if len(aliceHistory) != 2 {
		t.Fatalf("alice history = %d entries, want 2", len(aliceHistory))
	}
}

func TestErrorMappingOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	var alice service.AccountSummary
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "Alice", "initialDeposit": 10.00}, 201, &alice)

	// Validation errors.
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{}, 400, nil)
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+alice.ID+"/deposit", map[string]any{"amount": 0}, 400, nil)
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+alice.ID+"/deposit", map[string]any{"description": "no amount"}, 400, nil)

	// Unknown account.
	doJSON(t, cli, "GET", ts.URL+"/accounts/999", nil, 404, nil)
	doJSON(t, cli, "POST", ts.URL+"/accounts/999/deposit", map[string]any{"amount": 1}, 404, nil)

	// Conflicts.
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+alice.ID+"/withdraw", map[string]any{"amount": 999}, 409, nil)
	doJSON(t, cli, "POST", ts.URL+"/transfer",
		map[string]any{"fromAccountId": alice.ID, "toAccountId": alice.ID, "amount": 1}, 409, nil)
	doJSON(t, cli, "DELETE", ts.URL+"/accounts/"+alice.ID, nil, 409, nil)

	// Malformed body.
	req, _ := http.NewRequest("POST", ts.URL+"/accounts", bytes.NewBufferString("{bad json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := cli.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != 400 {
		t.Fatalf("bad json: code=%d want=400", resp.StatusCode)
	}
}

func TestDeleteAccountOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	cli := ts.Client()

	var alice service.AccountSummary
	doJSON(t, cli, "POST", ts.URL+"/accounts", map[string]any{"name": "Alice", "initialDeposit": 10.00}, 201, &alice)
	doJSON(t, cli, "POST", ts.URL+"/accounts/"+alice.ID+"/withdraw", map[string]any{"amount": 10.00}, 200, nil)
	doJSON(t, cli, "DELETE", ts.URL+"/accounts/"+alice.ID, nil, 204, nil)
	doJSON(t, cli, "GET", ts.URL+"/accounts/"+alice.ID, nil, 404, nil)

	// History is retained after deletion.
	var history []service.TransactionSummary
	doJSON(t, cli, "GET", ts.URL+"/transactions?accountId="+alice.ID, nil, 200, &history)
	if len(history) != 2 {
		t.Fatalf("history after delete = %d entries, want 2", len(history))
	}
}

func TestStatusEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var status map[string]string
	doJSON(t, ts.Client(), "GET", ts.URL+"/", nil, 200, &status)
	if status["service"] != "ledger-service" || status["status"] != "ok" {
		t.Fatalf("status = %+v", status)
	}
}

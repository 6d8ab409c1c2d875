// Package handler exposes the ledger engine over HTTP. Handlers only
// parse and validate requests, call the service and serialize its
// results; all monetary rules live in the service.
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/avolkov/ledger-service/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Router builds the HTTP route table. Static files are served under
// /public/ when staticDir is set.
func (h *Handler) Router(staticDir string) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Status).Methods("GET")
	r.HandleFunc("/accounts", h.CreateAccount).Methods("POST")
	r.HandleFunc("/accounts", h.ListAccounts).Methods("GET")
	r.HandleFunc("/accounts/{id}", h.GetAccount).Methods("GET")
	r.HandleFunc("/accounts/{id}", h.RenameAccount).Methods("PUT")
	r.HandleFunc("/accounts/{id}", h.DeleteAccount).Methods("DELETE")
	r.HandleFunc("/accounts/{id}/deposit", h.Deposit).Methods("POST")
	r.HandleFunc("/accounts/{id}/withdraw", h.Withdraw).Methods("POST")
	r.HandleFunc("/accounts/{id}/transactions", h.AccountTransactions).Methods("GET")
	r.HandleFunc("/transfer", h.Transfer).Methods("POST")
	r.HandleFunc("/transactions", h.ListTransactions).Methods("GET")
	if staticDir != "" {
		r.PathPrefix("/public/").Handler(
			http.StripPrefix("/public/", http.FileServer(http.Dir(staticDir))))
	}
	return r
}

// Status reports service liveness.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "ledger-service",
		"status":  "ok",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// CreateAccount handles POST /accounts.
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	initial := decimal.Zero
	if req.InitialDeposit != nil {
		initial = *req.InitialDeposit
	}
	account, err := h.svc.CreateAccount(req.Name, initial)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// ListAccounts handles GET /accounts.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListAccounts())
}

// GetAccount handles GET /accounts/{id}.
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.svc.GetAccount(mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// RenameAccount handles PUT /accounts/{id}.
func (h *Handler) RenameAccount(w http.ResponseWriter, r *http.Request) {
	var req renameAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	account, err := h.svc.RenameAccount(mux.Vars(r)["id"], req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// DeleteAccount handles DELETE /accounts/{id}.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(mux.Vars(r)["id"]); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Deposit handles POST /accounts/{id}/deposit.
func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAmount(w, r)
	if !ok {
		return
	}
	result, err := h.svc.Deposit(mux.Vars(r)["id"], *req.Amount, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Withdraw handles POST /accounts/{id}/withdraw.
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseAmount(w, r)
	if !ok {
		return
	}
	result, err := h.svc.Withdraw(mux.Vars(r)["id"], *req.Amount, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Transfer handles POST /transfer.
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "fromAccountId, toAccountId and amount are required")
		return
	}

	result, err := h.svc.Transfer(req.FromAccountID, req.ToAccountID, *req.Amount, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ListTransactions handles GET /transactions with an optional accountId
// query parameter.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListTransactions(r.URL.Query().Get("accountId")))
}

// AccountTransactions handles GET /accounts/{id}/transactions.
func (h *Handler) AccountTransactions(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.ListAccountTransactions(mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) parseAmount(w http.ResponseWriter, r *http.Request) (amountRequest, bool) {
	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return req, false
	}
	return req, true
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/conta/internal/adapter/http/dto"
	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	Ledger(ctx context.Context, filter domain.EntryFilter) (*domain.Ledger, error)
	AccountBalance(ctx context.Context, code, asOf string) (*usecase.AccountBalance, error)
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// LedgerHandler handles ledger requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// Ledger posts the filtered journal and returns every account's ledger.
func (h *LedgerHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	ledger, err := h.ledgerUC.Ledger(r.Context(), entryFilter(r))
	if err != nil {
		writeDomainError(w, "failed to post ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// AccountBalance returns one account's balance as of ?to=.
func (h *LedgerHandler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledgerUC.AccountBalance(r.Context(), chi.URLParam(r, "code"), r.URL.Query().Get("to"))
	if err != nil {
		writeDomainError(w, "failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountBalanceFromUseCase(balance))
}

// Consistency runs the ledger-wide conservation check. An inconsistent
// ledger answers 409 with the report.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) && report != nil {
			writeJSON(w, http.StatusConflict, dto.ConsistencyFromUseCase(report))
			return
		}
		writeDomainError(w, "failed to check consistency", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromUseCase(report))
}

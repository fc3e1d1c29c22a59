package handler

import (
	"context"
	"net/http"

	"github.com/iho/conta/internal/adapter/http/dto"
	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	TrialBalance(ctx context.Context, period usecase.Period) (*domain.TrialBalanceReport, error)
	IncomeStatement(ctx context.Context, period usecase.Period) (*domain.IncomeStatementReport, error)
	BalanceSheet(ctx context.Context, asOf string) (*domain.BalanceSheetReport, error)
}

// ReportHandler serves the financial statements.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

func period(r *http.Request) usecase.Period {
	return usecase.Period{From: r.URL.Query().Get("from"), To: r.URL.Query().Get("to")}
}

// TrialBalance handles GET /reports/trial-balance.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.TrialBalance(r.Context(), period(r))
	if err != nil {
		writeDomainError(w, "failed to build trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(report))
}

// IncomeStatement handles GET /reports/income-statement.
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.IncomeStatement(r.Context(), period(r))
	if err != nil {
		writeDomainError(w, "failed to build income statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeStatementFromDomain(report))
}

// BalanceSheet handles GET /reports/balance-sheet.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.BalanceSheet(r.Context(), r.URL.Query().Get("to"))
	if err != nil {
		writeDomainError(w, "failed to build balance sheet", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromDomain(report))
}

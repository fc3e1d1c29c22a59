package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/conta/internal/adapter/http/dto"
	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
)

type reportServiceStub struct {
	trialFn  func(ctx context.Context, period usecase.Period) (*domain.TrialBalanceReport, error)
	incomeFn func(ctx context.Context, period usecase.Period) (*domain.IncomeStatementReport, error)
	sheetFn  func(ctx context.Context, asOf string) (*domain.BalanceSheetReport, error)
}

func (s *reportServiceStub) TrialBalance(ctx context.Context, period usecase.Period) (*domain.TrialBalanceReport, error) {
	return s.trialFn(ctx, period)
}

func (s *reportServiceStub) IncomeStatement(ctx context.Context, period usecase.Period) (*domain.IncomeStatementReport, error) {
	return s.incomeFn(ctx, period)
}

func (s *reportServiceStub) BalanceSheet(ctx context.Context, asOf string) (*domain.BalanceSheetReport, error) {
	return s.sheetFn(ctx, asOf)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestReportHandler_TrialBalance(t *testing.T) {
	var captured usecase.Period
	handler := NewReportHandler(&reportServiceStub{
		trialFn: func(ctx context.Context, period usecase.Period) (*domain.TrialBalanceReport, error) {
			captured = period
			return &domain.TrialBalanceReport{
				Rows: []domain.TrialBalanceRow{
					{AccountCode: "1105", AccountName: "Caja", Debit: dec("100"), Credit: decimal.Zero},
					{AccountCode: "4135", AccountName: "Ventas", Debit: decimal.Zero, Credit: dec("100")},
				},
				TotalDebit:  dec("100"),
				TotalCredit: dec("100"),
				Balanced:    true,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.TrialBalance(rec, httptest.NewRequest(http.MethodGet, "/reports/trial-balance?from=2024-01-01&to=2024-12-31", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.From != "2024-01-01" || captured.To != "2024-12-31" {
		t.Fatalf("unexpected period %+v", captured)
	}

	var resp dto.TrialBalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balanced || len(resp.Rows) != 2 || !resp.TotalDebit.Decimal().Equal(dec("100")) {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
}

func TestReportHandler_IncomeStatement(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		incomeFn: func(ctx context.Context, period usecase.Period) (*domain.IncomeStatementReport, error) {
			return &domain.IncomeStatementReport{
				Income:           dec("1000"),
				Costs:            dec("400"),
				Expenses:         dec("250"),
				CostsAndExpenses: dec("650"),
				Profit:           dec("350"),
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.IncomeStatement(rec, httptest.NewRequest(http.MethodGet, "/reports/income-statement", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.IncomeStatementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Utilidad.Decimal().Equal(dec("350")) || !resp.CostosGastos.Decimal().Equal(dec("650")) {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
}

func TestReportHandler_BalanceSheet(t *testing.T) {
	var gotAsOf string
	handler := NewReportHandler(&reportServiceStub{
		sheetFn: func(ctx context.Context, asOf string) (*domain.BalanceSheetReport, error) {
			gotAsOf = asOf
			return &domain.BalanceSheetReport{
				Assets:      dec("500"),
				Liabilities: dec("200"),
				Equity:      dec("250"),
				Profit:      dec("50"),
				TotalEquity: dec("300"),
				Balanced:    true,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.BalanceSheet(rec, httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?to=2024-06-30", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotAsOf != "2024-06-30" {
		t.Fatalf("expected cutoff 2024-06-30, got %q", gotAsOf)
	}

	var resp dto.BalanceSheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.EquilibrioOK || !resp.PatrimonioTotal.Decimal().Equal(dec("300")) || resp.ActivoCorriente != nil {
		t.Fatalf("unexpected response %s", rec.Body.String())
	}
}

func TestReportHandler_InvalidPeriod(t *testing.T) {
	handler := NewReportHandler(&reportServiceStub{
		trialFn: func(ctx context.Context, period usecase.Period) (*domain.TrialBalanceReport, error) {
			return nil, domain.ErrInvalidDate
		},
	})

	rec := httptest.NewRecorder()
	handler.TrialBalance(rec, httptest.NewRequest(http.MethodGet, "/reports/trial-balance?from=bad", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

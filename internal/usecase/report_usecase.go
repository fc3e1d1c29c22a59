package usecase

import (
	"context"
	"time"

	"github.com/iho/conta/internal/domain"
)

// Period bounds a report by inclusive ISO dates. Empty bounds are open.
type Period struct {
	From string
	To   string
}

// ReportUseCase computes financial statements from the posted journal.
type ReportUseCase struct {
	ledger     *LedgerUseCase
	classifier *domain.Classifier
	opts       domain.ReportOptions
	metrics    Metrics
}

// NewReportUseCase creates a new ReportUseCase. A nil classifier uses the
// default prefix table.
func NewReportUseCase(ledger *LedgerUseCase, classifier *domain.Classifier, opts domain.ReportOptions, metrics Metrics) *ReportUseCase {
	if classifier == nil {
		classifier = domain.NewClassifier(nil, nil)
	}
	return &ReportUseCase{
		ledger:     ledger,
		classifier: classifier,
		opts:       opts,
		metrics:    metricsOrNop(metrics),
	}
}

// TrialBalance lists per-account totals for the period.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, period Period) (*domain.TrialBalanceReport, error) {
	defer uc.observe("trial_balance", time.Now())

	agg, ledger, err := uc.aggregate(ctx, domain.EntryFilter{From: period.From, To: period.To})
	if err != nil {
		return nil, err
	}

	report := agg.TrialBalance(ledger)
	return &report, nil
}

// IncomeStatement computes profit for the period.
func (uc *ReportUseCase) IncomeStatement(ctx context.Context, period Period) (*domain.IncomeStatementReport, error) {
	defer uc.observe("income_statement", time.Now())

	agg, ledger, err := uc.aggregate(ctx, domain.EntryFilter{From: period.From, To: period.To})
	if err != nil {
		return nil, err
	}

	report := agg.IncomeStatement(ledger)
	return &report, nil
}

// BalanceSheet computes balances as of the cutoff date. Profit covers every
// entry up to the cutoff so that the accounting equation holds.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, asOf string) (*domain.BalanceSheetReport, error) {
	defer uc.observe("balance_sheet", time.Now())

	agg, ledger, err := uc.aggregate(ctx, domain.EntryFilter{To: asOf})
	if err != nil {
		return nil, err
	}

	report := agg.BalanceSheet(ledger)
	return &report, nil
}

func (uc *ReportUseCase) aggregate(ctx context.Context, filter domain.EntryFilter) (*domain.Aggregator, *domain.Ledger, error) {
	ledger, catalog, err := uc.ledger.post(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	return domain.NewAggregator(catalog, uc.classifier, uc.opts), ledger, nil
}

func (uc *ReportUseCase) observe(report string, start time.Time) {
	uc.metrics.ObserveReport(report, time.Since(start))
}

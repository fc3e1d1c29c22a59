package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/conta/internal/domain"
)

// LedgerUseCase posts the journal into per-account ledgers.
type LedgerUseCase struct {
	entryRepo  EntryRepository
	ledgerRepo LedgerRepository
	catalog    *CatalogLoader
	metrics    Metrics
	logger     zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	entryRepo EntryRepository,
	ledgerRepo LedgerRepository,
	catalog *CatalogLoader,
	metrics Metrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		entryRepo:  entryRepo,
		ledgerRepo: ledgerRepo,
		catalog:    catalog,
		metrics:    metricsOrNop(metrics),
		logger:     logger,
	}
}

// Ledger posts the entries that pass the filter. With an account code set,
// only that account's ledger is returned.
func (uc *LedgerUseCase) Ledger(ctx context.Context, filter domain.EntryFilter) (*domain.Ledger, error) {
	ledger, _, err := uc.post(ctx, filter)
	if err != nil {
		return nil, err
	}

	if code := filter.AccountCode; code != "" {
		only := make(map[string]*domain.LedgerAccount, 1)
		if acc, ok := ledger.Accounts[code]; ok {
			only[code] = acc
		}
		ledger.Accounts = only
	}

	return ledger, nil
}

// AccountBalance summarizes one account's ledger.
type AccountBalance struct {
	AccountCode string
	AccountName string
	AsOf        string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal
}

// AccountBalance returns the balance of code over every entry dated on or
// before asOf. An empty asOf covers the whole journal.
func (uc *LedgerUseCase) AccountBalance(ctx context.Context, code, asOf string) (*AccountBalance, error) {
	code = strings.TrimSpace(code)

	ledger, catalog, err := uc.post(ctx, domain.EntryFilter{To: asOf, AccountCode: code})
	if err != nil {
		return nil, err
	}

	acc, posted := ledger.Account(code)
	if _, known := catalog.Lookup(code); !known && !posted {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, code)
	}

	out := &AccountBalance{
		AccountCode: code,
		AccountName: catalog.Name(code),
		AsOf:        asOf,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Balance:     decimal.Zero,
	}
	if posted {
		out.TotalDebit = acc.TotalDebit
		out.TotalCredit = acc.TotalCredit
		out.Balance = acc.Balance
	}

	return out, nil
}

// ConsistencyReport is the outcome of a ledger-wide conservation check.
type ConsistencyReport struct {
	TotalDebit        decimal.Decimal
	TotalCredit       decimal.Decimal
	UnbalancedEntries []string
	Consistent        bool
}

// CheckConsistency verifies that global debits equal global credits and that
// every stored entry balances. It returns ErrInconsistentLedger together with
// the report when either check fails.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	debit, credit, err := uc.ledgerRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	unbalanced, err := uc.ledgerRepo.UnbalancedEntries(ctx)
	if err != nil {
		return nil, err
	}

	report := &ConsistencyReport{
		TotalDebit:        domain.Round2(debit),
		TotalCredit:       domain.Round2(credit),
		UnbalancedEntries: unbalanced,
	}
	report.Consistent = report.TotalDebit.Equal(report.TotalCredit) && len(unbalanced) == 0

	if !report.Consistent {
		uc.logger.Error().
			Str("total_debit", report.TotalDebit.String()).
			Str("total_credit", report.TotalCredit.String()).
			Strs("unbalanced_entries", unbalanced).
			Msg("ledger consistency check failed")
		return report, ErrInconsistentLedger
	}

	return report, nil
}

func (uc *LedgerUseCase) post(ctx context.Context, filter domain.EntryFilter) (*domain.Ledger, *domain.Catalog, error) {
	catalog, err := uc.catalog.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	entries, err := loadJournal(ctx, uc.entryRepo, filter)
	if err != nil {
		return nil, nil, err
	}

	ledger := domain.PostLedger(entries, catalog)

	if len(ledger.Warnings) > 0 {
		for _, w := range ledger.Warnings {
			uc.logger.Warn().
				Str("kind", string(w.Kind)).
				Str("entry_id", w.EntryID).
				Str("account_code", w.AccountCode).
				Int("row", w.Row).
				Msg("posting anomaly")
		}
		uc.metrics.PostingWarnings(ledger.Warnings)
	}

	return ledger, catalog, nil
}

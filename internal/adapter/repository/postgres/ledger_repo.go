package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/conta/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return newLedgerRepository(pool)
}

func newLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// Totals sums every stored debit and credit.
func (r *LedgerRepository) Totals(ctx context.Context) (debit decimal.Decimal, credit decimal.Decimal, err error) {
	result, err := r.queries.SumJournalLines(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	debit, err = numericToDecimal(result.TotalDebit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	credit, err = numericToDecimal(result.TotalCredit)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return debit, credit, nil
}

// UnbalancedEntries lists entries whose lines do not balance or sum to zero.
func (r *LedgerRepository) UnbalancedEntries(ctx context.Context) ([]string, error) {
	return r.queries.ListUnbalancedEntries(ctx)
}

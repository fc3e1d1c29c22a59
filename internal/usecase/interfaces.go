package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/conta/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, code string) error
	// CountLines returns how many journal lines post to the account.
	CountLines(ctx context.Context, code string) (int64, error)
}

// EntryRepository defines data access for journal entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	// Replace overwrites the header and lines of an existing entry.
	Replace(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	Delete(ctx context.Context, tx Transaction, id string) error
	GetByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	// List returns entries inside the filter's date bounds. Other filter
	// fields may be ignored; callers apply domain.FilterEntries afterwards.
	List(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// Totals sums every debit and credit stored in the journal.
	Totals(ctx context.Context) (debit, credit decimal.Decimal, err error)
	// UnbalancedEntries lists entry IDs whose stored lines do not balance.
	UnbalancedEntries(ctx context.Context) ([]string, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a pending key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// Metrics records bookkeeping events.
type Metrics interface {
	EntryAccepted(operation string)
	EntryRejected(kinds []domain.IssueKind)
	PostingWarnings(warnings []domain.PostingWarning)
	ObserveReport(report string, elapsed time.Duration)
	AccountOperation(operation string)
}

type nopMetrics struct{}

func (nopMetrics) EntryAccepted(string)                    {}
func (nopMetrics) EntryRejected([]domain.IssueKind)        {}
func (nopMetrics) PostingWarnings([]domain.PostingWarning) {}
func (nopMetrics) ObserveReport(string, time.Duration)     {}
func (nopMetrics) AccountOperation(string)                 {}

func metricsOrNop(m Metrics) Metrics {
	if m == nil {
		return nopMetrics{}
	}
	return m
}

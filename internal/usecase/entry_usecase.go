package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iho/conta/internal/domain"
)

// EntryUseCase handles journal entry business logic.
type EntryUseCase struct {
	txManager TransactionManager
	entryRepo EntryRepository
	catalog   *CatalogLoader
	idGen     IDGenerator
	retrier   Retrier
	metrics   Metrics
}

// NewEntryUseCase creates a new EntryUseCase. retrier and metrics may be nil.
func NewEntryUseCase(
	txManager TransactionManager,
	entryRepo EntryRepository,
	catalog *CatalogLoader,
	idGen IDGenerator,
	retrier Retrier,
	metrics Metrics,
) *EntryUseCase {
	if retrier == nil {
		retrier = noRetry{}
	}
	return &EntryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		catalog:   catalog,
		idGen:     idGen,
		retrier:   retrier,
		metrics:   metricsOrNop(metrics),
	}
}

// ValidateEntry runs the entry rules against the current catalog without
// persisting anything. Amounts are rounded to cents first, so the result
// matches what CreateEntry would store. The error is only set when the
// catalog cannot be loaded.
func (uc *EntryUseCase) ValidateEntry(ctx context.Context, draft *domain.EntryDraft) (domain.ValidationResult, error) {
	return uc.validate(ctx, draft.Normalized())
}

func (uc *EntryUseCase) validate(ctx context.Context, normalized *domain.EntryDraft) (domain.ValidationResult, error) {
	catalog, err := uc.catalog.Load(ctx)
	if err != nil {
		return domain.ValidationResult{}, err
	}
	return domain.ValidateEntry(normalized, catalog), nil
}

// CreateEntry validates and records a new journal entry.
// Rejections return a *domain.ValidationError.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, draft *domain.EntryDraft) (*domain.JournalEntry, error) {
	normalized := draft.Normalized()
	if err := uc.check(ctx, normalized); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := newJournalEntry(uc.idGen.Generate(), normalized, now, now)

	err := uc.inTx(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.entryRepo.Create(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.EntryAccepted("create")

	return entry, nil
}

// UpdateEntry replaces the content of an existing entry, keeping its ID.
func (uc *EntryUseCase) UpdateEntry(ctx context.Context, id string, draft *domain.EntryDraft) (*domain.JournalEntry, error) {
	existing, err := uc.entryRepo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	normalized := draft.Normalized()
	if err := uc.check(ctx, normalized); err != nil {
		return nil, err
	}

	entry := newJournalEntry(existing.ID, normalized, existing.CreatedAt, time.Now().UTC())

	err = uc.inTx(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.entryRepo.Replace(ctx, tx, entry)
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.EntryAccepted("update")

	return entry, nil
}

// DeleteEntry removes an entry and its lines.
func (uc *EntryUseCase) DeleteEntry(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	return uc.inTx(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.entryRepo.Delete(ctx, tx, id)
	})
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.entryRepo.GetByID(ctx, strings.TrimSpace(id))
}

// Journal returns the filtered entries in chronological order.
func (uc *EntryUseCase) Journal(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	return loadJournal(ctx, uc.entryRepo, filter)
}

// check validates an already normalized draft.
func (uc *EntryUseCase) check(ctx context.Context, normalized *domain.EntryDraft) error {
	result, err := uc.validate(ctx, normalized)
	if err != nil {
		return err
	}

	if !result.OK {
		kinds := make([]domain.IssueKind, len(result.Issues))
		for i, issue := range result.Issues {
			kinds[i] = issue.Kind
		}
		uc.metrics.EntryRejected(kinds)
		return result.Err()
	}

	return nil
}

func (uc *EntryUseCase) inTx(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	return uc.retrier.Retry(ctx, func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(ctx, tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
}

func newJournalEntry(id string, n *domain.EntryDraft, createdAt, updatedAt time.Time) *domain.JournalEntry {
	return &domain.JournalEntry{
		ID:          id,
		Date:        n.Date,
		Description: n.Description,
		Lines:       n.Lines,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// loadJournal reads the entries that pass the filter, sorted.
func loadJournal(ctx context.Context, repo EntryRepository, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if filter.From != "" && filter.To != "" && filter.From > filter.To {
		return nil, fmt.Errorf("%w: from %s is after to %s", domain.ErrInvalidDate, filter.From, filter.To)
	}

	entries, err := repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return domain.SortJournal(domain.FilterEntries(entries, filter)), nil
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, operation func() error) error {
	return operation()
}

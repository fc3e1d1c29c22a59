package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/infrastructure/postgres/generated"
	"github.com/iho/conta/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return newEntryRepository(pool)
}

func newEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create inserts the entry header and its lines.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	queries := txQueries(tx)

	date, err := dateToPgDate(entry.Date)
	if err != nil {
		return err
	}

	err = queries.CreateJournalEntry(ctx, generated.CreateJournalEntryParams{
		ID:          entry.ID,
		EntryDate:   date,
		Description: entry.Description,
		CreatedAt:   timeToPgTimestamptz(entry.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}

	return insertLines(ctx, queries, entry)
}

// Replace overwrites the header and lines of an existing entry.
func (r *EntryRepository) Replace(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	queries := txQueries(tx)

	date, err := dateToPgDate(entry.Date)
	if err != nil {
		return err
	}

	n, err := queries.UpdateJournalEntry(ctx, generated.UpdateJournalEntryParams{
		ID:          entry.ID,
		EntryDate:   date,
		Description: entry.Description,
		UpdatedAt:   timeToPgTimestamptz(entry.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}

	if err := queries.DeleteJournalLines(ctx, entry.ID); err != nil {
		return err
	}

	return insertLines(ctx, queries, entry)
}

// Delete removes an entry. Its lines cascade.
func (r *EntryRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteJournalEntry(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrEntryNotFound
	}

	return nil
}

// GetByID retrieves an entry with its lines in input order.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	row, err := r.queries.GetJournalEntry(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	lines, err := r.queries.GetJournalLines(ctx, id)
	if err != nil {
		return nil, err
	}

	entry := &domain.JournalEntry{
		ID:          row.ID,
		Date:        pgDateToString(row.EntryDate),
		Description: row.Description,
		Lines:       make([]domain.JournalLine, 0, len(lines)),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
	for _, l := range lines {
		line, err := toJournalLine(l.AccountCode, l)
		if err != nil {
			return nil, fmt.Errorf("entry %s line %d: %w", id, l.LineNo, err)
		}
		entry.Lines = append(entry.Lines, line)
	}

	return entry, nil
}

// List returns the entries inside the filter's date bounds. The remaining
// filter fields are applied by the caller.
func (r *EntryRepository) List(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, error) {
	from, err := dateToPgDate(filter.From)
	if err != nil {
		return nil, err
	}
	to, err := dateToPgDate(filter.To)
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.ListJournalRows(ctx, generated.ListJournalRowsParams{
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		return nil, err
	}

	// Rows arrive grouped by entry and ordered by line number.
	entries := make([]domain.JournalEntry, 0)
	for _, row := range rows {
		if n := len(entries); n == 0 || entries[n-1].ID != row.ID {
			entries = append(entries, domain.JournalEntry{
				ID:          row.ID,
				Date:        pgDateToString(row.EntryDate),
				Description: row.Description,
				CreatedAt:   row.CreatedAt.Time,
				UpdatedAt:   row.UpdatedAt.Time,
			})
		}

		line, err := toJournalLine(row.AccountCode, generated.JournalLine{Debit: row.Debit, Credit: row.Credit})
		if err != nil {
			return nil, fmt.Errorf("entry %s line %d: %w", row.ID, row.LineNo, err)
		}

		last := &entries[len(entries)-1]
		last.Lines = append(last.Lines, line)
	}

	return entries, nil
}

func insertLines(ctx context.Context, queries *generated.Queries, entry *domain.JournalEntry) error {
	for i, l := range entry.Lines {
		err := queries.CreateJournalLine(ctx, generated.CreateJournalLineParams{
			EntryID:     entry.ID,
			LineNo:      int32(i + 1),
			AccountCode: l.AccountCode,
			Debit:       decimalToNumeric(l.Debit),
			Credit:      decimalToNumeric(l.Credit),
		})
		if err != nil {
			if pgErrorCode(err) == pgErrForeignKeyViolation {
				return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, l.AccountCode)
			}
			return err
		}
	}

	return nil
}

func toJournalLine(code string, row generated.JournalLine) (domain.JournalLine, error) {
	debit, err := numericToDecimal(row.Debit)
	if err != nil {
		return domain.JournalLine{}, err
	}

	credit, err := numericToDecimal(row.Credit)
	if err != nil {
		return domain.JournalLine{}, err
	}

	return domain.JournalLine{AccountCode: code, Debit: debit, Credit: credit}, nil
}

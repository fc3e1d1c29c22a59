package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createJournalEntry = `-- name: CreateJournalEntry :exec
INSERT INTO journal_entries (id, entry_date, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateJournalEntryParams struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Date        `json:"entry_date"`
	Description string             `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateJournalEntry(ctx context.Context, arg CreateJournalEntryParams) error {
	_, err := q.db.Exec(ctx, createJournalEntry,
		arg.ID,
		arg.EntryDate,
		arg.Description,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const createJournalLine = `-- name: CreateJournalLine :exec
INSERT INTO journal_lines (entry_id, line_no, account_code, debit, credit)
VALUES ($1, $2, $3, $4, $5)
`

type CreateJournalLineParams struct {
	EntryID     string         `json:"entry_id"`
	LineNo      int32          `json:"line_no"`
	AccountCode string         `json:"account_code"`
	Debit       pgtype.Numeric `json:"debit"`
	Credit      pgtype.Numeric `json:"credit"`
}

func (q *Queries) CreateJournalLine(ctx context.Context, arg CreateJournalLineParams) error {
	_, err := q.db.Exec(ctx, createJournalLine,
		arg.EntryID,
		arg.LineNo,
		arg.AccountCode,
		arg.Debit,
		arg.Credit,
	)
	return err
}

const deleteJournalEntry = `-- name: DeleteJournalEntry :execrows
DELETE FROM journal_entries WHERE id = $1
`

func (q *Queries) DeleteJournalEntry(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteJournalEntry, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteJournalLines = `-- name: DeleteJournalLines :exec
DELETE FROM journal_lines WHERE entry_id = $1
`

func (q *Queries) DeleteJournalLines(ctx context.Context, entryID string) error {
	_, err := q.db.Exec(ctx, deleteJournalLines, entryID)
	return err
}

const getJournalEntry = `-- name: GetJournalEntry :one
SELECT id, entry_date, description, created_at, updated_at FROM journal_entries WHERE id = $1
`

func (q *Queries) GetJournalEntry(ctx context.Context, id string) (JournalEntry, error) {
	row := q.db.QueryRow(ctx, getJournalEntry, id)
	var i JournalEntry
	err := row.Scan(
		&i.ID,
		&i.EntryDate,
		&i.Description,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getJournalLines = `-- name: GetJournalLines :many
SELECT entry_id, line_no, account_code, debit, credit FROM journal_lines
WHERE entry_id = $1
ORDER BY line_no
`

func (q *Queries) GetJournalLines(ctx context.Context, entryID string) ([]JournalLine, error) {
	rows, err := q.db.Query(ctx, getJournalLines, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []JournalLine{}
	for rows.Next() {
		var i JournalLine
		if err := rows.Scan(
			&i.EntryID,
			&i.LineNo,
			&i.AccountCode,
			&i.Debit,
			&i.Credit,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listJournalRows = `-- name: ListJournalRows :many
SELECT e.id, e.entry_date, e.description, e.created_at, e.updated_at,
       l.line_no, l.account_code, l.debit, l.credit
FROM journal_entries e
JOIN journal_lines l ON l.entry_id = e.id
WHERE ($1::date IS NULL OR e.entry_date >= $1)
  AND ($2::date IS NULL OR e.entry_date <= $2)
ORDER BY e.entry_date, e.id, l.line_no
`

type ListJournalRowsParams struct {
	FromDate pgtype.Date `json:"from_date"`
	ToDate   pgtype.Date `json:"to_date"`
}

type ListJournalRowsRow struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Date        `json:"entry_date"`
	Description string             `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
	LineNo      int32              `json:"line_no"`
	AccountCode string             `json:"account_code"`
	Debit       pgtype.Numeric     `json:"debit"`
	Credit      pgtype.Numeric     `json:"credit"`
}

func (q *Queries) ListJournalRows(ctx context.Context, arg ListJournalRowsParams) ([]ListJournalRowsRow, error) {
	rows, err := q.db.Query(ctx, listJournalRows, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ListJournalRowsRow{}
	for rows.Next() {
		var i ListJournalRowsRow
		if err := rows.Scan(
			&i.ID,
			&i.EntryDate,
			&i.Description,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.LineNo,
			&i.AccountCode,
			&i.Debit,
			&i.Credit,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateJournalEntry = `-- name: UpdateJournalEntry :execrows
UPDATE journal_entries SET entry_date = $2, description = $3, updated_at = $4 WHERE id = $1
`

type UpdateJournalEntryParams struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Date        `json:"entry_date"`
	Description string             `json:"description"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateJournalEntry(ctx context.Context, arg UpdateJournalEntryParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateJournalEntry,
		arg.ID,
		arg.EntryDate,
		arg.Description,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

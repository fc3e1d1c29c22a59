package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const listUnbalancedEntries = `-- name: ListUnbalancedEntries :many
SELECT e.id FROM journal_entries e
LEFT JOIN journal_lines l ON l.entry_id = e.id
GROUP BY e.id
HAVING COALESCE(SUM(l.debit), 0) <> COALESCE(SUM(l.credit), 0)
    OR COALESCE(SUM(l.debit), 0) = 0
ORDER BY e.id
`

func (q *Queries) ListUnbalancedEntries(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, listUnbalancedEntries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const sumJournalLines = `-- name: SumJournalLines :one
SELECT COALESCE(SUM(debit), 0)::numeric AS total_debit,
       COALESCE(SUM(credit), 0)::numeric AS total_credit
FROM journal_lines
`

type SumJournalLinesRow struct {
	TotalDebit  pgtype.Numeric `json:"total_debit"`
	TotalCredit pgtype.Numeric `json:"total_credit"`
}

func (q *Queries) SumJournalLines(ctx context.Context) (SumJournalLinesRow, error) {
	row := q.db.QueryRow(ctx, sumJournalLines)
	var i SumJournalLinesRow
	err := row.Scan(&i.TotalDebit, &i.TotalCredit)
	return i, err
}

package generated

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Account struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	Active    bool               `json:"active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

type JournalEntry struct {
	ID          string             `json:"id"`
	EntryDate   pgtype.Date        `json:"entry_date"`
	Description string             `json:"description"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

type JournalLine struct {
	EntryID     string         `json:"entry_id"`
	LineNo      int32          `json:"line_no"`
	AccountCode string         `json:"account_code"`
	Debit       pgtype.Numeric `json:"debit"`
	Credit      pgtype.Numeric `json:"credit"`
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine is one debit-or-credit line of a journal entry.
type JournalLine struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// EntryDraft is a candidate journal entry that has not been accepted yet.
type EntryDraft struct {
	Date        string
	Description string
	Lines       []JournalLine
}

// JournalEntry is an accepted double-entry transaction.
// Date is an ISO YYYY-MM-DD string so lexicographic order is chronological.
type JournalEntry struct {
	ID          string
	Date        string
	Description string
	Lines       []JournalLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Draft returns the entry's editable content.
func (e *JournalEntry) Draft() *EntryDraft {
	lines := make([]JournalLine, len(e.Lines))
	copy(lines, e.Lines)

	return &EntryDraft{
		Date:        e.Date,
		Description: e.Description,
		Lines:       lines,
	}
}

// Totals returns the rounded debit and credit sums of the entry.
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	return sumLines(e.Lines)
}

// References reports whether any line posts to the given account.
func (e *JournalEntry) References(code string) bool {
	for _, l := range e.Lines {
		if l.AccountCode == code {
			return true
		}
	}
	return false
}

func sumLines(lines []JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return Round2(debit), Round2(credit)
}

// Normalized returns a copy with trimmed text and amounts rounded to cents,
// the form in which accepted entries are validated and stored. A nil draft
// stays nil.
func (d *EntryDraft) Normalized() *EntryDraft {
	if d == nil {
		return nil
	}

	lines := make([]JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = JournalLine{
			AccountCode: strings.TrimSpace(l.AccountCode),
			Debit:       Round2(l.Debit),
			Credit:      Round2(l.Credit),
		}
	}

	return &EntryDraft{
		Date:        strings.TrimSpace(d.Date),
		Description: strings.TrimSpace(d.Description),
		Lines:       lines,
	}
}

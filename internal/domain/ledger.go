package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Movement is one posting inside an account ledger.
type Movement struct {
	EntryID        string
	Date           string
	Description    string
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	RunningBalance decimal.Decimal
}

// LedgerAccount is the per-account rollup of every posted movement.
type LedgerAccount struct {
	AccountCode string
	AccountName string
	Movements   []Movement
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal
}

// HasActivity reports whether anything was posted with a non-zero amount.
func (a *LedgerAccount) HasActivity() bool {
	return !a.TotalDebit.IsZero() || !a.TotalCredit.IsZero()
}

// WarningKind identifies a posting anomaly.
type WarningKind string

const (
	WarningUnknownAccount WarningKind = "unknown_account"
	WarningMissingAccount WarningKind = "missing_account"
)

// PostingWarning reports a line that posted (or was skipped) while the
// catalog and the entry history disagree.
type PostingWarning struct {
	Kind        WarningKind
	EntryID     string
	AccountCode string
	Row         int
}

// Ledger is the result of folding a journal into per-account ledgers.
type Ledger struct {
	Accounts map[string]*LedgerAccount
	Warnings []PostingWarning
}

// PostLedger folds the entries into one ledger account per account code.
// Entries are sorted with SortJournal first, so the caller may pass them in
// any order. Codes missing from a non-empty catalog still post, named after
// the raw code, and are reported in Warnings.
func PostLedger(entries []JournalEntry, catalog *Catalog) *Ledger {
	ledger := &Ledger{Accounts: make(map[string]*LedgerAccount)}

	for _, entry := range SortJournal(entries) {
		for i, line := range entry.Lines {
			code := strings.TrimSpace(line.AccountCode)
			if code == "" {
				ledger.warn(WarningMissingAccount, entry.ID, "", i+1)
				continue
			}

			if catalog.Len() > 0 {
				if _, known := catalog.Lookup(code); !known {
					ledger.warn(WarningUnknownAccount, entry.ID, code, i+1)
				}
			}

			account, ok := ledger.Accounts[code]
			if !ok {
				account = &LedgerAccount{
					AccountCode: code,
					AccountName: catalog.Name(code),
					TotalDebit:  decimal.Zero,
					TotalCredit: decimal.Zero,
					Balance:     decimal.Zero,
				}
				ledger.Accounts[code] = account
			}

			debit := Round2(line.Debit)
			credit := Round2(line.Credit)

			account.TotalDebit = Round2(account.TotalDebit.Add(debit))
			account.TotalCredit = Round2(account.TotalCredit.Add(credit))

			running := decimal.Zero
			if n := len(account.Movements); n > 0 {
				running = account.Movements[n-1].RunningBalance
			}

			account.Movements = append(account.Movements, Movement{
				EntryID:        entry.ID,
				Date:           entry.Date,
				Description:    entry.Description,
				Debit:          debit,
				Credit:         credit,
				RunningBalance: Round2(running.Add(debit).Sub(credit)),
			})
		}
	}

	for _, account := range ledger.Accounts {
		account.Balance = Round2(account.TotalDebit.Sub(account.TotalCredit))
	}

	return ledger
}

func (l *Ledger) warn(kind WarningKind, entryID, code string, row int) {
	l.Warnings = append(l.Warnings, PostingWarning{
		Kind:        kind,
		EntryID:     entryID,
		AccountCode: code,
		Row:         row,
	})
}

// Account returns the ledger account for code.
func (l *Ledger) Account(code string) (*LedgerAccount, bool) {
	a, ok := l.Accounts[code]
	return a, ok
}

// Balance returns the final balance of code, zero when nothing was posted.
func (l *Ledger) Balance(code string) decimal.Decimal {
	if a, ok := l.Accounts[code]; ok {
		return a.Balance
	}
	return decimal.Zero
}

// Sorted returns the ledger accounts ordered by account code.
func (l *Ledger) Sorted() []*LedgerAccount {
	out := make([]*LedgerAccount, 0, len(l.Accounts))
	for _, a := range l.Accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AccountCode < out[j].AccountCode
	})
	return out
}

// Totals sums debit and credit across every account. For a ledger posted from
// balanced entries the two are equal.
func (l *Ledger) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, a := range l.Accounts {
		debit = debit.Add(a.TotalDebit)
		credit = credit.Add(a.TotalCredit)
	}
	return Round2(debit), Round2(credit)
}

// Conserved reports whether global debits equal global credits.
func (l *Ledger) Conserved() bool {
	debit, credit := l.Totals()
	return debit.Equal(credit)
}

// UnknownAccounts returns the distinct codes flagged as unknown, sorted.
func (l *Ledger) UnknownAccounts() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, w := range l.Warnings {
		if w.Kind != WarningUnknownAccount {
			continue
		}
		if _, ok := seen[w.AccountCode]; ok {
			continue
		}
		seen[w.AccountCode] = struct{}{}
		out = append(out, w.AccountCode)
	}
	sort.Strings(out)
	return out
}

package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortJournal returns the entries ordered by date, then ID. Both keys compare
// as strings. The input slice is left untouched.
func SortJournal(entries []JournalEntry) []JournalEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, compareEntries)
	return out
}

func compareEntries(a, b JournalEntry) int {
	if c := cmp.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// EntryFilter narrows the journal. Empty fields match everything; From and To
// are inclusive ISO dates.
type EntryFilter struct {
	Text        string
	From        string
	To          string
	AccountCode string
}

// IsZero reports whether the filter matches every entry.
func (f EntryFilter) IsZero() bool {
	return f == EntryFilter{}
}

// Validate checks that the date bounds are well formed.
func (f EntryFilter) Validate() error {
	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if err := ValidateDate(d); err != nil {
			return err
		}
	}
	return nil
}

// Match reports whether e passes the filter.
func (f EntryFilter) Match(e JournalEntry) bool {
	if f.From != "" && e.Date < f.From {
		return false
	}
	if f.To != "" && e.Date > f.To {
		return false
	}

	if q := strings.ToLower(strings.TrimSpace(f.Text)); q != "" {
		if !strings.Contains(strings.ToLower(e.Description), q) {
			return false
		}
	}

	if f.AccountCode != "" && !e.References(f.AccountCode) {
		return false
	}

	return true
}

// FilterEntries returns the entries that pass the filter, keeping their order.
func FilterEntries(entries []JournalEntry, f EntryFilter) []JournalEntry {
	out := make([]JournalEntry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

package domain

import (
	"slices"
	"testing"
)

func TestPostLedger_Totals(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-10", "Venta", debitLine("1101", "100"), creditLine("4101", "100")),
		newEntry("2", "2025-01-11", "Prestamo", debitLine("1101", "50"), creditLine("2102", "50")),
	}

	ledger := PostLedger(entries, testCatalog())

	acc, ok := ledger.Account("1101")
	if !ok {
		t.Fatalf("expected ledger account 1101")
	}
	if !acc.TotalDebit.Equal(dec("150")) || !acc.TotalCredit.IsZero() || !acc.Balance.Equal(dec("150")) {
		t.Fatalf("unexpected totals: debit=%s credit=%s balance=%s", acc.TotalDebit, acc.TotalCredit, acc.Balance)
	}
	if acc.AccountName != "Caja" {
		t.Fatalf("expected catalog name, got %q", acc.AccountName)
	}
	if !ledger.Balance("2102").Equal(dec("-50")) {
		t.Fatalf("expected 2102 balance -50, got %s", ledger.Balance("2102"))
	}
	if !ledger.Balance("3101").IsZero() {
		t.Fatalf("expected zero balance for unposted account")
	}
	if len(ledger.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", ledger.Warnings)
	}
}

func TestPostLedger_UnknownAccountStillPosts(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-10", "Harness", debitLine("9999", "10"), creditLine("4101", "10")),
	}

	ledger := PostLedger(entries, testCatalog())

	acc, ok := ledger.Account("9999")
	if !ok {
		t.Fatalf("expected ledger account for unknown code")
	}
	if acc.AccountName != "9999" {
		t.Fatalf("expected raw code as name, got %q", acc.AccountName)
	}
	if got := ledger.UnknownAccounts(); !slices.Equal(got, []string{"9999"}) {
		t.Fatalf("expected unknown [9999], got %v", got)
	}
	if w := ledger.Warnings[0]; w.Kind != WarningUnknownAccount || w.EntryID != "1" || w.Row != 1 {
		t.Fatalf("unexpected warning %+v", w)
	}
}

func TestPostLedger_MissingCodeIsSkipped(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-10", "x", debitLine("  ", "10"), creditLine("4101", "10")),
	}

	ledger := PostLedger(entries, nil)

	if _, ok := ledger.Accounts[""]; ok {
		t.Fatalf("expected blank code not to be posted")
	}
	if len(ledger.Warnings) != 1 || ledger.Warnings[0].Kind != WarningMissingAccount {
		t.Fatalf("expected a missing_account warning, got %v", ledger.Warnings)
	}
}

func TestPostLedger_RunningBalanceFollowsJournalOrder(t *testing.T) {
	// Passed out of order on purpose.
	entries := []JournalEntry{
		newEntry("3", "2025-01-20", "Pago", debitLine("5101", "30"), creditLine("1101", "30")),
		newEntry("1", "2025-01-01", "Aporte", debitLine("1101", "100"), creditLine("3101", "100")),
		newEntry("2", "2025-01-10", "Venta", debitLine("1101", "20.005"), creditLine("4101", "20.01")),
	}

	ledger := PostLedger(entries, testCatalog())
	acc, _ := ledger.Account("1101")

	wantIDs := []string{"1", "2", "3"}
	wantRunning := []string{"100", "120.01", "90.01"}

	if len(acc.Movements) != len(wantIDs) {
		t.Fatalf("expected %d movements, got %d", len(wantIDs), len(acc.Movements))
	}
	for i, m := range acc.Movements {
		if m.EntryID != wantIDs[i] {
			t.Fatalf("movement %d: expected entry %s, got %s", i, wantIDs[i], m.EntryID)
		}
		if !m.RunningBalance.Equal(dec(wantRunning[i])) {
			t.Fatalf("movement %d: expected running %s, got %s", i, wantRunning[i], m.RunningBalance)
		}
	}

	last := acc.Movements[len(acc.Movements)-1].RunningBalance
	if !last.Equal(acc.Balance) {
		t.Fatalf("expected last running balance %s to equal balance %s", last, acc.Balance)
	}
}

func TestPostLedger_Conservation(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "a", debitLine("1101", "1000"), creditLine("3101", "1000")),
		newEntry("2", "2025-01-02", "b", debitLine("1201", "400"), creditLine("1101", "150"), creditLine("2101", "250")),
		newEntry("3", "2025-01-03", "c", debitLine("6101", "60"), debitLine("5101", "40"), creditLine("1101", "100")),
	}

	ledger := PostLedger(entries, testCatalog())

	if !ledger.Conserved() {
		debit, credit := ledger.Totals()
		t.Fatalf("expected global debits to equal credits, got %s/%s", debit, credit)
	}

	for _, acc := range ledger.Sorted() {
		if !acc.Balance.Equal(Round2(acc.TotalDebit.Sub(acc.TotalCredit))) {
			t.Fatalf("%s: balance %s does not match totals", acc.AccountCode, acc.Balance)
		}
	}
}

func TestLedger_SortedByCode(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "a", debitLine("5101", "1"), creditLine("1101", "1")),
		newEntry("2", "2025-01-01", "b", debitLine("2101", "1"), creditLine("4101", "1")),
	}

	var got []string
	for _, acc := range PostLedger(entries, nil).Sorted() {
		got = append(got, acc.AccountCode)
	}
	if !slices.Equal(got, []string{"1101", "2101", "4101", "5101"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

package domain

import (
	"reflect"
	"testing"
)

func scenarioLedger() *Ledger {
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "Aporte", debitLine("1101", "250"), creditLine("3101", "250")),
		newEntry("2", "2025-01-02", "Prestamo", debitLine("1101", "200"), creditLine("2101", "200")),
		newEntry("3", "2025-01-03", "Venta", debitLine("1101", "100"), creditLine("4101", "100")),
		newEntry("4", "2025-01-04", "Sueldos", debitLine("5101", "50"), creditLine("1101", "50")),
	}
	return PostLedger(entries, testCatalog())
}

func TestAggregator_BalanceSheetEquation(t *testing.T) {
	agg := NewAggregator(testCatalog(), nil, DefaultReportOptions())

	report := agg.BalanceSheet(scenarioLedger())

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"assets", report.Assets.String(), "500"},
		{"liabilities", report.Liabilities.String(), "200"},
		{"equity", report.Equity.String(), "250"},
		{"profit", report.Profit.String(), "50"},
		{"total equity", report.TotalEquity.String(), "300"},
	}
	for _, c := range checks {
		if !dec(c.got).Equal(dec(c.want)) {
			t.Fatalf("%s: expected %s, got %s", c.name, c.want, c.got)
		}
	}
	if !report.Balanced {
		t.Fatalf("expected balance sheet to balance")
	}
	if report.CurrentAssets != nil {
		t.Fatalf("expected no term split without a terms table")
	}
}

func TestAggregator_IncomeStatement(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "Venta", debitLine("1101", "300"), creditLine("4101", "300")),
		newEntry("2", "2025-01-02", "Costo", debitLine("6101", "120"), creditLine("1101", "120")),
		newEntry("3", "2025-01-03", "Sueldos", debitLine("5101", "80"), creditLine("1101", "80")),
	}
	agg := NewAggregator(testCatalog(), nil, DefaultReportOptions())

	report := agg.IncomeStatement(PostLedger(entries, testCatalog()))

	if !report.Income.Equal(dec("300")) || !report.Costs.Equal(dec("120")) || !report.Expenses.Equal(dec("80")) {
		t.Fatalf("unexpected sections: %+v", report)
	}
	if !report.CostsAndExpenses.Equal(dec("200")) || !report.Profit.Equal(dec("100")) {
		t.Fatalf("unexpected profit: %+v", report)
	}
}

func TestAggregator_IncomeClamp(t *testing.T) {
	classifier := NewClassifier(map[string]AccountType{
		"1": AccountTypeAsset,
		"4": AccountTypeIncome,
	}, nil)
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "Venta", debitLine("1101", "100"), creditLine("4101", "100")),
		newEntry("2", "2025-01-02", "Devolucion", debitLine("4102", "30"), creditLine("1101", "30")),
	}
	ledger := PostLedger(entries, nil)

	clamped := NewAggregator(nil, classifier, ReportOptions{ClampIncomePerAccount: true}).IncomeStatement(ledger)
	if !clamped.Income.Equal(dec("100")) {
		t.Fatalf("expected clamped income 100, got %s", clamped.Income)
	}

	net := NewAggregator(nil, classifier, ReportOptions{ClampIncomePerAccount: false}).IncomeStatement(ledger)
	if !net.Income.Equal(dec("70")) {
		t.Fatalf("expected net income 70, got %s", net.Income)
	}
}

func TestAggregator_IncomeClampBalanceSheet(t *testing.T) {
	classifier := NewClassifier(map[string]AccountType{
		"1": AccountTypeAsset,
		"3": AccountTypeEquity,
		"4": AccountTypeIncome,
	}, nil)
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "Aporte", debitLine("1101", "100"), creditLine("3101", "100")),
		newEntry("2", "2025-01-02", "Venta", debitLine("1101", "50"), creditLine("4101", "50")),
		newEntry("3", "2025-01-03", "Devolucion", debitLine("4102", "80"), creditLine("1101", "80")),
	}
	ledger := PostLedger(entries, nil)

	tests := []struct {
		name     string
		clamp    bool
		profit   string
		balanced bool
	}{
		// 4102 carries a net debit of 80 that the clamp leaves out of profit.
		{"clamped", true, "50", false},
		{"net", false, "-30", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := NewAggregator(nil, classifier, ReportOptions{ClampIncomePerAccount: tt.clamp}).BalanceSheet(ledger)

			if !report.Assets.Equal(dec("70")) || !report.Equity.Equal(dec("100")) {
				t.Fatalf("unexpected sections: assets %s equity %s", report.Assets, report.Equity)
			}
			if !report.Profit.Equal(dec(tt.profit)) {
				t.Fatalf("expected profit %s, got %s", tt.profit, report.Profit)
			}
			if report.Balanced != tt.balanced {
				t.Fatalf("expected balanced=%v, got %v", tt.balanced, report.Balanced)
			}
		})
	}
}

func TestAggregator_TrialBalance(t *testing.T) {
	agg := NewAggregator(testCatalog(), nil, DefaultReportOptions())

	report := agg.TrialBalance(scenarioLedger())

	if len(report.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(report.Rows))
	}
	if report.Rows[0].AccountCode != "1101" || report.Rows[0].AccountName != "Caja" {
		t.Fatalf("unexpected first row %+v", report.Rows[0])
	}
	if !report.Rows[0].Debit.Equal(dec("550")) || !report.Rows[0].Credit.Equal(dec("50")) {
		t.Fatalf("expected totals mode 550/50, got %s/%s", report.Rows[0].Debit, report.Rows[0].Credit)
	}
	if !report.TotalDebit.Equal(dec("600")) || !report.Balanced {
		t.Fatalf("expected balanced trial balance of 600, got %s/%s", report.TotalDebit, report.TotalCredit)
	}
}

func TestAggregator_TrialBalanceBalancesMode(t *testing.T) {
	agg := NewAggregator(testCatalog(), nil, ReportOptions{TrialBalanceMode: TrialBalanceBalances})

	report := agg.TrialBalance(scenarioLedger())

	row := report.Rows[0]
	if !row.Debit.Equal(dec("500")) || !row.Credit.IsZero() {
		t.Fatalf("expected 1101 net debit 500, got %s/%s", row.Debit, row.Credit)
	}
	for _, r := range report.Rows {
		if r.AccountCode == "2101" && (!r.Credit.Equal(dec("200")) || !r.Debit.IsZero()) {
			t.Fatalf("expected 2101 net credit 200, got %s/%s", r.Debit, r.Credit)
		}
	}
	if !report.TotalDebit.Equal(dec("550")) || !report.Balanced {
		t.Fatalf("expected balanced net trial balance of 550, got %s/%s", report.TotalDebit, report.TotalCredit)
	}
}

func TestAggregator_LeafOnly(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "a", debitLine("11", "10"), creditLine("31", "10")),
		newEntry("2", "2025-01-02", "b", debitLine("1101", "5"), creditLine("3101", "5")),
	}
	ledger := PostLedger(entries, nil)

	all := NewAggregator(nil, nil, ReportOptions{}).TrialBalance(ledger)
	if len(all.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(all.Rows))
	}

	leaves := NewAggregator(nil, nil, ReportOptions{LeafOnly: true}).TrialBalance(ledger)
	var codes []string
	for _, r := range leaves.Rows {
		codes = append(codes, r.AccountCode)
	}
	if !reflect.DeepEqual(codes, []string{"1101", "3101"}) {
		t.Fatalf("expected only leaf accounts, got %v", codes)
	}
}

func TestAggregator_TermSplit(t *testing.T) {
	classifier := NewClassifier(nil, map[string]Term{
		"11":   TermCurrent,
		"2101": TermCurrent,
	})
	agg := NewAggregator(testCatalog(), classifier, DefaultReportOptions())
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "Aporte", debitLine("1101", "1000"), creditLine("3101", "1000")),
		newEntry("2", "2025-01-02", "Equipo", debitLine("1201", "600"), creditLine("1101", "200"), creditLine("2102", "400")),
		newEntry("3", "2025-01-03", "Compra", debitLine("1101", "50"), creditLine("2101", "50")),
	}

	report := agg.BalanceSheet(PostLedger(entries, testCatalog()))

	if report.CurrentAssets == nil {
		t.Fatalf("expected term subtotals")
	}
	if !report.CurrentAssets.Equal(dec("850")) || !report.NonCurrentAssets.Equal(dec("600")) {
		t.Fatalf("unexpected asset split %s/%s", report.CurrentAssets, report.NonCurrentAssets)
	}
	if !report.CurrentLiabilities.Equal(dec("50")) || !report.NonCurrentLiabilities.Equal(dec("400")) {
		t.Fatalf("unexpected liability split %s/%s", report.CurrentLiabilities, report.NonCurrentLiabilities)
	}
	if !report.Balanced {
		t.Fatalf("expected balanced sheet")
	}
}

func TestAggregator_UnclassifiedAccounts(t *testing.T) {
	entries := []JournalEntry{
		newEntry("1", "2025-01-01", "x", debitLine("1101", "10"), creditLine("9101", "10")),
	}
	agg := NewAggregator(nil, nil, DefaultReportOptions())

	report := agg.BalanceSheet(PostLedger(entries, nil))

	if !reflect.DeepEqual(report.Unclassified, []string{"9101"}) {
		t.Fatalf("expected 9101 unclassified, got %v", report.Unclassified)
	}
	if report.Balanced {
		t.Fatalf("expected imbalance when a posted account cannot be classified")
	}
}

func TestAggregator_Idempotent(t *testing.T) {
	ledger := scenarioLedger()
	agg := NewAggregator(testCatalog(), nil, DefaultReportOptions())

	if a, b := agg.TrialBalance(ledger), agg.TrialBalance(ledger); !reflect.DeepEqual(a, b) {
		t.Fatalf("trial balance differs between runs")
	}
	if a, b := agg.IncomeStatement(ledger), agg.IncomeStatement(ledger); !reflect.DeepEqual(a, b) {
		t.Fatalf("income statement differs between runs")
	}
	if a, b := agg.BalanceSheet(ledger), agg.BalanceSheet(ledger); !reflect.DeepEqual(a, b) {
		t.Fatalf("balance sheet differs between runs")
	}
}

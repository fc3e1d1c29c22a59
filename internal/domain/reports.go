package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TrialBalanceMode selects how trial balance rows are filled.
type TrialBalanceMode string

const (
	// TrialBalanceTotals reports each account's cumulative debit and credit.
	TrialBalanceTotals TrialBalanceMode = "totals"
	// TrialBalanceBalances reports the net balance on its natural side.
	TrialBalanceBalances TrialBalanceMode = "balances"
)

// ParseTrialBalanceMode normalizes a mode label; empty means totals.
func ParseTrialBalanceMode(s string) (TrialBalanceMode, error) {
	switch TrialBalanceMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", TrialBalanceTotals:
		return TrialBalanceTotals, nil
	case TrialBalanceBalances:
		return TrialBalanceBalances, nil
	default:
		return "", fmt.Errorf("invalid trial balance mode %q", s)
	}
}

// ReportOptions tunes the aggregator.
type ReportOptions struct {
	// ClampIncomePerAccount drops each income account's net debit balance
	// instead of letting it reduce total income. With such a balance present
	// the balance sheet reports Balanced=false for a balanced ledger.
	ClampIncomePerAccount bool
	// LeafOnly skips parent accounts, i.e. posted codes that are a strict
	// prefix of another posted code.
	LeafOnly         bool
	TrialBalanceMode TrialBalanceMode
}

// DefaultReportOptions returns the canonical options.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		ClampIncomePerAccount: true,
		TrialBalanceMode:      TrialBalanceTotals,
	}
}

// TrialBalanceRow is one account line of the trial balance.
type TrialBalanceRow struct {
	AccountCode string
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// TrialBalanceReport lists per-account debit and credit totals.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balanced    bool
}

// IncomeStatementReport is income minus costs and expenses.
type IncomeStatementReport struct {
	Income           decimal.Decimal
	Costs            decimal.Decimal
	Expenses         decimal.Decimal
	CostsAndExpenses decimal.Decimal
	Profit           decimal.Decimal
	Unclassified     []string
}

// BalanceSheetReport checks Assets = Liabilities + Equity + Profit.
// The term subtotals are nil unless the classifier has term rules.
type BalanceSheetReport struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	Equity      decimal.Decimal
	Profit      decimal.Decimal
	TotalEquity decimal.Decimal
	Balanced    bool

	CurrentAssets         *decimal.Decimal
	NonCurrentAssets      *decimal.Decimal
	CurrentLiabilities    *decimal.Decimal
	NonCurrentLiabilities *decimal.Decimal

	Unclassified []string
}

// Aggregator derives financial statements from a ledger. It holds no state
// between calls; every report is recomputed from the ledger it is given.
type Aggregator struct {
	catalog    *Catalog
	classifier *Classifier
	opts       ReportOptions
}

// NewAggregator creates a new Aggregator. A nil classifier uses the default
// prefix table.
func NewAggregator(catalog *Catalog, classifier *Classifier, opts ReportOptions) *Aggregator {
	if classifier == nil {
		classifier = NewClassifier(nil, nil)
	}
	if opts.TrialBalanceMode == "" {
		opts.TrialBalanceMode = TrialBalanceTotals
	}

	return &Aggregator{
		catalog:    catalog,
		classifier: classifier,
		opts:       opts,
	}
}

// reportable returns the ledger accounts that take part in reports, ordered by code.
func (a *Aggregator) reportable(l *Ledger) []*LedgerAccount {
	accounts := l.Sorted()
	if !a.opts.LeafOnly {
		return accounts
	}

	out := make([]*LedgerAccount, 0, len(accounts))
	for i, acc := range accounts {
		// Sorted order puts every extension of a code right after it.
		if i+1 < len(accounts) && strings.HasPrefix(accounts[i+1].AccountCode, acc.AccountCode) {
			continue
		}
		out = append(out, acc)
	}
	return out
}

// TrialBalance lists every account with activity, sorted by code.
func (a *Aggregator) TrialBalance(l *Ledger) TrialBalanceReport {
	report := TrialBalanceReport{
		Rows:        []TrialBalanceRow{},
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, acc := range a.reportable(l) {
		if !acc.HasActivity() {
			continue
		}

		row := TrialBalanceRow{
			AccountCode: acc.AccountCode,
			AccountName: acc.AccountName,
			Debit:       acc.TotalDebit,
			Credit:      acc.TotalCredit,
		}

		if a.opts.TrialBalanceMode == TrialBalanceBalances {
			row.Debit, row.Credit = decimal.Zero, decimal.Zero
			if acc.Balance.IsNegative() {
				row.Credit = acc.Balance.Neg()
			} else {
				row.Debit = acc.Balance
			}
		}

		report.Rows = append(report.Rows, row)
		report.TotalDebit = report.TotalDebit.Add(row.Debit)
		report.TotalCredit = report.TotalCredit.Add(row.Credit)
	}

	report.TotalDebit = Round2(report.TotalDebit)
	report.TotalCredit = Round2(report.TotalCredit)
	report.Balanced = report.TotalDebit.Equal(report.TotalCredit)

	return report
}

// IncomeStatement computes income, costs and expenses, and the resulting profit.
func (a *Aggregator) IncomeStatement(l *Ledger) IncomeStatementReport {
	report := IncomeStatementReport{
		Income:   decimal.Zero,
		Costs:    decimal.Zero,
		Expenses: decimal.Zero,
	}

	for _, acc := range a.reportable(l) {
		t, ok := a.classifier.TypeOf(acc.AccountCode, a.catalog)
		if !ok {
			report.Unclassified = append(report.Unclassified, acc.AccountCode)
			continue
		}

		switch t {
		case AccountTypeIncome:
			net := acc.TotalCredit.Sub(acc.TotalDebit)
			if a.opts.ClampIncomePerAccount && net.IsNegative() {
				net = decimal.Zero
			}
			report.Income = report.Income.Add(net)
		case AccountTypeCost:
			report.Costs = report.Costs.Add(acc.TotalDebit.Sub(acc.TotalCredit))
		case AccountTypeExpense:
			report.Expenses = report.Expenses.Add(acc.TotalDebit.Sub(acc.TotalCredit))
		}
	}

	report.Income = Round2(report.Income)
	report.Costs = Round2(report.Costs)
	report.Expenses = Round2(report.Expenses)
	report.CostsAndExpenses = Round2(report.Costs.Add(report.Expenses))
	report.Profit = Round2(report.Income.Sub(report.CostsAndExpenses))

	return report
}

// BalanceSheet computes assets, liabilities and equity. Profit comes from the
// income statement over the same ledger and is added to equity.
func (a *Aggregator) BalanceSheet(l *Ledger) BalanceSheetReport {
	report := BalanceSheetReport{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
		Equity:      decimal.Zero,
	}

	var (
		split                   = a.classifier.HasTerms()
		curAssets, nonCurAssets = decimal.Zero, decimal.Zero
		curLiabs, nonCurLiabs   = decimal.Zero, decimal.Zero
	)

	for _, acc := range a.reportable(l) {
		t, ok := a.classifier.TypeOf(acc.AccountCode, a.catalog)
		if !ok {
			report.Unclassified = append(report.Unclassified, acc.AccountCode)
			continue
		}

		switch t {
		case AccountTypeAsset:
			net := acc.TotalDebit.Sub(acc.TotalCredit)
			report.Assets = report.Assets.Add(net)
			if split {
				if term, _ := a.classifier.TermOf(acc.AccountCode); term == TermCurrent {
					curAssets = curAssets.Add(net)
				} else {
					nonCurAssets = nonCurAssets.Add(net)
				}
			}
		case AccountTypeLiability:
			net := acc.TotalCredit.Sub(acc.TotalDebit)
			report.Liabilities = report.Liabilities.Add(net)
			if split {
				if term, _ := a.classifier.TermOf(acc.AccountCode); term == TermCurrent {
					curLiabs = curLiabs.Add(net)
				} else {
					nonCurLiabs = nonCurLiabs.Add(net)
				}
			}
		case AccountTypeEquity:
			report.Equity = report.Equity.Add(acc.TotalCredit.Sub(acc.TotalDebit))
		}
	}

	report.Assets = Round2(report.Assets)
	report.Liabilities = Round2(report.Liabilities)
	report.Equity = Round2(report.Equity)
	report.Profit = a.IncomeStatement(l).Profit
	report.TotalEquity = Round2(report.Equity.Add(report.Profit))
	report.Balanced = report.Assets.Equal(Round2(report.Liabilities.Add(report.TotalEquity)))

	if split {
		report.CurrentAssets = roundedPtr(curAssets)
		report.NonCurrentAssets = roundedPtr(nonCurAssets)
		report.CurrentLiabilities = roundedPtr(curLiabs)
		report.NonCurrentLiabilities = roundedPtr(nonCurLiabs)
	}

	return report
}

func roundedPtr(d decimal.Decimal) *decimal.Decimal {
	r := Round2(d)
	return &r
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/usecase"
)

// Amount renders money as a JSON number with two decimals.
type Amount decimal.Decimal

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(domain.Round2(decimal.Decimal(a)).StringFixed(domain.MoneyPlaces)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}

// Decimal returns the underlying value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func amountPtr(d *decimal.Decimal) *Amount {
	if d == nil {
		return nil
	}
	a := Amount(*d)
	return &a
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a catalog listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int                `json:"total"`
}

// LineResponse is one line of an entry.
type LineResponse struct {
	AccountCode string `json:"accountCode"`
	Debit       Amount `json:"debit"`
	Credit      Amount `json:"credit"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"`
	Description string         `json:"description"`
	Lines       []LineResponse `json:"lines"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// EntryFromDomain converts a domain entry to response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	lines := make([]LineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = LineResponse{
			AccountCode: l.AccountCode,
			Debit:       Amount(l.Debit),
			Credit:      Amount(l.Credit),
		}
	}

	return &EntryResponse{
		ID:          e.ID,
		Date:        e.Date,
		Description: e.Description,
		Lines:       lines,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// JournalFromDomain converts an ordered journal.
func JournalFromDomain(entries []domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i := range entries {
		result[i] = EntryFromDomain(&entries[i])
	}
	return result
}

// IssueResponse is one validation issue.
type IssueResponse struct {
	Kind    string `json:"kind"`
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

// ValidationResponse mirrors domain.ValidationResult.
type ValidationResponse struct {
	OK     bool            `json:"ok"`
	Errors []string        `json:"errors"`
	Issues []IssueResponse `json:"issues"`
}

// ValidationFromDomain converts a validation result.
func ValidationFromDomain(r domain.ValidationResult) *ValidationResponse {
	return ValidationFromIssues(r.Issues)
}

// ValidationFromIssues builds a response from a list of issues.
func ValidationFromIssues(issues []domain.ValidationIssue) *ValidationResponse {
	resp := &ValidationResponse{
		OK:     len(issues) == 0,
		Errors: make([]string, len(issues)),
		Issues: make([]IssueResponse, len(issues)),
	}
	for i, issue := range issues {
		resp.Errors[i] = issue.Message
		resp.Issues[i] = IssueResponse{Kind: string(issue.Kind), Row: issue.Row, Message: issue.Message}
	}
	return resp
}

// MovementResponse is one posted line in a ledger account.
type MovementResponse struct {
	EntryID        string `json:"entryId"`
	Date           string `json:"date"`
	Description    string `json:"description"`
	Debit          Amount `json:"debit"`
	Credit         Amount `json:"credit"`
	RunningBalance Amount `json:"runningBalance"`
}

// LedgerAccountResponse is one account's ledger.
type LedgerAccountResponse struct {
	AccountCode string             `json:"accountCode"`
	AccountName string             `json:"accountName"`
	Movements   []MovementResponse `json:"movements"`
	TotalDebit  Amount             `json:"totalDebit"`
	TotalCredit Amount             `json:"totalCredit"`
	Balance     Amount             `json:"balance"`
}

// WarningResponse is a posting anomaly.
type WarningResponse struct {
	Kind        string `json:"kind"`
	EntryID     string `json:"entryId"`
	AccountCode string `json:"accountCode,omitempty"`
	Row         int    `json:"row"`
}

// LedgerResponse lists ledger accounts ordered by code.
type LedgerResponse struct {
	Accounts []LedgerAccountResponse `json:"accounts"`
	Warnings []WarningResponse       `json:"warnings"`
}

// LedgerFromDomain converts a posted ledger.
func LedgerFromDomain(l *domain.Ledger) *LedgerResponse {
	sorted := l.Sorted()
	resp := &LedgerResponse{
		Accounts: make([]LedgerAccountResponse, len(sorted)),
		Warnings: make([]WarningResponse, len(l.Warnings)),
	}

	for i, acc := range sorted {
		movements := make([]MovementResponse, len(acc.Movements))
		for j, m := range acc.Movements {
			movements[j] = MovementResponse{
				EntryID:        m.EntryID,
				Date:           m.Date,
				Description:    m.Description,
				Debit:          Amount(m.Debit),
				Credit:         Amount(m.Credit),
				RunningBalance: Amount(m.RunningBalance),
			}
		}
		resp.Accounts[i] = LedgerAccountResponse{
			AccountCode: acc.AccountCode,
			AccountName: acc.AccountName,
			Movements:   movements,
			TotalDebit:  Amount(acc.TotalDebit),
			TotalCredit: Amount(acc.TotalCredit),
			Balance:     Amount(acc.Balance),
		}
	}

	for i, w := range l.Warnings {
		resp.Warnings[i] = WarningResponse{
			Kind:        string(w.Kind),
			EntryID:     w.EntryID,
			AccountCode: w.AccountCode,
			Row:         w.Row,
		}
	}

	return resp
}

// AccountBalanceResponse is one account's balance at a cutoff.
type AccountBalanceResponse struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	AsOf        string `json:"asOf,omitempty"`
	TotalDebit  Amount `json:"totalDebit"`
	TotalCredit Amount `json:"totalCredit"`
	Balance     Amount `json:"balance"`
}

// AccountBalanceFromUseCase converts a use case balance.
func AccountBalanceFromUseCase(b *usecase.AccountBalance) *AccountBalanceResponse {
	return &AccountBalanceResponse{
		AccountCode: b.AccountCode,
		AccountName: b.AccountName,
		AsOf:        b.AsOf,
		TotalDebit:  Amount(b.TotalDebit),
		TotalCredit: Amount(b.TotalCredit),
		Balance:     Amount(b.Balance),
	}
}

// ConsistencyResponse reports the ledger-wide check.
type ConsistencyResponse struct {
	Consistent        bool     `json:"consistent"`
	TotalDebit        Amount   `json:"totalDebit"`
	TotalCredit       Amount   `json:"totalCredit"`
	UnbalancedEntries []string `json:"unbalancedEntries"`
}

// ConsistencyFromUseCase converts a consistency report.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	unbalanced := r.UnbalancedEntries
	if unbalanced == nil {
		unbalanced = []string{}
	}
	return &ConsistencyResponse{
		Consistent:        r.Consistent,
		TotalDebit:        Amount(r.TotalDebit),
		TotalCredit:       Amount(r.TotalCredit),
		UnbalancedEntries: unbalanced,
	}
}

// TrialBalanceRowResponse is one trial balance row.
type TrialBalanceRowResponse struct {
	AccountCode string `json:"accountCode"`
	AccountName string `json:"accountName"`
	Debit       Amount `json:"debit"`
	Credit      Amount `json:"credit"`
}

// TrialBalanceResponse is the trial balance report.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  Amount                    `json:"totalDebit"`
	TotalCredit Amount                    `json:"totalCredit"`
	Balanced    bool                      `json:"balanced"`
}

// TrialBalanceFromDomain converts a trial balance.
func TrialBalanceFromDomain(r *domain.TrialBalanceReport) *TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Debit:       Amount(row.Debit),
			Credit:      Amount(row.Credit),
		}
	}
	return &TrialBalanceResponse{
		Rows:        rows,
		TotalDebit:  Amount(r.TotalDebit),
		TotalCredit: Amount(r.TotalCredit),
		Balanced:    r.Balanced,
	}
}

// IncomeStatementResponse keeps the statement's Spanish field names.
type IncomeStatementResponse struct {
	Ingresos     Amount   `json:"ingresos"`
	Costos       Amount   `json:"costos"`
	Gastos       Amount   `json:"gastos"`
	CostosGastos Amount   `json:"costosGastos"`
	Utilidad     Amount   `json:"utilidad"`
	Unclassified []string `json:"unclassified,omitempty"`
}

// IncomeStatementFromDomain converts an income statement.
func IncomeStatementFromDomain(r *domain.IncomeStatementReport) *IncomeStatementResponse {
	return &IncomeStatementResponse{
		Ingresos:     Amount(r.Income),
		Costos:       Amount(r.Costs),
		Gastos:       Amount(r.Expenses),
		CostosGastos: Amount(r.CostsAndExpenses),
		Utilidad:     Amount(r.Profit),
		Unclassified: r.Unclassified,
	}
}

// BalanceSheetResponse keeps the statement's Spanish field names. The term
// subtotals are present only when term rules are configured.
type BalanceSheetResponse struct {
	Activos           Amount   `json:"activos"`
	Pasivos           Amount   `json:"pasivos"`
	Capital           Amount   `json:"capital"`
	Utilidad          Amount   `json:"utilidad"`
	PatrimonioTotal   Amount   `json:"patrimonioTotal"`
	EquilibrioOK      bool     `json:"equilibrioOK"`
	ActivoCorriente   *Amount  `json:"activoCorriente,omitempty"`
	ActivoNoCorriente *Amount  `json:"activoNoCorriente,omitempty"`
	PasivoCorriente   *Amount  `json:"pasivoCorriente,omitempty"`
	PasivoNoCorriente *Amount  `json:"pasivoNoCorriente,omitempty"`
	Unclassified      []string `json:"unclassified,omitempty"`
}

// BalanceSheetFromDomain converts a balance sheet.
func BalanceSheetFromDomain(r *domain.BalanceSheetReport) *BalanceSheetResponse {
	return &BalanceSheetResponse{
		Activos:           Amount(r.Assets),
		Pasivos:           Amount(r.Liabilities),
		Capital:           Amount(r.Equity),
		Utilidad:          Amount(r.Profit),
		PatrimonioTotal:   Amount(r.TotalEquity),
		EquilibrioOK:      r.Balanced,
		ActivoCorriente:   amountPtr(r.CurrentAssets),
		ActivoNoCorriente: amountPtr(r.NonCurrentAssets),
		PasivoCorriente:   amountPtr(r.CurrentLiabilities),
		PasivoNoCorriente: amountPtr(r.NonCurrentLiabilities),
		Unclassified:      r.Unclassified,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// AccountType classifies an account in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeCost      AccountType = "cost"
	AccountTypeExpense   AccountType = "expense"
)

// AccountTypes lists every type in chart order.
var AccountTypes = []AccountType{
	AccountTypeAsset,
	AccountTypeLiability,
	AccountTypeEquity,
	AccountTypeIncome,
	AccountTypeCost,
	AccountTypeExpense,
}

var accountTypeAliases = map[string]AccountType{
	"asset":      AccountTypeAsset,
	"activo":     AccountTypeAsset,
	"liability":  AccountTypeLiability,
	"pasivo":     AccountTypeLiability,
	"equity":     AccountTypeEquity,
	"patrimonio": AccountTypeEquity,
	"capital":    AccountTypeEquity,
	"income":     AccountTypeIncome,
	"revenue":    AccountTypeIncome,
	"ingreso":    AccountTypeIncome,
	"cost":       AccountTypeCost,
	"costo":      AccountTypeCost,
	"expense":    AccountTypeExpense,
	"gasto":      AccountTypeExpense,
}

// ParseAccountType normalizes an English or Spanish type label.
func ParseAccountType(s string) (AccountType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := accountTypeAliases[key]; ok {
		return t, nil
	}
	if t, ok := accountTypeAliases[strings.TrimSuffix(key, "s")]; ok {
		return t, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidAccountType, s)
}

// Account is a row of the chart of accounts. The core only reads it.
type Account struct {
	Code      string
	Name      string
	Type      AccountType
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the fields required for an account to enter the catalog.
func (a *Account) Validate() error {
	if strings.TrimSpace(a.Code) == "" {
		return fmt.Errorf("%w: code cannot be empty", ErrInvalidAccount)
	}

	if len(a.Code) > MaxAccountCodeLength {
		return fmt.Errorf("%w: code exceeds %d characters", ErrInvalidAccount, MaxAccountCodeLength)
	}

	if err := ValidateAccountName(a.Name); err != nil {
		return err
	}

	if _, err := ParseAccountType(string(a.Type)); err != nil {
		return err
	}

	return nil
}

// AccountFilter narrows a catalog listing. Zero values match everything.
type AccountFilter struct {
	Type   AccountType
	Active *bool
	Query  string
}

// Match reports whether a passes the filter. Query matches code prefix or a
// case-insensitive substring of the name.
func (f AccountFilter) Match(a *Account) bool {
	if f.Type != "" && a.Type != f.Type {
		return false
	}
	if f.Active != nil && a.Active != *f.Active {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		if !strings.HasPrefix(a.Code, q) && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(q)) {
			return false
		}
	}
	return true
}

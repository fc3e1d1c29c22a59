package domain

import (
	"fmt"
	"sort"
)

// Catalog is a read-only, code-indexed view over the chart of accounts.
// A nil or empty catalog disables account existence checks.
type Catalog struct {
	byCode map[string]Account
	codes  []string
}

// NewCatalog indexes accounts by code. Codes must be unique.
func NewCatalog(accounts []Account) (*Catalog, error) {
	c := &Catalog{
		byCode: make(map[string]Account, len(accounts)),
		codes:  make([]string, 0, len(accounts)),
	}

	for _, a := range accounts {
		if _, dup := c.byCode[a.Code]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccountCode, a.Code)
		}
		c.byCode[a.Code] = a
		c.codes = append(c.codes, a.Code)
	}

	sort.Strings(c.codes)

	return c, nil
}

// Len returns the number of accounts in the catalog.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byCode)
}

// Lookup returns the account with the given code.
func (c *Catalog) Lookup(code string) (Account, bool) {
	if c == nil {
		return Account{}, false
	}
	a, ok := c.byCode[code]
	return a, ok
}

// Name returns the account name, or the code itself when the account is unknown.
func (c *Catalog) Name(code string) string {
	if a, ok := c.Lookup(code); ok && a.Name != "" {
		return a.Name
	}
	return code
}

// Accounts returns the accounts ordered by code.
func (c *Catalog) Accounts() []Account {
	if c == nil {
		return nil
	}

	out := make([]Account, 0, len(c.codes))
	for _, code := range c.codes {
		out = append(out, c.byCode[code])
	}
	return out
}

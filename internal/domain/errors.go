package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountExists        = errors.New("account code already exists")
	ErrAccountHasMovements  = errors.New("account has posted movements")
	ErrInvalidAccount       = errors.New("invalid account")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrDuplicateAccountCode = errors.New("duplicate account code in catalog")

	// Entry errors
	ErrEntryNotFound = errors.New("journal entry not found")
	ErrInvalidEntry  = errors.New("journal entry is invalid")
	ErrInvalidDate   = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidShape signals input that cannot be inspected at all, such as a
	// JSON array where an entry object was expected. Callers log and reject it.
	ErrInvalidShape = errors.New("malformed input shape")
)

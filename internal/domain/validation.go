package domain

import (
	"fmt"
	"strings"
	"time"
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxAccountCodeLength = 20
	MinEntryLines        = 2
	DateLayout           = "2006-01-02"
)

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccount)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccount, MaxAccountNameLength)
	}

	return nil
}

// ValidateDate checks that s is an ISO calendar date (YYYY-MM-DD).
func ValidateDate(s string) error {
	if len(s) != len(DateLayout) {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return nil
}

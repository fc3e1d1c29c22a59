package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateAccountName(t *testing.T) {
	t.Parallel()

	t.Run("valid name", func(t *testing.T) {
		if err := ValidateAccountName("Caja General"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty name rejected", func(t *testing.T) {
		err := ValidateAccountName("   ")
		if !errors.Is(err, ErrInvalidAccount) {
			t.Fatalf("expected ErrInvalidAccount, got %v", err)
		}
	})

	t.Run("name too long", func(t *testing.T) {
		tooLong := strings.Repeat("a", MaxAccountNameLength+1)
		err := ValidateAccountName(tooLong)
		if !errors.Is(err, ErrInvalidAccount) {
			t.Fatalf("expected ErrInvalidAccount, got %v", err)
		}
	})
}

func TestValidateDate(t *testing.T) {
	t.Parallel()

	if err := ValidateDate("2025-01-10"); err != nil {
		t.Fatalf("expected valid date, got %v", err)
	}

	for _, bad := range []string{"2025-1-10", "2025-02-30", "10/01/2025", "2025-01-10T00:00:00Z", ""} {
		if err := ValidateDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", bad, err)
		}
	}
}

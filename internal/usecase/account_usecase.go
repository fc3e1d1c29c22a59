package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iho/conta/internal/domain"
)

// AccountUseCase handles chart of accounts management.
type AccountUseCase struct {
	accountRepo AccountRepository
	catalog     *CatalogLoader
	metrics     Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, catalog *CatalogLoader, metrics Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		catalog:     catalog,
		metrics:     metricsOrNop(metrics),
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Code   string
	Name   string
	Type   string
	Active *bool
}

// CreateAccount adds an account to the catalog. Accounts are active unless
// the input says otherwise.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	accountType, err := domain.ParseAccountType(input.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Code:      strings.TrimSpace(input.Code),
		Name:      strings.TrimSpace(input.Name),
		Type:      accountType,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Active != nil {
		account.Active = *input.Active
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByCode(ctx, account.Code); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountExists, account.Code)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	uc.metrics.AccountOperation("create")

	return account, nil
}

// GetAccount retrieves an account by code.
func (uc *AccountUseCase) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	return uc.accountRepo.GetByCode(ctx, strings.TrimSpace(code))
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Type   string
	Active *bool
	Query  string
}

// ListAccounts lists accounts ordered by code.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	filter := domain.AccountFilter{
		Active: input.Active,
		Query:  strings.TrimSpace(input.Query),
	}

	if input.Type != "" {
		t, err := domain.ParseAccountType(input.Type)
		if err != nil {
			return nil, err
		}
		filter.Type = t
	}

	return uc.accountRepo.List(ctx, filter)
}

// UpdateAccountInput carries a partial update. Nil fields are left unchanged.
type UpdateAccountInput struct {
	Name   *string
	Type   *string
	Active *bool
}

// UpdateAccount applies a partial update. The code is immutable.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, code string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = strings.TrimSpace(*input.Name)
	}
	if input.Type != nil {
		t, err := domain.ParseAccountType(*input.Type)
		if err != nil {
			return nil, err
		}
		account.Type = t
	}
	if input.Active != nil {
		account.Active = *input.Active
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return uc.save(ctx, account, "update")
}

// DeactivateAccount blocks new postings to the account. History stays.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, code string) (*domain.Account, error) {
	return uc.setActive(ctx, code, false)
}

// ReactivateAccount re-enables postings to the account.
func (uc *AccountUseCase) ReactivateAccount(ctx context.Context, code string) (*domain.Account, error) {
	return uc.setActive(ctx, code, true)
}

func (uc *AccountUseCase) setActive(ctx context.Context, code string, active bool) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByCode(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}

	if account.Active == active {
		return account, nil
	}
	account.Active = active

	op := "deactivate"
	if active {
		op = "reactivate"
	}

	return uc.save(ctx, account, op)
}

func (uc *AccountUseCase) save(ctx context.Context, account *domain.Account, op string) (*domain.Account, error) {
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx)
	uc.metrics.AccountOperation(op)

	return account, nil
}

// DeleteAccount removes an account that no journal line references.
// Accounts with history must be deactivated instead.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)

	if _, err := uc.accountRepo.GetByCode(ctx, code); err != nil {
		return err
	}

	n, err := uc.accountRepo.CountLines(ctx, code)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %s is referenced by %d lines", domain.ErrAccountHasMovements, code, n)
	}

	if err := uc.accountRepo.Delete(ctx, code); err != nil {
		return err
	}

	uc.catalog.Invalidate(ctx)
	uc.metrics.AccountOperation("delete")

	return nil
}

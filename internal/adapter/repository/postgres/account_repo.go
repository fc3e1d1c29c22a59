package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/conta/internal/domain"
	"github.com/iho/conta/internal/infrastructure/postgres/generated"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create inserts a catalog account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.queries.CreateAccount(ctx, generated.CreateAccountParams{
		Code:      account.Code,
		Name:      account.Name,
		Type:      string(account.Type),
		Active:    account.Active,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})
	if pgErrorCode(err) == pgErrUniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrAccountExists, account.Code)
	}

	return err
}

// GetByCode retrieves an account by code.
func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// List lists accounts ordered by code.
func (r *AccountRepository) List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		Type:   textOrNull(string(filter.Type)),
		Active: boolOrNull(filter.Active),
		Query:  textOrNull(filter.Query),
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// Update writes the mutable fields of an account.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	n, err := r.queries.UpdateAccount(ctx, generated.UpdateAccountParams{
		Code:      account.Code,
		Name:      account.Name,
		Type:      string(account.Type),
		Active:    account.Active,
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Delete removes an account. Lines referencing it block the delete.
func (r *AccountRepository) Delete(ctx context.Context, code string) error {
	n, err := r.queries.DeleteAccount(ctx, code)
	if err != nil {
		if pgErrorCode(err) == pgErrForeignKeyViolation {
			return fmt.Errorf("%w: %s", domain.ErrAccountHasMovements, code)
		}
		return err
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// CountLines returns how many journal lines post to the account.
func (r *AccountRepository) CountLines(ctx context.Context, code string) (int64, error) {
	return r.queries.CountLinesByAccount(ctx, code)
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		Code:      row.Code,
		Name:      row.Name,
		Type:      domain.AccountType(row.Type),
		Active:    row.Active,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}

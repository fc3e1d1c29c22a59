package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/conta/internal/domain"
)

var accountColumns = []string{"code", "name", "type", "active", "created_at", "updated_at"}

func TestAccountRepository_Create(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	account := &domain.Account{
		Code: "1101", Name: "Caja", Type: domain.AccountTypeAsset, Active: true,
		CreatedAt: now, UpdatedAt: now,
	}

	t.Run("inserts row", func(t *testing.T) {
		pool := newMockPool(t)
		pool.ExpectQuery("INSERT INTO accounts").
			WithArgs("1101", "Caja", "asset", true, timeToPgTimestamptz(now), timeToPgTimestamptz(now)).
			WillReturnRows(pgxmock.NewRows(accountColumns).
				AddRow("1101", "Caja", "asset", true, timeToPgTimestamptz(now), timeToPgTimestamptz(now)))

		err := newAccountRepository(pool).Create(context.Background(), account)
		require.NoError(t, err)
		assertExpectations(t, pool)
	})

	t.Run("duplicate code", func(t *testing.T) {
		pool := newMockPool(t)
		pool.ExpectQuery("INSERT INTO accounts").
			WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

		err := newAccountRepository(pool).Create(context.Background(), account)
		assert.ErrorIs(t, err, domain.ErrAccountExists)
	})
}

func TestAccountRepository_GetByCode(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		pool := newMockPool(t)
		pool.ExpectQuery("FROM accounts WHERE code").
			WithArgs("4101").
			WillReturnRows(pgxmock.NewRows(accountColumns).
				AddRow("4101", "Ventas", "income", false, pgtype.Timestamptz{}, pgtype.Timestamptz{}))

		acc, err := newAccountRepository(pool).GetByCode(context.Background(), "4101")
		require.NoError(t, err)
		assert.Equal(t, "Ventas", acc.Name)
		assert.Equal(t, domain.AccountTypeIncome, acc.Type)
		assert.False(t, acc.Active)
	})

	t.Run("not found", func(t *testing.T) {
		pool := newMockPool(t)
		pool.ExpectQuery("FROM accounts WHERE code").
			WithArgs("9999").
			WillReturnRows(pgxmock.NewRows(accountColumns))

		_, err := newAccountRepository(pool).GetByCode(context.Background(), "9999")
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestAccountRepository_List(t *testing.T) {
	active := true

	tests := []struct {
		name   string
		filter domain.AccountFilter
		args   []any
	}{
		{
			name:   "no filter",
			filter: domain.AccountFilter{},
			args:   []any{pgtype.Text{}, pgtype.Bool{}, pgtype.Text{}},
		},
		{
			name:   "all fields",
			filter: domain.AccountFilter{Type: domain.AccountTypeAsset, Active: &active, Query: "11"},
			args: []any{
				pgtype.Text{String: "asset", Valid: true},
				pgtype.Bool{Bool: true, Valid: true},
				pgtype.Text{String: "11", Valid: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newMockPool(t)
			pool.ExpectQuery("ORDER BY code").
				WithArgs(tt.args...).
				WillReturnRows(pgxmock.NewRows(accountColumns).
					AddRow("1101", "Caja", "asset", true, pgtype.Timestamptz{}, pgtype.Timestamptz{}).
					AddRow("1201", "Equipo", "asset", true, pgtype.Timestamptz{}, pgtype.Timestamptz{}))

			accounts, err := newAccountRepository(pool).List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, accounts, 2)
			assert.Equal(t, "1201", accounts[1].Code)
			assertExpectations(t, pool)
		})
	}
}

func TestAccountRepository_Update(t *testing.T) {
	account := &domain.Account{Code: "1101", Name: "Caja general", Type: domain.AccountTypeAsset}

	t.Run("updated", func(t *testing.T) {
		pool := newMockPool(t)
		pool.ExpectExec("UPDATE accounts").
			WithArgs("1101", "Caja general", "asset", false, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, newAccountRepository(pool).Update(context.Background(), account))
	})

	t.Run("missing row", func(t *testing.T) {
		pool := newMockPool(t)
		pool.ExpectExec("UPDATE accounts").
			WithArgs("1101", "Caja general", "asset", false, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := newAccountRepository(pool).Update(context.Background(), account)
		assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	})
}

func TestAccountRepository_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  pgconn.CommandTag
		dbErr   error
		wantErr error
	}{
		{name: "deleted", result: pgxmock.NewResult("DELETE", 1)},
		{name: "missing", result: pgxmock.NewResult("DELETE", 0), wantErr: domain.ErrAccountNotFound},
		{
			name:    "referenced by lines",
			dbErr:   &pgconn.PgError{Code: pgErrForeignKeyViolation},
			wantErr: domain.ErrAccountHasMovements,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newMockPool(t)
			exp := pool.ExpectExec("DELETE FROM accounts").WithArgs("2101")
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(tt.result)
			}

			err := newAccountRepository(pool).Delete(context.Background(), "2101")
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestAccountRepository_CountLines(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectQuery(`SELECT COUNT\(\*\) FROM journal_lines`).
		WithArgs("1101").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := newAccountRepository(pool).CountLines(context.Background(), "1101")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

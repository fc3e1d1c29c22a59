package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const countLinesByAccount = `-- name: CountLinesByAccount :one
SELECT COUNT(*) FROM journal_lines WHERE account_code = $1
`

func (q *Queries) CountLinesByAccount(ctx context.Context, accountCode string) (int64, error) {
	row := q.db.QueryRow(ctx, countLinesByAccount, accountCode)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (code, name, type, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING code, name, type, active, created_at, updated_at
`

type CreateAccountParams struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	Active    bool               `json:"active"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRow(ctx, createAccount,
		arg.Code,
		arg.Name,
		arg.Type,
		arg.Active,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	var i Account
	err := row.Scan(
		&i.Code,
		&i.Name,
		&i.Type,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const deleteAccount = `-- name: DeleteAccount :execrows
DELETE FROM accounts WHERE code = $1
`

func (q *Queries) DeleteAccount(ctx context.Context, code string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteAccount, code)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getAccountByCode = `-- name: GetAccountByCode :one
SELECT code, name, type, active, created_at, updated_at FROM accounts WHERE code = $1
`

func (q *Queries) GetAccountByCode(ctx context.Context, code string) (Account, error) {
	row := q.db.QueryRow(ctx, getAccountByCode, code)
	var i Account
	err := row.Scan(
		&i.Code,
		&i.Name,
		&i.Type,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listAccounts = `-- name: ListAccounts :many
SELECT code, name, type, active, created_at, updated_at FROM accounts
WHERE ($1::varchar IS NULL OR type = $1)
  AND ($2::boolean IS NULL OR active = $2)
  AND ($3::varchar IS NULL
       OR code LIKE $3 || '%'
       OR name ILIKE '%' || $3 || '%')
ORDER BY code
`

type ListAccountsParams struct {
	Type   pgtype.Text `json:"type"`
	Active pgtype.Bool `json:"active"`
	Query  pgtype.Text `json:"query"`
}

func (q *Queries) ListAccounts(ctx context.Context, arg ListAccountsParams) ([]Account, error) {
	rows, err := q.db.Query(ctx, listAccounts, arg.Type, arg.Active, arg.Query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Account{}
	for rows.Next() {
		var i Account
		if err := rows.Scan(
			&i.Code,
			&i.Name,
			&i.Type,
			&i.Active,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateAccount = `-- name: UpdateAccount :execrows
UPDATE accounts SET name = $2, type = $3, active = $4, updated_at = $5 WHERE code = $1
`

type UpdateAccountParams struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Type      string             `json:"type"`
	Active    bool               `json:"active"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateAccount(ctx context.Context, arg UpdateAccountParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateAccount,
		arg.Code,
		arg.Name,
		arg.Type,
		arg.Active,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// source: user.sql

package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const userColumns = `id, email, phone, password_hash, role, is_active, last_login, created_at, updated_at`

const findUserByEmail = `-- name: FindUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower(trim($1::text))
`

func (q *Queries) FindUserByEmail(ctx context.Context, db DBTX, email string) (Users, error) {
	row := db.QueryRow(ctx, findUserByEmail, email)
	return scanUser(row)
}

const findUserByID = `-- name: FindUserByID :one
SELECT ` + userColumns + ` FROM users WHERE id = $1
`

func (q *Queries) FindUserByID(ctx context.Context, db DBTX, id uuid.UUID) (Users, error) {
	row := db.QueryRow(ctx, findUserByID, id)
	return scanUser(row)
}

const updateUserLastLogin = `-- name: UpdateUserLastLogin :execrows
UPDATE users SET last_login = $2, updated_at = now() WHERE id = $1
`

type UpdateUserLastLoginParams struct {
	ID        uuid.UUID          `json:"id"`
	LastLogin pgtype.Timestamptz `json:"last_login"`
}

func (q *Queries) UpdateUserLastLogin(ctx context.Context, db DBTX, arg UpdateUserLastLoginParams) (int64, error) {
	result, err := db.Exec(ctx, updateUserLastLogin, arg.ID, arg.LastLogin)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (Users, error) {
	var i Users
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Phone,
		&i.PasswordHash,
		&i.Role,
		&i.IsActive,
		&i.LastLogin,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

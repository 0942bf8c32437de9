package postgres

import (
	"context"
	"database/sql"
	"time"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, username, email, password_hash, role, COALESCE(reset_token_hash, ''), reset_token_expire_at, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.ResetTokenHash,
		&u.ResetTokenExpireAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	out, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, q, u.Username, u.Email, u.PasswordHash, u.Role))
	if err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(conn(ctx, r.db).QueryRowContext(ctx, q, id))
}

func (r *UserPostgres) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(conn(ctx, r.db).QueryRowContext(ctx, q, email))
}

func (r *UserPostgres) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*model.User, error) {
	const q = `
		SELECT ` + userColumns + `
		FROM users
		WHERE reset_token_hash = $1 AND reset_token_expire_at > $2
	`
	return scanUser(conn(ctx, r.db).QueryRowContext(ctx, q, tokenHash, now))
}

func (r *UserPostgres) SetResetToken(ctx context.Context, id, tokenHash string, expireAt time.Time) error {
	const q = `
		UPDATE users
		SET reset_token_hash = $2, reset_token_expire_at = $3, updated_at = now()
		WHERE id = $1
	`
	return execOne(ctx, conn(ctx, r.db), q, id, tokenHash, expireAt)
}

func (r *UserPostgres) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const q = `
		UPDATE users
		SET password_hash = $2, reset_token_hash = NULL, reset_token_expire_at = NULL, updated_at = now()
		WHERE id = $1
	`
	return execOne(ctx, conn(ctx, r.db), q, id, passwordHash)
}

func (r *UserPostgres) UpdateRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	const q = `
		UPDATE users SET role = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + userColumns
	return scanUser(conn(ctx, r.db).QueryRowContext(ctx, q, id, role))
}

package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	c "billstation/internal/core/domain/common"
	"billstation/internal/core/domain/user"
	"billstation/internal/db"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

const userColumns = `id, email, password_hash, full_name, is_active, created_at, last_login_at`

const createUser = `
INSERT INTO "user" (email, password_hash, full_name, created_at)
VALUES ($1, $2, $3, $4)
RETURNING ` + userColumns

const getUserByID = `
SELECT ` + userColumns + ` FROM "user" WHERE id = $1`

const getUserByEmail = `
SELECT ` + userColumns + ` FROM "user" WHERE email = $1`

const setUserPassword = `
UPDATE "user" SET password_hash = $2 WHERE id = $1`

const setUserLastLoginAt = `
UPDATE "user" SET last_login_at = $2 WHERE id = $1`

type PgxUserRepository struct {
	db db.DBTX
}

func NewPgxRepository(db db.DBTX) *PgxUserRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		createUser,
		string(input.Email),
		string(input.PasswordHash),
		string(input.FullName),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, getUserByID, int64(id)))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	u, err = scanUser(r.db.QueryRow(ctx, getUserByEmail, string(email)))
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	commandTag, err := r.db.Exec(ctx, setUserPassword, int64(id), string(password))
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetLastLoginAt(ctx context.Context, id user.ID, at time.Time) error {
	commandTag, err := r.db.Exec(ctx, setUserLastLoginAt, int64(id), at)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		email        string
		passwordHash string
		fullName     string
		isActive     bool
		createdAt    time.Time
		lastLoginAt  sql.NullTime
	)
	err = row.Scan(&id, &email, &passwordHash, &fullName, &isActive, &createdAt, &lastLoginAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		FullName:     user.FullName(fullName),
		IsActive:     isActive,
		CreatedAt:    createdAt,
		LastLoginAt:  c.NewOptional(lastLoginAt.Time, lastLoginAt.Valid),
	}, nil
}

package user

import (
	c "billstation/internal/core/domain/common"
	"context"
	"time"
)

type CreateUserInput struct {
	Email        c.Email
	PasswordHash PasswordHash
	FullName     FullName
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByID(ctx context.Context, id ID) (User, error)
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
	SetLastLoginAt(ctx context.Context, id ID, at time.Time) error
}

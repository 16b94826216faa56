package user

import (
	c "billstation/internal/core/domain/common"
	"time"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type FullName string

type User struct {
	ID           ID
	Email        c.Email
	PasswordHash PasswordHash
	FullName     FullName
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  c.Optional[time.Time]
}

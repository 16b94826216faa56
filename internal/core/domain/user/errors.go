package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrUserIsNotActive           = errors.New("user is not active")
	ErrInvalidAccessToken        = errors.New("invalid access token")
	ErrInvalidRefreshToken       = errors.New("invalid refresh token")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
)

package auth

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	"context"
)

type contextAuthToken string

const CONTEXT_AUTH_TOKEN_KEY = contextAuthToken("authToken")

type Input interface {
	WithAuthenticatedUser(u user.User) Input
}

type service[T Input, S any] struct {
	tokenManager   user.TokenManager
	userRepository user.UserRepository
	inner          services.Service[T, S]
}

func WithAuthentication[T Input, S any](
	tokenManager user.TokenManager,
	userRepository user.UserRepository,
	inner services.Service[T, S],
) services.Service[T, S] {
	if tokenManager == nil {
		panic(e.NewNilArgumentError("tokenManager"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &service[T, S]{
		tokenManager:   tokenManager,
		userRepository: userRepository,
		inner:          inner,
	}
}

func (s *service[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	authToken, ok := ctx.Value(CONTEXT_AUTH_TOKEN_KEY).(user.AccessToken)
	if !ok {
		return result, user.ErrInvalidAccessToken
	}
	userID, err := s.tokenManager.ParseAccessToken(authToken)
	if err != nil {
		return result, user.ErrInvalidAccessToken
	}
	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return result, err
	}
	if !u.IsActive {
		return result, user.ErrUserIsNotActive
	}
	return s.inner.Run(ctx, input.WithAuthenticatedUser(u).(T))
}

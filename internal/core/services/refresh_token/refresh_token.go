package refreshtoken

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	RefreshToken user.RefreshToken
}

type Result struct {
	AccessToken user.AccessToken
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	tokenManager   user.TokenManager
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	tokenManager user.TokenManager,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if tokenManager == nil {
		panic(e.NewNilArgumentError("tokenManager"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		tokenManager:   tokenManager,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.tokenManager.ParseRefreshToken(input.RefreshToken)
	if err != nil {
		return result, user.ErrInvalidRefreshToken
	}

	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return result, user.ErrInvalidRefreshToken
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for token refresh.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !u.IsActive {
		return result, user.ErrUserIsNotActive
	}

	accessToken, err := s.tokenManager.IssueAccessToken(u, s.now())
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue new access token.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	return Result{AccessToken: accessToken}, nil
}

package login

import (
	c "billstation/internal/core/domain/common"
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	"context"
	"errors"
	"time"
)

type Input struct {
	Email    c.Email
	Password user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "log-in::" + string(i.Email)
}

type Result struct {
	User   user.User
	Tokens user.TokenPair
}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	passwordHasher user.PasswordHasher
	tokenManager   user.TokenManager
	now            func() time.Time
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordHasher user.PasswordHasher,
	tokenManager user.TokenManager,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
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
		passwordHasher: passwordHasher,
		tokenManager:   tokenManager,
		now:            now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByEmail(ctx, input.Email)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		// Minimize risk for timing attacks
		s.passwordHasher.HashPassword(input.Password)
		return result, user.ErrInvalidCredentials
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user by email.",
			logging.Entry("email", input.Email),
			logging.Entry("err", err),
		)
		return result, err
	}
	if !s.passwordHasher.ValidatePassword(input.Password, u.PasswordHash) {
		return result, user.ErrInvalidCredentials
	}
	if !u.IsActive {
		return result, user.ErrUserIsNotActive
	}

	now := s.now()
	tokens, err := s.tokenManager.IssueTokenPair(u, now)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not issue token pair for user.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	if err := s.userRepository.SetLastLoginAt(ctx, u.ID, now); err != nil {
		if errors.Is(err, context.Canceled) {
			return result, err
		}
		s.log.Error(
			ctx,
			"Could not update last login time.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
	}

	s.log.Info(
		ctx,
		"User successfully authenticated, token pair issued.",
		logging.Entry("userID", u.ID),
	)
	return Result{User: u, Tokens: tokens}, nil
}

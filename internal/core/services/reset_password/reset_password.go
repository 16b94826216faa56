package resetpassword

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Token       user.PasswordResetToken
	NewPassword user.RawPassword
}

func (i Input) GetRateLimitKey() string {
	return "reset-password::" + string(i.Token)
}

type Result struct{}

type service struct {
	log              logging.Logger
	userRepository   user.UserRepository
	passwordResetter user.PasswordResetter
	passwordHasher   user.PasswordHasher
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	passwordResetter user.PasswordResetter,
	passwordHasher user.PasswordHasher,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if passwordResetter == nil {
		panic(e.NewNilArgumentError("passwordResetter"))
	}
	if passwordHasher == nil {
		panic(e.NewNilArgumentError("passwordHasher"))
	}
	return &service{
		log:              log,
		userRepository:   userRepository,
		passwordResetter: passwordResetter,
		passwordHasher:   passwordHasher,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	userID, err := s.passwordResetter.ConsumeToken(ctx, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrInvalidPasswordResetToken) {
		s.log.Info(ctx, "Invalid or expired password reset token.")
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not consume password reset token.",
			logging.Entry("err", err),
		)
		return result, err
	}

	u, err := s.userRepository.GetByID(ctx, userID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "User not found for password reset.", logging.Entry("userID", userID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for password reset.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}

	newPasswordHash, err := s.passwordHasher.HashPassword(input.NewPassword)
	if err != nil {
		s.log.Error(
			ctx,
			"Could not hash new user password.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}
	err = s.userRepository.SetPassword(ctx, u.ID, newPasswordHash)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(ctx, "Could not update user password, user does not exist.", logging.Entry("userID", userID))
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not update user password.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"New password has been successfully set.",
		logging.Entry("userID", userID),
	)
	return result, nil
}

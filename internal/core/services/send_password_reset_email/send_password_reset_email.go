package sendpasswordresetemail

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	UserID user.ID
	Token  user.PasswordResetToken
}

type Result struct{}

type service struct {
	log            logging.Logger
	userRepository user.UserRepository
	sender         user.PasswordResetTokenSender
}

func New(
	log logging.Logger,
	userRepository user.UserRepository,
	sender user.PasswordResetTokenSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if userRepository == nil {
		panic(e.NewNilArgumentError("userRepository"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{
		log:            log,
		userRepository: userRepository,
		sender:         sender,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	u, err := s.userRepository.GetByID(ctx, input.UserID)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if errors.Is(err, user.ErrUserDoesNotExist) {
		s.log.Info(
			ctx,
			"User does not exist, skip sending password reset email.",
			logging.Entry("userID", input.UserID),
		)
		return result, nil
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not get user for sending password reset email.",
			logging.Entry("userID", input.UserID),
			logging.Entry("err", err),
		)
		return result, err
	}

	err = s.sender.SendPasswordResetToken(ctx, u, input.Token)
	if errors.Is(err, context.Canceled) {
		return result, err
	}
	if err != nil {
		s.log.Error(
			ctx,
			"Could not send password reset email.",
			logging.Entry("userID", u.ID),
			logging.Entry("err", err),
		)
		return result, err
	}

	s.log.Info(
		ctx,
		"Password reset email has been sent.",
		logging.Entry("userID", u.ID),
	)
	return result, nil
}

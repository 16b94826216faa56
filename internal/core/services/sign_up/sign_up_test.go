package signup

import (
	c "billstation/internal/core/domain/common"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL     = "test@test.test"
	PASSWORD  = "test-password"
	FULL_NAME = "Test Testov"
)

var Now time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordHasher,
		func() time.Time { return Now },
	)
}

func TestSignUpService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	result, err := s.Service.Run(
		context.Background(),
		Input{
			Email:    c.NewEmail(EMAIL),
			Password: user.RawPassword(PASSWORD),
			FullName: user.FullName(FULL_NAME),
		},
	)

	s.Nil(err)
	s.Equal(c.NewEmail(EMAIL), result.User.Email)
	s.Equal(user.FullName(FULL_NAME), result.User.FullName)
	s.Equal(Now, result.User.CreatedAt)
	s.True(result.User.IsActive)
}

func (s *testSuite) TestSuccessPasswordIsHashed() {
	result, err := s.Service.Run(
		context.Background(),
		Input{
			Email:    c.NewEmail(EMAIL),
			Password: user.RawPassword(PASSWORD),
			FullName: user.FullName(FULL_NAME),
		},
	)

	s.Nil(err)
	s.NotEqual(user.PasswordHash(PASSWORD), result.User.PasswordHash)
	s.True(s.PasswordHasher.ValidatePassword(user.RawPassword(PASSWORD), result.User.PasswordHash))
}

func (s *testSuite) TestSuccessUserPersisted() {
	result, err := s.Service.Run(
		context.Background(),
		Input{
			Email:    c.NewEmail(EMAIL),
			Password: user.RawPassword(PASSWORD),
			FullName: user.FullName(FULL_NAME),
		},
	)

	s.Nil(err)
	createdUser, err := s.UserRepository.GetByID(context.Background(), result.User.ID)
	s.Nil(err)
	s.Equal(result.User, createdUser)
}

func (s *testSuite) TestEmailAlreadyExists() {
	input := Input{
		Email:    c.NewEmail(EMAIL),
		Password: user.RawPassword(PASSWORD),
		FullName: user.FullName(FULL_NAME),
	}
	_, err := s.Service.Run(context.Background(), input)
	s.Nil(err)

	_, err = s.Service.Run(context.Background(), input)

	s.True(errors.Is(err, user.ErrEmailAlreadyExists))
	s.Equal(1, len(s.UserRepository.Users))
}

func (s *testSuite) TestUserRepositoryError() {
	s.UserRepository.ReturnError = true

	_, err := s.Service.Run(
		context.Background(),
		Input{
			Email:    c.NewEmail(EMAIL),
			Password: user.RawPassword(PASSWORD),
			FullName: user.FullName(FULL_NAME),
		},
	)

	s.NotNil(err)
	s.Equal(1, s.Logger.LoggedCount())
	s.Equal(logging.ERROR, s.Logger.Logged[0].Level)
}

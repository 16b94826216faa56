package sendpasswordresettoken

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
	TOKEN_TTL = 10 * time.Minute
)

var Now time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger           *logging.FakeLogger
	UserRepository   *user.FakeUserRepository
	PasswordResetter *user.FakePasswordResetter
	TokenSender      *user.FakePasswordResetTokenSender
	Service          services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordResetter = user.NewFakePasswordResetter(TOKEN_TTL, func() time.Time { return Now })
	suite.TokenSender = user.NewFakePasswordResetTokenSender()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.PasswordResetter,
		suite.TokenSender,
	)
}

func TestSendPasswordResetTokenService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	u := s.createUser()

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	s.NotEqual(user.PasswordResetToken(""), result.Token)
	s.Equal(1, s.TokenSender.SentCount())
	s.Equal(u.ID, s.TokenSender.LastSentTo().ID)
	s.Equal(result.Token, s.TokenSender.Sent[0])
}

func (s *testSuite) TestSuccessSentTokenIsConsumable() {
	u := s.createUser()

	result, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.Nil(err)
	userID, err := s.PasswordResetter.ConsumeToken(context.Background(), result.Token)
	s.Nil(err)
	s.Equal(u.ID, userID)
}

func (s *testSuite) TestUserDoesNotExist() {
	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail("unknown@test.test")})

	s.True(errors.Is(err, user.ErrUserDoesNotExist))
	s.Equal(0, s.TokenSender.SentCount())
}

func (s *testSuite) TestPasswordResetterError() {
	s.createUser()
	s.PasswordResetter.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.NotNil(err)
	s.False(errors.Is(err, user.ErrUserDoesNotExist))
	s.Equal(0, s.TokenSender.SentCount())
}

func (s *testSuite) TestTokenSenderError() {
	s.createUser()
	s.TokenSender.ReturnError = true

	_, err := s.Service.Run(context.Background(), Input{Email: c.NewEmail(EMAIL)})

	s.NotNil(err)
	s.Equal(1, s.Logger.LoggedCount())
	s.Equal(logging.ERROR, s.Logger.Logged[0].Level)
}

func (s *testSuite) TestRateLimitKeyContainsEmail() {
	input := Input{Email: c.NewEmail(EMAIL)}
	s.Equal("send-password-reset-token::"+EMAIL, input.GetRateLimitKey())
}

func (s *testSuite) createUser() user.User {
	s.T().Helper()
	u, err := s.UserRepository.Create(
		context.Background(),
		user.CreateUserInput{
			Email:        c.NewEmail(EMAIL),
			PasswordHash: user.PasswordHash("test-password-hash"),
			FullName:     user.FullName("Test Testov"),
			CreatedAt:    Now,
		},
	)
	if err != nil {
		s.FailNow(err.Error())
	}
	return u
}

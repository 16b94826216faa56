package resetpassword

import (
	c "billstation/internal/core/domain/common"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"billstation/internal/core/services"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	USER_ID      = 123
	OLD_PASSWORD = "old-password"
	NEW_PASSWORD = "new-password"
	TOKEN_TTL    = 10 * time.Minute
)

type suite struct {
	log      *logging.FakeLogger
	userRepo *user.FakeUserRepository
	resetter *user.FakePasswordResetter
	hasher   *user.FakePasswordHasher
	now      time.Time
}

func setupSuite() *suite {
	s := &suite{
		log:      logging.NewFakeLogger(),
		userRepo: user.NewFakeUserRepository(),
		hasher:   user.NewFakePasswordHasher(),
		now:      time.Now().UTC(),
	}
	s.resetter = user.NewFakePasswordResetter(TOKEN_TTL, func() time.Time { return s.now })
	oldPasswordHash, err := s.hasher.HashPassword(user.RawPassword(OLD_PASSWORD))
	if err != nil {
		panic(err)
	}
	s.userRepo.Users = []user.User{
		{
			ID:           USER_ID,
			Email:        c.NewEmail("test@test.test"),
			PasswordHash: oldPasswordHash,
			IsActive:     true,
		},
	}
	return s
}

func (s *suite) createService() services.Service[Input, Result] {
	return New(s.log, s.userRepo, s.resetter, s.hasher)
}

func (s *suite) issueToken(t *testing.T) user.PasswordResetToken {
	t.Helper()
	token, err := s.resetter.IssueToken(context.Background(), USER_ID)
	require.NoError(t, err)
	return token
}

func (s *suite) assertPassword(t *testing.T, raw string) {
	t.Helper()
	u, err := s.userRepo.GetByID(context.Background(), USER_ID)
	require.NoError(t, err)
	assert.True(t, s.hasher.ValidatePassword(user.RawPassword(raw), u.PasswordHash))
}

func TestSuccess(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	token := suite.issueToken(t)
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(
		context.Background(),
		Input{Token: token, NewPassword: user.RawPassword(NEW_PASSWORD)},
	)

	// Verify ---
	require.NoError(t, err)
	suite.assertPassword(t, NEW_PASSWORD)
}

func TestTokenInvalid(t *testing.T) {
	cases := []struct {
		id    string
		token string
	}{
		{id: "empty", token: ""},
		{id: "unknown", token: "unknown-token"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			// Setup ---
			suite := setupSuite()
			suite.issueToken(t)
			service := suite.createService()

			// Exercise ---
			_, err := service.Run(
				context.Background(),
				Input{
					Token:       user.PasswordResetToken(testcase.token),
					NewPassword: user.RawPassword(NEW_PASSWORD),
				},
			)

			// Verify ---
			require.ErrorIs(t, err, user.ErrInvalidPasswordResetToken)
			suite.assertPassword(t, OLD_PASSWORD)
		})
	}
}

func TestTokenExpired(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	token := suite.issueToken(t)
	suite.now = suite.now.Add(TOKEN_TTL + time.Second)
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(
		context.Background(),
		Input{Token: token, NewPassword: user.RawPassword(NEW_PASSWORD)},
	)

	// Verify ---
	require.ErrorIs(t, err, user.ErrInvalidPasswordResetToken)
	suite.assertPassword(t, OLD_PASSWORD)
}

func TestTokenIsSingleUse(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	token := suite.issueToken(t)
	service := suite.createService()

	// Exercise ---
	_, firstErr := service.Run(
		context.Background(),
		Input{Token: token, NewPassword: user.RawPassword(NEW_PASSWORD)},
	)
	_, secondErr := service.Run(
		context.Background(),
		Input{Token: token, NewPassword: user.RawPassword("another-password")},
	)

	// Verify ---
	require.NoError(t, firstErr)
	require.ErrorIs(t, secondErr, user.ErrInvalidPasswordResetToken)
	suite.assertPassword(t, NEW_PASSWORD)
}

func TestNewTokenInvalidatesPreviousOne(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	oldToken := suite.issueToken(t)
	newToken := suite.issueToken(t)
	service := suite.createService()

	// Exercise ---
	_, oldErr := service.Run(
		context.Background(),
		Input{Token: oldToken, NewPassword: user.RawPassword("another-password")},
	)
	_, newErr := service.Run(
		context.Background(),
		Input{Token: newToken, NewPassword: user.RawPassword(NEW_PASSWORD)},
	)

	// Verify ---
	require.ErrorIs(t, oldErr, user.ErrInvalidPasswordResetToken)
	require.NoError(t, newErr)
	suite.assertPassword(t, NEW_PASSWORD)
}

func TestUserDoesNotExist(t *testing.T) {
	// Setup ---
	suite := setupSuite()
	token := suite.issueToken(t)
	suite.userRepo.Users = nil
	service := suite.createService()

	// Exercise ---
	_, err := service.Run(
		context.Background(),
		Input{Token: token, NewPassword: user.RawPassword(NEW_PASSWORD)},
	)

	// Verify ---
	require.ErrorIs(t, err, user.ErrUserDoesNotExist)
}

package passwordresetter

import (
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	randomstringgenerator "billstation/internal/implementations/random_string_generator"
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/stretchr/testify/suite"
)

const (
	USER_ID   = user.ID(123)
	TOKEN_TTL = 10 * time.Minute
)

type testSuite struct {
	suite.Suite
	client   *redis.Client
	log      *logging.FakeLogger
	resetter *Redis
}

func (suite *testSuite) SetupSuite() {
	suite.client = createTestClient()
}

func (suite *testSuite) SetupTest() {
	suite.log = logging.NewFakeLogger()
	suite.resetter = NewRedis(
		suite.client,
		suite.log,
		randomstringgenerator.NewGenerator(),
		TOKEN_TTL,
	)
}

func (suite *testSuite) TearDownTest() {
	if err := suite.client.FlushDB(context.Background()).Err(); err != nil {
		panic("Could not flush Redis DB.")
	}
}

func (suite *testSuite) TearDownSuite() {
	suite.client.Close()
}

func createTestClient() *redis.Client {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		panic("TEST_REDIS_URL must be set.")
	}
	redisOpt, err := redis.ParseURL(redisURL)
	if err != nil {
		panic("Could not parse TEST_REDIS_URL.")
	}
	return redis.NewClient(redisOpt)
}

func TestRedisPasswordResetter(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestIssueAndConsume() {
	token, err := s.resetter.IssueToken(context.Background(), USER_ID)
	s.Nil(err)
	s.Equal(32, len(token))

	userID, err := s.resetter.ConsumeToken(context.Background(), token)
	s.Nil(err)
	s.Equal(USER_ID, userID)
}

func (s *testSuite) TestTokenIsSingleUse() {
	token, err := s.resetter.IssueToken(context.Background(), USER_ID)
	s.Nil(err)

	_, err = s.resetter.ConsumeToken(context.Background(), token)
	s.Nil(err)

	_, err = s.resetter.ConsumeToken(context.Background(), token)
	s.True(errors.Is(err, user.ErrInvalidPasswordResetToken))
}

func (s *testSuite) TestUnknownToken() {
	_, err := s.resetter.ConsumeToken(context.Background(), "unknown-token")
	s.True(errors.Is(err, user.ErrInvalidPasswordResetToken))
}

func (s *testSuite) TestNewTokenInvalidatesPreviousOne() {
	oldToken, err := s.resetter.IssueToken(context.Background(), USER_ID)
	s.Nil(err)
	newToken, err := s.resetter.IssueToken(context.Background(), USER_ID)
	s.Nil(err)
	s.NotEqual(oldToken, newToken)

	_, err = s.resetter.ConsumeToken(context.Background(), oldToken)
	s.True(errors.Is(err, user.ErrInvalidPasswordResetToken))

	userID, err := s.resetter.ConsumeToken(context.Background(), newToken)
	s.Nil(err)
	s.Equal(USER_ID, userID)
}

func (s *testSuite) TestTokenExpires() {
	resetter := NewRedis(
		s.client,
		s.log,
		randomstringgenerator.NewGenerator(),
		50*time.Millisecond,
	)
	token, err := resetter.IssueToken(context.Background(), USER_ID)
	s.Nil(err)

	time.Sleep(150 * time.Millisecond)

	_, err = resetter.ConsumeToken(context.Background(), token)
	s.True(errors.Is(err, user.ErrInvalidPasswordResetToken))
}

func (s *testSuite) TestTokensAreIndependentAcrossUsers() {
	tokenA, err := s.resetter.IssueToken(context.Background(), user.ID(1))
	s.Nil(err)
	tokenB, err := s.resetter.IssueToken(context.Background(), user.ID(2))
	s.Nil(err)

	userID, err := s.resetter.ConsumeToken(context.Background(), tokenA)
	s.Nil(err)
	s.Equal(user.ID(1), userID)

	userID, err = s.resetter.ConsumeToken(context.Background(), tokenB)
	s.Nil(err)
	s.Equal(user.ID(2), userID)
}

func (s *testSuite) TestConcurrentConsumeExactlyOneSucceeds() {
	token, err := s.resetter.IssueToken(context.Background(), USER_ID)
	s.Nil(err)

	const goroutineCount = 16
	var (
		start        sync.WaitGroup
		done         sync.WaitGroup
		lock         sync.Mutex
		successCount int
		invalidCount int
	)
	start.Add(1)
	for i := 0; i < goroutineCount; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			userID, err := s.resetter.ConsumeToken(context.Background(), token)
			lock.Lock()
			defer lock.Unlock()
			if err == nil {
				successCount++
				s.Equal(USER_ID, userID)
				return
			}
			if errors.Is(err, user.ErrInvalidPasswordResetToken) {
				invalidCount++
			}
		}()
	}
	start.Done()
	done.Wait()

	s.Equal(1, successCount)
	s.Equal(goroutineCount-1, invalidCount)
}

package passwordresetter

import (
	e "billstation/internal/core/domain/errors"
	"billstation/internal/core/domain/logging"
	"billstation/internal/core/domain/user"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v9"
)

// Token state lives in Redis under two keys:
//
//	pwdreset:<token>     -> user ID, expires after tokenTTL
//	pwdreset:user:<id>   -> current token of the user
//
// The reverse key makes sure at most one token per user is valid:
// issuing a new token deletes the previous one.
const (
	TOKEN_KEY_PREFIX = "pwdreset:"
	USER_KEY_PREFIX  = "pwdreset:user:"
)

type Redis struct {
	redisClient    *redis.Client
	log            logging.Logger
	tokenGenerator user.PasswordResetTokenGenerator
	tokenTTL       time.Duration
}

func NewRedis(
	redisClient *redis.Client,
	log logging.Logger,
	tokenGenerator user.PasswordResetTokenGenerator,
	tokenTTL time.Duration,
) *Redis {
	if redisClient == nil {
		panic(e.NewNilArgumentError("redisClient"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tokenGenerator == nil {
		panic(e.NewNilArgumentError("tokenGenerator"))
	}
	return &Redis{
		redisClient:    redisClient,
		log:            log,
		tokenGenerator: tokenGenerator,
		tokenTTL:       tokenTTL,
	}
}

func (r *Redis) IssueToken(ctx context.Context, userID user.ID) (user.PasswordResetToken, error) {
	token := r.tokenGenerator.GeneratePasswordResetToken()
	userKey := fmt.Sprintf("%s%d", USER_KEY_PREFIX, userID)

	previousToken, err := r.redisClient.GetDel(ctx, userKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}

	_, err = r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previousToken != "" {
			pipe.Del(ctx, TOKEN_KEY_PREFIX+previousToken)
		}
		pipe.Set(ctx, TOKEN_KEY_PREFIX+string(token), int64(userID), r.tokenTTL)
		pipe.Set(ctx, userKey, string(token), r.tokenTTL)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

func (r *Redis) ConsumeToken(ctx context.Context, token user.PasswordResetToken) (user.ID, error) {
	rawUserID, err := r.redisClient.GetDel(ctx, TOKEN_KEY_PREFIX+string(token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, user.ErrInvalidPasswordResetToken
	}
	if err != nil {
		return 0, err
	}
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected password reset token value %q: %w", rawUserID, err)
	}

	// Drop the reverse key only if it still points to the consumed token.
	userKey := fmt.Sprintf("%s%d", USER_KEY_PREFIX, userID)
	currentToken, err := r.redisClient.Get(ctx, userKey).Result()
	if err == nil && currentToken == string(token) {
		err = r.redisClient.Del(ctx, userKey).Err()
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		r.log.Warning(
			ctx,
			"Could not clean up password reset token user key.",
			logging.Entry("userID", userID),
			logging.Entry("err", err),
		)
	}

	return user.ID(userID), nil
}

package ratelimiter

import (
	"context"
	"errors"
)

var ErrRateLimitExceeded = errors.New("rate limit exceeded")

type Interval struct {
	value int
}

var (
	Minute = Interval{}
	Hour   = Interval{value: 1}
)

// Limit caps the number of operations per key within a fixed window.
type Limit struct {
	Value    uint16
	Interval Interval
}

type Result struct {
	IsAllowed bool
}

func Allowed() Result {
	return Result{IsAllowed: true}
}

func NotAllowed() Result {
	return Result{IsAllowed: false}
}

// CheckLimit never fails: an implementation that cannot reach its
// backing store decides on its own whether to allow or deny the
// operation.
type RateLimiter interface {
	CheckLimit(ctx context.Context, key string, limit Limit) Result
}

package ratelimiter

import (
	"context"
	"sync"
)

type FakeRateLimiter struct {
	IsAllowed   bool
	CheckedKeys []string
	lock        sync.Mutex
}

func NewFakeRateLimiter(isAllowed bool) *FakeRateLimiter {
	return &FakeRateLimiter{IsAllowed: isAllowed}
}

func (rl *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	rl.lock.Lock()
	rl.CheckedKeys = append(rl.CheckedKeys, key)
	rl.lock.Unlock()
	if rl.IsAllowed {
		return Allowed()
	}
	return NotAllowed()
}

package services

import "context"

// Service is a single use case with typed input and result. Decorators
// such as auth.WithAuthentication and ratelimiting.WithRateLimiting
// wrap a Service and return one, so cross-cutting behavior composes at
// wiring time.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}

// Package retry bounds compare-and-swap retry loops.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"quorum/pkg/platform/sentinel"
)

// Policy bounds a retry loop.
type Policy struct {
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultPolicy allows four attempts with a short jittered backoff.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     4,
		InitialInterval: 10 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
	}
}

// OnConflict runs op until it succeeds, fails with an error other than
// sentinel.ErrConflict, or the policy runs out of attempts. When attempts are
// exhausted the last conflict error is returned so the caller can surface it.
func OnConflict[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	if p.MaxAttempts == 0 {
		p = DefaultPolicy()
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !errors.Is(err, sentinel.ErrConflict) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(p.MaxAttempts))
}

package feed

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryFetcher re-runs failed fetches with exponential backoff. The
// aggregator itself never retries; retry is a policy the caller opts into
// by wrapping its Fetcher.
type retryFetcher struct {
	inner    Fetcher
	retries  uint64
	interval time.Duration
}

// WithRetry wraps f so each fetch is attempted up to retries extra times.
// A zero retry count returns f unchanged.
func WithRetry(f Fetcher, retries uint64) Fetcher {
	if retries == 0 {
		return f
	}
	return &retryFetcher{
		inner:    f,
		retries:  retries,
		interval: backoff.DefaultInitialInterval,
	}
}

func (r *retryFetcher) Fetch(ctx context.Context, channelId string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.interval

	return backoff.RetryWithData(func() ([]byte, error) {
		data, err := r.inner.Fetch(ctx, channelId)
		if err != nil {
			var status *StatusError
			if errors.As(err, &status) && status.Code >= 400 && status.Code < 500 {
				// A client error will not get better on its own.
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return data, nil
	}, backoff.WithContext(backoff.WithMaxRetries(bo, r.retries), ctx))
}

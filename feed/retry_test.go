package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetryZero(t *testing.T) {
	inner := fetcherFunc(func(context.Context, string) ([]byte, error) {
		return []byte("ok"), nil
	})
	assert.IsType(t, fetcherFunc(nil), WithRetry(inner, 0))
}

func TestWithRetryEventualSuccess(t *testing.T) {
	attempts := 0
	inner := fetcherFunc(func(context.Context, string) ([]byte, error) {
		attempts++
		if attempts < 3 {
			return nil, fmt.Errorf("%w: transient", ErrUnreachable)
		}
		return []byte("ok"), nil
	})

	rf := WithRetry(inner, 5).(*retryFetcher)
	rf.interval = time.Millisecond

	data, err := rf.Fetch(context.Background(), "UCabc")
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryPermanentOnClientError(t *testing.T) {
	attempts := 0
	inner := fetcherFunc(func(context.Context, string) ([]byte, error) {
		attempts++
		return nil, &StatusError{Code: 404}
	})

	rf := WithRetry(inner, 5).(*retryFetcher)
	rf.interval = time.Millisecond

	_, err := rf.Fetch(context.Background(), "UCabc")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 1, attempts)
}

func TestWithRetryExhausted(t *testing.T) {
	attempts := 0
	inner := fetcherFunc(func(context.Context, string) ([]byte, error) {
		attempts++
		return nil, fmt.Errorf("%w: still down", ErrUnreachable)
	})

	rf := WithRetry(inner, 2).(*retryFetcher)
	rf.interval = time.Millisecond

	_, err := rf.Fetch(context.Background(), "UCabc")
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, 3, attempts)
}

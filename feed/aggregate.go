package feed

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/hizkifw/ytcli/config"
)

const (
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 8
)

// Failure records a channel whose fetch or parse produced no entries.
type Failure struct {
	ChannelId string
	Err       error
}

// Aggregator fans fetch+parse out over a set of channels and merges the
// results into one newest-first list. A failing channel never aborts the
// run; it is reported alongside the merged list.
type Aggregator struct {
	Fetcher     Fetcher
	Parser      Parser
	Timeout     time.Duration // per-channel fetch budget
	Concurrency int           // max in-flight fetches
	Log         *logrus.Logger
}

func NewAggregator(fetcher Fetcher, parser Parser) *Aggregator {
	return &Aggregator{
		Fetcher:     fetcher,
		Parser:      parser,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Log:         logrus.StandardLogger(),
	}
}

// Aggregate fetches and parses every channel concurrently and returns the
// merged list, newest first, with ties broken by ascending video id so the
// output is deterministic. If ctx is cancelled before the merge, no
// partial list is returned.
func (a *Aggregator) Aggregate(ctx context.Context, channels []config.Channel) ([]Video, []Failure) {
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Each goroutine owns its own slot, so the only synchronization point
	// is the join before the merge.
	results := make([][]Video, len(channels))
	errs := make([]error, len(channels))

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i, ch := range channels {
		wg.Add(1)
		go func(i int, ch config.Channel) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i], errs[i] = a.fetchChannel(ctx, ch, timeout)
		}(i, ch)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, nil
	}

	var failures []Failure
	for i, err := range errs {
		if err != nil {
			a.Log.WithField("channel", channels[i].DisplayName()).
				WithError(err).Warn("channel failed")
			failures = append(failures, Failure{ChannelId: channels[i].Id, Err: err})
		}
	}

	videos := lo.Flatten(results)
	sort.Slice(videos, func(i, j int) bool {
		if !videos[i].Published.Equal(videos[j].Published) {
			return videos[i].Published.After(videos[j].Published)
		}
		return videos[i].Id < videos[j].Id
	})

	return videos, failures
}

func (a *Aggregator) fetchChannel(ctx context.Context, ch config.Channel, timeout time.Duration) ([]Video, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	a.Log.WithField("channel", ch.DisplayName()).Debug("fetching feed")
	raw, err := a.Fetcher.Fetch(ctx, ch.Id)
	if err != nil {
		return nil, err
	}

	videos, err := a.Parser.Parse(raw)
	if err != nil {
		return nil, err
	}

	// The feed may omit channel metadata; fill it in from the
	// subscription we fetched.
	for i := range videos {
		if videos[i].ChannelId == "" {
			videos[i].ChannelId = ch.Id
		}
		if videos[i].Author == "" {
			videos[i].Author = ch.DisplayName()
		}
	}

	return videos, nil
}

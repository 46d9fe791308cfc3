package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// DefaultFeedURL is the per-channel RSS endpoint; the channel id is
// appended to it.
const DefaultFeedURL = "https://www.youtube.com/feeds/videos.xml?channel_id="

// RSS fetches a channel's public RSS feed over HTTP.
type RSS struct {
	Client  *http.Client
	BaseURL string
}

var _ Fetcher = &RSS{}

func NewRSS() *RSS {
	return &RSS{
		Client:  &http.Client{},
		BaseURL: DefaultFeedURL,
	}
}

// Fetch retrieves the raw feed document for the channel. The caller's
// context carries the per-call timeout.
func (r *RSS) Fetch(ctx context.Context, channelId string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+channelId, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return io.ReadAll(resp.Body)
}

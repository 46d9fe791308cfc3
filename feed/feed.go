// Package feed aggregates the latest videos from a set of subscribed
// channels into one newest-first list.
package feed

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Video is one normalized entry drawn from a channel feed.
type Video struct {
	Id          string
	Title       string
	ChannelId   string
	Author      string
	Description string
	Published   time.Time
	Thumbnail   string // URL, empty when the feed carries none
}

// URL returns the watch page for the video.
func (v Video) URL() string {
	return "https://youtube.com/watch?v=" + v.Id
}

// ThumbnailURL returns the feed's thumbnail URL, falling back to the
// standard thumbnail endpoint.
func (v Video) ThumbnailURL() string {
	if v.Thumbnail != "" {
		return v.Thumbnail
	}
	return "https://i.ytimg.com/vi/" + v.Id + "/hq720.jpg"
}

// Fetcher retrieves the raw feed document for a channel.
type Fetcher interface {
	Fetch(ctx context.Context, channelId string) ([]byte, error)
}

// Parser extracts video entries from a raw feed document.
type Parser interface {
	Parse(data []byte) ([]Video, error)
}

var (
	ErrUnreachable   = errors.New("feed unreachable")
	ErrTimeout       = errors.New("feed fetch timed out")
	ErrInvalidFormat = errors.New("not a recognizable feed")
)

// StatusError is returned when the feed endpoint answers with a non-2xx
// status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feed returned status %d", e.Code)
}

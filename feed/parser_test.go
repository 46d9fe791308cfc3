package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <title>Example Channel</title>
  <yt:channelId>UCexample</yt:channelId>
  <entry>
    <id>yt:video:abc123</id>
    <yt:videoId>abc123</yt:videoId>
    <yt:channelId>UCexample</yt:channelId>
    <title>First video</title>
    <author><name>Example Author</name></author>
    <published>2024-05-01T10:00:00+00:00</published>
    <media:group>
      <media:title>First video</media:title>
      <media:thumbnail url="https://i.ytimg.com/vi/abc123/hqdefault.jpg" width="480" height="360"/>
      <media:description>A description</media:description>
    </media:group>
  </entry>
  <entry>
    <id>yt:video:def456</id>
    <yt:videoId>def456</yt:videoId>
    <yt:channelId>UCexample</yt:channelId>
    <title>No timestamp</title>
    <author><name>Example Author</name></author>
  </entry>
</feed>`

func TestParseAtomFeed(t *testing.T) {
	var parser GofeedParser
	videos, err := parser.Parse([]byte(atomFixture))
	require.NoError(t, err)

	// The entry without a timestamp is skipped, not fatal.
	require.Len(t, videos, 1)

	video := videos[0]
	assert.Equal(t, "abc123", video.Id)
	assert.Equal(t, "First video", video.Title)
	assert.Equal(t, "UCexample", video.ChannelId)
	assert.Equal(t, "Example Author", video.Author)
	assert.Equal(t, "A description", video.Description)
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hqdefault.jpg", video.Thumbnail)
	assert.True(t, video.Published.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestParseInvalidDocument(t *testing.T) {
	var parser GofeedParser
	_, err := parser.Parse([]byte("definitely not a feed"))
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestParseEmptyFeed(t *testing.T) {
	var parser GofeedParser
	videos, err := parser.Parse([]byte(`<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom"><title>Empty</title></feed>`))
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestVideoURLs(t *testing.T) {
	v := Video{Id: "abc123"}
	assert.Equal(t, "https://youtube.com/watch?v=abc123", v.URL())
	assert.Equal(t, "https://i.ytimg.com/vi/abc123/hq720.jpg", v.ThumbnailURL())

	v.Thumbnail = "https://example.com/t.jpg"
	assert.Equal(t, "https://example.com/t.jpg", v.ThumbnailURL())
}

package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hizkifw/ytcli/feed"
)

func TestItemText(t *testing.T) {
	v := feed.Video{
		Author: "Author",
		Title:  "Title with \x1b[31mescape\x1b[0m codes",
	}
	assert.Equal(t, "[Author] Title with escape codes", itemText(v))
}

func TestPreviewText(t *testing.T) {
	v := feed.Video{
		Title:       "A Title",
		Author:      "Someone",
		Description: "About the video",
		Published:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	text := previewText(v, 2)
	assert.True(t, strings.HasPrefix(text, "\n\n"))
	assert.Contains(t, text, "A Title")
	assert.Contains(t, text, "Someone")
	assert.Contains(t, text, "About the video")
}

func TestThumbnailsGet(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	thumbs, err := NewThumbnails()
	require.NoError(t, err)
	defer thumbs.Close()

	v := feed.Video{Id: "abc123", Thumbnail: srv.URL + "/thumb.jpg"}

	path, err := thumbs.Get(context.Background(), v)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	// Second lookup is served from the per-run directory.
	again, err := thumbs.Get(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, hits)
}

func TestThumbnailsGetError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	thumbs, err := NewThumbnails()
	require.NoError(t, err)
	defer thumbs.Close()

	_, err = thumbs.Get(context.Background(), feed.Video{Id: "gone", Thumbnail: srv.URL + "/t.jpg"})
	assert.Error(t, err)
}

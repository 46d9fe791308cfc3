package tui

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hizkifw/ytcli/feed"
)

// Thumbnails downloads video thumbnails into a per-run temp directory.
// The directory is removed on Close; nothing persists between runs.
type Thumbnails struct {
	dir    string
	client *http.Client
}

func NewThumbnails() (*Thumbnails, error) {
	dir, err := os.MkdirTemp("", "ytcli-thumb-")
	if err != nil {
		return nil, err
	}
	return &Thumbnails{
		dir:    dir,
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Get returns the local path of the video's thumbnail, downloading it
// first if this run has not seen it yet.
func (t *Thumbnails) Get(ctx context.Context, video feed.Video) (string, error) {
	path := filepath.Join(t.dir, video.Id+".jpg")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, video.ThumbnailURL(), nil)
	if err != nil {
		return "", err
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("thumbnail returned status %d", resp.StatusCode)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return path, nil
}

func (t *Thumbnails) Close() error {
	return os.RemoveAll(t.dir)
}

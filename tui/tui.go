// Package tui implements the interactive terminal picker for aggregated
// video lists.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/hizkifw/ytcli/config"
	"github.com/hizkifw/ytcli/feed"
)

// Presenter renders an ordered video list for interactive choice.
type Presenter interface {
	// Present blocks until the user picks a video or quits. A nil video
	// with a nil error means the user quit.
	Present(ctx context.Context, videos []feed.Video) (*feed.Video, error)
	Close() error
}

// Picker is the tview-based Presenter. Thumbnails are rendered through an
// ueberzug child process when enabled and available; otherwise the picker
// degrades to a text-only preview.
type Picker struct {
	Options config.Options
	Log     *logrus.Logger

	thumbs   *Thumbnails
	ueberzug *Ueberzug
}

var _ Presenter = &Picker{}

func NewPicker(opts config.Options) *Picker {
	p := &Picker{
		Options: opts,
		Log:     logrus.StandardLogger(),
	}

	if opts.Preview && opts.Thumbnails {
		uz, err := NewUeberzug()
		if err != nil {
			p.Log.WithError(err).Debug("thumbnail preview disabled")
			return p
		}
		thumbs, err := NewThumbnails()
		if err != nil {
			p.Log.WithError(err).Debug("thumbnail preview disabled")
			uz.Close()
			return p
		}
		p.ueberzug = uz
		p.thumbs = thumbs
	}

	return p
}

// Present shows the list and, when enabled, a preview pane for the
// highlighted entry.
func (p *Picker) Present(ctx context.Context, videos []feed.Video) (*feed.Video, error) {
	app := tview.NewApplication()
	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	preview := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)

	var selected *feed.Video
	for i := range videos {
		video := videos[i]
		list.AddItem(tview.Escape(itemText(video)), "", 0, func() {
			selected = &video
			app.Stop()
		})
	}

	list.SetDoneFunc(func() {
		app.Stop()
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	showPreview := func(index int) {
		if index < 0 || index >= len(videos) {
			return
		}
		video := videos[index]
		preview.SetText(previewText(video, p.padRows()))
		p.showThumbnail(ctx, video)
	}

	flex := tview.NewFlex().AddItem(list, 0, 1, true)
	if p.Options.Preview {
		flex.AddItem(preview, 0, 1, false)
		list.SetChangedFunc(func(index int, _, _ string, _ rune) {
			showPreview(index)
		})
		showPreview(0)
	}

	// Stop the picker when the run is interrupted.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			app.Stop()
		case <-done:
		}
	}()

	if err := app.SetRoot(flex, true).SetFocus(list).Run(); err != nil {
		return nil, err
	}
	if p.ueberzug != nil {
		p.ueberzug.Remove()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return selected, nil
}

// Close tears down the thumbnail renderer and its per-run image
// directory.
func (p *Picker) Close() error {
	if p.thumbs != nil {
		p.thumbs.Close()
	}
	if p.ueberzug != nil {
		return p.ueberzug.Close()
	}
	return nil
}

func (p *Picker) showThumbnail(ctx context.Context, video feed.Video) {
	if p.ueberzug == nil {
		return
	}
	go func() {
		path, err := p.thumbs.Get(ctx, video)
		if err != nil {
			p.Log.WithField("video", video.Id).WithError(err).Debug("thumbnail fetch failed")
			return
		}
		cols := termCols()
		if err := p.ueberzug.Add(path, cols/2+1, cols/2); err != nil {
			p.Log.WithError(err).Debug("thumbnail render failed")
		}
	}()
}

// padRows returns how many blank lines to leave at the top of the preview
// pane so the text does not sit under the rendered thumbnail.
func (p *Picker) padRows() int {
	if p.ueberzug == nil {
		return 0
	}
	// The thumbnail is 16:9 and spans half the terminal; terminal cells
	// are roughly twice as tall as wide.
	return termCols() / 2 * 9 / 16 / 2
}

func termCols() int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return 80
	}
	return cols
}

// itemText is the single-line list representation of a video. Feed text is
// untrusted, so ANSI sequences are stripped before rendering.
func itemText(v feed.Video) string {
	return fmt.Sprintf("[%s] %s", stripansi.Strip(v.Author), stripansi.Strip(v.Title))
}

func previewText(v feed.Video, padRows int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", padRows))
	fmt.Fprintf(&b, "[::b]%s[::-]\n", tview.Escape(stripansi.Strip(v.Title)))
	fmt.Fprintf(&b, "[::b]%s[::-] | %s\n\n",
		tview.Escape(stripansi.Strip(v.Author)),
		v.Published.Local().Format("2006-01-02 15:04:05"))
	b.WriteString(tview.Escape(stripansi.Strip(v.Description)))
	return b.String()
}

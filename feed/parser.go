package feed

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

// GofeedParser extracts video entries from a syndication feed. It
// understands the YouTube Atom dialect (yt: and media: namespaces) but
// degrades to the generic feed fields when those are absent.
type GofeedParser struct{}

var _ Parser = &GofeedParser{}

// Parse returns the parseable entries of the document. Items missing a
// required field (id, title, or timestamp) are skipped individually; a
// document that is not a feed at all fails with ErrInvalidFormat.
func (p *GofeedParser) Parse(data []byte) ([]Video, error) {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	feedChannelId := extensionValue(parsed.Extensions, "yt", "channelId")

	videos := make([]Video, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}

		video := Video{
			Id:          itemVideoId(item),
			Title:       item.Title,
			ChannelId:   itemChannelId(item, feedChannelId),
			Description: itemDescription(item),
			Thumbnail:   itemThumbnail(item),
		}
		if item.Author != nil {
			video.Author = item.Author.Name
		}

		published := item.PublishedParsed
		if published == nil {
			published = item.UpdatedParsed
		}
		if video.Id == "" || video.Title == "" || published == nil {
			continue
		}
		video.Published = *published

		videos = append(videos, video)
	}

	return videos, nil
}

func itemVideoId(item *gofeed.Item) string {
	if id := extensionValue(item.Extensions, "yt", "videoId"); id != "" {
		return id
	}
	return strings.TrimPrefix(item.GUID, "yt:video:")
}

func itemChannelId(item *gofeed.Item, fallback string) string {
	if id := extensionValue(item.Extensions, "yt", "channelId"); id != "" {
		return id
	}
	return fallback
}

func itemDescription(item *gofeed.Item) string {
	if group := firstExtension(item.Extensions, "media", "group"); group != nil {
		if descs := group.Children["description"]; len(descs) > 0 && descs[0].Value != "" {
			return descs[0].Value
		}
	}
	return item.Description
}

func itemThumbnail(item *gofeed.Item) string {
	if group := firstExtension(item.Extensions, "media", "group"); group != nil {
		if thumbs := group.Children["thumbnail"]; len(thumbs) > 0 {
			if url := thumbs[0].Attrs["url"]; url != "" {
				return url
			}
		}
	}
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}

func extensionValue(exts ext.Extensions, space, name string) string {
	if vals := exts[space][name]; len(vals) > 0 {
		return vals[0].Value
	}
	return ""
}

func firstExtension(exts ext.Extensions, space, name string) *ext.Extension {
	if vals := exts[space][name]; len(vals) > 0 {
		return &vals[0]
	}
	return nil
}

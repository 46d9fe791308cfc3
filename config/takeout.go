package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type takeoutSubscription struct {
	Snippet struct {
		Title      string `json:"title"`
		ResourceId struct {
			ChannelId string `json:"channelId"`
		} `json:"resourceId"`
	} `json:"snippet"`
}

// LoadTakeout reads a Google Takeout subscriptions dump and returns the
// channels it lists. Entries without a channel id are skipped.
func LoadTakeout(path string) ([]Channel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read subscriptions file: %w", err)
	}

	var subs []takeoutSubscription
	if err := json.Unmarshal(data, &subs); err != nil {
		return nil, fmt.Errorf("parse subscriptions file: %w", err)
	}

	channels := make([]Channel, 0, len(subs))
	for _, sub := range subs {
		if sub.Snippet.ResourceId.ChannelId == "" {
			continue
		}
		channels = append(channels, Channel{
			Id:   sub.Snippet.ResourceId.ChannelId,
			Name: sub.Snippet.Title,
		})
	}

	return channels, nil
}

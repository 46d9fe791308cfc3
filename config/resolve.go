package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/samber/lo"
)

// UnknownTopicError is returned when a requested topic does not exist in
// the config. An explicitly requested topic is never silently dropped.
type UnknownTopicError struct {
	Name string
}

func (e *UnknownTopicError) Error() string {
	return fmt.Sprintf("unknown topic %q", e.Name)
}

// Resolve expands a topic selector into the concrete set of channels to
// query. An empty selector means every subscribed channel: all topics plus
// the bare top-level subscriptions. Otherwise channels are collected from
// the requested topics in request order. Duplicate channel ids collapse to
// their first occurrence.
func (c *Config) Resolve(topics []string) ([]Channel, error) {
	var channels []Channel
	if len(topics) == 0 {
		channels = append(channels, c.Subscriptions...)
		for pair := c.Topics.Oldest(); pair != nil; pair = pair.Next() {
			channels = append(channels, pair.Value...)
		}
	} else {
		for _, name := range topics {
			in, ok := c.Topics.Get(name)
			if !ok {
				return nil, &UnknownTopicError{Name: name}
			}
			channels = append(channels, in...)
		}
	}

	return lo.UniqBy(channels, func(ch Channel) string { return ch.Id }), nil
}

// SplitSelector splits a topic selector on commas, semicolons, and
// whitespace.
func SplitSelector(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == ';'
	})
}

package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Channel is a subscribed video source. Identity is the opaque channel id;
// the name is presentational only.
type Channel struct {
	Id   string
	Name string
}

// DisplayName returns the configured name, or the id when none was given.
func (c Channel) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Id
}

// Options are the global flags set by top-level `key = value` lines.
type Options struct {
	Preview    bool
	Thumbnails bool
}

// Config is the parsed subscription file. Topics preserves the order in
// which sections first appear; repeated sections with the same name are
// unioned into one topic.
type Config struct {
	Options       Options
	Subscriptions []Channel // bare top-level entries, outside any topic
	Topics        *orderedmap.OrderedMap[string, []Channel]
}

// ErrNotFound is returned by Load when the config file cannot be read.
var ErrNotFound = errors.New("config file not found")

// SyntaxError reports a malformed line, currently only an unclosed section
// bracket.
type SyntaxError struct {
	Line int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("config syntax error on line %d", e.Line)
}

// DefaultPath returns the per-user config location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "ytcli", "config")
}

// Load reads and parses the subscription file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads the INI-like subscription format: top-level `key = value`
// lines set global options, top-level bare lines subscribe to a channel
// directly, and `[topic]` sections group channels under a topic. Within a
// section, `name = id` defines a named channel and a bare line is a channel
// identified by its id. Blank lines and lines starting with `#` or `;` are
// ignored. Unrecognized option keys are ignored for forward compatibility.
func Parse(r io.Reader) (*Config, error) {
	cfg := &Config{
		Topics: orderedmap.New[string, []Channel](),
	}

	scanner := bufio.NewScanner(r)
	topic := ""
	inTopic := false
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, ";") {
			continue
		}

		if strings.HasPrefix(text, "[") {
			if !strings.HasSuffix(text, "]") {
				return nil, &SyntaxError{Line: line}
			}
			topic = strings.TrimSpace(text[1 : len(text)-1])
			inTopic = true
			if _, ok := cfg.Topics.Get(topic); !ok {
				cfg.Topics.Set(topic, nil)
			}
			continue
		}

		name, value, named := strings.Cut(text, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)

		if !inTopic {
			if named {
				cfg.setOption(name, value)
			} else {
				cfg.Subscriptions = append(cfg.Subscriptions, Channel{Id: text})
			}
			continue
		}

		channel := Channel{Id: text}
		if named {
			channel = Channel{Id: value, Name: name}
		}
		channels, _ := cfg.Topics.Get(topic)
		cfg.Topics.Set(topic, append(channels, channel))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setOption applies a top-level option line. Unknown keys and
// uncoercible values are ignored, never fatal.
func (c *Config) setOption(key, value string) {
	enabled, ok := coerceBool(value)
	if !ok {
		return
	}

	switch strings.ToLower(key) {
	case "preview.enable":
		c.Options.Preview = enabled
	case "preview.thumbnails.enable":
		c.Options.Thumbnails = enabled
	}
}

func coerceBool(value string) (bool, bool) {
	switch strings.ToLower(value) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	}
	return false, false
}

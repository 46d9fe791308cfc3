package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/hizkifw/ytcli/config"
	"github.com/hizkifw/ytcli/feed"
	"github.com/hizkifw/ytcli/player"
	"github.com/hizkifw/ytcli/tui"
)

func main() {
	// Keep stdout clean for the picker and the listing tables.
	logrus.SetOutput(os.Stderr)

	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ytcli",
		Usage: "browse and play the latest videos from subscribed channels",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the subscription `FILE`",
				Value:   config.DefaultPath(),
				EnvVars: []string{"YTCLI_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "topics",
				Aliases: []string{"t"},
				Usage:   "show videos only from the listed `TOPICS`",
			},
			&cli.BoolFlag{
				Name:    "list-channels",
				Aliases: []string{"l"},
				Usage:   "list subscribed channels",
			},
			&cli.BoolFlag{
				Name:    "list-topics",
				Aliases: []string{"L"},
				Usage:   "list subscribed topics",
			},
			&cli.StringFlag{
				Name:  "load-subs",
				Usage: "load subscriptions from a google takeout json `FILE`",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "per-channel fetch timeout",
				Value:   feed.DefaultTimeout,
				EnvVars: []string{"YTCLI_TIMEOUT"},
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Usage:   "maximum in-flight feed fetches",
				Value:   feed.DefaultConcurrency,
				EnvVars: []string{"YTCLI_CONCURRENCY"},
			},
			&cli.Uint64Flag{
				Name:  "retries",
				Usage: "retry failed feed fetches up to `N` times",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	selector := config.SplitSelector(c.String("topics"))

	switch {
	case c.Bool("list-channels"):
		return listChannels(cfg, selector)
	case c.Bool("list-topics"):
		return listTopics(cfg, selector)
	}

	var channels []config.Channel
	if path := c.String("load-subs"); path != "" {
		channels, err = config.LoadTakeout(path)
	} else {
		channels, err = cfg.Resolve(selector)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	agg := feed.NewAggregator(
		feed.WithRetry(feed.NewRSS(), c.Uint64("retries")),
		&feed.GofeedParser{},
	)
	agg.Timeout = c.Duration("timeout")
	agg.Concurrency = c.Int("concurrency")

	videos, failures := agg.Aggregate(ctx, channels)
	if ctx.Err() != nil {
		return nil
	}
	if len(videos) == 0 {
		if len(failures) > 0 {
			reportFailures(failures)
			return cli.Exit("all channels failed", 1)
		}
		fmt.Println("There are no videos available.")
		return nil
	}

	picker := tui.NewPicker(cfg.Options)
	defer picker.Close()
	pl := player.New()

	for {
		video, err := picker.Present(ctx, videos)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return cli.Exit(err, 1)
		}
		if video == nil {
			return nil
		}
		if err := pl.Play(ctx, video.URL()); err != nil {
			logrus.WithError(err).Warn("player exited with error")
		}
	}
}

func listChannels(cfg *config.Config, selector []string) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"Topic", "Channel", "Id"})

	if len(selector) == 0 {
		for _, ch := range cfg.Subscriptions {
			tbl.AppendRow(table.Row{"", ch.DisplayName(), ch.Id})
		}
	}
	for pair := cfg.Topics.Oldest(); pair != nil; pair = pair.Next() {
		if len(selector) > 0 && !lo.Contains(selector, pair.Key) {
			continue
		}
		for _, ch := range pair.Value {
			tbl.AppendRow(table.Row{pair.Key, ch.DisplayName(), ch.Id})
		}
	}

	tbl.SetStyle(table.StyleLight)
	tbl.Render()
	return nil
}

func listTopics(cfg *config.Config, selector []string) error {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"Topic", "Channels"})

	for pair := cfg.Topics.Oldest(); pair != nil; pair = pair.Next() {
		if len(selector) > 0 && !lo.Contains(selector, pair.Key) {
			continue
		}
		tbl.AppendRow(table.Row{pair.Key, len(pair.Value)})
	}
	if len(selector) == 0 && len(cfg.Subscriptions) > 0 {
		tbl.AppendRow(table.Row{"(direct subscriptions)", len(cfg.Subscriptions)})
	}

	tbl.SetStyle(table.StyleLight)
	tbl.Render()
	return nil
}

func reportFailures(failures []feed.Failure) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(os.Stderr)
	tbl.AppendHeader(table.Row{"Channel", "Error"})
	for _, f := range failures {
		tbl.AppendRow(table.Row{f.ChannelId, f.Err})
	}
	tbl.SetStyle(table.StyleLight)
	tbl.Render()
}

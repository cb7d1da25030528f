package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sanakirja"
	"github.com/fwojciec/sanakirja/telegram"
)

// WebhookService registers where Telegram delivers updates.
type WebhookService interface {
	SetWebhook(ctx context.Context, url string) error
	GetWebhookInfo(ctx context.Context) (*telegram.WebhookInfo, error)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Pages      sanakirja.PageCache
	Lookups    sanakirja.LookupService
	Dictionary sanakirja.Dictionary
	Handler    sanakirja.RequestHandler
	Webhooks   WebhookService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose  bool          `short:"v" help:"Log debug output"`
	Token    string        `env:"BOT_TOKEN" help:"Telegram bot token"`
	BaseURL  string        `name:"base-url" default:"https://en.wiktionary.org" help:"Wiktionary to read articles from"`
	Timeout  time.Duration `default:"10s" help:"Timeout of one page fetch"`
	RPS      float64       `name:"rps" default:"5" help:"Page fetches per second"`
	CacheTTL time.Duration `name:"cache-ttl" default:"168h" help:"How long fetched pages are reused"`
	NoCache  bool          `name:"no-cache" help:"Always fetch pages"`

	Serve   ServeCmd   `cmd:"" help:"Serve the bot webhook"`
	Lookup  LookupCmd  `cmd:"" help:"Look up a word and print the article"`
	Webhook WebhookCmd `cmd:"" help:"Register the webhook with Telegram"`
	History HistoryCmd `cmd:"" help:"List recent lookups"`
	Prune   PruneCmd   `cmd:"" help:"Delete expired pages from the cache"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port       string        `env:"PORT" default:"8080" help:"Port to listen on"`
	SecretPath string        `name:"secret-path" env:"SECRET_PATH" required:"" help:"Path Telegram posts updates to"`
	Origin     string        `env:"ORIGIN" help:"Public origin of the server; registers the webhook on start when set"`
	PruneEvery time.Duration `name:"prune-every" default:"1h" help:"Interval between cache prunes"`
}

// LookupCmd is the "lookup" subcommand.
type LookupCmd struct {
	Word string `arg:"" help:"Word to look up"`
	JSON bool   `help:"Print the article as JSON"`
}

// WebhookCmd is the "webhook" subcommand.
type WebhookCmd struct {
	Origin     string `env:"ORIGIN" help:"Public origin of the server"`
	SecretPath string `name:"secret-path" env:"SECRET_PATH" help:"Path Telegram posts updates to"`
	Info       bool   `help:"Show the current webhook instead of setting it"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Chat    int64 `help:"Only show lookups from this chat"`
	Missing bool  `help:"Only show lookups that found nothing"`
	Limit   int   `short:"n" default:"20" help:"Number of lookups to show"`
}

// PruneCmd is the "prune" subcommand.
type PruneCmd struct {
	OlderThan time.Duration `name:"older-than" help:"Age of pages to delete (default: cache TTL)"`
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sanakirja"
	"github.com/fwojciec/sanakirja/bloom"
	"github.com/fwojciec/sanakirja/bot"
	"github.com/fwojciec/sanakirja/goquery"
	sanakirjahttp "github.com/fwojciec/sanakirja/http"
	sanakirjaslog "github.com/fwojciec/sanakirja/slog"
	"github.com/fwojciec/sanakirja/sqlite"
	"github.com/fwojciec/sanakirja/telegram"
	"github.com/fwojciec/sanakirja/wiktionary"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// TelegramURL overrides the Bot API endpoint. Used in tests.
	TelegramURL string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:      defaultDBPath(),
		TelegramURL: telegram.DefaultBaseURL,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sanakirja"),
		kong.Description("Finnish dictionary bot backed by Wiktionary"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sanakirja --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SANAKIRJA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	pages := sqlite.NewPageCache(m.DB)
	deps.Pages = pages
	deps.Lookups = sqlite.NewLookupService(m.DB)

	if cmd == "serve" || cmd == "lookup <word>" {
		fetcher := m.newFetcher(ctx, cli, logger)
		defer fetcher.Close()

		extractor := goquery.NewDefaultExtractor()
		dict := wiktionary.NewDictionary(fetcher, extractor)
		dict.BaseURL = cli.BaseURL
		dict.Logger = logger.Warn
		deps.Dictionary = sanakirjaslog.NewLoggingDictionary(dict, logger)
	}

	if cmd == "serve" || cmd == "webhook" {
		if cli.Token == "" {
			fmt.Fprintln(stderr, "Hint: Get a token from @BotFather and set BOT_TOKEN")
			return sanakirja.Errorf(sanakirja.EINVALID, "BOT_TOKEN not set")
		}
		client := telegram.NewClient(cli.Token, telegram.WithBaseURL(m.TelegramURL))
		deps.Webhooks = client

		if cmd == "serve" {
			handler := bot.NewHandler(deps.Dictionary, sanakirjaslog.NewLoggingMessenger(client, logger))
			handler.Lookups = deps.Lookups
			deps.Handler = handler
		}
	}

	return kongCtx.Run(cli)
}

// newFetcher builds the page fetcher: rate limited HTTP, logged, and unless
// disabled, served from the page cache.
func (m *Main) newFetcher(ctx context.Context, cli *CLI, logger *slog.Logger) sanakirja.Fetcher {
	limiter := sanakirjahttp.NewDomainLimiter(cli.RPS, 1)
	var fetcher sanakirja.Fetcher = sanakirjaslog.NewLoggingFetcher(
		sanakirjahttp.NewFetcher(
			sanakirjahttp.WithTimeout(cli.Timeout),
			sanakirjahttp.WithLimiter(limiter),
		),
		logger,
	)
	if cli.NoCache {
		return fetcher
	}

	pages := sanakirjaslog.NewLoggingPageCache(sqlite.NewPageCache(m.DB), logger)
	caching := bloom.NewCachingFetcher(fetcher, pages, cli.CacheTTL)
	if n, err := caching.Warm(ctx); err != nil {
		logger.Warn("failed to load cached page index", "err", err)
	} else {
		logger.Debug("loaded cached page index", "pages", n)
	}
	return caching
}

func defaultDBPath() string {
	if path := os.Getenv("SANAKIRJA_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sanakirja.db"
	}
	dir := filepath.Join(home, ".sanakirja")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cache.db")
}

// shutdownTimeout bounds the graceful shutdown of the server.
const shutdownTimeout = 10 * time.Second

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	sanakirjahttp "github.com/fwojciec/sanakirja/http"
	"github.com/fwojciec/sanakirja/telegram"
	"golang.org/x/sync/errgroup"
)

// WebhookURL joins the public origin and the secret path.
func WebhookURL(origin, secretPath string) string {
	return strings.TrimSuffix(origin, "/") + "/" + strings.TrimPrefix(secretPath, "/")
}

// Run executes the serve command. It serves until the context is canceled.
func (c *ServeCmd) Run(deps *Dependencies, cli *CLI) error {
	if c.Origin != "" {
		if err := deps.Webhooks.SetWebhook(deps.Ctx, WebhookURL(c.Origin, c.SecretPath)); err != nil {
			return fmt.Errorf("failed to set webhook: %w", err)
		}
		deps.Logger.Info("webhook set", "origin", c.Origin)
	}

	server := sanakirjahttp.NewServer(c.SecretPath, deps.Logger)
	server.Addr = ":" + c.Port
	server.Decoder = telegram.UpdateDecoder{}
	server.RequestHandler = deps.Handler
	if err := server.Open(); err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", c.Port, err)
	}
	deps.Logger.Info("serving", "port", server.Port())

	g, ctx := errgroup.WithContext(deps.Ctx)

	g.Go(func() error {
		<-ctx.Done()
		deps.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return server.Close(shutdownCtx)
	})

	if !cli.NoCache && c.PruneEvery > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(c.PruneEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case now := <-ticker.C:
					if _, err := deps.Pages.DeleteExpiredPages(ctx, now.Add(-cli.CacheTTL)); err != nil {
						deps.Logger.Warn("cache prune failed", "err", err)
					}
				}
			}
		})
	}

	return g.Wait()
}

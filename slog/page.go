package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sanakirja"
)

// Ensure LoggingPageCache implements sanakirja.PageCache.
var _ sanakirja.PageCache = (*LoggingPageCache)(nil)

// LoggingPageCache wraps a PageCache with debug logging of hits and misses.
type LoggingPageCache struct {
	next   sanakirja.PageCache
	logger *slog.Logger
}

// NewLoggingPageCache creates a new LoggingPageCache.
func NewLoggingPageCache(next sanakirja.PageCache, logger *slog.Logger) *LoggingPageCache {
	return &LoggingPageCache{next: next, logger: logger}
}

// FindPageByURL delegates to the wrapped cache and logs whether it hit.
func (c *LoggingPageCache) FindPageByURL(ctx context.Context, url string, maxAge time.Duration) (page *sanakirja.Page, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if err != nil && sanakirja.ErrorCode(err) != sanakirja.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Debug("cache lookup", attrs...)
	}(time.Now())
	return c.next.FindPageByURL(ctx, url, maxAge)
}

// FindPageURLs delegates to the wrapped cache.
func (c *LoggingPageCache) FindPageURLs(ctx context.Context, since time.Time) ([]string, error) {
	return c.next.FindPageURLs(ctx, since)
}

// SavePage delegates to the wrapped cache.
func (c *LoggingPageCache) SavePage(ctx context.Context, page *sanakirja.Page) (err error) {
	defer func(begin time.Time) {
		c.logger.Debug("cache save",
			"url", page.URL,
			"bytes", len(page.HTML),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SavePage(ctx, page)
}

// DeleteExpiredPages delegates to the wrapped cache and logs the count.
func (c *LoggingPageCache) DeleteExpiredPages(ctx context.Context, before time.Time) (n int, err error) {
	defer func() {
		c.logger.Info("cache prune",
			"before", before.Format(time.RFC3339),
			"deleted", n,
			"err", err,
		)
	}()
	return c.next.DeleteExpiredPages(ctx, before)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sanakirja"
)

// Ensure LoggingDictionary implements sanakirja.Dictionary.
var _ sanakirja.Dictionary = (*LoggingDictionary)(nil)

// LoggingDictionary wraps a Dictionary with logging of every lookup.
type LoggingDictionary struct {
	next   sanakirja.Dictionary
	logger *slog.Logger
}

// NewLoggingDictionary creates a new LoggingDictionary.
func NewLoggingDictionary(next sanakirja.Dictionary, logger *slog.Logger) *LoggingDictionary {
	return &LoggingDictionary{next: next, logger: logger}
}

// Lookup delegates to the wrapped dictionary and logs the outcome. Misses
// are logged without an error since they are an expected answer.
func (d *LoggingDictionary) Lookup(ctx context.Context, query string) (article *sanakirja.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"query", query,
			"duration", time.Since(begin),
		}
		switch {
		case err == nil:
			attrs = append(attrs, "link", article.Link, "refs", len(article.Refs))
		case sanakirja.ErrorCode(err) == sanakirja.ENOTFOUND:
			attrs = append(attrs, "found", false)
		default:
			attrs = append(attrs, "err", err)
		}
		d.logger.Info("lookup", attrs...)
	}(time.Now())
	return d.next.Lookup(ctx, query)
}

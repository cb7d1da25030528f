package sanakirja

import (
	"context"
	"time"
)

// Page is a fetched dictionary page kept for reuse.
type Page struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	HTML        string    `json:"html"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	if p.HTML == "" {
		return Errorf(EINVALID, "page HTML required")
	}
	return nil
}

// PageCache stores fetched pages by URL.
type PageCache interface {
	// FindPageByURL retrieves the page fetched from url.
	// Returns ENOTFOUND if the page is not cached or is older than maxAge.
	// A maxAge of zero or less never expires pages.
	FindPageByURL(ctx context.Context, url string, maxAge time.Duration) (*Page, error)

	// FindPageURLs returns the URLs of pages fetched at or after since.
	FindPageURLs(ctx context.Context, since time.Time) ([]string, error)

	// SavePage stores a page, replacing any earlier copy of the same URL.
	SavePage(ctx context.Context, page *Page) error

	// DeleteExpiredPages removes pages fetched before the cutoff and
	// returns how many were removed.
	DeleteExpiredPages(ctx context.Context, before time.Time) (int, error)
}

// Lookup records a query asked by a chat.
type Lookup struct {
	ID        string    `json:"id"`
	ChatID    int64     `json:"chatId"`
	Query     string    `json:"query"`
	Found     bool      `json:"found"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the lookup contains invalid fields.
func (l *Lookup) Validate() error {
	if l.Query == "" {
		return Errorf(EINVALID, "lookup query required")
	}
	return nil
}

// LookupService represents a service for recording lookups.
type LookupService interface {
	// CreateLookup records a lookup.
	CreateLookup(ctx context.Context, lookup *Lookup) error

	// FindLookups retrieves lookups matching the filter, newest first.
	FindLookups(ctx context.Context, filter LookupFilter) ([]*Lookup, error)
}

// LookupFilter represents a filter for FindLookups.
type LookupFilter struct {
	ChatID *int64  `json:"chatId"`
	Query  *string `json:"query"`
	Found  *bool   `json:"found"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/sanakirja"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sanakirja.PageCache = (*PageCache)(nil)

// PageCache implements sanakirja.PageCache using SQLite.
type PageCache struct {
	db *DB

	// Now returns the current time. Replaced in tests.
	Now func() time.Time
}

// NewPageCache creates a new PageCache.
func NewPageCache(db *DB) *PageCache {
	return &PageCache{db: db, Now: time.Now}
}

// FindPageByURL retrieves the page fetched from url.
func (c *PageCache) FindPageByURL(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
	var page sanakirja.Page
	var fetchedAt string

	err := c.db.QueryRowContext(ctx, `
		SELECT id, url, html, content_hash, fetched_at
		FROM pages
		WHERE url = ?
	`, url).Scan(&page.ID, &page.URL, &page.HTML, &page.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, sanakirja.Errorf(sanakirja.ENOTFOUND, "page not cached")
	}
	if err != nil {
		return nil, err
	}

	if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	if maxAge > 0 && c.Now().Sub(page.FetchedAt) > maxAge {
		return nil, sanakirja.Errorf(sanakirja.ENOTFOUND, "cached page expired")
	}

	return &page, nil
}

// FindPageURLs returns the URLs of pages fetched at or after since.
func (c *PageCache) FindPageURLs(ctx context.Context, since time.Time) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT url FROM pages WHERE fetched_at >= ? ORDER BY url
	`, formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

// SavePage stores a page, replacing any earlier copy of the same URL.
// It assigns the ID and content hash, and sets FetchedAt when zero.
func (c *PageCache) SavePage(ctx context.Context, page *sanakirja.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	page.ID = uuid.New().String()
	page.ContentHash = hashContent(page.HTML)
	if page.FetchedAt.IsZero() {
		page.FetchedAt = c.Now()
	}
	page.FetchedAt = page.FetchedAt.UTC()

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO pages (id, url, html, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			id = excluded.id,
			html = excluded.html,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, page.ID, page.URL, page.HTML, page.ContentHash, formatTime(page.FetchedAt))

	return err
}

// DeleteExpiredPages removes pages fetched before the cutoff and releases
// the space they took.
func (c *PageCache) DeleteExpiredPages(ctx context.Context, before time.Time) (int, error) {
	result, err := c.db.ExecContext(ctx, "DELETE FROM pages WHERE fetched_at < ?", formatTime(before))
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		if err := c.db.vacuum(ctx); err != nil {
			return int(n), fmt.Errorf("failed to vacuum: %w", err)
		}
	}
	return int(n), nil
}

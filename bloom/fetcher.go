package bloom

import (
	"context"
	"time"

	"github.com/fwojciec/sanakirja"
)

// Defaults for the filter behind a CachingFetcher.
const (
	DefaultExpectedPages = 100_000
	DefaultFPRate        = 0.01
)

var _ sanakirja.Fetcher = (*CachingFetcher)(nil)

// CachingFetcher serves pages from a PageCache while they are younger than
// TTL and fetches them otherwise. The cache is only consulted for URLs the
// filter has seen, so a miss on a new word costs no cache query.
type CachingFetcher struct {
	next   sanakirja.Fetcher
	cache  sanakirja.PageCache
	filter *Filter

	// TTL is the age after which a cached page is fetched again.
	TTL time.Duration

	// Now returns the current time. Replaced in tests.
	Now func() time.Time
}

// NewCachingFetcher wraps next with the given cache.
func NewCachingFetcher(next sanakirja.Fetcher, cache sanakirja.PageCache, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{
		next:   next,
		cache:  cache,
		filter: NewFilter(DefaultExpectedPages, DefaultFPRate),
		TTL:    ttl,
		Now:    time.Now,
	}
}

// Warm adds the URLs of every unexpired cached page to the filter and
// returns how many were added.
func (f *CachingFetcher) Warm(ctx context.Context) (int, error) {
	urls, err := f.cache.FindPageURLs(ctx, f.Now().Add(-f.TTL))
	if err != nil {
		return 0, err
	}
	for _, u := range urls {
		f.filter.Add(u)
	}
	return len(urls), nil
}

// Fetch returns the cached page for url or fetches and caches it. Failing to
// save a fetched page does not fail the fetch.
func (f *CachingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.filter.Test(url) {
		page, err := f.cache.FindPageByURL(ctx, url, f.TTL)
		if err == nil {
			return page.HTML, nil
		}
		if sanakirja.ErrorCode(err) != sanakirja.ENOTFOUND {
			return "", err
		}
	}

	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := f.cache.SavePage(ctx, &sanakirja.Page{
		URL:       url,
		HTML:      html,
		FetchedAt: f.Now(),
	}); err == nil {
		f.filter.Add(url)
	}
	return html, nil
}

// Close closes the wrapped fetcher.
func (f *CachingFetcher) Close() error {
	return f.next.Close()
}

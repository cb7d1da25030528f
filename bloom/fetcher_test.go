package bloom_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/sanakirja"
	"github.com/fwojciec/sanakirja/bloom"
	"github.com/fwojciec/sanakirja/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taloURL = "https://en.wiktionary.org/wiki/talo"

func TestCachingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("fetches and saves unseen pages without querying cache", func(t *testing.T) {
		t.Parallel()

		var saved *sanakirja.Page
		cache := &mock.PageCache{
			FindPageByURLFn: func(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
				t.Fatal("cache should not be queried for unseen URL")
				return nil, nil
			},
			SavePageFn: func(ctx context.Context, page *sanakirja.Page) error {
				saved = page
				return nil
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>talo</html>", nil
			},
		}
		now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
		f := bloom.NewCachingFetcher(next, cache, time.Hour)
		f.Now = func() time.Time { return now }

		html, err := f.Fetch(context.Background(), taloURL)

		require.NoError(t, err)
		assert.Equal(t, "<html>talo</html>", html)
		require.NotNil(t, saved)
		assert.Equal(t, taloURL, saved.URL)
		assert.Equal(t, "<html>talo</html>", saved.HTML)
		assert.Equal(t, now, saved.FetchedAt)
	})

	t.Run("serves saved pages from cache", func(t *testing.T) {
		t.Parallel()

		fetches := 0
		var gotMaxAge time.Duration
		cache := &mock.PageCache{
			FindPageByURLFn: func(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
				gotMaxAge = maxAge
				return &sanakirja.Page{URL: url, HTML: "<html>cached</html>"}, nil
			},
			SavePageFn: func(ctx context.Context, page *sanakirja.Page) error {
				return nil
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetches++
				return "<html>fresh</html>", nil
			},
		}
		f := bloom.NewCachingFetcher(next, cache, time.Hour)

		_, err := f.Fetch(context.Background(), taloURL)
		require.NoError(t, err)
		html, err := f.Fetch(context.Background(), taloURL)

		require.NoError(t, err)
		assert.Equal(t, "<html>cached</html>", html)
		assert.Equal(t, 1, fetches)
		assert.Equal(t, time.Hour, gotMaxAge)
	})

	t.Run("refetches expired pages", func(t *testing.T) {
		t.Parallel()

		fetches := 0
		cache := &mock.PageCache{
			FindPageByURLFn: func(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
				return nil, sanakirja.Errorf(sanakirja.ENOTFOUND, "page expired")
			},
			SavePageFn: func(ctx context.Context, page *sanakirja.Page) error {
				return nil
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetches++
				return "<html>fresh</html>", nil
			},
		}
		f := bloom.NewCachingFetcher(next, cache, time.Hour)

		_, err := f.Fetch(context.Background(), taloURL)
		require.NoError(t, err)
		html, err := f.Fetch(context.Background(), taloURL)

		require.NoError(t, err)
		assert.Equal(t, "<html>fresh</html>", html)
		assert.Equal(t, 2, fetches)
	})

	t.Run("returns cache failures", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			FindPageURLsFn: func(ctx context.Context, since time.Time) ([]string, error) {
				return []string{taloURL}, nil
			},
			FindPageByURLFn: func(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
				return nil, errors.New("database is locked")
			},
		}
		f := bloom.NewCachingFetcher(&mock.Fetcher{}, cache, time.Hour)
		_, err := f.Warm(context.Background())
		require.NoError(t, err)

		_, err = f.Fetch(context.Background(), taloURL)

		assert.EqualError(t, err, "database is locked")
	})

	t.Run("does not save failed fetches", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			SavePageFn: func(ctx context.Context, page *sanakirja.Page) error {
				t.Fatal("failed fetch should not be saved")
				return nil
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", sanakirja.Errorf(sanakirja.ENOTFOUND, "no page")
			},
		}
		f := bloom.NewCachingFetcher(next, cache, time.Hour)

		_, err := f.Fetch(context.Background(), taloURL)

		assert.Equal(t, sanakirja.ENOTFOUND, sanakirja.ErrorCode(err))
	})

	t.Run("returns page when saving fails", func(t *testing.T) {
		t.Parallel()

		cache := &mock.PageCache{
			FindPageByURLFn: func(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
				t.Fatal("unsaved URL should not be looked up")
				return nil, nil
			},
			SavePageFn: func(ctx context.Context, page *sanakirja.Page) error {
				return errors.New("disk full")
			},
		}
		next := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>talo</html>", nil
			},
		}
		f := bloom.NewCachingFetcher(next, cache, time.Hour)

		for range 2 {
			html, err := f.Fetch(context.Background(), taloURL)
			require.NoError(t, err)
			assert.Equal(t, "<html>talo</html>", html)
		}
	})
}

func TestCachingFetcher_Warm(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	var gotSince time.Time
	cache := &mock.PageCache{
		FindPageURLsFn: func(ctx context.Context, since time.Time) ([]string, error) {
			gotSince = since
			return []string{taloURL}, nil
		},
		FindPageByURLFn: func(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
			return &sanakirja.Page{URL: url, HTML: "<html>cached</html>"}, nil
		},
	}
	next := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			t.Fatal("warmed URL should be served from cache")
			return "", nil
		},
	}
	f := bloom.NewCachingFetcher(next, cache, 24*time.Hour)
	f.Now = func() time.Time { return now }

	n, err := f.Warm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, now.Add(-24*time.Hour), gotSince)

	html, err := f.Fetch(context.Background(), taloURL)
	require.NoError(t, err)
	assert.Equal(t, "<html>cached</html>", html)
}

func TestCachingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	next := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	require.NoError(t, bloom.NewCachingFetcher(next, &mock.PageCache{}, time.Hour).Close())
	assert.True(t, closed)
}

package mock

import (
	"context"
	"time"

	"github.com/fwojciec/sanakirja"
)

// Compile-time interface verification.
var (
	_ sanakirja.PageCache     = (*PageCache)(nil)
	_ sanakirja.LookupService = (*LookupService)(nil)
)

// PageCache is a mock implementation of sanakirja.PageCache.
type PageCache struct {
	FindPageByURLFn      func(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error)
	FindPageURLsFn       func(ctx context.Context, since time.Time) ([]string, error)
	SavePageFn           func(ctx context.Context, page *sanakirja.Page) error
	DeleteExpiredPagesFn func(ctx context.Context, before time.Time) (int, error)
}

func (c *PageCache) FindPageByURL(ctx context.Context, url string, maxAge time.Duration) (*sanakirja.Page, error) {
	return c.FindPageByURLFn(ctx, url, maxAge)
}

func (c *PageCache) FindPageURLs(ctx context.Context, since time.Time) ([]string, error) {
	return c.FindPageURLsFn(ctx, since)
}

func (c *PageCache) SavePage(ctx context.Context, page *sanakirja.Page) error {
	return c.SavePageFn(ctx, page)
}

func (c *PageCache) DeleteExpiredPages(ctx context.Context, before time.Time) (int, error) {
	return c.DeleteExpiredPagesFn(ctx, before)
}

// LookupService is a mock implementation of sanakirja.LookupService.
type LookupService struct {
	CreateLookupFn func(ctx context.Context, lookup *sanakirja.Lookup) error
	FindLookupsFn  func(ctx context.Context, filter sanakirja.LookupFilter) ([]*sanakirja.Lookup, error)
}

func (s *LookupService) CreateLookup(ctx context.Context, lookup *sanakirja.Lookup) error {
	return s.CreateLookupFn(ctx, lookup)
}

func (s *LookupService) FindLookups(ctx context.Context, filter sanakirja.LookupFilter) ([]*sanakirja.Lookup, error) {
	return s.FindLookupsFn(ctx, filter)
}

package mock

import (
	"context"

	"github.com/fwojciec/sanakirja"
)

var (
	_ sanakirja.Extractor  = (*Extractor)(nil)
	_ sanakirja.Dictionary = (*Dictionary)(nil)
)

// Extractor is a mock implementation of sanakirja.Extractor.
type Extractor struct {
	ExtractFn      func(html string) (*sanakirja.Entry, error)
	SearchResultFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (*sanakirja.Entry, error) {
	return e.ExtractFn(html)
}

func (e *Extractor) SearchResult(html string) (string, error) {
	return e.SearchResultFn(html)
}

// Dictionary is a mock implementation of sanakirja.Dictionary.
type Dictionary struct {
	LookupFn func(ctx context.Context, query string) (*sanakirja.Article, error)
}

func (d *Dictionary) Lookup(ctx context.Context, query string) (*sanakirja.Article, error) {
	return d.LookupFn(ctx, query)
}

// Package wiktionary implements sanakirja.Dictionary on top of English
// Wiktionary.
package wiktionary

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/sanakirja"
	"golang.org/x/sync/singleflight"
)

// DefaultBaseURL is the Wiktionary edition articles are read from.
const DefaultBaseURL = "https://en.wiktionary.org"

var _ sanakirja.Dictionary = (*Dictionary)(nil)

// Dictionary looks up words by fetching their Wiktionary page. When the page
// is missing or has no Finnish section, it runs a full-text search and reads
// the first hit instead. Concurrent lookups of the same query share one
// round of requests.
type Dictionary struct {
	fetcher   sanakirja.Fetcher
	extractor sanakirja.Extractor
	group     singleflight.Group

	// BaseURL is the scheme and host of the wiki, without trailing slash.
	BaseURL string

	// RetryDelays are the waits between attempts of a failed fetch.
	RetryDelays []time.Duration

	// Logger, if set, is told about retried fetches.
	Logger LogFunc
}

// NewDictionary creates a Dictionary reading DefaultBaseURL.
func NewDictionary(fetcher sanakirja.Fetcher, extractor sanakirja.Extractor) *Dictionary {
	return &Dictionary{
		fetcher:     fetcher,
		extractor:   extractor,
		BaseURL:     DefaultBaseURL,
		RetryDelays: DefaultRetryDelays(),
	}
}

// ArticleURL returns the address of the page titled query. Spaces become
// underscores as in wiki page titles.
func (d *Dictionary) ArticleURL(query string) string {
	return d.BaseURL + "/wiki/" + url.PathEscape(strings.ReplaceAll(query, " ", "_"))
}

// SearchURL returns the address of a full-text search for query in the
// main namespace.
func (d *Dictionary) SearchURL(query string) string {
	v := url.Values{}
	v.Set("search", query)
	v.Set("fulltext", "Full text search")
	v.Set("ns0", "1")
	return d.BaseURL + "/wiki/Special:Search?" + v.Encode()
}

// Lookup returns the article for query.
func (d *Dictionary) Lookup(ctx context.Context, query string) (*sanakirja.Article, error) {
	if strings.TrimSpace(query) == "" {
		return nil, sanakirja.Errorf(sanakirja.EINVALID, "query required")
	}

	v, err, _ := d.group.Do(query, func() (any, error) {
		return d.lookup(ctx, query)
	})
	if err != nil {
		return nil, err
	}

	article := *v.(*sanakirja.Article)
	article.Refs = append([]string(nil), article.Refs...)
	return &article, nil
}

func (d *Dictionary) lookup(ctx context.Context, query string) (*sanakirja.Article, error) {
	link := d.ArticleURL(query)
	article, err := d.read(ctx, query, link)
	if sanakirja.ErrorCode(err) != sanakirja.ENOTFOUND {
		return article, err
	}

	html, err := d.fetch(ctx, d.SearchURL(query))
	if err != nil {
		return nil, err
	}
	href, err := d.extractor.SearchResult(html)
	if err != nil {
		return nil, err
	}

	article, err = d.read(ctx, query, d.BaseURL+href)
	if sanakirja.ErrorCode(err) == sanakirja.ENOTFOUND {
		return nil, sanakirja.Errorf(sanakirja.ENOTFOUND, "no article found for %q", query)
	}
	return article, err
}

// read fetches and extracts the page at link.
func (d *Dictionary) read(ctx context.Context, query, link string) (*sanakirja.Article, error) {
	html, err := d.fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	entry, err := d.extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	return &sanakirja.Article{
		Query:   query,
		Link:    readable(link),
		Content: entry.Content,
		Refs:    entry.Refs,
	}, nil
}

func (d *Dictionary) fetch(ctx context.Context, link string) (string, error) {
	return FetchWithRetry(ctx, link, d.fetcher.Fetch, d.Logger, d.RetryDelays)
}

// readable undoes percent-encoding so links to Finnish words show their
// letters in messages.
func readable(link string) string {
	if s, err := url.PathUnescape(link); err == nil {
		return s
	}
	return link
}

package sanakirja

import (
	"context"
	"strings"
)

// Entry is the rendered Finnish section of a dictionary page.
type Entry struct {
	// Content is line-oriented text where underscores mark emphasis and a
	// blank line followed by an emphasized line starts a section.
	Content string

	// Refs holds the titles of linked terms, sorted and without duplicates.
	Refs []string
}

// Article is an entry ready to be shown for a query.
type Article struct {
	Query   string   `json:"query"`
	Link    string   `json:"link"`
	Content string   `json:"content"`
	Refs    []string `json:"refs,omitempty"`
}

// linkEscaper keeps characters in links from opening Markdown entities.
var linkEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

// Text formats the article as a Markdown message: the query in bold, the
// entry content and the source link on the last line.
func (a *Article) Text() string {
	var sb strings.Builder
	sb.WriteString("*" + a.Query + "*\n")
	sb.WriteString(a.Content)
	sb.WriteString(linkEscaper.Replace(a.Link) + "\n")
	return sb.String()
}

// Extractor renders dictionary pages.
type Extractor interface {
	// Extract renders the Finnish section of a page and appends the noun and
	// verb stems when the page lists all of their forms.
	// Returns ENOTFOUND if the page has no Finnish section.
	Extract(html string) (*Entry, error)

	// SearchResult returns the path of the first hit on a full-text search page.
	// Returns ENOTFOUND if the search found nothing.
	SearchResult(html string) (string, error)
}

// Dictionary looks up words.
type Dictionary interface {
	// Lookup returns the article for a query.
	// Returns ENOTFOUND if no page with a Finnish section matches the query.
	Lookup(ctx context.Context, query string) (*Article, error)
}

// Package goquery implements sanakirja.Extractor for Wiktionary pages using
// goquery and cascadia selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/sanakirja"
	"golang.org/x/net/html"
)

var _ sanakirja.Extractor = (*Extractor)(nil)

// Extractor renders the Finnish section of Wiktionary pages and derives
// stems from the inflection tables. It holds no per-call state and is safe
// for concurrent use.
type Extractor struct {
	skip     sanakirja.SkipSet
	matchers *matchers
}

// NewExtractor creates an Extractor from the given selectors and skipped
// section labels. Returns EINVALID if a selector does not compile.
func NewExtractor(selectors sanakirja.Selectors, skip sanakirja.SkipSet) (*Extractor, error) {
	m, err := compileSelectors(selectors)
	if err != nil {
		return nil, err
	}
	return &Extractor{skip: skip, matchers: m}, nil
}

// NewDefaultExtractor creates an Extractor for Finnish entries on English Wiktionary.
func NewDefaultExtractor() *Extractor {
	e, err := NewExtractor(sanakirja.DefaultSelectors(), sanakirja.DefaultSkipSet())
	if err != nil {
		panic(err)
	}
	return e
}

// Extract renders the Finnish section of the page followed by the noun and
// verb stems, each block on its own line. Stem blocks are left out unless
// the page lists every form they need.
func (e *Extractor) Extract(html string) (*sanakirja.Entry, error) {
	doc, err := Parse(html)
	if err != nil {
		return nil, err
	}

	start, err := e.sectionStart(doc)
	if err != nil {
		return nil, err
	}

	content, refs := Walk(start, e.skip)

	var sb strings.Builder
	sb.WriteString(content)
	nouns, verbs := e.Forms(doc)
	if stems, ok := nouns.Stems(); ok {
		sb.WriteString(stems + "\n")
	}
	if stems, ok := verbs.Stems(); ok {
		sb.WriteString(stems + "\n")
	}

	return &sanakirja.Entry{
		Content: sb.String(),
		Refs:    refs,
	}, nil
}

// sectionStart returns the node the section walk starts after: the parent of
// the anchor, which is the heading (or heading wrapper) of the section.
func (e *Extractor) sectionStart(doc *goquery.Document) (*html.Node, error) {
	anchor := doc.FindMatcher(e.matchers.anchor).First()
	if anchor.Length() == 0 {
		return nil, sanakirja.Errorf(sanakirja.ENOTFOUND, "page has no Finnish section")
	}
	parent := anchor.Nodes[0].Parent
	if parent == nil || parent.Type == html.DocumentNode {
		return nil, sanakirja.Errorf(sanakirja.ENOTFOUND, "Finnish section has no heading")
	}
	return parent, nil
}

// Forms looks up the noun and verb forms used for stem derivation. Each form
// is the text of the first matching element anywhere in the document.
func (e *Extractor) Forms(doc *goquery.Document) (sanakirja.NounForms, sanakirja.VerbForms) {
	n, v := e.matchers.nouns, e.matchers.verbs
	nouns := sanakirja.NounForms{
		PartitiveSingular: firstText(doc, n.partitiveSingular),
		PartitivePlural:   firstText(doc, n.partitivePlural),
		AllativeSingular:  firstText(doc, n.allativeSingular),
		AllativePlural:    firstText(doc, n.allativePlural),
	}
	verbs := sanakirja.VerbForms{
		Present1: firstText(doc, v.present1),
		Present3: firstText(doc, v.present3),
		Past1:    firstText(doc, v.past1),
		Past3:    firstText(doc, v.past3),
	}
	return nouns, verbs
}

// SearchResult returns the href of the first hit on a full-text search page.
func (e *Extractor) SearchResult(html string) (string, error) {
	doc, err := Parse(html)
	if err != nil {
		return "", err
	}
	href, ok := doc.FindMatcher(e.matchers.searchResult).First().Attr("href")
	if !ok || href == "" {
		return "", sanakirja.Errorf(sanakirja.ENOTFOUND, "no search results")
	}
	return href, nil
}

// Parse parses an HTML page.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, sanakirja.Errorf(sanakirja.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

func firstText(doc *goquery.Document, m cascadia.Selector) *string {
	sel := doc.FindMatcher(m).First()
	if sel.Length() == 0 {
		return nil
	}
	text := sel.Text()
	return &text
}

package goquery

import (
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/sanakirja"
)

type nounMatchers struct {
	partitiveSingular cascadia.Selector
	partitivePlural   cascadia.Selector
	allativeSingular  cascadia.Selector
	allativePlural    cascadia.Selector
}

type verbMatchers struct {
	present1 cascadia.Selector
	present3 cascadia.Selector
	past1    cascadia.Selector
	past3    cascadia.Selector
}

// matchers holds the compiled form of sanakirja.Selectors.
type matchers struct {
	anchor       cascadia.Selector
	nouns        nounMatchers
	verbs        verbMatchers
	searchResult cascadia.Selector
}

// compileSelectors compiles every selector once so extraction never reparses them.
func compileSelectors(s sanakirja.Selectors) (*matchers, error) {
	c := &compiler{}
	m := &matchers{
		anchor: c.compile(s.Anchor),
		nouns: nounMatchers{
			partitiveSingular: c.compile(s.Nouns.PartitiveSingular),
			partitivePlural:   c.compile(s.Nouns.PartitivePlural),
			allativeSingular:  c.compile(s.Nouns.AllativeSingular),
			allativePlural:    c.compile(s.Nouns.AllativePlural),
		},
		verbs: verbMatchers{
			present1: c.compile(s.Verbs.Present1),
			present3: c.compile(s.Verbs.Present3),
			past1:    c.compile(s.Verbs.Past1),
			past3:    c.compile(s.Verbs.Past3),
		},
		searchResult: c.compile(s.SearchResult),
	}
	if c.err != nil {
		return nil, c.err
	}
	return m, nil
}

// compiler keeps the first compile error so a selector table reads as one block.
type compiler struct {
	err error
}

func (c *compiler) compile(selector string) cascadia.Selector {
	if c.err != nil {
		return nil
	}
	sel, err := cascadia.Compile(selector)
	if err != nil {
		c.err = sanakirja.Errorf(sanakirja.EINVALID, "invalid selector %q: %v", selector, err)
		return nil
	}
	return sel
}

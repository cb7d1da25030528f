package goquery

import (
	"maps"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sanakirja"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Link titles in these namespaces point outside the dictionary proper.
var excludedRefPrefixes = []string{"w:", "Reconstruction:"}

// category decides how an element is rendered inline.
type category int

const (
	transparent category = iota
	skipped
	link
	emphasis
)

var categories = map[atom.Atom]category{
	atom.Table: skipped,
	atom.Sup:   skipped,
	atom.Style: skipped,
	atom.A:     link,
	atom.I:     emphasis,
}

// Blocks that are left out of the walk along with everything inside them.
var skippedBlocks = map[atom.Atom]bool{
	atom.Div:   true,
	atom.Table: true,
	atom.Style: true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1,
	atom.H2: 2,
	atom.H3: 3,
	atom.H4: 4,
	atom.H5: 5,
	atom.H6: 6,
}

// headingClassPrefix marks the wrapper Wiktionary puts around headings in
// its current skin, e.g. <div class="mw-heading mw-heading3"><h3>…</h3>…</div>.
const headingClassPrefix = "mw-heading"

// Walk renders the section that follows start: its later siblings up to the
// next level-2 heading. Level 3 to 5 headings open sections, which are kept
// unless their label is in skip. It returns the rendered text and the sorted
// titles of the terms linked from kept sections.
func Walk(start *html.Node, skip sanakirja.SkipSet) (string, []string) {
	r := newRenderer()
	var state sanakirja.SectionState

	for n := start.NextSibling; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode {
			continue
		}
		switch level := headingLevel(n); {
		case level == 2:
			return r.result()
		case level >= 3 && level <= 5:
			label := sanakirja.HeadingLabel(headingText(n))
			if state.Enter(label, skip) {
				r.writeString(sanakirja.HeadingLine(state.Label()))
			}
			continue
		}
		if !state.Emitting() || skippedBlocks[n.DataAtom] {
			continue
		}
		r.render(n)
		r.writeString("\n")
	}
	return r.result()
}

// headingLevel returns the level of a heading element or heading wrapper,
// or 0 for any other element.
func headingLevel(n *html.Node) int {
	if level, ok := headingLevels[n.DataAtom]; ok {
		return level
	}
	if n.DataAtom != atom.Div {
		return 0
	}
	for _, class := range strings.Fields(attr(n, "class")) {
		suffix, ok := strings.CutPrefix(class, headingClassPrefix)
		if !ok || suffix == "" {
			continue
		}
		if level, err := strconv.Atoi(suffix); err == nil {
			return level
		}
	}
	return 0
}

// headingText returns the text of the first element child of a heading.
// Headings without element children have no label.
func headingText(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return goquery.NewDocumentFromNode(c).Text()
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// renderer accumulates the text of one walk.
type renderer struct {
	buf  strings.Builder
	refs map[string]struct{}

	// last is the most recently written rune, used to collapse whitespace
	// across node boundaries.
	last rune
}

func newRenderer() *renderer {
	return &renderer{refs: make(map[string]struct{})}
}

func (r *renderer) result() (string, []string) {
	return r.buf.String(), slices.Sorted(maps.Keys(r.refs))
}

func (r *renderer) writeString(s string) {
	if s == "" {
		return
	}
	r.buf.WriteString(s)
	r.last, _ = utf8.DecodeLastRuneInString(s)
}

// writeText appends source text without asterisks and with every run of
// whitespace reduced to one space.
func (r *renderer) writeText(s string) {
	for _, c := range s {
		if c == '*' {
			continue
		}
		if unicode.IsSpace(c) {
			if r.buf.Len() > 0 && unicode.IsSpace(r.last) {
				continue
			}
			c = ' '
		}
		r.buf.WriteRune(c)
		r.last = c
	}
}

// render writes the children of n.
func (r *renderer) render(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			r.writeText(c.Data)
		case html.ElementNode:
			r.renderElement(c)
		}
	}
}

func (r *renderer) renderElement(n *html.Node) {
	switch categories[n.DataAtom] {
	case skipped:
	case link:
		if title := attr(n, "title"); isRef(title) {
			r.refs[title] = struct{}{}
		}
		r.render(n)
	case emphasis:
		r.writeString("_")
		r.render(n)
		r.writeString("_")
	default:
		r.render(n)
	}
}

func isRef(title string) bool {
	if title == "" {
		return false
	}
	for _, prefix := range excludedRefPrefixes {
		if strings.HasPrefix(title, prefix) {
			return false
		}
	}
	return true
}

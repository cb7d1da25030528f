package sanakirja

// SkipSet is an immutable set of section heading labels whose content is
// left out of an article summary.
type SkipSet map[string]struct{}

// NewSkipSet returns a SkipSet containing the given labels.
func NewSkipSet(labels ...string) SkipSet {
	s := make(SkipSet, len(labels))
	for _, l := range labels {
		s[l] = struct{}{}
	}
	return s
}

// DefaultSkipSet returns the sections excluded from Wiktionary summaries.
// The empty label covers headings with no readable text.
func DefaultSkipSet() SkipSet {
	return NewSkipSet(
		"Pronunciation",
		"",
		"Anagrams",
		"Conjugation",
		"Declension",
		"References",
		"Derived terms",
		"Related terms",
	)
}

// Contains reports whether the label is excluded.
func (s SkipSet) Contains(label string) bool {
	_, ok := s[label]
	return ok
}

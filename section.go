package sanakirja

import "strings"

// editLabel is appended to headings by the section edit link.
const editLabel = "edit"

// HeadingLabel returns the heading text with any trailing edit-link labels removed.
func HeadingLabel(text string) string {
	for strings.HasSuffix(text, editLabel) {
		text = strings.TrimSuffix(text, editLabel)
	}
	return text
}

// HeadingLine formats a section label as an emphasized line preceded by a
// blank line.
func HeadingLine(label string) string {
	return "\n_" + label + "_\n"
}

// SectionState tracks the section walk between headings. The zero value is
// skipping: content before the first heading is never emitted.
type SectionState struct {
	emitting bool
	label    string
}

// Enter moves to the section introduced by a heading. It reports whether the
// section is kept; skipped sections leave the state skipping until the next
// heading.
func (s *SectionState) Enter(label string, skip SkipSet) bool {
	if skip.Contains(label) {
		s.emitting = false
		s.label = ""
		return false
	}
	s.emitting = true
	s.label = label
	return true
}

// Emitting reports whether content in the current section is kept.
func (s *SectionState) Emitting() bool {
	return s.emitting
}

// Label returns the label of the kept section, or "" while skipping.
func (s *SectionState) Label() string {
	return s.label
}

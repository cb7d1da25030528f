package sanakirja

import (
	"strings"
	"unicode/utf8"
)

// StemsHeader introduces the stem line in an article ("stems" in Finnish).
const StemsHeader = "_Vartalot_"

// Inflectional endings stripped when deriving stems.
const (
	allativeSuffix = "lle"
	personalSuffix = "n"
)

// NounForms holds the noun forms found on a page. A nil field means the page
// has no such form.
type NounForms struct {
	PartitiveSingular *string
	PartitivePlural   *string
	AllativeSingular  *string
	AllativePlural    *string
}

// Complete reports whether every form is present.
func (f NounForms) Complete() bool {
	return f.PartitiveSingular != nil && f.PartitivePlural != nil &&
		f.AllativeSingular != nil && f.AllativePlural != nil
}

// Stems formats the singular and plural stems with the partitive forms.
// The stems are the allative forms without their ending. Returns false
// unless all forms are present.
func (f NounForms) Stems() (string, bool) {
	if !f.Complete() {
		return "", false
	}
	stem := trimSuffixes(*f.AllativeSingular, allativeSuffix)
	pluralStem := trimSuffixes(*f.AllativePlural, allativeSuffix)

	var sb strings.Builder
	sb.WriteString(StemsHeader)
	sb.WriteString("\n")
	sb.WriteString(stem + " - " + pluralStem)
	sb.WriteString(" p. " + *f.PartitiveSingular)
	sb.WriteString(" m.p. " + *f.PartitivePlural)
	return sb.String(), true
}

// VerbForms holds the singular indicative verb forms found on a page. A nil
// field means the page has no such form.
type VerbForms struct {
	Present1 *string
	Present3 *string
	Past1    *string
	Past3    *string
}

// Complete reports whether every form is present.
func (f VerbForms) Complete() bool {
	return f.Present1 != nil && f.Present3 != nil &&
		f.Past1 != nil && f.Past3 != nil
}

// Stems formats the present and past stems, derived from the first person
// forms. Third person forms that differ from what the stems predict are
// appended so irregular verbs stay readable. Returns false unless all forms
// are present.
func (f VerbForms) Stems() (string, bool) {
	if !f.Complete() {
		return "", false
	}
	stem := trimSuffixes(*f.Present1, personalSuffix)
	pastStem := trimSuffixes(*f.Past1, personalSuffix)

	var sb strings.Builder
	sb.WriteString(StemsHeader)
	sb.WriteString("\n")
	sb.WriteString(stem + " - " + pastStem)

	// Regular verbs lengthen the final vowel in the third person.
	if last, size := utf8.DecodeLastRuneInString(stem); size > 0 {
		if *f.Present3 != stem+string(last) {
			sb.WriteString(" p3. " + *f.Present3)
		}
	}
	if *f.Past3 != pastStem {
		sb.WriteString(" past3. " + *f.Past3)
	}
	return sb.String(), true
}

// trimSuffixes removes every trailing repetition of suffix.
func trimSuffixes(s, suffix string) string {
	for suffix != "" && strings.HasSuffix(s, suffix) {
		s = strings.TrimSuffix(s, suffix)
	}
	return s
}

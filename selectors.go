package sanakirja

// NounSelectors locates the noun forms used for stem derivation.
type NounSelectors struct {
	PartitiveSingular string
	PartitivePlural   string
	AllativeSingular  string
	AllativePlural    string
}

// VerbSelectors locates the indicative verb forms used for stem derivation.
type VerbSelectors struct {
	Present1 string
	Present3 string
	Past1    string
	Past3    string
}

// Selectors holds the CSS queries run against a Wiktionary page.
type Selectors struct {
	// Anchor matches the node whose parent starts the Finnish section.
	Anchor string

	Nouns NounSelectors
	Verbs VerbSelectors

	// SearchResult matches result links on the full-text search page.
	SearchResult string
}

// DefaultSelectors returns the selectors for Finnish entries on English Wiktionary.
func DefaultSelectors() Selectors {
	return Selectors{
		Anchor: "#Finnish",
		Nouns: NounSelectors{
			PartitiveSingular: formOf("par|s"),
			PartitivePlural:   formOf("par|p"),
			AllativeSingular:  formOf("all|s"),
			AllativePlural:    formOf("all|p"),
		},
		Verbs: VerbSelectors{
			Present1: formOf("1|s|pres|indc"),
			Present3: formOf("3|s|pres|indc"),
			Past1:    formOf("1|s|past|indc"),
			Past3:    formOf("3|s|past|indc"),
		},
		SearchResult: ".mw-search-result-heading a",
	}
}

// formOf matches a Finnish form-of link. Wiktionary encodes the grammatical
// tags in a class such as "par|s-form-of"; the attribute form avoids escaping
// the pipes and leading digits.
func formOf(tags string) string {
	return `.lang-fi[class~="` + tags + `-form-of"]`
}

package utils

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldSearchTerm lowercases and ASCII-folds a search term so devanagari
// text and its roman transliteration match the same stored rows
// (e.g. "Hanumān Chālīsā" folds to "hanuman chalisa").
func FoldSearchTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(unidecode.Unidecode(term)))
}

// LikePattern wraps a folded term for a substring LIKE match.
func LikePattern(term string) string {
	return "%" + FoldSearchTerm(term) + "%"
}

// DisplayLabel normalizes a free-form category or deity label for display,
// e.g. "lord hanuman" to "Lord Hanuman". A Caser carries transform state,
// so each call gets its own.
func DisplayLabel(label string) string {
	return cases.Title(language.English).String(strings.TrimSpace(label))
}

package usecase

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var multipleSpacesRegex = regexp.MustCompile(`\s+`)

// titleCaser capitalizes words the way product names are written on the site
var titleCaser = cases.Title(language.Russian)

// normalizeQuery trims a search query and collapses inner whitespace
func normalizeQuery(query string) string {
	return strings.TrimSpace(multipleSpacesRegex.ReplaceAllString(query, " "))
}

// searchLetter returns the first character of the title-cased query.
// ok is false for an empty query.
func searchLetter(query string) (letter rune, ok bool) {
	titled := titleCaser.String(query)
	if titled == "" {
		return 0, false
	}
	letter, _ = utf8.DecodeRuneInString(titled)
	return letter, true
}

// matchesQuery reports whether name contains query, ignoring case
func matchesQuery(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

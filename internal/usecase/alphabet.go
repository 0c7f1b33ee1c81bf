package usecase

import (
	"maps"
	"slices"

	"github.com/macrolens/calorizator/internal/domain"
)

// pagesByLetter records on which listing pages products starting with a
// given character appeared, as of February 2024. The catalog grows over
// time, so ranges drift; the table is not re-derived from the live pager.
var pagesByLetter = map[rune][]int{
	'7': {0},
	'A': {0},
	'E': {0},
	'F': {0},
	'N': {0},
	'Ё': {12},
	'А': {0, 1},
	'Б': {1, 2, 3, 4, 5},
	'В': {5, 6, 7},
	'Г': {7, 8, 9, 10},
	'Д': {10, 11, 12},
	'Е': {12},
	'Ж': {12},
	'З': {12, 13},
	'И': {13, 14},
	'К': {16, 17, 18, 19, 20, 21, 22, 23, 24},
	'Л': {24, 25, 26},
	'М': {26, 27, 28, 29, 30, 31, 32, 33, 34},
	'Н': {34, 35},
	'О': {35, 36, 37, 38},
	'П': {38, 39, 40, 41, 42, 43, 44, 45, 46, 47, 48, 49},
	'Р': {49, 50, 51, 52},
	'С': {52, 53, 54, 55, 56, 57, 58, 59, 60, 61, 62, 63, 64, 65, 66, 67, 68},
	'Т': {68, 69, 70, 71, 72, 73},
	'У': {73},
	'Ф': {73, 74},
	'Х': {74, 75, 76, 77},
	'Ц': {77},
	'Ч': {77, 78, 79},
	'Ш': {79, 80, 81},
	'Щ': {81, 82},
	'Э': {82},
	'Ю': {82},
	'Я': {82},
}

// AlphabetIndex maps the leading character of a product name to the
// listing pages that may contain it
type AlphabetIndex struct {
	ranges map[rune]domain.PageRange
}

// NewAlphabetIndex builds the index from the recorded page snapshot
func NewAlphabetIndex() *AlphabetIndex {
	return newAlphabetIndex(pagesByLetter)
}

func newAlphabetIndex(recorded map[rune][]int) *AlphabetIndex {
	ranges := make(map[rune]domain.PageRange, len(recorded))
	for letter, pages := range recorded {
		r, err := domain.NewPageRange(pages)
		if err != nil {
			continue
		}
		ranges[letter] = r
	}
	return &AlphabetIndex{ranges: ranges}
}

// RangeFor returns the page range to scan for an uppercase letter
func (a *AlphabetIndex) RangeFor(letter rune) (domain.PageRange, error) {
	r, ok := a.ranges[letter]
	if !ok {
		return domain.PageRange{}, &domain.UnknownLetterError{Letter: letter}
	}
	return r, nil
}

// Letters returns the recorded characters in code point order
func (a *AlphabetIndex) Letters() []rune {
	return slices.Sorted(maps.Keys(a.ranges))
}

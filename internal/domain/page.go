package domain

import "fmt"

// PageRange is an inclusive interval of listing page indices
type PageRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewPageRange collapses recorded page indices to their min/max.
// A single recorded index yields a one-page range.
func NewPageRange(pages []int) (PageRange, error) {
	if len(pages) == 0 {
		return PageRange{}, fmt.Errorf("%w: no pages recorded", ErrInvalidRequest)
	}
	r := PageRange{Start: pages[0], End: pages[0]}
	for _, p := range pages[1:] {
		r.Start = min(r.Start, p)
		r.End = max(r.End, p)
	}
	return r, nil
}

// Len returns the number of pages in the range
func (r PageRange) Len() int {
	return r.End - r.Start + 1
}

// Pages enumerates the page indices of the range in ascending order
func (r PageRange) Pages() []int {
	pages := make([]int, 0, r.Len())
	for p := r.Start; p <= r.End; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Contains reports whether page lies within the range
func (r PageRange) Contains(page int) bool {
	return page >= r.Start && page <= r.End
}

func (r PageRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("[%d]", r.Start)
	}
	return fmt.Sprintf("[%d..%d]", r.Start, r.End)
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrFetch is returned when a listing page cannot be fetched
	ErrFetch = errors.New("calorizator request failed")

	// ErrParse is returned when an expected element is absent from a page
	ErrParse = errors.New("unexpected page markup")

	// ErrTableNotFound is returned when no table on a page carries the nutrient header
	ErrTableNotFound = errors.New("nutrient table not found")

	// ErrUnknownLetter is returned when a search letter has no recorded page range
	ErrUnknownLetter = errors.New("no page range recorded for letter")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrPageOutOfRange is returned when a page index is beyond the listing
	ErrPageOutOfRange = errors.New("page index out of range")
)

// FetchError reports a non-200 response or a transport failure.
// Status is zero when no response was received.
type FetchError struct {
	Status  int
	Context string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("error while getting calorizator %s: %v", e.Context, e.Err)
	}
	return fmt.Sprintf("error while getting calorizator %s: status %d", e.Context, e.Status)
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFetch, e.Err}
	}
	return []error{ErrFetch}
}

// ParseError reports a required element missing from the markup
type ParseError struct {
	Element string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrParse, e.Element, e.Err)
	}
	return fmt.Sprintf("%s: %s not found", ErrParse, e.Element)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrParse, e.Err}
	}
	return []error{ErrParse}
}

// TableNotFoundError reports a page without a table matching the header signature
type TableNotFoundError struct {
	Page string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("%s on %s", ErrTableNotFound, e.Page)
}

func (e *TableNotFoundError) Unwrap() error {
	return ErrTableNotFound
}

// UnknownLetterError reports a search letter missing from the alphabet table
type UnknownLetterError struct {
	Letter rune
}

func (e *UnknownLetterError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownLetter, e.Letter)
}

func (e *UnknownLetterError) Unwrap() error {
	return ErrUnknownLetter
}

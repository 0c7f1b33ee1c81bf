package domain

import "context"

// ListingSource defines the interface for reading the paginated product listing
type ListingSource interface {
	PageCount(ctx context.Context) (int, error)
	FetchPage(ctx context.Context, page int) (PageResult, error)
}

// ResultWriter persists an extracted result under the given file name
type ResultWriter interface {
	Write(name string, result any) (string, error)
}

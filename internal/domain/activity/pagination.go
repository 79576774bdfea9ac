package activity

import (
	"context"
)

const (
	// DefaultPageSize is the page size requested from GitHub list endpoints.
	DefaultPageSize = 100

	// MaxAuthenticatedRepoPages bounds the "all of my repositories" query.
	MaxAuthenticatedRepoPages = 20
)

// Page is one page returned by a paged list endpoint. NextPage is the
// provider's next page number, 0 when the provider reports none.
type Page[T any] struct {
	Items    []T
	NextPage int
}

// PageFunc fetches a single page. page starts at 1.
type PageFunc[T any] func(ctx context.Context, page, perPage int) (Page[T], error)

// PageOptions controls CollectPages.
type PageOptions struct {
	PageSize int
	// MaxPages stops the walk after that many pages and returns what was
	// gathered. Zero means no limit.
	MaxPages int
}

// CollectPages walks a paged list endpoint from page 1 and returns the
// concatenation of all records in provider order. It stops after an empty
// page, a page shorter than the page size, or a page without a next link.
// An error on any page discards everything gathered so far.
func CollectPages[T any](ctx context.Context, fetch PageFunc[T], opts PageOptions) ([]T, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	var all []T
	for page := 1; ; page++ {
		if opts.MaxPages > 0 && page > opts.MaxPages {
			return all, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := fetch(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}

		all = append(all, result.Items...)

		if len(result.Items) == 0 || len(result.Items) < pageSize || result.NextPage == 0 {
			return all, nil
		}
	}
}

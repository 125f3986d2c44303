package tooldeck

import (
	"context"

	"github.com/tooldeck-io/tooldeck-go/internal/constants"
)

// PageFunc fetches one page of results. Every resource client's List method
// satisfies this shape, so iterators work against any listable resource:
//
//	it := tooldeck.NewPageIterator(ctx, client.Apps().List, nil)
type PageFunc[T any] func(ctx context.Context, params *QueryParams) (*ListResponse[T], error)

// PaginationOptions controls bulk fetching.
type PaginationOptions struct {
	// PageSize is the per_page value used for each request.
	PageSize int
	// MaxPages caps how many pages are fetched. Zero means no cap.
	MaxPages int
}

// DefaultPaginationOptions returns options suitable for bulk collection.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: constants.LargePageSize,
		MaxPages: constants.MaxPages,
	}
}

// PageIterator walks a paginated result set item by item, fetching pages
// lazily.
type PageIterator[T any] struct {
	ctx    context.Context
	fetch  PageFunc[T]
	params *QueryParams
	page   int
	buf    []T
	idx    int
	done   bool
	err    error
}

// NewPageIterator creates an iterator over a paginated resource. params may
// be nil; when present its Page field is ignored and its other options are
// applied to every request.
func NewPageIterator[T any](ctx context.Context, fetch PageFunc[T], params *QueryParams) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:    ctx,
		fetch:  fetch,
		params: params,
		page:   1,
	}
}

// HasNext reports whether another item is available. It may fetch the next
// page; fetch failures are surfaced by the following Next call.
func (it *PageIterator[T]) HasNext() bool {
	if it.err != nil {
		return true
	}

	if it.idx < len(it.buf) {
		return true
	}

	if it.done {
		return false
	}

	it.fetchPage()

	return it.err != nil || it.idx < len(it.buf)
}

// Next returns the next item. When the result set is exhausted it returns
// ErrNoMoreItems.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		return zero, ErrNoMoreItems
	}

	if it.err != nil {
		err := it.err
		it.err = nil
		it.done = true

		return zero, err
	}

	item := it.buf[it.idx]
	it.idx++

	return item, nil
}

// All collects every remaining item.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach applies fn to every remaining item, stopping at the first error.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) fetchPage() {
	params := &QueryParams{}
	if it.params != nil {
		copied := *it.params
		params = &copied
	}

	params.Page = it.page

	resp, err := it.fetch(it.ctx, params)
	if err != nil {
		it.err = err

		return
	}

	it.buf = resp.Items
	it.idx = 0
	it.page++

	if len(resp.Items) == 0 || !resp.Page.HasNext() {
		it.done = true
	}
}

// FetchAllPages collects every item of a paginated resource into one slice.
// A nil options applies no page-size override and no page cap.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], params *QueryParams, options *PaginationOptions) ([]T, error) {
	var items []T

	base := &QueryParams{}
	if params != nil {
		copied := *params
		base = &copied
	}

	if options != nil && options.PageSize > 0 {
		base.PerPage = options.PageSize
	}

	page := 1

	for {
		if options != nil && options.MaxPages > 0 && page > options.MaxPages {
			break
		}

		base.Page = page

		resp, err := fetch(ctx, base)
		if err != nil {
			return nil, err
		}

		items = append(items, resp.Items...)

		if len(resp.Items) == 0 || !resp.Page.HasNext() {
			break
		}

		page++
	}

	return items, nil
}

// PageResult carries one page of a streamed result set.
type PageResult[T any] struct {
	Items []T
	Page  PageInfo
	Err   error
}

// StreamPages fetches pages sequentially and delivers each on the returned
// channel. The channel closes after the last page, the first error, or when
// ctx is canceled; an error is delivered as the final PageResult.
func StreamPages[T any](ctx context.Context, fetch PageFunc[T], params *QueryParams, options *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T], constants.SmallBufferSize)

	go func() {
		defer close(results)

		base := &QueryParams{}
		if params != nil {
			copied := *params
			base = &copied
		}

		if options != nil && options.PageSize > 0 {
			base.PerPage = options.PageSize
		}

		page := 1

		for {
			if options != nil && options.MaxPages > 0 && page > options.MaxPages {
				return
			}

			base.Page = page

			resp, err := fetch(ctx, base)
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: resp.Items, Page: resp.Page}:
			case <-ctx.Done():
				return
			}

			if len(resp.Items) == 0 || !resp.Page.HasNext() {
				return
			}

			page++
		}
	}()

	return results
}

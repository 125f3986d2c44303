package tooldeck_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooldeck-io/tooldeck-go/pkg/tooldeck"
)

type TestResource struct {
	ID   string
	Name string
}

// pagedFetch builds a PageFunc over a fixed set of pages, the shape every
// resource client's List method has.
func pagedFetch(pages map[int]*tooldeck.ListResponse[TestResource]) tooldeck.PageFunc[TestResource] {
	return func(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.ListResponse[TestResource], error) {
		page := 1
		if params != nil && params.Page > 0 {
			page = params.Page
		}

		response, ok := pages[page]
		if !ok {
			return &tooldeck.ListResponse[TestResource]{
				Items: []TestResource{},
				Page:  tooldeck.PageInfo{Number: page},
			}, nil
		}

		return response, nil
	}
}

func threePagesOfFive() map[int]*tooldeck.ListResponse[TestResource] {
	return map[int]*tooldeck.ListResponse[TestResource]{
		1: {
			Items: []TestResource{
				{ID: "1", Name: "Resource 1"},
				{ID: "2", Name: "Resource 2"},
			},
			Page: tooldeck.PageInfo{Number: 1, Size: 2, TotalPages: 3, TotalItems: 5},
		},
		2: {
			Items: []TestResource{
				{ID: "3", Name: "Resource 3"},
				{ID: "4", Name: "Resource 4"},
			},
			Page: tooldeck.PageInfo{Number: 2, Size: 2, TotalPages: 3, TotalItems: 5},
		},
		3: {
			Items: []TestResource{
				{ID: "5", Name: "Resource 5"},
			},
			Page: tooldeck.PageInfo{Number: 3, Size: 2, TotalPages: 3, TotalItems: 5},
		},
	}
}

func TestPageIterator_HasNext(t *testing.T) {
	fetch := pagedFetch(map[int]*tooldeck.ListResponse[TestResource]{
		1: {
			Items: []TestResource{
				{ID: "1", Name: "Resource 1"},
				{ID: "2", Name: "Resource 2"},
			},
			Page: tooldeck.PageInfo{Number: 1, Size: 2, TotalPages: 2, TotalItems: 3},
		},
		2: {
			Items: []TestResource{
				{ID: "3", Name: "Resource 3"},
			},
			Page: tooldeck.PageInfo{Number: 2, Size: 2, TotalPages: 2, TotalItems: 3},
		},
	})

	ctx := context.Background()
	iterator := tooldeck.NewPageIterator(ctx, fetch, nil)

	// Should have next before any fetch
	assert.True(t, iterator.HasNext())

	// Fetch first item
	item1, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", item1.ID)

	// Should still have next
	assert.True(t, iterator.HasNext())

	// Fetch second item
	item2, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "2", item2.ID)

	// Should still have next (page 2)
	assert.True(t, iterator.HasNext())

	// Fetch third item
	item3, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "3", item3.ID)

	// Should not have next
	assert.False(t, iterator.HasNext())
}

func TestPageIterator_NextAfterExhaustion(t *testing.T) {
	fetch := pagedFetch(map[int]*tooldeck.ListResponse[TestResource]{
		1: {
			Items: []TestResource{{ID: "1", Name: "Resource 1"}},
			Page:  tooldeck.PageInfo{Number: 1, Size: 50, TotalPages: 1, TotalItems: 1},
		},
	})

	iterator := tooldeck.NewPageIterator(context.Background(), fetch, nil)

	_, err := iterator.Next()
	require.NoError(t, err)

	_, err = iterator.Next()
	assert.ErrorIs(t, err, tooldeck.ErrNoMoreItems)
}

func TestPageIterator_All(t *testing.T) {
	fetch := pagedFetch(map[int]*tooldeck.ListResponse[TestResource]{
		1: {
			Items: []TestResource{
				{ID: "1", Name: "Resource 1"},
				{ID: "2", Name: "Resource 2"},
			},
			Page: tooldeck.PageInfo{Number: 1, Size: 2, TotalPages: 2, TotalItems: 3},
		},
		2: {
			Items: []TestResource{
				{ID: "3", Name: "Resource 3"},
			},
			Page: tooldeck.PageInfo{Number: 2, Size: 2, TotalPages: 2, TotalItems: 3},
		},
	})

	ctx := context.Background()
	iterator := tooldeck.NewPageIterator(ctx, fetch, nil)

	allResources, err := iterator.All()
	require.NoError(t, err)
	assert.Len(t, allResources, 3)
	assert.Equal(t, "1", allResources[0].ID)
	assert.Equal(t, "2", allResources[1].ID)
	assert.Equal(t, "3", allResources[2].ID)
}

func TestPageIterator_ForEach(t *testing.T) {
	fetch := pagedFetch(map[int]*tooldeck.ListResponse[TestResource]{
		1: {
			Items: []TestResource{
				{ID: "1", Name: "Resource 1"},
				{ID: "2", Name: "Resource 2"},
			},
			Page: tooldeck.PageInfo{Number: 1, Size: 50, TotalPages: 1, TotalItems: 2},
		},
	})

	ctx := context.Background()
	iterator := tooldeck.NewPageIterator(ctx, fetch, nil)

	var collected []string
	err := iterator.ForEach(func(resource TestResource) error {
		collected = append(collected, resource.ID)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, collected)
}

func TestPageIterator_PropagatesFetchError(t *testing.T) {
	fetchErr := errors.New("backend unavailable")

	fetch := func(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.ListResponse[TestResource], error) {
		if params.Page > 1 {
			return nil, fetchErr
		}

		return &tooldeck.ListResponse[TestResource]{
			Items: []TestResource{{ID: "1", Name: "Resource 1"}},
			Page:  tooldeck.PageInfo{Number: 1, Size: 1, TotalPages: 2, TotalItems: 2},
		}, nil
	}

	iterator := tooldeck.NewPageIterator(context.Background(), fetch, nil)

	item, err := iterator.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", item.ID)

	_, err = iterator.Next()
	assert.ErrorIs(t, err, fetchErr)
}

func TestPageIterator_CopiesCallerParams(t *testing.T) {
	var seenSearch []string

	fetch := func(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.ListResponse[TestResource], error) {
		seenSearch = append(seenSearch, params.Search)

		return &tooldeck.ListResponse[TestResource]{
			Items: []TestResource{{ID: "1"}},
			Page:  tooldeck.PageInfo{Number: params.Page, Size: 1, TotalPages: 2, TotalItems: 2},
		}, nil
	}

	params := tooldeck.NewQueryParams().WithSearch("issues")
	iterator := tooldeck.NewPageIterator(context.Background(), fetch, params)

	_, err := iterator.All()
	require.NoError(t, err)

	// Every page request carries the caller's options, and the caller's
	// params are not mutated by the page walk.
	assert.Equal(t, []string{"issues", "issues"}, seenSearch)
	assert.Equal(t, 0, params.Page)
}

func TestFetchAllPages(t *testing.T) {
	fetch := pagedFetch(threePagesOfFive())
	ctx := context.Background()

	resources, err := tooldeck.FetchAllPages(ctx, fetch, nil, nil)
	require.NoError(t, err)
	assert.Len(t, resources, 5)
}

func TestFetchAllPages_WithMaxPages(t *testing.T) {
	fetch := pagedFetch(threePagesOfFive())

	options := &tooldeck.PaginationOptions{
		PageSize: 2,
		MaxPages: 2,
	}
	ctx := context.Background()

	resources, err := tooldeck.FetchAllPages(ctx, fetch, nil, options)
	require.NoError(t, err)
	assert.Len(t, resources, 4) // Only first 2 pages
}

func TestStreamPages(t *testing.T) {
	fetch := pagedFetch(map[int]*tooldeck.ListResponse[TestResource]{
		1: {
			Items: []TestResource{
				{ID: "1", Name: "Resource 1"},
				{ID: "2", Name: "Resource 2"},
			},
			Page: tooldeck.PageInfo{Number: 1, Size: 2, TotalPages: 2, TotalItems: 3},
		},
		2: {
			Items: []TestResource{
				{ID: "3", Name: "Resource 3"},
			},
			Page: tooldeck.PageInfo{Number: 2, Size: 2, TotalPages: 2, TotalItems: 3},
		},
	})

	ctx := context.Background()

	resultChan := tooldeck.StreamPages(ctx, fetch, nil, nil)

	var allResources []TestResource
	pageCount := 0

	for result := range resultChan {
		require.NoError(t, result.Err)
		allResources = append(allResources, result.Items...)
		pageCount++
	}

	assert.Equal(t, 2, pageCount)
	assert.Len(t, allResources, 3)
}

func TestStreamPages_DeliversErrorAsFinalResult(t *testing.T) {
	fetchErr := errors.New("backend unavailable")

	fetch := func(ctx context.Context, params *tooldeck.QueryParams) (*tooldeck.ListResponse[TestResource], error) {
		return nil, fetchErr
	}

	results := tooldeck.StreamPages(context.Background(), fetch, nil, nil)

	var last tooldeck.PageResult[TestResource]
	count := 0

	for result := range results {
		last = result
		count++
	}

	assert.Equal(t, 1, count)
	assert.ErrorIs(t, last.Err, fetchErr)
}

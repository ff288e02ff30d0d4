package strato_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/strato-io/strato/pkg/strato"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResource struct {
	ID   string
	Name string
}

func (r testResource) ResourceID() string { return r.ID }

// pageServer fakes a marker-paginated collection.
type pageServer struct {
	items []testResource
	calls int
	seen  []*strato.Query
}

func (s *pageServer) fetch(ctx context.Context, query *strato.Query) ([]testResource, error) {
	s.calls++
	s.seen = append(s.seen, query)

	start := 0

	if marker, ok := query.Get("marker"); ok {
		for i, item := range s.items {
			if item.ID == marker {
				start = i + 1

				break
			}
		}
	}

	end := len(s.items)

	if limitStr, ok := query.Get("limit"); ok {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return nil, err
		}

		if start+limit < end {
			end = start + limit
		}
	}

	return s.items[start:end], nil
}

func makeItems(count int) []testResource {
	items := make([]testResource, count)
	for i := range items {
		items[i] = testResource{ID: "id-" + strconv.Itoa(i+1), Name: "item " + strconv.Itoa(i+1)}
	}

	return items
}

func TestResourceIterator_Next(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(3)}
	iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

	for i := 1; i <= 3; i++ {
		item, err := iterator.Next()
		require.NoError(t, err)
		assert.Equal(t, "id-"+strconv.Itoa(i), item.ID)
	}

	_, err := iterator.Next()
	require.ErrorIs(t, err, strato.ErrNoMoreItems)

	// Exhaustion is sticky.
	_, err = iterator.Next()
	require.ErrorIs(t, err, strato.ErrNoMoreItems)
}

func TestResourceIterator_PagesWithMarker(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(5)}
	iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)
	iterator.SetPageSize(2)

	all, err := iterator.All()
	require.NoError(t, err)
	require.Len(t, all, 5)

	// 5 items in pages of 2 takes exactly 3 requests.
	assert.Equal(t, 3, server.calls)

	// Second page carries the last ID of the first as marker.
	marker, ok := server.seen[1].Get("marker")
	require.True(t, ok)
	assert.Equal(t, "id-2", marker)

	marker, ok = server.seen[2].Get("marker")
	require.True(t, ok)
	assert.Equal(t, "id-4", marker)
}

func TestResourceIterator_DefaultLimit(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(3)}
	iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

	_, err := iterator.Next()
	require.NoError(t, err)

	limit, ok := server.seen[0].Get("limit")
	require.True(t, ok)
	assert.Equal(t, "50", limit)
}

func TestResourceIterator_ManualLimitDisablesPagination(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(5)}
	query := strato.NewQuery().SetInt("limit", 2)
	iterator := strato.NewResourceIterator(context.Background(), server.fetch, query)

	all, err := iterator.All()
	require.NoError(t, err)

	// Single page, exactly as requested, no follow-up fetches.
	assert.Len(t, all, 2)
	assert.Equal(t, 1, server.calls)
}

func TestResourceIterator_ManualMarkerDisablesPagination(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(5)}
	query := strato.NewQuery().Set("marker", "id-3")
	iterator := strato.NewResourceIterator(context.Background(), server.fetch, query)

	all, err := iterator.All()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1, server.calls)
}

func TestResourceIterator_AllFailsWithoutPartialResults(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(5)}

	calls := 0
	fetch := func(ctx context.Context, query *strato.Query) ([]testResource, error) {
		calls++
		if calls > 1 {
			return nil, errServiceDown
		}

		return server.fetch(ctx, query)
	}

	iterator := strato.NewResourceIterator(context.Background(), fetch, nil)
	iterator.SetPageSize(2)

	all, err := iterator.All()
	require.ErrorIs(t, err, errServiceDown)

	// A failed later page yields no items at all, not the pages fetched so
	// far.
	assert.Nil(t, all)
}

func TestResourceIterator_First(t *testing.T) {
	t.Parallel()

	t.Run("returns first item", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{items: makeItems(3)}
		iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

		item, err := iterator.First()
		require.NoError(t, err)
		assert.Equal(t, "id-1", item.ID)
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{}
		iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

		_, err := iterator.First()
		require.ErrorIs(t, err, strato.ErrResourceNotFound)
	})
}

func TestResourceIterator_One(t *testing.T) {
	t.Parallel()

	t.Run("single match", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{items: makeItems(1)}
		iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

		item, err := iterator.One()
		require.NoError(t, err)
		assert.Equal(t, "id-1", item.ID)

		// Overfetches with limit 2 to detect ambiguity in one request.
		require.Len(t, server.seen, 1)
		limit, ok := server.seen[0].Get("limit")
		require.True(t, ok)
		assert.Equal(t, "2", limit)
	})

	t.Run("no match", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{}
		iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

		_, err := iterator.One()
		require.ErrorIs(t, err, strato.ErrResourceNotFound)
	})

	t.Run("ambiguous match", func(t *testing.T) {
		t.Parallel()

		server := &pageServer{items: makeItems(2)}
		iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

		_, err := iterator.One()
		require.ErrorIs(t, err, strato.ErrTooManyItems)
	})
}

func TestResourceIterator_ForEach(t *testing.T) {
	t.Parallel()

	server := &pageServer{items: makeItems(4)}
	iterator := strato.NewResourceIterator(context.Background(), server.fetch, nil)

	var collected []string

	err := iterator.ForEach(func(item testResource) error {
		collected = append(collected, item.ID)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id-1", "id-2", "id-3", "id-4"}, collected)
}

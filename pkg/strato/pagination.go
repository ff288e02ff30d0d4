package strato

import (
	"context"
	"errors"
	"fmt"
)

// DefaultPageLimit is the page size used when the caller did not constrain
// the query.
const DefaultPageLimit = 50

// Pageable is implemented by resources that can be iterated page by page.
// The resource ID feeds the pagination marker.
type Pageable interface {
	ResourceID() string
}

// PageFetcher fetches one page of resources for the given query.
type PageFetcher[T Pageable] func(ctx context.Context, query *Query) ([]T, error)

// ResourceIterator iterates lazily over a paginated collection. Pages are
// fetched on demand; a page shorter than the limit ends the iteration. When
// the caller set "limit" or "marker" on the query themselves, the iterator
// serves exactly that single page.
type ResourceIterator[T Pageable] struct {
	ctx         context.Context
	fetch       PageFetcher[T]
	query       *Query
	limit       int
	marker      string
	canPaginate bool
	buf         []T
	pos         int
	exhausted   bool
}

// NewResourceIterator creates an iterator over the collection served by
// fetch, filtered by query (may be nil).
func NewResourceIterator[T Pageable](ctx context.Context, fetch PageFetcher[T], query *Query) *ResourceIterator[T] {
	cloned := query.Clone()

	return &ResourceIterator[T]{
		ctx:         ctx,
		fetch:       fetch,
		query:       cloned,
		limit:       DefaultPageLimit,
		canPaginate: !cloned.Has("limit") && !cloned.Has("marker"),
	}
}

// SetPageSize overrides the page size used for fetching. It has no effect
// on queries with a manual "limit" or "marker".
func (it *ResourceIterator[T]) SetPageSize(limit int) {
	if limit > 0 {
		it.limit = limit
	}
}

// Next returns the next resource, fetching a new page when the buffered one
// is consumed. It returns ErrNoMoreItems when the collection is exhausted.
func (it *ResourceIterator[T]) Next() (T, error) {
	var zero T

	if it.pos < len(it.buf) {
		item := it.buf[it.pos]
		it.pos++

		return item, nil
	}

	if it.exhausted {
		return zero, ErrNoMoreItems
	}

	query := it.query.Clone()
	if it.canPaginate {
		query.SetInt("limit", it.limit)

		if it.marker != "" {
			query.Set("marker", it.marker)
		}
	}

	items, err := it.fetch(it.ctx, query)
	if err != nil {
		return zero, fmt.Errorf("fetching page: %w", err)
	}

	if !it.canPaginate || len(items) < it.limit {
		it.exhausted = true
	} else {
		it.marker = items[len(items)-1].ResourceID()
	}

	if len(items) == 0 {
		return zero, ErrNoMoreItems
	}

	it.buf = items
	it.pos = 1

	return items[0], nil
}

// All collects the remaining resources.
func (it *ResourceIterator[T]) All() ([]T, error) {
	var all []T

	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return all, nil
		}

		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}
}

// First returns the first resource, or ErrResourceNotFound on an empty
// collection.
func (it *ResourceIterator[T]) First() (T, error) {
	item, err := it.Next()
	if errors.Is(err, ErrNoMoreItems) {
		var zero T

		return zero, ErrResourceNotFound
	}

	return item, err
}

// One returns the only resource in the collection: ErrResourceNotFound when
// it is empty, ErrTooManyItems when it holds more than one. When pagination
// is enabled the page size is capped at two so at most one page is fetched.
func (it *ResourceIterator[T]) One() (T, error) {
	var zero T

	if it.canPaginate {
		it.limit = 2
	}

	item, err := it.Next()
	if errors.Is(err, ErrNoMoreItems) {
		return zero, ErrResourceNotFound
	}

	if err != nil {
		return zero, err
	}

	_, err = it.Next()
	if errors.Is(err, ErrNoMoreItems) {
		return item, nil
	}

	if err != nil {
		return zero, err
	}

	return zero, ErrTooManyItems
}

// ForEach applies fn to every remaining resource, stopping on the first
// error.
func (it *ResourceIterator[T]) ForEach(fn func(T) error) error {
	for {
		item, err := it.Next()
		if errors.Is(err, ErrNoMoreItems) {
			return nil
		}

		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}
}

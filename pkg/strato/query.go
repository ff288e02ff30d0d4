package strato

import (
	"net/url"
	"strconv"
	"strings"
)

// Query holds URL query parameters for list requests. Unlike url.Values it
// preserves insertion order when encoding, so requests are reproducible and
// pagination markers always appear where they were added.
type Query struct {
	pairs []queryPair
}

type queryPair struct {
	key   string
	value string
}

// NewQuery creates an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Set appends or replaces a parameter, keeping the original position on
// replace. Returns the query for chaining.
func (q *Query) Set(key, value string) *Query {
	for i := range q.pairs {
		if q.pairs[i].key == key {
			q.pairs[i].value = value

			return q
		}
	}

	q.pairs = append(q.pairs, queryPair{key: key, value: value})

	return q
}

// SetInt appends or replaces an integer parameter.
func (q *Query) SetInt(key string, value int) *Query {
	return q.Set(key, strconv.Itoa(value))
}

// SetBool appends or replaces a boolean parameter.
func (q *Query) SetBool(key string, value bool) *Query {
	return q.Set(key, strconv.FormatBool(value))
}

// Get returns the value for a key and whether it is present.
func (q *Query) Get(key string) (string, bool) {
	for _, pair := range q.pairs {
		if pair.key == key {
			return pair.value, true
		}
	}

	return "", false
}

// Has checks whether a key is present.
func (q *Query) Has(key string) bool {
	_, ok := q.Get(key)

	return ok
}

// Delete removes a key if present.
func (q *Query) Delete(key string) {
	for i, pair := range q.pairs {
		if pair.key == key {
			q.pairs = append(q.pairs[:i], q.pairs[i+1:]...)

			return
		}
	}
}

// Clone returns an independent copy of the query.
func (q *Query) Clone() *Query {
	if q == nil {
		return NewQuery()
	}

	clone := &Query{pairs: make([]queryPair, len(q.pairs))}
	copy(clone.pairs, q.pairs)

	return clone
}

// IsEmpty reports whether the query has no parameters.
func (q *Query) IsEmpty() bool {
	return q == nil || len(q.pairs) == 0
}

// Encode serializes the query in insertion order with URL escaping.
func (q *Query) Encode() string {
	if q.IsEmpty() {
		return ""
	}

	var builder strings.Builder

	for i, pair := range q.pairs {
		if i > 0 {
			builder.WriteByte('&')
		}

		builder.WriteString(url.QueryEscape(pair.key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(pair.value))
	}

	return builder.String()
}

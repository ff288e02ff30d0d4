package strato

import (
	"encoding/json"
	"sort"
)

// Field is a tri-state value for partial update payloads. A field is either
// absent (omitted from the payload), explicitly null (clears the server-side
// value), or set to a value. With the `omitzero` JSON option absent fields
// disappear from the encoded payload entirely.
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// SetField returns a field holding a value.
func SetField[T any](value T) Field[T] {
	return Field[T]{present: true, value: value}
}

// NullField returns a field that encodes as an explicit JSON null.
func NullField[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// IsZero reports whether the field is absent. Used by encoding/json for the
// omitzero option.
func (f Field[T]) IsZero() bool {
	return !f.present
}

// IsNull reports whether the field holds an explicit null.
func (f Field[T]) IsNull() bool {
	return f.present && f.null
}

// Value returns the held value and whether one is present (null counts as
// not present).
func (f Field[T]) Value() (T, bool) {
	if !f.present || f.null {
		var zero T

		return zero, false
	}

	return f.value, true
}

// MarshalJSON encodes the value, or null for explicitly cleared fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.null {
		return []byte("null"), nil
	}

	return json.Marshal(f.value)
}

// UnmarshalJSON decodes a value or an explicit null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true

	if string(data) == "null" {
		f.null = true

		var zero T
		f.value = zero

		return nil
	}

	f.null = false

	return json.Unmarshal(data, &f.value)
}

// FieldTracker records which fields of a resource handle have local
// modifications pending a Save.
type FieldTracker struct {
	dirty map[string]struct{}
}

// Mark records a field as modified.
func (t *FieldTracker) Mark(name string) {
	if t.dirty == nil {
		t.dirty = make(map[string]struct{})
	}

	t.dirty[name] = struct{}{}
}

// IsDirty reports whether a specific field has pending modifications.
func (t *FieldTracker) IsDirty(name string) bool {
	_, ok := t.dirty[name]

	return ok
}

// Any reports whether any field has pending modifications.
func (t *FieldTracker) Any() bool {
	return len(t.dirty) > 0
}

// Names returns the dirty field names in sorted order.
func (t *FieldTracker) Names() []string {
	names := make([]string, 0, len(t.dirty))
	for name := range t.dirty {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Reset clears all pending modifications.
func (t *FieldTracker) Reset() {
	t.dirty = nil
}

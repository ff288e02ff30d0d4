package strato_test

import (
	"encoding/json"
	"testing"

	"github.com/strato-io/strato/pkg/strato"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_Marshal(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name        strato.Field[string] `json:"name,omitzero"`
		Description strato.Field[string] `json:"description,omitzero"`
		Up          strato.Field[bool]   `json:"admin_state_up,omitzero"`
	}

	t.Run("absent fields are omitted", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(payload{})
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(data))
	})

	t.Run("set fields are encoded", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(payload{
			Name: strato.SetField("web"),
			Up:   strato.SetField(false),
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name": "web", "admin_state_up": false}`, string(data))
	})

	t.Run("null is distinct from absent", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(payload{
			Description: strato.NullField[string](),
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"description": null}`, string(data))
	})
}

func TestField_Value(t *testing.T) {
	t.Parallel()

	set := strato.SetField("value")

	value, ok := set.Value()
	require.True(t, ok)
	assert.Equal(t, "value", value)
	assert.False(t, set.IsZero())
	assert.False(t, set.IsNull())

	null := strato.NullField[string]()
	_, ok = null.Value()
	assert.False(t, ok)
	assert.True(t, null.IsNull())
	assert.False(t, null.IsZero())

	var absent strato.Field[string]

	_, ok = absent.Value()
	assert.False(t, ok)
	assert.True(t, absent.IsZero())
}

func TestField_Unmarshal(t *testing.T) {
	t.Parallel()

	var field strato.Field[int]

	require.NoError(t, json.Unmarshal([]byte("42"), &field))

	value, ok := field.Value()
	require.True(t, ok)
	assert.Equal(t, 42, value)

	require.NoError(t, json.Unmarshal([]byte("null"), &field))
	assert.True(t, field.IsNull())
}

func TestFieldTracker(t *testing.T) {
	t.Parallel()

	var tracker strato.FieldTracker

	assert.False(t, tracker.Any())
	assert.Empty(t, tracker.Names())

	tracker.Mark("name")
	tracker.Mark("description")
	tracker.Mark("name")

	assert.True(t, tracker.Any())
	assert.True(t, tracker.IsDirty("name"))
	assert.False(t, tracker.IsDirty("status"))
	assert.Equal(t, []string{"description", "name"}, tracker.Names())

	tracker.Reset()
	assert.False(t, tracker.Any())
	assert.False(t, tracker.IsDirty("name"))
}

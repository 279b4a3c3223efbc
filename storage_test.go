package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingStorage_SetAndGet(t *testing.T) {
	s := NewEncodingStorage()
	require.NoError(t, s.Set("name", "Alice"))
	require.NoError(t, s.Set("age", "30"))

	v, ok := s.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v)
	assert.Equal(t, []string{"name", "age"}, s.Keys())
	assert.Equal(t, []string{"Alice", "30"}, s.Values())
}

func TestEncodingStorage_UpdateExistingKeyInPlace(t *testing.T) {
	s := NewEncodingStorage()
	require.NoError(t, s.Set("name", "Alice"))
	require.NoError(t, s.Set("name", "Bob"))
	assert.Equal(t, []string{"name"}, s.Keys())
	v, _ := s.Get("name")
	assert.Equal(t, "Bob", v)
}

func TestEncodingStorage_FreezeRejectsNewKeys(t *testing.T) {
	s := NewEncodingStorage()
	require.NoError(t, s.Set("name", "Alice"))
	s.Freeze()
	err := s.Set("age", "30")
	assert.Error(t, err)
}

func TestEncodingStorage_FreezeStillAllowsUpdates(t *testing.T) {
	s := NewEncodingStorage()
	require.NoError(t, s.Set("name", "Alice"))
	s.Freeze()
	require.NoError(t, s.Set("name", "Carol"))
	v, _ := s.Get("name")
	assert.Equal(t, "Carol", v)
}

func TestEncodingStorage_ResetKeepsKeysAndValuesUntilFilled(t *testing.T) {
	s := NewEncodingStorage()
	require.NoError(t, s.Set("name", "Alice"))
	s.Freeze()
	s.Reset()
	assert.Equal(t, []string{"name"}, s.Keys())
	v, ok := s.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Alice", v, "Reset must not blank a value on its own; only FillUntouched may")
}

func TestEncodingStorage_FillUntouched_HonorsGivenNilValue(t *testing.T) {
	s := NewEncodingStorage()
	require.NoError(t, s.Set("name", "Alice"))
	require.NoError(t, s.Set("age", "30"))
	s.Freeze()

	s.Reset()
	require.NoError(t, s.Set("name", "Bob"))
	s.FillUntouched("null")

	name, _ := s.Get("name")
	age, _ := s.Get("age")
	assert.Equal(t, "Bob", name)
	assert.Equal(t, "null", age, "age was omitted this pass, so it must be nil-encoded, not left stale")
}

func TestEncodingStorage_FillUntouched_NoOpWhenEveryKeyTouched(t *testing.T) {
	s := NewEncodingStorage()
	require.NoError(t, s.Set("name", "Alice"))
	s.Freeze()

	s.Reset()
	require.NoError(t, s.Set("name", "Bob"))
	s.FillUntouched("null")

	name, _ := s.Get("name")
	assert.Equal(t, "Bob", name)
}

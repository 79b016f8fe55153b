package pinstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleRoundTrip(t *testing.T) {
	s := New(NewMemKV())

	pinned, err := s.Toggle("admin", "item-1")
	require.NoError(t, err)
	assert.True(t, pinned)

	pins, err := s.Pins("admin")
	require.NoError(t, err)
	assert.True(t, pins["item-1"])

	pinned, err = s.Toggle("admin", "item-1")
	require.NoError(t, err)
	assert.False(t, pinned)

	pins, err = s.Pins("admin")
	require.NoError(t, err)
	assert.Empty(t, pins)
}

func TestPinIdempotent(t *testing.T) {
	s := New(NewMemKV())

	require.NoError(t, s.Pin("admin", "a"))
	require.NoError(t, s.Pin("admin", "a"))
	require.NoError(t, s.Unpin("admin", "missing"))

	pins, err := s.Pins("admin")
	require.NoError(t, err)
	assert.Len(t, pins, 1)
}

func TestNamespacesAreIsolated(t *testing.T) {
	s := New(NewMemKV())

	require.NoError(t, s.Pin("admin", "a"))
	require.NoError(t, s.Pin("admin-management", "b"))

	adminPins, err := s.Pins("admin")
	require.NoError(t, err)
	mgmtPins, err := s.Pins("admin-management")
	require.NoError(t, err)

	assert.True(t, adminPins["a"])
	assert.False(t, adminPins["b"])
	assert.True(t, mgmtPins["b"])
}

// Persisted state is membership only: toggling back and forth leaves the
// same bytes as never having toggled at all.
func TestPersistedStateHasNoHistory(t *testing.T) {
	kv := NewMemKV()
	s := New(kv)

	require.NoError(t, s.Pin("admin", "a"))
	baseline, err := kv.Get("pins:admin")
	require.NoError(t, err)

	_, err = s.Toggle("admin", "b")
	require.NoError(t, err)
	_, err = s.Toggle("admin", "b")
	require.NoError(t, err)

	after, err := kv.Get("pins:admin")
	require.NoError(t, err)
	assert.Equal(t, baseline, after)
}

func TestFileKVSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "pins")

	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	require.NoError(t, New(kv).Pin("admin", "item-1"))

	kv2, err := NewFileKV(dir)
	require.NoError(t, err)
	pins, err := New(kv2).Pins("admin")
	require.NoError(t, err)
	assert.True(t, pins["item-1"])
}

func TestMissingKeyIsEmptySet(t *testing.T) {
	s := New(NewMemKV())
	pins, err := s.Pins("never-written")
	require.NoError(t, err)
	assert.Empty(t, pins)
}

package progress

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/drill/internal/deck"
	"github.com/abhisek/drill/internal/store"
)

// memKV is an in-memory KV for tests.
type memKV struct {
	data   map[string][]byte
	getErr error
	putErr error
	puts   int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.puts++
	m.data[key] = value
	return nil
}

func TestLoadAbsentIsEmpty(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	st := s.Load(context.Background())
	assert.Empty(t, st.Status)
	assert.Empty(t, st.Reveal)
	assert.NotNil(t, st.Status)
	assert.NotNil(t, st.Reveal)
}

func TestLoadFailsClosed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not json"},
		{"truncated", `{"status":{"1":"do`},
		{"wrong types", `{"status":["done"],"reveal":"yes"}`},
		{"top level array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemKV()
			kv.data[Key] = []byte(tt.raw)

			st := NewStore(kv, nil).Load(context.Background())
			assert.Empty(t, st.Status)
			assert.Empty(t, st.Reveal)
		})
	}
}

func TestLoadReadErrorIsEmpty(t *testing.T) {
	kv := newMemKV()
	kv.getErr = errors.New("disk gone")

	st := NewStore(kv, nil).Load(context.Background())
	assert.Empty(t, st.Status)
}

func TestLoadDropsUnknownStatusValues(t *testing.T) {
	kv := newMemKV()
	kv.data[Key] = []byte(`{"status":{"1":"done","2":"maybe","3":"again"},"reveal":{"1":true}}`)

	st := NewStore(kv, nil).Load(context.Background())
	assert.Equal(t, map[string]Status{"1": StatusDone, "3": StatusAgain}, st.Status)
	assert.True(t, st.Revealed("1"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	ctx := context.Background()

	want := NewState()
	want.Status["a"] = StatusDone
	want.Status["b"] = StatusAgain
	want.Reveal["a"] = true
	want.Reveal["c"] = false

	require.NoError(t, s.Save(ctx, want))
	assert.Equal(t, want, s.Load(ctx))
}

func TestMarkStatus(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	ctx := context.Background()

	require.NoError(t, s.MarkStatus(ctx, "10", StatusAgain))
	require.NoError(t, s.MarkStatus(ctx, "10", StatusDone))

	st := s.Load(ctx)
	assert.Equal(t, StatusDone, st.StatusOf("10"))
	assert.False(t, st.Revealed("10"))
}

func TestMarkStatusRejectsInvalid(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv, nil)

	err := s.MarkStatus(context.Background(), "10", Status("skip"))
	assert.True(t, errors.Is(err, ErrInvalidStatus))
	assert.Zero(t, kv.puts)

	err = s.MarkStatus(context.Background(), "10", StatusUnset)
	assert.True(t, errors.Is(err, ErrInvalidStatus))
}

func TestToggleReveal(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	ctx := context.Background()

	require.NoError(t, s.MarkStatus(ctx, "5", StatusAgain))

	got, err := s.ToggleReveal(ctx, "5")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = s.ToggleReveal(ctx, "5")
	require.NoError(t, err)
	assert.False(t, got)

	st := s.Load(ctx)
	assert.False(t, st.Revealed("5"))
	// Toggling twice leaves the mark alone.
	assert.Equal(t, StatusAgain, st.StatusOf("5"))
}

func TestResetBucket(t *testing.T) {
	s := NewStore(newMemKV(), nil)
	ctx := context.Background()

	for _, id := range []deck.CardID{"1", "2", "3"} {
		require.NoError(t, s.MarkStatus(ctx, id, StatusDone))
		_, err := s.ToggleReveal(ctx, id)
		require.NoError(t, err)
	}

	require.NoError(t, s.ResetBucket(ctx, []deck.CardID{"1", "3", "not-there"}))

	st := s.Load(ctx)
	assert.Equal(t, StatusUnset, st.StatusOf("1"))
	assert.False(t, st.Revealed("1"))
	assert.Equal(t, StatusUnset, st.StatusOf("3"))
	assert.Equal(t, StatusDone, st.StatusOf("2"))
	assert.True(t, st.Revealed("2"))
	assert.Len(t, st.Status, 1)
	assert.Len(t, st.Reveal, 1)
}

func TestWriteErrorsSurface(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv, nil)
	ctx := context.Background()
	kv.putErr = errors.New("quota exceeded")

	assert.Error(t, s.MarkStatus(ctx, "1", StatusDone))
	assert.Error(t, s.ResetBucket(ctx, []deck.CardID{"1"}))

	got, err := s.ToggleReveal(ctx, "1")
	assert.Error(t, err)
	assert.False(t, got)

	assert.Empty(t, s.Load(ctx).Status)
}

func TestMarkOverwritesCorruptSlot(t *testing.T) {
	kv := newMemKV()
	kv.data[Key] = []byte("garbage")
	s := NewStore(kv, nil)
	ctx := context.Background()

	require.NoError(t, s.MarkStatus(ctx, "1", StatusDone))
	assert.Equal(t, StatusDone, s.Load(ctx).StatusOf("1"))
}

func TestStoreOverSQLite(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	s := NewStore(db.KV(), nil)

	require.NoError(t, s.MarkStatus(ctx, "10", StatusDone))
	_, err = s.ToggleReveal(ctx, "11")
	require.NoError(t, err)

	// A second accessor over the same slot sees the same document.
	st := NewStore(db.KV(), nil).Load(ctx)
	assert.Equal(t, StatusDone, st.StatusOf("10"))
	assert.True(t, st.Revealed("11"))

	raw, ok, err := db.KV().Get(ctx, Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"status":{"10":"done"},"reveal":{"11":true}}`, string(raw))
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := OpenInMemory(ttl, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx := context.Background()
	key := Key("https://en.wikipedia.org/w/api.php?action=query&srsearch=python")

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, key, []byte(`{"query":{}}`)))

	got, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"query":{}}`, string(got))
}

func TestStore_Expiry(t *testing.T) {
	s := openTestStore(t, time.Second)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "k", []byte("v")))
	// badger TTLs have one-second resolution
	time.Sleep(2100 * time.Millisecond)

	_, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CancelledContext(t *testing.T) {
	s := openTestStore(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Put(ctx, "k", []byte("v")), context.Canceled)
}

func TestKey(t *testing.T) {
	a := Key("https://en.wikipedia.org/w/api.php?a=1")
	assert.Equal(t, a, Key("https://en.wikipedia.org/w/api.php?a=1"))
	assert.NotEqual(t, a, Key("https://en.wikipedia.org/w/api.php?a=2"))
	assert.Len(t, a, len(keyPrefix)+64)
}

func TestOpen_RequiresDir(t *testing.T) {
	_, err := Open("", time.Hour, nil)
	assert.Error(t, err)
}

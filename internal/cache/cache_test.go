package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupManager(t *testing.T, cfg Config) (*Manager, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	m, err := NewManager(cfg, nil, WithClock(clock.Now))
	require.NoError(t, err)
	return m, clock
}

func TestNewManagerDefaults(t *testing.T) {
	m, err := NewManager(Config{}, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxSize, m.Config().MaxSize)
	assert.Equal(t, DefaultTTL, m.Config().TTL)
	assert.ElementsMatch(t, DefaultTypes, m.Types())
}

func TestAddAndGet(t *testing.T) {
	m, _ := setupManager(t, Config{MaxSize: 10, TTL: time.Minute})

	require.NoError(t, m.Add(ComponentSearch, "k", "v"))

	got, ok, err := m.Get(ComponentSearch, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok, err = m.Get(ComponentDetails, "k")
	require.NoError(t, err)
	assert.False(t, ok, "buckets must be independent")
}

func TestUnknownBucket(t *testing.T) {
	m, _ := setupManager(t, Config{})

	err := m.Add(Type("nope"), "k", 1)
	assert.True(t, errors.Is(err, ErrUnknownBucket))

	_, _, err = m.Get(Type("nope"), "k")
	assert.True(t, errors.Is(err, ErrUnknownBucket))

	err = m.Clear(Type("nope"))
	assert.True(t, errors.Is(err, ErrUnknownBucket))
}

func TestExpiry(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		wantHit bool
	}{
		{"fresh", 0, true},
		{"just before ttl", time.Minute - time.Millisecond, true},
		{"exactly ttl", time.Minute, false},
		{"past ttl", 2 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, clock := setupManager(t, Config{MaxSize: 10, TTL: time.Minute})
			require.NoError(t, m.Add(Documentation, "k", 42))

			clock.Advance(tt.advance)
			_, ok, err := m.Get(Documentation, "k")
			require.NoError(t, err)
			assert.Equal(t, tt.wantHit, ok)

			if !tt.wantHit {
				assert.False(t, m.Has(Documentation, "k"), "expired entry should be deleted on read")
			}
		})
	}
}

func TestIsEntryValid(t *testing.T) {
	m, clock := setupManager(t, Config{MaxSize: 1, TTL: time.Second})

	e := Entry{Value: 1, Timestamp: clock.Now()}
	assert.True(t, m.IsEntryValid(e))

	clock.Advance(time.Second)
	assert.False(t, m.IsEntryValid(e))
}

func TestEvictsEarliestInserted(t *testing.T) {
	m, _ := setupManager(t, Config{MaxSize: 3, TTL: time.Hour})

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Add(Examples, fmt.Sprintf("k%d", i), i))
	}

	// Reads do not refresh position.
	_, ok, err := m.Get(Examples, "k0")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, m.Add(Examples, "k3", 3))

	assert.Equal(t, 3, m.Len(Examples))
	assert.False(t, m.Has(Examples, "k0"))
	for _, k := range []string{"k1", "k2", "k3"} {
		assert.True(t, m.Has(Examples, k), k)
	}
}

func TestReAddDoesNotEvict(t *testing.T) {
	m, _ := setupManager(t, Config{MaxSize: 2, TTL: time.Hour})

	require.NoError(t, m.Add(PatternCode, "a", 1))
	require.NoError(t, m.Add(PatternCode, "b", 2))
	require.NoError(t, m.Add(PatternCode, "a", 3))

	assert.Equal(t, 2, m.Len(PatternCode))
	got, ok, err := m.Get(PatternCode, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, got)

	// "a" is now newer than "b".
	require.NoError(t, m.Add(PatternCode, "c", 4))
	assert.False(t, m.Has(PatternCode, "b"))
	assert.True(t, m.Has(PatternCode, "a"))
}

func TestClear(t *testing.T) {
	m, _ := setupManager(t, Config{})

	require.NoError(t, m.Add(ComponentSearch, "a", 1))
	require.NoError(t, m.Add(ComponentCode, "b", 2))

	require.NoError(t, m.Clear(ComponentSearch))
	assert.Equal(t, 0, m.Len(ComponentSearch))
	assert.Equal(t, 1, m.Len(ComponentCode))

	require.NoError(t, m.Clear())
	assert.Equal(t, 0, m.Len(ComponentCode))
}

func TestClearWithUnknownBucketIsAtomic(t *testing.T) {
	m, _ := setupManager(t, Config{})

	require.NoError(t, m.Add(ComponentSearch, "a", 1))
	require.NoError(t, m.Add(ComponentCode, "b", 2))

	err := m.Clear(ComponentSearch, Type("nope"), ComponentCode)
	require.ErrorIs(t, err, ErrUnknownBucket)
	assert.Equal(t, 1, m.Len(ComponentSearch))
	assert.Equal(t, 1, m.Len(ComponentCode))
}

func TestKey(t *testing.T) {
	a, err := Key(ComponentSearch, map[string]any{"query": "button", "limit": 10})
	require.NoError(t, err)
	b, err := Key(ComponentSearch, map[string]any{"limit": 10, "query": "button"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, `componentSearch:{"limit":10,"query":"button"}`, a)

	_, err = Key(ComponentSearch, make(chan int))
	assert.Error(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	m, _ := setupManager(t, Config{MaxSize: 50, TTL: time.Hour})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*200+i)%120)
				_ = m.Add(ComponentSearch, key, i)
				_, _, _ = m.Get(ComponentSearch, key)
			}
		}(g)
	}
	wg.Wait()

	assert.LessOrEqual(t, m.Len(ComponentSearch), 50)
}

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"

	"github.com/dshills/cloudscape-mcp/internal/metrics"
)

// Type names a cache bucket.
type Type string

// Buckets created by every Manager.
const (
	ComponentSearch  Type = "componentSearch"
	ComponentDetails Type = "componentDetails"
	ComponentCode    Type = "componentCode"
	PatternCode      Type = "patternCode"
	Documentation    Type = "documentation"
	Examples         Type = "examples"
)

// DefaultTypes lists the buckets a Manager creates when no explicit set is given.
var DefaultTypes = []Type{
	ComponentSearch,
	ComponentDetails,
	ComponentCode,
	PatternCode,
	Documentation,
	Examples,
}

// Defaults applied when Config fields are zero.
const (
	DefaultMaxSize = 1000
	DefaultTTL     = time.Hour
)

// ErrUnknownBucket is returned when an operation names a bucket the Manager does not own.
var ErrUnknownBucket = errors.New("unknown cache bucket")

// Config bounds every bucket of a Manager.
type Config struct {
	MaxSize int
	TTL     time.Duration
}

// Entry is a cached value and the time it was stored.
type Entry struct {
	Value     any
	Timestamp time.Time
}

type bucket struct {
	mu      sync.Mutex
	entries *simplelru.LRU[string, Entry]
}

// Manager owns the cache buckets. It is safe for concurrent use.
type Manager struct {
	config  Config
	buckets map[Type]*bucket
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for timestamps and expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager with one bucket per type. When types is empty
// DefaultTypes is used.
func NewManager(cfg Config, types []Type, opts ...Option) (*Manager, error) {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if len(types) == 0 {
		types = DefaultTypes
	}

	m := &Manager{
		config:  cfg,
		buckets: make(map[Type]*bucket, len(types)),
		now:     time.Now,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	for _, t := range types {
		// Eviction is done explicitly in Add; the LRU never overflows on its own.
		lru, err := simplelru.NewLRU[string, Entry](cfg.MaxSize, nil)
		if err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", t, err)
		}
		m.buckets[t] = &bucket{entries: lru}
	}

	return m, nil
}

// Config returns the limits the Manager was built with.
func (m *Manager) Config() Config {
	return m.config
}

// IsEntryValid reports whether e is younger than the TTL.
func (m *Manager) IsEntryValid(e Entry) bool {
	return m.now().Sub(e.Timestamp) < m.config.TTL
}

// Get returns the value stored under key if present and not expired.
// Expired entries are removed.
func (m *Manager) Get(t Type, key string) (any, bool, error) {
	b, err := m.bucket(t)
	if err != nil {
		return nil, false, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries.Peek(key)
	if !ok {
		metrics.CacheRequestsTotal.WithLabelValues(string(t), metrics.ResultMiss).Inc()
		return nil, false, nil
	}
	if !m.IsEntryValid(e) {
		b.entries.Remove(key)
		metrics.CacheRequestsTotal.WithLabelValues(string(t), metrics.ResultExpired).Inc()
		metrics.CacheEntries.WithLabelValues(string(t)).Set(float64(b.entries.Len()))
		return nil, false, nil
	}

	metrics.CacheRequestsTotal.WithLabelValues(string(t), metrics.ResultHit).Inc()
	return e.Value, true, nil
}

// Add stores value under key. A full bucket first evicts its earliest-inserted
// entry. Re-adding an existing key replaces it as a fresh insertion.
func (m *Manager) Add(t Type, key string, value any) error {
	b, err := m.bucket(t)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries.Remove(key)
	if b.entries.Len() >= m.config.MaxSize {
		if oldest, _, ok := b.entries.RemoveOldest(); ok {
			metrics.CacheEvictionsTotal.WithLabelValues(string(t)).Inc()
			m.logger.Debug("cache eviction",
				zap.String("bucket", string(t)),
				zap.String("key", oldest))
		}
	}
	b.entries.Add(key, Entry{Value: value, Timestamp: m.now()})
	metrics.CacheEntries.WithLabelValues(string(t)).Set(float64(b.entries.Len()))

	return nil
}

// Clear empties the named buckets, or every bucket when none are named.
func (m *Manager) Clear(types ...Type) error {
	if len(types) == 0 {
		for t := range m.buckets {
			types = append(types, t)
		}
	}

	// Resolve every name first so an unknown one leaves all buckets intact.
	targets := make([]*bucket, 0, len(types))
	for _, t := range types {
		b, err := m.bucket(t)
		if err != nil {
			return err
		}
		targets = append(targets, b)
	}

	for i, b := range targets {
		b.mu.Lock()
		b.entries.Purge()
		b.mu.Unlock()
		metrics.CacheEntries.WithLabelValues(string(types[i])).Set(0)
	}

	m.logger.Info("cache cleared", zap.Int("buckets", len(types)))
	return nil
}

// Len returns the number of entries in a bucket, expired ones included.
func (m *Manager) Len(t Type) int {
	b, err := m.bucket(t)
	if err != nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries.Len()
}

// Has reports whether the bucket currently holds key, expired or not.
func (m *Manager) Has(t Type, key string) bool {
	b, err := m.bucket(t)
	if err != nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.entries.Contains(key)
}

// Types returns the buckets owned by the Manager.
func (m *Manager) Types() []Type {
	out := make([]Type, 0, len(m.buckets))
	for t := range m.buckets {
		out = append(out, t)
	}
	return out
}

func (m *Manager) bucket(t Type) (*bucket, error) {
	b, ok := m.buckets[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, t)
	}
	return b, nil
}

// Key derives the cache key for args in bucket t.
func Key(t Type, args any) (string, error) {
	data, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("encode cache key: %w", err)
	}
	return string(t) + ":" + string(data), nil
}

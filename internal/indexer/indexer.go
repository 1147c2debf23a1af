package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/cloudscape-mcp/internal/catalog"
	"github.com/dshills/cloudscape-mcp/internal/storage"
)

// ErrIndexingInProgress is returned when a load is started while another is running.
var ErrIndexingInProgress = errors.New("catalogue load already in progress")

// Indexer loads catalogue files into storage: read -> decode -> validate -> store
type Indexer struct {
	storage storage.Storage
	logger  *zap.Logger
	lock    IndexLock
	now     func() time.Time

	// Worker pool configuration
	workers int
}

// Config contains configuration for a single load
type Config struct {
	Workers int  // Number of concurrent decoders (default: runtime.NumCPU())
	Force   bool // Reload sources whose content hash is unchanged
}

// Statistics contains statistics about the load operation
type Statistics struct {
	SourcesLoaded  int
	SourcesSkipped int
	SourcesFailed  int

	ComponentsStored int
	CategoriesStored int
	PatternsStored   int
	ExamplesStored   int

	Duration      time.Duration
	ErrorMessages []string
}

// Option configures an Indexer
type Option func(*Indexer)

// WithLogger sets the logger used for load progress
func WithLogger(l *zap.Logger) Option {
	return func(idx *Indexer) {
		if l != nil {
			idx.logger = l
		}
	}
}

// WithClock overrides the time source used for source timestamps
func WithClock(now func() time.Time) Option {
	return func(idx *Indexer) {
		if now != nil {
			idx.now = now
		}
	}
}

// New creates a new Indexer instance
func New(store storage.Storage, opts ...Option) *Indexer {
	idx := &Indexer{
		storage: store,
		logger:  zap.NewNop(),
		now:     time.Now,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// decoded is the outcome of reading one source file
type decoded struct {
	name string
	hash [32]byte
	doc  *catalog.Document
	err  error
	skip bool
}

// IndexCatalog loads the named files from fsys. When names is empty the
// standard seed file set is used. Files that fail to decode or validate are
// reported in the statistics and do not abort the load; a storage failure
// rolls back every record written by the call.
func (idx *Indexer) IndexCatalog(ctx context.Context, fsys fs.FS, names []string, config *Config) (*Statistics, error) {
	if !idx.lock.TryAcquire() {
		return nil, ErrIndexingInProgress
	}
	defer idx.lock.Release()

	if config == nil {
		config = &Config{}
	}
	if len(names) == 0 {
		names = catalog.Files
	}

	start := time.Now()
	stats := &Statistics{}

	results, err := idx.decodeSources(ctx, fsys, names, config)
	if err != nil {
		return nil, err
	}

	var pending []*decoded
	for _, r := range results {
		switch {
		case r.err != nil:
			stats.SourcesFailed++
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", r.name, r.err))
			idx.logger.Warn("catalogue source rejected", zap.String("source", r.name), zap.Error(r.err))
		case r.skip:
			stats.SourcesSkipped++
		default:
			pending = append(pending, r)
		}
	}

	if len(pending) > 0 {
		if err := idx.store(ctx, pending, stats); err != nil {
			return nil, err
		}
	}
	stats.SourcesLoaded = len(pending)
	stats.Duration = time.Since(start)

	idx.logger.Info("catalogue loaded",
		zap.Int("loaded", stats.SourcesLoaded),
		zap.Int("skipped", stats.SourcesSkipped),
		zap.Int("failed", stats.SourcesFailed),
		zap.Int("components", stats.ComponentsStored),
		zap.Duration("duration", stats.Duration))

	return stats, nil
}

// decodeSources reads, hashes and decodes every file concurrently.
// Results keep the order of names.
func (idx *Indexer) decodeSources(ctx context.Context, fsys fs.FS, names []string, config *Config) ([]*decoded, error) {
	workers := config.Workers
	if workers <= 0 {
		workers = idx.workers
	}

	// Create worker pool with semaphore
	semaphore := make(chan struct{}, workers)
	results := make([]*decoded, len(names))
	var skipped int32

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			r, err := idx.decodeSource(gctx, fsys, name, config.Force)
			if err != nil {
				return err
			}
			if r.skip {
				atomic.AddInt32(&skipped, 1)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	idx.logger.Debug("catalogue sources decoded",
		zap.Int("sources", len(names)), zap.Int32("unchanged", skipped))
	return results, nil
}

// decodeSource handles one file. Only storage errors are returned; content
// problems are carried in the result.
func (idx *Indexer) decodeSource(ctx context.Context, fsys fs.FS, name string, force bool) (*decoded, error) {
	r := &decoded{name: name}

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		r.err = err
		return r, nil
	}
	r.hash = sha256.Sum256(data)

	if !force {
		unchanged, err := idx.checkSourceUnchanged(ctx, name, r.hash)
		if err != nil {
			return nil, err
		}
		if unchanged {
			r.skip = true
			return r, nil
		}
	}

	doc, err := catalog.Decode(data)
	if err != nil {
		r.err = err
		return r, nil
	}
	if err := doc.Validate(); err != nil {
		r.err = err
		return r, nil
	}
	r.doc = doc
	return r, nil
}

// checkSourceUnchanged reports whether the stored hash for name matches hash
func (idx *Indexer) checkSourceUnchanged(ctx context.Context, name string, hash [32]byte) (bool, error) {
	existing, err := idx.storage.GetSource(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read source %s: %w", name, err)
	}
	return existing.ContentHash == hash, nil
}

// store writes all pending documents in one transaction. Components are
// written before examples so example references resolve.
func (idx *Indexer) store(ctx context.Context, pending []*decoded, stats *Statistics) error {
	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, r := range pending {
		for _, c := range r.doc.Components {
			if err := tx.UpsertComponent(ctx, c); err != nil {
				return fmt.Errorf("%s: component %s: %w", r.name, c.ID, err)
			}
			stats.ComponentsStored++
		}
	}
	for _, r := range pending {
		for _, c := range r.doc.Categories {
			if err := tx.UpsertCategory(ctx, c); err != nil {
				return fmt.Errorf("%s: category %s: %w", r.name, c.ID, err)
			}
			stats.CategoriesStored++
		}
		for _, p := range r.doc.Patterns {
			if err := tx.UpsertPattern(ctx, p); err != nil {
				return fmt.Errorf("%s: pattern %s: %w", r.name, p.ID, err)
			}
			stats.PatternsStored++
		}
	}
	for _, r := range pending {
		for _, e := range r.doc.Examples {
			if err := tx.UpsertExample(ctx, e); err != nil {
				return fmt.Errorf("%s: example %s: %w", r.name, e.ID, err)
			}
			stats.ExamplesStored++
		}
	}

	loadedAt := idx.now()
	for _, r := range pending {
		src := &storage.Source{
			Name:        r.name,
			ContentHash: r.hash,
			RecordCount: r.doc.Len(),
			LoadedAt:    loadedAt,
		}
		if err := tx.UpsertSource(ctx, src); err != nil {
			return fmt.Errorf("failed to record source %s: %w", r.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Loading reports whether a load is currently running
func (idx *Indexer) Loading() bool {
	return idx.lock.Held()
}

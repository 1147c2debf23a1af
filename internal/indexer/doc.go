// Package indexer loads the Cloudscape component catalogue into storage.
//
// The indexer reads catalogue YAML files from any fs.FS (the embedded seed
// by default), decodes and validates them on a bounded worker pool, and
// writes every accepted record in a single transaction.
//
// # Basic Usage
//
//	idx := indexer.New(store, indexer.WithLogger(log))
//
//	stats, err := idx.IndexCatalog(ctx, catalog.Seed(), nil, nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Loaded %d components in %v\n", stats.ComponentsStored, stats.Duration)
//
// # Load Pipeline
//
//  1. Read: each source file is read and hashed with SHA-256
//  2. Incremental Decision: sources whose hash matches the stored one are skipped
//  3. Decode & Validate: YAML is decoded strictly and identifiers checked
//  4. Store: components, then categories and patterns, then examples
//
// A source that fails to decode or validate is reported in
// Statistics.ErrorMessages and the remaining sources still load. A storage
// error rolls back the whole load.
//
// # Concurrency
//
// Only one load may run per Indexer. A second concurrent call returns
// ErrIndexingInProgress immediately instead of queueing.
package indexer

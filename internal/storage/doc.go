// Package storage provides SQLite-based persistence for the component catalogue.
//
// The storage layer manages:
//   - Components, with properties, events, functions and regions stored as JSON columns
//   - Categories
//   - Patterns and their customization options
//   - Examples, linked to their component
//   - Loaded catalogue sources and their content hashes
//
// # Database Schema
//
// Tables:
//   - components: Component definitions keyed by id
//   - categories: Category definitions and member component ids
//   - patterns: Pattern templates
//   - examples: Code examples (component_id references components)
//   - sources: Seed files already loaded (name, SHA-256 hash, record count)
//   - schema_version: Applied migrations
//
// Migrations are versioned with semantic versions and applied in order by
// NewSQLiteStorage. The current version is CurrentSchemaVersion.
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("catalog.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	components, err := db.ListComponents(ctx)
//
// # Transactions
//
// Use transactions for atomic catalogue loads:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	for _, c := range components {
//	    if err := tx.UpsertComponent(ctx, c); err != nil {
//	        return err
//	    }
//	}
//	return tx.Commit()
//
// Nested transactions are not supported.
//
// # Build Modes
//
// The default build uses modernc.org/sqlite (pure Go). Building with the
// sqlite_cgo tag switches to github.com/mattn/go-sqlite3.
//
// Use ":memory:" as the path for a throwaway database; the pool is limited
// to one connection so every query sees the same in-memory database.
package storage

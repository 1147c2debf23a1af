package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrNestedTx is returned when BeginTx is called on a transaction
	ErrNestedTx = errors.New("nested transactions not supported")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// A single connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// rowScanner is implemented by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// toJSON encodes a nested definition for a JSON column
func toJSON(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// fromJSON decodes a JSON column, treating empty text as absent
func fromJSON(s string, v interface{}) error {
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), v)
}

// Component operations

const componentColumns = `id, name, version, category, description, import_path, is_experimental,
	tags, related_components, properties, events, functions, regions, examples, usage_guidelines`

func (s *SQLiteStorage) upsertComponentWithQuerier(ctx context.Context, q querier, c *types.Component) error {
	cols := make([]string, 7)
	for i, v := range []interface{}{c.Tags, c.RelatedComponents, c.Properties, c.Events, c.Functions, c.Regions, c.Examples} {
		encoded, err := toJSON(v)
		if err != nil {
			return fmt.Errorf("failed to encode component %s: %w", c.ID, err)
		}
		cols[i] = encoded
	}

	query := `
		INSERT INTO components (` + componentColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			category = excluded.category,
			description = excluded.description,
			import_path = excluded.import_path,
			is_experimental = excluded.is_experimental,
			tags = excluded.tags,
			related_components = excluded.related_components,
			properties = excluded.properties,
			events = excluded.events,
			functions = excluded.functions,
			regions = excluded.regions,
			examples = excluded.examples,
			usage_guidelines = excluded.usage_guidelines,
			updated_at = excluded.updated_at
	`
	_, err := q.ExecContext(ctx, query,
		c.ID, c.Name, c.Version, c.Category, c.Description, c.ImportPath, c.IsExperimental,
		cols[0], cols[1], cols[2], cols[3], cols[4], cols[5], cols[6], c.UsageGuidelines,
		time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert component %s: %w", c.ID, err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertComponent(ctx context.Context, component *types.Component) error {
	return s.upsertComponentWithQuerier(ctx, s.querier(), component)
}

func scanComponent(row rowScanner) (*types.Component, error) {
	var c types.Component
	var version, category, description, importPath, guidelines sql.NullString
	var tags, related, props, events, funcs, regions, examples string

	err := row.Scan(
		&c.ID, &c.Name, &version, &category, &description, &importPath, &c.IsExperimental,
		&tags, &related, &props, &events, &funcs, &regions, &examples, &guidelines,
	)
	if err != nil {
		return nil, err
	}

	c.Version = version.String
	c.Category = category.String
	c.Description = description.String
	c.ImportPath = importPath.String
	c.UsageGuidelines = guidelines.String

	decode := []struct {
		raw string
		dst interface{}
	}{
		{tags, &c.Tags},
		{related, &c.RelatedComponents},
		{props, &c.Properties},
		{events, &c.Events},
		{funcs, &c.Functions},
		{regions, &c.Regions},
		{examples, &c.Examples},
	}
	for _, d := range decode {
		if err := fromJSON(d.raw, d.dst); err != nil {
			return nil, fmt.Errorf("failed to decode component %s: %w", c.ID, err)
		}
	}

	return &c, nil
}

func (s *SQLiteStorage) getComponentWithQuerier(ctx context.Context, q querier, id string) (*types.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components WHERE id = ?`
	c, err := scanComponent(q.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SQLiteStorage) GetComponent(ctx context.Context, id string) (*types.Component, error) {
	return s.getComponentWithQuerier(ctx, s.querier(), id)
}

func (s *SQLiteStorage) listComponentsWithQuerier(ctx context.Context, q querier) ([]*types.Component, error) {
	query := `SELECT ` + componentColumns + ` FROM components ORDER BY id`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	var components []*types.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	return components, rows.Err()
}

func (s *SQLiteStorage) ListComponents(ctx context.Context) ([]*types.Component, error) {
	return s.listComponentsWithQuerier(ctx, s.querier())
}

func (s *SQLiteStorage) deleteComponentWithQuerier(ctx context.Context, q querier, id string) error {
	_, err := q.ExecContext(ctx, "DELETE FROM components WHERE id = ?", id)
	return err
}

func (s *SQLiteStorage) DeleteComponent(ctx context.Context, id string) error {
	return s.deleteComponentWithQuerier(ctx, s.querier(), id)
}

// Category operations

func (s *SQLiteStorage) upsertCategoryWithQuerier(ctx context.Context, q querier, c *types.Category) error {
	components, err := toJSON(c.Components)
	if err != nil {
		return fmt.Errorf("failed to encode category %s: %w", c.ID, err)
	}

	query := `
		INSERT INTO categories (id, name, description, components, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			components = excluded.components,
			updated_at = excluded.updated_at
	`
	if _, err := q.ExecContext(ctx, query, c.ID, c.Name, c.Description, components, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert category %s: %w", c.ID, err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertCategory(ctx context.Context, category *types.Category) error {
	return s.upsertCategoryWithQuerier(ctx, s.querier(), category)
}

func scanCategory(row rowScanner) (*types.Category, error) {
	var c types.Category
	var description sql.NullString
	var components string
	if err := row.Scan(&c.ID, &c.Name, &description, &components); err != nil {
		return nil, err
	}
	c.Description = description.String
	if err := fromJSON(components, &c.Components); err != nil {
		return nil, fmt.Errorf("failed to decode category %s: %w", c.ID, err)
	}
	return &c, nil
}

func (s *SQLiteStorage) GetCategory(ctx context.Context, id string) (*types.Category, error) {
	query := `SELECT id, name, description, components FROM categories WHERE id = ?`
	c, err := scanCategory(s.querier().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SQLiteStorage) listCategoriesWithQuerier(ctx context.Context, q querier) ([]*types.Category, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, description, components FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*types.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *SQLiteStorage) ListCategories(ctx context.Context) ([]*types.Category, error) {
	return s.listCategoriesWithQuerier(ctx, s.querier())
}

// Pattern operations

func (s *SQLiteStorage) upsertPatternWithQuerier(ctx context.Context, q querier, p *types.Pattern) error {
	components, err := toJSON(p.Components)
	if err != nil {
		return fmt.Errorf("failed to encode pattern %s: %w", p.ID, err)
	}
	options, err := toJSON(p.CustomizationOptions)
	if err != nil {
		return fmt.Errorf("failed to encode pattern %s: %w", p.ID, err)
	}

	query := `
		INSERT INTO patterns (id, name, description, components, code, customization_options, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			components = excluded.components,
			code = excluded.code,
			customization_options = excluded.customization_options,
			updated_at = excluded.updated_at
	`
	_, err = q.ExecContext(ctx, query, p.ID, p.Name, p.Description, components, p.Code, options, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert pattern %s: %w", p.ID, err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertPattern(ctx context.Context, pattern *types.Pattern) error {
	return s.upsertPatternWithQuerier(ctx, s.querier(), pattern)
}

func scanPattern(row rowScanner) (*types.Pattern, error) {
	var p types.Pattern
	var description, code sql.NullString
	var components, options string
	if err := row.Scan(&p.ID, &p.Name, &description, &components, &code, &options); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Code = code.String
	if err := fromJSON(components, &p.Components); err != nil {
		return nil, fmt.Errorf("failed to decode pattern %s: %w", p.ID, err)
	}
	if err := fromJSON(options, &p.CustomizationOptions); err != nil {
		return nil, fmt.Errorf("failed to decode pattern %s: %w", p.ID, err)
	}
	return &p, nil
}

const patternColumns = `id, name, description, components, code, customization_options`

func (s *SQLiteStorage) GetPattern(ctx context.Context, id string) (*types.Pattern, error) {
	p, err := scanPattern(s.querier().QueryRowContext(ctx, `SELECT `+patternColumns+` FROM patterns WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *SQLiteStorage) listPatternsWithQuerier(ctx context.Context, q querier) ([]*types.Pattern, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+patternColumns+` FROM patterns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*types.Pattern
	for rows.Next() {
		p, err := scanPattern(rows)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, p)
	}
	return patterns, rows.Err()
}

func (s *SQLiteStorage) ListPatterns(ctx context.Context) ([]*types.Pattern, error) {
	return s.listPatternsWithQuerier(ctx, s.querier())
}

// Example operations

const exampleColumns = `id, component_id, name, description, type, code, tags`

func (s *SQLiteStorage) upsertExampleWithQuerier(ctx context.Context, q querier, e *types.Example) error {
	tags, err := toJSON(e.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode example %s: %w", e.ID, err)
	}

	query := `
		INSERT INTO examples (` + exampleColumns + `, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			component_id = excluded.component_id,
			name = excluded.name,
			description = excluded.description,
			type = excluded.type,
			code = excluded.code,
			tags = excluded.tags,
			updated_at = excluded.updated_at
	`
	_, err = q.ExecContext(ctx, query, e.ID, e.Component, e.Name, e.Description, e.Type, e.Code, tags, time.Now())
	if err != nil {
		return fmt.Errorf("failed to upsert example %s: %w", e.ID, err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertExample(ctx context.Context, example *types.Example) error {
	return s.upsertExampleWithQuerier(ctx, s.querier(), example)
}

func scanExample(row rowScanner) (*types.Example, error) {
	var e types.Example
	var description, typ, code sql.NullString
	var tags string
	if err := row.Scan(&e.ID, &e.Component, &e.Name, &description, &typ, &code, &tags); err != nil {
		return nil, err
	}
	e.Description = description.String
	e.Type = typ.String
	e.Code = code.String
	if err := fromJSON(tags, &e.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode example %s: %w", e.ID, err)
	}
	return &e, nil
}

func (s *SQLiteStorage) GetExample(ctx context.Context, id string) (*types.Example, error) {
	e, err := scanExample(s.querier().QueryRowContext(ctx, `SELECT `+exampleColumns+` FROM examples WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *SQLiteStorage) listExamplesWithQuerier(ctx context.Context, q querier, where string, args ...interface{}) ([]*types.Example, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+exampleColumns+` FROM examples `+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list examples: %w", err)
	}
	defer rows.Close()

	var examples []*types.Example
	for rows.Next() {
		e, err := scanExample(rows)
		if err != nil {
			return nil, err
		}
		examples = append(examples, e)
	}
	return examples, rows.Err()
}

func (s *SQLiteStorage) ListExamples(ctx context.Context) ([]*types.Example, error) {
	return s.listExamplesWithQuerier(ctx, s.querier(), "")
}

func (s *SQLiteStorage) ListExamplesByComponent(ctx context.Context, componentID string) ([]*types.Example, error) {
	return s.listExamplesWithQuerier(ctx, s.querier(), "WHERE component_id = ?", componentID)
}

// Source operations

func (s *SQLiteStorage) upsertSourceWithQuerier(ctx context.Context, q querier, src *Source) error {
	query := `
		INSERT INTO sources (name, content_hash, record_count, loaded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			content_hash = excluded.content_hash,
			record_count = excluded.record_count,
			loaded_at = excluded.loaded_at
	`
	if src.LoadedAt.IsZero() {
		src.LoadedAt = time.Now()
	}
	if _, err := q.ExecContext(ctx, query, src.Name, src.ContentHash[:], src.RecordCount, src.LoadedAt); err != nil {
		return fmt.Errorf("failed to upsert source %s: %w", src.Name, err)
	}
	return nil
}

func (s *SQLiteStorage) UpsertSource(ctx context.Context, source *Source) error {
	return s.upsertSourceWithQuerier(ctx, s.querier(), source)
}

func (s *SQLiteStorage) getSourceWithQuerier(ctx context.Context, q querier, name string) (*Source, error) {
	var src Source
	var hash []byte
	err := q.QueryRowContext(ctx,
		`SELECT name, content_hash, record_count, loaded_at FROM sources WHERE name = ?`, name,
	).Scan(&src.Name, &hash, &src.RecordCount, &src.LoadedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	copy(src.ContentHash[:], hash)
	return &src, nil
}

func (s *SQLiteStorage) GetSource(ctx context.Context, name string) (*Source, error) {
	return s.getSourceWithQuerier(ctx, s.querier(), name)
}

// Status operations

func (s *SQLiteStorage) GetStatus(ctx context.Context) (*CatalogStatus, error) {
	version, err := SchemaVersion(ctx, s.db)
	if err != nil {
		return nil, err
	}

	status := &CatalogStatus{
		SchemaVersion: version,
		DriverName:    DriverName,
		BuildMode:     BuildMode,
	}

	counts := []struct {
		table string
		dst   *int
	}{
		{"components", &status.ComponentsCount},
		{"categories", &status.CategoriesCount},
		{"patterns", &status.PatternsCount},
		{"examples", &status.ExamplesCount},
		{"sources", &status.SourcesCount},
	}
	for _, c := range counts {
		// Table names come from the fixed list above.
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.table, err)
		}
	}

	var lastLoaded sql.NullTime
	err = s.db.QueryRowContext(ctx, "SELECT loaded_at FROM sources ORDER BY loaded_at DESC LIMIT 1").Scan(&lastLoaded)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to read last load time: %w", err)
	}
	if lastLoaded.Valid {
		status.LastLoadedAt = lastLoaded.Time
	}

	return status, nil
}

// Transaction wrappers

func (t *sqliteTx) UpsertComponent(ctx context.Context, component *types.Component) error {
	return t.storage.upsertComponentWithQuerier(ctx, t.querier(), component)
}

func (t *sqliteTx) GetComponent(ctx context.Context, id string) (*types.Component, error) {
	return t.storage.getComponentWithQuerier(ctx, t.querier(), id)
}

func (t *sqliteTx) ListComponents(ctx context.Context) ([]*types.Component, error) {
	return t.storage.listComponentsWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) DeleteComponent(ctx context.Context, id string) error {
	return t.storage.deleteComponentWithQuerier(ctx, t.querier(), id)
}

func (t *sqliteTx) UpsertCategory(ctx context.Context, category *types.Category) error {
	return t.storage.upsertCategoryWithQuerier(ctx, t.querier(), category)
}

func (t *sqliteTx) GetCategory(ctx context.Context, id string) (*types.Category, error) {
	c, err := scanCategory(t.querier().QueryRowContext(ctx, `SELECT id, name, description, components FROM categories WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return c, err
}

func (t *sqliteTx) ListCategories(ctx context.Context) ([]*types.Category, error) {
	return t.storage.listCategoriesWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) UpsertPattern(ctx context.Context, pattern *types.Pattern) error {
	return t.storage.upsertPatternWithQuerier(ctx, t.querier(), pattern)
}

func (t *sqliteTx) GetPattern(ctx context.Context, id string) (*types.Pattern, error) {
	p, err := scanPattern(t.querier().QueryRowContext(ctx, `SELECT `+patternColumns+` FROM patterns WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return p, err
}

func (t *sqliteTx) ListPatterns(ctx context.Context) ([]*types.Pattern, error) {
	return t.storage.listPatternsWithQuerier(ctx, t.querier())
}

func (t *sqliteTx) UpsertExample(ctx context.Context, example *types.Example) error {
	return t.storage.upsertExampleWithQuerier(ctx, t.querier(), example)
}

func (t *sqliteTx) GetExample(ctx context.Context, id string) (*types.Example, error) {
	e, err := scanExample(t.querier().QueryRowContext(ctx, `SELECT `+exampleColumns+` FROM examples WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return e, err
}

func (t *sqliteTx) ListExamples(ctx context.Context) ([]*types.Example, error) {
	return t.storage.listExamplesWithQuerier(ctx, t.querier(), "")
}

func (t *sqliteTx) ListExamplesByComponent(ctx context.Context, componentID string) ([]*types.Example, error) {
	return t.storage.listExamplesWithQuerier(ctx, t.querier(), "WHERE component_id = ?", componentID)
}

func (t *sqliteTx) UpsertSource(ctx context.Context, source *Source) error {
	return t.storage.upsertSourceWithQuerier(ctx, t.querier(), source)
}

func (t *sqliteTx) GetSource(ctx context.Context, name string) (*Source, error) {
	return t.storage.getSourceWithQuerier(ctx, t.querier(), name)
}

func (t *sqliteTx) GetStatus(ctx context.Context) (*CatalogStatus, error) {
	// The single pooled connection is held by the transaction.
	return nil, errors.New("status is not available inside a transaction")
}

func (t *sqliteTx) Close() error {
	// Transactions don't close the underlying connection
	return nil
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	return nil, ErrNestedTx
}

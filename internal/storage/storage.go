package storage

import (
	"context"
	"time"

	"github.com/dshills/cloudscape-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying the component catalogue
type Storage interface {
	// Component operations
	UpsertComponent(ctx context.Context, component *types.Component) error
	GetComponent(ctx context.Context, id string) (*types.Component, error)
	ListComponents(ctx context.Context) ([]*types.Component, error)
	DeleteComponent(ctx context.Context, id string) error

	// Category operations
	UpsertCategory(ctx context.Context, category *types.Category) error
	GetCategory(ctx context.Context, id string) (*types.Category, error)
	ListCategories(ctx context.Context) ([]*types.Category, error)

	// Pattern operations
	UpsertPattern(ctx context.Context, pattern *types.Pattern) error
	GetPattern(ctx context.Context, id string) (*types.Pattern, error)
	ListPatterns(ctx context.Context) ([]*types.Pattern, error)

	// Example operations
	UpsertExample(ctx context.Context, example *types.Example) error
	GetExample(ctx context.Context, id string) (*types.Example, error)
	ListExamples(ctx context.Context) ([]*types.Example, error)
	ListExamplesByComponent(ctx context.Context, componentID string) ([]*types.Example, error)

	// Source operations
	UpsertSource(ctx context.Context, source *Source) error
	GetSource(ctx context.Context, name string) (*Source, error)

	// Status operations
	GetStatus(ctx context.Context) (*CatalogStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Source records a loaded catalogue file
type Source struct {
	Name        string
	ContentHash [32]byte
	RecordCount int
	LoadedAt    time.Time
}

// CatalogStatus contains statistics about the stored catalogue
type CatalogStatus struct {
	SchemaVersion   string
	ComponentsCount int
	CategoriesCount int
	PatternsCount   int
	ExamplesCount   int
	SourcesCount    int
	LastLoadedAt    time.Time
	DriverName      string
	BuildMode       string
}

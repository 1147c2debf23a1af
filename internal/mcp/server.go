package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dshills/cloudscape-mcp/internal/cache"
	"github.com/dshills/cloudscape-mcp/internal/catalog"
	"github.com/dshills/cloudscape-mcp/internal/codegen"
	"github.com/dshills/cloudscape-mcp/internal/config"
	"github.com/dshills/cloudscape-mcp/internal/docs"
	"github.com/dshills/cloudscape-mcp/internal/examples"
	"github.com/dshills/cloudscape-mcp/internal/indexer"
	"github.com/dshills/cloudscape-mcp/internal/logger"
	"github.com/dshills/cloudscape-mcp/internal/registry"
	"github.com/dshills/cloudscape-mcp/internal/searcher"
	"github.com/dshills/cloudscape-mcp/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "cloudscape-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp       *server.MCPServer
	storage   storage.Storage
	registry  *registry.Registry
	searcher  *searcher.Searcher
	generator *codegen.Generator
	docs      *docs.Provider
	examples  *examples.Provider
	cache     *cache.Manager
	reads     *reads
	logger    *zap.Logger
}

// NewServer opens the catalogue store, loads the embedded catalogue into it
// and registers every tool and resource.
func NewServer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	dbPath := cfg.Storage.Path
	if dbPath != config.DefaultStoragePath {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	s, err := newServer(ctx, store, cfg.Cache, log)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return s, nil
}

func newServer(ctx context.Context, store storage.Storage, cacheCfg config.CacheConfig, log *zap.Logger) (*Server, error) {
	idx := indexer.New(store, indexer.WithLogger(log))
	stats, err := idx.IndexCatalog(ctx, catalog.Seed(), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}
	for _, msg := range stats.ErrorMessages {
		log.Warn("catalogue source rejected", zap.String("error", msg))
	}

	reg, err := registry.Load(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	cm, err := cache.NewManager(cache.Config{
		MaxSize: cacheCfg.MaxSize,
		TTL:     cacheCfg.TTL(),
	}, nil, cache.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	s := &Server{
		storage:   store,
		registry:  reg,
		searcher:  searcher.New(reg, searcher.WithLogger(log)),
		generator: codegen.New(reg),
		docs:      docs.NewProvider(reg),
		examples:  examples.NewProvider(reg),
		cache:     cm,
		logger:    log,
	}
	s.reads = s.newReads()

	s.mcp = server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithToolHandlerMiddleware(s.withLogging),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()

	log.Info("catalogue loaded",
		zap.Int("components", len(reg.AllComponents())),
		zap.Int("categories", len(reg.AllCategories())),
		zap.Int("patterns", len(reg.AllPatterns())),
		zap.Int("examples", len(reg.AllExamples())),
		zap.Int("sources_loaded", stats.SourcesLoaded),
		zap.Int("sources_skipped", stats.SourcesSkipped),
		zap.Duration("duration", stats.Duration))

	return s, nil
}

// MCPServer returns the underlying protocol server for other transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Registry returns the loaded catalogue.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Status reports the stored catalogue statistics.
func (s *Server) Status(ctx context.Context) (*storage.CatalogStatus, error) {
	return s.storage.GetStatus(ctx)
}

// Close releases the catalogue store.
func (s *Server) Close() error {
	return s.storage.Close()
}

// Serve runs the MCP server on stdio until ctx is cancelled or stdin closes
func (s *Server) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcp)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// withLogging puts a request-scoped logger in the context and logs each call.
func (s *Server) withLogging(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := s.logger.With(zap.String("tool", request.Params.Name))
		start := time.Now()

		result, err := next(logger.ContextWithLogger(ctx, log), request)

		fields := []zap.Field{zap.Duration("duration", time.Since(start))}
		if err != nil {
			log.Warn("tool call failed", append(fields, zap.Error(err))...)
		} else {
			log.Debug("tool call", fields...)
		}
		return result, err
	}
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	// Search
	s.mcp.AddTool(searchComponentsTool(), s.handleSearchComponents)
	s.mcp.AddTool(searchByFunctionalityTool(), s.handleSearchByFunctionality)
	s.mcp.AddTool(searchPropertiesTool(), s.handleSearchProperties)
	s.mcp.AddTool(searchUsageGuidelinesTool(), s.handleSearchUsageGuidelines)

	// Component metadata
	s.mcp.AddTool(getComponentDetailsTool(), s.handleGetComponentDetails)
	s.mcp.AddTool(getComponentPropertiesTool(), s.handleGetComponentProperties)
	s.mcp.AddTool(getComponentEventsTool(), s.handleGetComponentEvents)
	s.mcp.AddTool(getComponentPatternsTool(), s.handleGetComponentPatterns)
	s.mcp.AddTool(getComponentAccessibilityTool(), s.handleGetComponentAccessibility)
	s.mcp.AddTool(getComponentVersionsTool(), s.handleGetComponentVersions)
	s.mcp.AddTool(getComponentDependenciesTool(), s.handleGetComponentDependencies)
	s.mcp.AddTool(compareComponentsTool(), s.handleCompareComponents)
	s.mcp.AddTool(getComponentAlternativesTool(), s.handleGetComponentAlternatives)
	s.mcp.AddTool(validateComponentPropsTool(), s.handleValidateComponentProps)

	// Examples
	s.mcp.AddTool(getComponentExamplesTool(), s.handleGetComponentExamples)
	s.mcp.AddTool(searchExamplesTool(), s.handleSearchExamples)
	s.mcp.AddTool(getExampleCategoriesTool(), s.handleGetExampleCategories)

	// Code generation
	s.mcp.AddTool(generateComponentCodeTool(), s.handleGenerateComponentCode)
	s.mcp.AddTool(generatePatternCodeTool(), s.handleGeneratePatternCode)
	s.mcp.AddTool(generateComponentInterfaceTool(), s.handleGenerateComponentInterface)

	// Documentation
	s.mcp.AddTool(searchDocumentationTool(), s.handleSearchDocumentation)
	s.mcp.AddTool(getComponentDocumentationTool(), s.handleGetComponentDocumentation)

	// Cache
	s.mcp.AddTool(clearCacheTool(), s.handleClearCache)
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/cloudscape-mcp/internal/config"
	"github.com/dshills/cloudscape-mcp/internal/logger"
	"github.com/dshills/cloudscape-mcp/internal/mcp"
)

// options holds flags shared by every command.
type options struct {
	configPath string
	port       int
	bind       string
	transport  string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cloudscape-mcp",
		Short: "MCP server for Cloudscape Design System component metadata",
		Long: `Serves Cloudscape component metadata, examples, documentation and code
generation to AI coding assistants over the Model Context Protocol.

Without a subcommand the server runs on stdio.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default "+config.DefaultFile+" if present)")
	addServeFlags(root, opts)

	root.AddCommand(
		newServeCmd(opts),
		newSearchCmd(opts),
		newDocsCmd(opts),
		newVersionCmd(),
	)
	return root
}

// loadConfig resolves configuration: flags > environment > file > defaults.
func loadConfig(cmd *cobra.Command, opts *options, lookup func(string) (string, bool)) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return config.Config{}, err
	}
	cfg.ApplyEnv(lookup)

	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if flags.Changed("bind") {
		cfg.Server.Bind = opts.bind
	}
	if flags.Changed("transport") {
		cfg.Server.Transport = opts.transport
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	log, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	return log, nil
}

// openCatalog builds a server for the offline commands. Logging is kept to
// warnings so command output stays readable.
func openCatalog(cmd *cobra.Command, opts *options) (*mcp.Server, error) {
	cfg, err := loadConfig(cmd, opts, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	return mcp.NewServer(commandContext(cmd), cfg, log)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

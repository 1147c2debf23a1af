package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dshills/cloudscape-mcp/internal/config"
	"github.com/dshills/cloudscape-mcp/internal/mcp"
	"github.com/dshills/cloudscape-mcp/internal/metrics"
	"github.com/dshills/cloudscape-mcp/internal/storage"
	"github.com/dshills/cloudscape-mcp/internal/transport/sse"
)

func newServeCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	addServeFlags(cmd, opts)
	return cmd
}

func addServeFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().IntVarP(&opts.port, "port", "p", config.DefaultPort, "port for the SSE transport")
	cmd.Flags().StringVarP(&opts.bind, "bind", "b", config.DefaultBind, "bind address for the SSE transport")
	cmd.Flags().StringVarP(&opts.transport, "transport", "t", config.TransportStdio,
		"transport: "+config.TransportStdio+" or "+config.TransportSSE)
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts, os.LookupEnv)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting cloudscape-mcp",
		zap.String("version", version),
		zap.String("transport", cfg.Server.Transport),
		zap.String("driver", storage.DriverName),
		zap.String("build_mode", storage.BuildMode))

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := mcp.NewServer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer func() {
		if err := srv.Close(); err != nil {
			log.Warn("error closing catalogue store", zap.Error(err))
		}
	}()

	switch cfg.Server.Transport {
	case config.TransportSSE:
		metrics.Register(prometheus.DefaultRegisterer)
		httpSrv := sse.NewServer(srv, advertisedURL(cfg), sse.WithLogger(log))
		err = httpSrv.Run(ctx, cfg.Addr())
	default:
		log.Info("MCP server ready, listening on stdio")
		err = srv.Serve(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	if err != nil {
		log.Error("server error", zap.Error(err))
		return err
	}

	log.Info("server stopped")
	return nil
}

// advertisedURL is the base URL clients are told to post messages to.
func advertisedURL(cfg config.Config) string {
	host := cfg.Server.Bind
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(cfg.Server.Port))
}

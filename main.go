package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/ekaya-inc/acc-semantic-guide/pkg/catalog"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/config"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/handlers"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/logging"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/mcp"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/middleware"
	"github.com/ekaya-inc/acc-semantic-guide/pkg/services"
	"github.com/ekaya-inc/acc-semantic-guide/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	serve := serveCommand()
	return &cli.Command{
		Name:    "acc-guide",
		Usage:   "Guide for building a Microsoft Fabric semantic layer over ACC data",
		Version: Version,
		Flags:   []cli.Flag{configFlag()},
		Action:  serve.Action,
		Commands: []*cli.Command{
			serve,
			daxCommand(),
			tmdlCommand(),
			contextCommand(),
			schemasCommand(),
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP server (default)",
		Description: `Serve the setup wizard, the JSON API and the MCP endpoint.
Configuration is read from config.yaml when present; environment variables override it.`,
		Flags: []cli.Flag{configFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx, cmd.String("config"))
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "path to the YAML configuration file",
		Value: config.DefaultPath,
	}
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath, Version)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.Logging.Level, cfg.Logging.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.Bool("tls", cfg.TLSEnabled()),
		zap.Bool("mcp_enabled", cfg.MCP.Enabled),
	)

	server := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           newHandler(cfg, catalog.Default(), logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if cfg.TLSEnabled() {
			errCh <- server.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
			return
		}
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newHandler wires every route over the given catalog and wraps the mux with
// recovery, request ID and request logging middleware.
func newHandler(cfg *config.Config, c *catalog.Catalog, logger *zap.Logger) http.Handler {
	catalogService := services.NewCatalogService(c, logger)
	codegenService := services.NewCodegenService(c, logger)

	mux := http.NewServeMux()

	handlers.NewHealthHandler(cfg, catalogService, logger).RegisterRoutes(mux)
	handlers.NewCatalogHandler(catalogService, logger).RegisterRoutes(mux)
	handlers.NewCodegenHandler(codegenService, logger).RegisterRoutes(mux)
	handlers.NewUIHandler(ui.DistFS(), logger).RegisterRoutes(mux)

	if cfg.MCP.Enabled {
		mcpServer := mcp.NewServer(handlers.ServiceName, cfg.Version, logger)
		mcpServer.RegisterTools(catalogService, codegenService)
		handlers.NewMCPHandler(mcpServer, logger, cfg.MCP).RegisterRoutes(mux)
	}

	var handler http.Handler = mux
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.Recover(logger)(handler)
	return handler
}

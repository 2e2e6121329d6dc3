// Package server wires configuration, observability, the tool registry, and
// the toolkit router into a serving MCP runtime.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"toolbridge/internal/audit"
	"toolbridge/internal/cache"
	"toolbridge/internal/config"
	tbmcp "toolbridge/internal/mcp"
	"toolbridge/internal/observe"
	"toolbridge/internal/redact"
	"toolbridge/internal/router"
)

type Options struct {
	ConfigPath         string
	Kubeconfig         string
	Context            string
	Toolkits           []string
	ReadOnly           bool
	DisableDestructive bool
	LogLevel           string
	HTTPAddr           string
	Version            string
	Stderr             io.Writer
}

func Run(ctx context.Context, opts Options) error {
	errOut := opts.Stderr
	if errOut == nil {
		errOut = os.Stderr
	}
	configPath := opts.ConfigPath
	if configPath == "" {
		if env := os.Getenv("TOOLBRIDGE_CONFIG"); env != "" {
			configPath = env
		}
	}
	overrides := config.Overrides{}
	if opts.Kubeconfig != "" {
		overrides.Kubeconfig = &opts.Kubeconfig
	}
	if opts.Context != "" {
		overrides.Context = &opts.Context
	}
	if len(opts.Toolkits) > 0 {
		overrides.Toolkits = &opts.Toolkits
	}
	if opts.ReadOnly {
		overrides.ReadOnly = &opts.ReadOnly
	}
	if opts.DisableDestructive {
		overrides.DisableDestructive = &opts.DisableDestructive
	}
	if opts.LogLevel != "" {
		overrides.LogLevel = &opts.LogLevel
	}
	if opts.HTTPAddr != "" {
		overrides.HTTPAddr = &opts.HTTPAddr
	}

	cfg, err := config.Load(configPath, "", overrides)
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	logger := newLogger(cfg.LogLevel, errOut)

	if cfg.MetricsAddr != "" {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
			ServiceName:    "toolbridge",
			ServiceVersion: opts.Version,
		})
		if err != nil {
			return fmt.Errorf("metrics init failed: %w", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(flushCtx)
		}()
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{Name: "toolbridge", Version: opts.Version}, nil)
	toolCtx, reg, rt := buildRuntime(&cfg, errOut, logger, server)

	for _, spec := range router.MetaToolSpecs(rt) {
		if err := reg.Add(spec); err != nil {
			return fmt.Errorf("meta tool registration failed: %w", err)
		}
	}
	if _, err := tbmcp.RegisterSDKTools(server, reg, toolCtx); err != nil {
		return fmt.Errorf("tool registration failed: %w", err)
	}

	preload(ctx, rt, cfg.Toolkits, logger)

	reloadCh := make(chan os.Signal, 1)
	notifyReload(reloadCh)
	go func() {
		for range reloadCh {
			cfg, err := config.Load(configPath, "", overrides)
			if err != nil {
				logger.Warn("config reload failed", "error", err)
				continue
			}
			*toolCtx.Config = cfg
			preload(ctx, rt, cfg.Toolkits, logger)
			logger.Info("config reloaded", "toolkits", cfg.Toolkits)
		}
	}()

	if cfg.HTTPAddr != "" {
		return serveHTTP(ctx, cfg.HTTPAddr, server, logger)
	}
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// buildRuntime assembles the shared tool context, the live registry, and the
// router bound to the serving runtime.
func buildRuntime(cfg *config.Config, errOut io.Writer, logger *slog.Logger, server *sdkmcp.Server) (tbmcp.ToolContext, *tbmcp.ToolRegistry, *router.Router) {
	reg := tbmcp.NewRegistry(cfg)
	toolCtx := tbmcp.ToolContext{
		Config:   cfg,
		Audit:    audit.NewLogger(errOut),
		Redactor: redact.New(),
		Cache:    cache.NewStore(),
		Services: tbmcp.NewServiceRegistry(),
		Registry: reg,
		Metrics:  observe.DefaultMetrics(),
		Logger:   logger,
	}
	toolCtx.Invoker = tbmcp.NewToolInvoker(reg, toolCtx)
	rt := router.New(server, reg, toolCtx)
	return toolCtx, reg, rt
}

// preload registers the config-listed toolkits up front. Failures are logged
// and skipped so one broken toolkit cannot take the server down; clients can
// retry through register_toolkit.
func preload(ctx context.Context, rt *router.Router, toolkits []string, logger *slog.Logger) {
	for _, name := range toolkits {
		outcome := rt.Register(ctx, name, nil)
		if outcome.Status != router.StatusSuccess {
			logger.Warn("toolkit preload incomplete", "toolkit", name, "status", outcome.Status, "message", outcome.Message)
		}
	}
}

func serveHTTP(ctx context.Context, addr string, server *sdkmcp.Server, logger *slog.Logger) error {
	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return server
	}, nil)
	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	logger.Info("serving mcp over http", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("metrics server stopped", "error", err)
	}
}

func newLogger(level string, out io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: lvl}))
}

package command

import (
	"context"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/yndnr/login-challenge-go/internal/cli/config"
	"github.com/yndnr/login-challenge-go/internal/core/service"
	"github.com/yndnr/login-challenge-go/internal/core/session"
	"github.com/yndnr/login-challenge-go/internal/infra/confloader"
	"github.com/yndnr/login-challenge-go/internal/infra/shutdown"
	"github.com/yndnr/login-challenge-go/internal/server/httpserver"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
	"github.com/yndnr/login-challenge-go/internal/telemetry/metric"
)

// ShutdownTimeout bounds how long shutdown hooks may run.
const ShutdownTimeout = 5 * time.Second

// Runtime holds the wired application components.
type Runtime struct {
	Config     *config.Config
	Log        logger.Logger
	Store      *session.Store
	Controller *service.Controller
	Metrics    *metric.Registry
	Shutdown   *shutdown.Handler

	mu          sync.Mutex
	diagnostics *httpserver.Server
	watcher     *confloader.Watcher
}

// NewRuntime wires the session store, gateways, controller and metrics
// registry from cfg. Extra gateway options are applied after the ones
// derived from cfg.
func NewRuntime(cfg *config.Config, log logger.Logger, opts ...service.GatewayOption) (*Runtime, error) {
	if log == nil {
		log = logger.Default()
	}

	store := session.NewStore(
		session.WithTTL(cfg.Session.TTL),
		session.WithLogger(log),
	)

	gwOpts := append([]service.GatewayOption{
		service.WithOutcomes(config.ToOutcomes(cfg)),
		service.WithGatewayLogger(log),
	}, opts...)

	auth, err := service.NewAuthGateway(store, config.ToAuthConfig(cfg), gwOpts...)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create auth gateway: %w", err)
	}
	users, err := service.NewUserGateway(store, nil, cfg.Simulation.Latency, gwOpts...)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create user gateway: %w", err)
	}

	metrics := metric.NewRegistry()
	ctrl, err := service.NewController(store, auth, users,
		service.WithRecorder(metrics),
		service.WithLogger(log),
	)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create controller: %w", err)
	}

	rt := &Runtime{
		Config:     cfg,
		Log:        log,
		Store:      store,
		Controller: ctrl,
		Metrics:    metrics,
		Shutdown: shutdown.NewHandler(ShutdownTimeout,
			shutdown.WithSignals(syscall.SIGTERM),
			shutdown.WithLogger(log),
		),
	}

	// Hooks run in reverse order, so the controller closes last.
	rt.Shutdown.OnShutdown(func(ctx context.Context) error {
		ctrl.Close()
		return nil
	})
	return rt, nil
}

// StartDiagnostics starts the diagnostics HTTP server when diagnostics.addr
// is set.
func (rt *Runtime) StartDiagnostics() error {
	addr := rt.Config.Diagnostics.Addr
	if addr == "" {
		return nil
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Status:          rt.Controller,
		Metrics:         rt.Metrics.Handler(),
		Logger:          rt.Log,
		EnableAccessLog: true,
	})
	srv := httpserver.New(addr, router)
	if err := srv.Start(func(err error) {
		rt.Log.Error("diagnostics server failed", "error", err)
	}); err != nil {
		return fmt.Errorf("start diagnostics server: %w", err)
	}

	rt.mu.Lock()
	rt.diagnostics = srv
	rt.mu.Unlock()

	rt.Shutdown.OnShutdown(srv.Shutdown)
	rt.Log.Info("diagnostics server listening", "addr", srv.Addr())
	return nil
}

// DiagnosticsAddr returns the bound diagnostics address, or "" when the
// server is not running.
func (rt *Runtime) DiagnosticsAddr() string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.diagnostics == nil {
		return ""
	}
	return rt.diagnostics.Addr()
}

// WatchConfig reloads path with overrides whenever it changes and applies
// the new log level. Other settings take effect on the next start.
func (rt *Runtime) WatchConfig(path string, overrides map[string]any) error {
	if path == "" {
		return fmt.Errorf("--watch-config requires --config")
	}

	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(rt.Log))
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	if err := w.Watch(path); err != nil {
		w.Stop()
		return fmt.Errorf("watch config: %w", err)
	}
	w.OnChange(func(string) {
		rt.reloadConfig(path, overrides)
	})
	w.StartAsync()

	rt.mu.Lock()
	rt.watcher = w
	rt.mu.Unlock()

	rt.Shutdown.OnShutdown(func(ctx context.Context) error {
		return w.Stop()
	})
	rt.Log.Info("watching configuration", "path", path)
	return nil
}

func (rt *Runtime) reloadConfig(path string, overrides map[string]any) {
	cfg, err := config.Load(path, overrides)
	if err == nil {
		err = config.Verify(cfg)
	}
	if err != nil {
		rt.Log.Warn("configuration reload failed, keeping current settings",
			"path", path,
			"error", err,
		)
		return
	}

	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		rt.Log.Warn("configuration reload failed, keeping current settings", "path", path, "error", err)
		return
	}
	rt.Log.Info("configuration reloaded", "path", path, "log_level", cfg.Log.Level)
}

// Close runs the shutdown hooks once.
func (rt *Runtime) Close() error {
	return rt.Shutdown.Shutdown()
}

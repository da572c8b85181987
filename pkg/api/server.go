package api

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/hwstat/pkg/collector"
	"github.com/NVIDIA/hwstat/pkg/defaults"
	"github.com/NVIDIA/hwstat/pkg/errors"
	"github.com/NVIDIA/hwstat/pkg/logging"
	"github.com/NVIDIA/hwstat/pkg/sampler"
	"github.com/NVIDIA/hwstat/pkg/server"
	"github.com/NVIDIA/hwstat/pkg/sink"
	"github.com/NVIDIA/hwstat/pkg/snapshotter"
	"github.com/NVIDIA/hwstat/pkg/source"
)

const (
	name           = "hwstatd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/hwstat/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Config selects what the daemon samples and where it listens.
type Config struct {
	// SysRoot is the sysfs mount point. Defaults to defaults.SysRoot.
	SysRoot string

	// Address and Port override the server defaults (all interfaces, PORT
	// or 8080) when set.
	Address string
	Port    int

	// Version is stamped into documents. Defaults to the build version.
	Version string

	// Registerer receives the store exporter. Defaults to
	// prometheus.DefaultRegisterer, which backs /metrics.
	Registerer prometheus.Registerer
}

// Daemon samples the node's sensors and serves them over HTTP.
type Daemon struct {
	groups   []source.Group
	store    *sampler.Store
	tx       *sampler.Sender
	rx       *sampler.Receiver
	tracker  *sink.Tracker
	watchdog *sink.Watchdog
	server   *server.Server
}

// New discovers every source under cfg.SysRoot and prepares the sampling
// pipeline. Nothing is read until Run. A discovery failure is fatal.
func New(ctx context.Context, cfg Config) (*Daemon, error) {
	if cfg.SysRoot == "" {
		cfg.SysRoot = defaults.SysRoot
	}

	groups, err := collector.Discover(ctx, collector.NewDefaultFactory(collector.WithSysRoot(cfg.SysRoot)))
	if err != nil {
		return nil, err
	}
	return newDaemon(groups, cfg)
}

// newDaemon takes ownership of groups; they are closed on failure.
func newDaemon(groups []source.Group, cfg Config) (*Daemon, error) {
	if cfg.Version == "" {
		cfg.Version = version
	}
	if cfg.Registerer == nil {
		cfg.Registerer = prometheus.DefaultRegisterer
	}

	cat, err := sampler.FromGroups(groups)
	if err != nil {
		_ = source.CloseAll(groups)
		return nil, errors.Wrap(errors.ErrCodeDiscovery, "failed to build catalogue", err)
	}
	slog.Info("sources discovered", "groups", len(groups), "sources", cat.Len(), "sysRoot", cfg.SysRoot)

	store := sampler.NewStore(cat)
	if err := cfg.Registerer.Register(sink.NewExporter(store)); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !stderrors.As(err, &are) {
			_ = source.CloseAll(groups)
			return nil, errors.Wrap(errors.ErrCodeInternal, "failed to register exporter", err)
		}
		slog.Warn("store exporter already registered, keeping the existing one")
	}

	tx, rx := sampler.NewChannel()
	d := &Daemon{
		groups:   groups,
		store:    store,
		tx:       tx,
		rx:       rx,
		tracker:  sink.NewTracker(store),
		watchdog: sink.NewWatchdog(),
	}

	h := &snapshotter.StoreHandler{
		Store:   store,
		Version: cfg.Version,
		Sources: snapshotter.NewCatalogue(groups, cfg.Version),
	}
	r := map[string]http.HandlerFunc{
		"/v1/snapshot": h.HandleSnapshot,
		"/v1/sources":  h.HandleSources,
	}

	scfg := server.NewConfig()
	if cfg.Address != "" {
		scfg.Address = cfg.Address
	}
	if cfg.Port != 0 {
		scfg.Port = cfg.Port
	}

	opts := []server.Option{
		server.WithConfig(scfg),
		server.WithName(name),
		server.WithVersion(cfg.Version),
		server.WithHandler(r),
		server.WithReadinessCheck(d.tracker.Check),
	}
	d.server = server.New(opts...)

	return d, nil
}

// Store returns the sampling store.
func (d *Daemon) Store() *sampler.Store {
	return d.store
}

// Server returns the HTTP server.
func (d *Daemon) Server() *server.Server {
	return d.server
}

// Run samples and serves until ctx is done, a signal arrives or the
// server fails. Sources are closed on return, after sampling has stopped.
func (d *Daemon) Run(ctx context.Context) error {
	defer func() {
		if err := source.CloseAll(d.groups); err != nil {
			slog.Warn("failed to close sources", "error", err)
		}
	}()
	defer d.watchdog.Stopping()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Sampling runs outside the group. A poisoned store stops the engine
	// only; the server keeps reporting it through /ready and /v1/snapshot.
	sampling := make(chan struct{})
	go func() {
		defer close(sampling)
		if err := sampler.NewScheduler(sampler.NewEngine(d.store, d.tx)).Run(); err != nil {
			slog.Error("sampling stopped, serving the last snapshot", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	// Consume closes the receiver on exit, which stops the scheduler at
	// its next tick.
	g.Go(func() error {
		return sink.Consume(gctx, d.rx, d.store, sink.Multi(d.tracker, d.watchdog))
	})

	g.Go(func() error {
		defer cancel()
		return d.server.Run(gctx)
	})

	err := g.Wait()
	<-sampling
	return err
}

// Serve starts the daemon with the build version and blocks until
// shutdown.
func Serve(ctx context.Context, cfg Config) error {
	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	d, err := New(ctx, cfg)
	if err != nil {
		slog.Error("discovery failed", errors.LogAttrs(err)...)
		return err
	}

	if err := d.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/tradeboard/internal/client/client"
	"github.com/dmitrijs2005/tradeboard/internal/client/config"
	"github.com/dmitrijs2005/tradeboard/internal/client/lifecycle"
	"github.com/dmitrijs2005/tradeboard/internal/client/metrics"
	"github.com/dmitrijs2005/tradeboard/internal/client/services"
	"github.com/dmitrijs2005/tradeboard/internal/client/session"
	"github.com/dmitrijs2005/tradeboard/internal/client/transport"
	"github.com/dmitrijs2005/tradeboard/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// Services are the flows the REPL drives.
type Services struct {
	Auth      services.AuthService
	Catalog   services.CatalogService
	Admin     services.AdminService
	Lifecycle *lifecycle.Service
}

type App struct {
	config   *config.Config
	svc      Services
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	registry *prometheus.Registry
	db       *sql.DB

	mu   sync.RWMutex
	mode Mode
}

// NewApp opens the session database and builds the client stack from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, "text")

	db, err := session.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}
	store := session.NewSQLiteStore(db)

	reg := prometheus.NewRegistry()
	tr := transport.New(transport.Config{
		MaxAttempts:    c.MaxAttempts,
		BaseDelay:      c.BaseDelay,
		MaxDelay:       c.MaxDelay,
		RequestTimeout: c.RequestTimeout,
	}, transport.WithLogger(logger), transport.WithMetrics(metrics.NewCollector(reg)))

	api := client.NewRESTClient(c.APIBaseURL, tr)

	a := newApp(c, bufio.NewReader(os.Stdin), os.Stdout, logger)
	a.db = db
	a.registry = reg
	a.svc = Services{
		Auth:      services.NewAuthService(api, store),
		Catalog:   services.NewCatalogService(api, logger),
		Admin:     services.NewAdminService(api, store),
		Lifecycle: lifecycle.NewService(api, store, lifecycle.ConfirmFunc(a.confirm), lifecycle.WithLogger(logger)),
	}
	return a, nil
}

func newApp(c *config.Config, r *bufio.Reader, w io.Writer, log logging.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{config: c, reader: r, out: w, log: log}
}

func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	if a.config.MetricsAddr != "" && a.registry != nil {
		go a.serveMetrics(ctx)
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	a.Root(ctx)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Error(context.Background(), "closing session database", "error", err)
		}
	}
}

func (a *App) serveMetrics(ctx context.Context) {
	srv := &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           metrics.SetupMetricsRoute(a.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error(ctx, "metrics listener stopped", "error", err)
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

// StartOnlineStatusWatcher probes the backend every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.svc.Auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

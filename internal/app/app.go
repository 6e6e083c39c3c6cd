// Package app wires storage, domain services and transports together.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/sidetrack/internal/config"
	"github.com/rpggio/sidetrack/internal/domain/activity"
	"github.com/rpggio/sidetrack/internal/domain/dashboard"
	"github.com/rpggio/sidetrack/internal/domain/importer"
	"github.com/rpggio/sidetrack/internal/exporter"
	"github.com/rpggio/sidetrack/internal/mcp"
	"github.com/rpggio/sidetrack/internal/notify"
	"github.com/rpggio/sidetrack/internal/sqlite"
	"github.com/rpggio/sidetrack/internal/transport"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// App holds the wired services of one running instance.
type App struct {
	DB        *sqlite.DB
	Dashboard *dashboard.Service
	Activity  *activity.Service
	Imports   *importer.Reconciler
	Exporter  *exporter.Exporter
	Notifier  notify.Notifier
	MCP       *sdkmcp.Server

	logger *slog.Logger
	now    func() time.Time
}

// Options override defaults used by New.
type Options struct {
	// Notifier receives user-facing notifications. Defaults to a LogNotifier.
	Notifier notify.Notifier
	// Saver stores exports. Defaults to a DirSaver on the configured export dir.
	Saver exporter.FileSaver
	Now   func() time.Time
	NewID func() string
}

// OpenDB opens the configured database and applies the schema.
func OpenDB(cfg config.Config) (*sqlite.DB, error) {
	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, fmt.Errorf("preparing database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// New wires every service on top of db and loads the collection.
func New(ctx context.Context, cfg config.Config, db *sqlite.DB, logger *slog.Logger, opts Options) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewLogNotifier(logger)
	}
	saver := opts.Saver
	if saver == nil {
		saver = exporter.DirSaver{Dir: cfg.Export.Dir}
	}

	activitySvc := activity.NewService(sqlite.NewJournal(db), logger)
	store := sqlite.NewProjectStore(sqlite.NewBlobStore(db), cfg.Store.Key)

	dashOpts := []dashboard.Option{
		dashboard.WithClock(now),
		dashboard.WithJournal(activitySvc),
		dashboard.WithNotifier(notifier),
	}
	if opts.NewID != nil {
		dashOpts = append(dashOpts, dashboard.WithIDGenerator(opts.NewID))
	}
	dash := dashboard.NewService(store, logger, dashOpts...)
	dash.Load(ctx)

	a := &App{
		DB:        db,
		Dashboard: dash,
		Activity:  activitySvc,
		Imports:   importer.NewReconciler(dash, notifier, logger),
		Exporter:  exporter.New(saver, notifier).WithJournal(activitySvc),
		Notifier:  notifier,
		logger:    logger,
		now:       now,
	}
	a.MCP = mcp.NewServer(mcp.Config{
		Services: a.mcpServices(),
		Version:  Version,
		Logger:   logger,
	})
	return a
}

// Now is the clock the services were wired with.
func (a *App) Now() time.Time {
	return a.now()
}

func (a *App) mcpServices() mcp.Services {
	return mcp.Services{
		Dashboard: a.Dashboard,
		Imports:   a.Imports,
		Activity:  a.Activity,
		Now:       a.now,
	}
}

// Router serves JSON-RPC, downloads, uploads and streamable MCP over HTTP.
func (a *App) Router() *chi.Mux {
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return a.MCP },
		&sdkmcp.StreamableHTTPOptions{
			SessionTimeout: 30 * time.Minute,
			Logger:         a.logger,
		},
	)
	return transport.NewServer(transport.Deps{
		RPC:      mcp.NewHandler(a.mcpServices()),
		Projects: a.Dashboard,
		Imports:  a.Imports,
		Notifier: a.Notifier,
		MCP:      mcpHandler,
		Logger:   a.logger,
		Now:      a.now,
	})
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

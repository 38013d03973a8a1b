package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hoardapp/hoard/internal/bookmarks"
	"github.com/hoardapp/hoard/internal/config"
	"github.com/hoardapp/hoard/internal/httpserver"
	"github.com/hoardapp/hoard/internal/httpserver/deps"
	"github.com/hoardapp/hoard/internal/logger"
	"github.com/hoardapp/hoard/internal/scheduler"
	"github.com/hoardapp/hoard/internal/sources/rootsfile"
	"github.com/hoardapp/hoard/internal/storage"
	"github.com/hoardapp/hoard/internal/version"
)

type App struct {
	cfg       *config.Config
	logger    logger.Logger
	server    *httpserver.Server
	storage   *storage.Manager
	rescanner *scheduler.Rescanner
	trash     *scheduler.TrashCollector
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Load storage root descriptors from storages.yaml.
	rootsConfig, err := rootsfile.NewLoader(cfg.StorageFile).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load storages file: %w", err)
	}
	roots, err := rootsfile.NewMapper().MapRoots(rootsConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid storages file: %w", err)
	}

	// Initialize the storage engine - fail fast on an unusable root.
	manager := storage.NewManager(loggerClient, cfg.LockTimeout)
	if err := manager.Initialize(roots); err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	loggerClient.Info("storage initialized",
		logger.Int("roots", len(roots)),
		logger.String("current", manager.CurrentRootName()))

	service := bookmarks.NewService(manager, loggerClient)

	// Manual rescan trigger channel, wired to POST /reload.
	rescanTrigger := make(chan struct{}, 1)
	rescanner := scheduler.NewRescanner(manager, loggerClient, cfg.RescanInterval, rescanTrigger)

	// Trash collection is opt-in: retention 0 keeps tombstones forever.
	var trash *scheduler.TrashCollector
	if cfg.TrashRetention > 0 {
		trash = scheduler.NewTrashCollector(
			service, manager, loggerClient, cfg.TrashInterval, cfg.TrashRetention)
	} else {
		loggerClient.Info("trash retention not configured, soft-deleted bookmarks are kept forever")
	}

	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		Storage:       manager,
		Bookmarks:     service,
		RescanTrigger: rescanTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:       cfg,
		logger:    loggerClient,
		server:    server,
		storage:   manager,
		rescanner: rescanner,
		trash:     trash,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Hoard v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Hoard %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.rescanner.Start(ctx)
	a.logger.Info("index rescanner started",
		logger.Duration("interval", a.cfg.RescanInterval))

	if a.trash != nil {
		a.trash.Start(ctx)
		a.logger.Info("trash collector started",
			logger.Duration("interval", a.cfg.TrashInterval),
			logger.Duration("retention", a.cfg.TrashRetention))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.rescanner.Stop()
	if a.trash != nil {
		a.trash.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ Hoard stopped cleanly")
	return nil
}

package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	dbaudit "github.com/mrlokans/bookshelf/internal/database/audit"
	"github.com/mrlokans/bookshelf/internal/database/books"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/security"
	"github.com/mrlokans/bookshelf/internal/sessions"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is cancelled or the listener fails,
// then shuts it down within the configured timeout. onShutdown runs before the
// server stops accepting requests; drains run once in-flight requests are done.
func Serve(ctx context.Context, router http.Handler, cfg *config.Config, onShutdown ShutdownFunc, drains ...func()) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Starting server at %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := cfg.ShutdownTimeout()
		log.Printf("Shutdown Server, waiting %v before killing", timeout)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		// Background work stops before the server
		if onShutdown != nil {
			onShutdown(shutdownCtx)
		}

		err := srv.Shutdown(shutdownCtx)
		for _, drain := range drains {
			drain()
		}
		if err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		log.Println("Server exiting")
		return nil
	})

	return g.Wait()
}

// Run wires every component from cfg and serves until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting Bookshelf v%s", version)

	logLevel := logger.Warn
	if cfg.Database.Debug {
		logLevel = logger.Info
	}
	db, err := database.NewDatabaseWithOptions(cfg.Database.Path, database.Options{LogLevel: logLevel})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	repo := books.NewRepository(db.DB)

	routerCfg := http_controllers.RouterConfig{
		Store:         repo,
		Stats:         repo,
		Database:      db,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		SecureCookies: cfg.Sessions.SecureCookies,
		ReadOnly:      readonly.NewMiddleware(cfg.ReadOnly.Enabled, http_controllers.AllowInReadOnly),
		Version:       version,
	}
	if cfg.ReadOnly.Enabled {
		log.Printf("Read-only mode enabled - write operations will be blocked")
	}

	var auditService *audit.Service
	var reporter tasks.Reporter
	if cfg.Audit.Enabled {
		auditService = audit.NewService(dbaudit.NewRepository(db.DB))
		reporter = auditService
		routerCfg.Auditor = auditService
		routerCfg.AuditEvents = auditService
		routerCfg.History = auditService
	}

	if cfg.Sessions.Enabled {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get SQL DB for sessions: %w", err)
		}
		routerCfg.Sessions, err = sessions.NewManager(sqlDB, cfg.Sessions)
		if err != nil {
			return fmt.Errorf("failed to initialize session manager: %w", err)
		}
	}

	if cfg.Security.CSRFEnabled {
		routerCfg.CSRFSecret, err = csrfSecret(cfg.Security.CSRFSecret)
		if err != nil {
			return err
		}
	}

	taskCfg := tasks.Config{
		Workers:            cfg.Tasks.Workers,
		ReleaseAfter:       cfg.Tasks.ReleaseAfter,
		CleanupInterval:    cfg.Tasks.CleanupInterval,
		AuditRetentionDays: cfg.Audit.RetentionDays,
	}

	var taskClient *tasks.Client
	var maintenance *scheduler.MaintenanceScheduler
	taskCtx, taskCancel := context.WithCancel(context.Background())
	defer taskCancel()

	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize task queue: %w", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCleanupOrphanAuthorsQueue(repo, reporter))
		if auditService != nil {
			taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService, reporter))
		}
		go taskClient.Start(taskCtx)

		routerCfg.TaskQueue = taskClient
		routerCfg.TaskConfig = taskCfg

		if cfg.Maintenance.Enabled {
			maintenance = scheduler.NewMaintenanceScheduler(taskClient, cfg.Maintenance.Schedule, taskCfg)
			if err := maintenance.Start(ctx); err != nil {
				return fmt.Errorf("failed to start maintenance scheduler: %w", err)
			}
		}
	}

	router, err := http_controllers.NewRouter(routerCfg)
	if err != nil {
		return err
	}

	onShutdown := func(ctx context.Context) {
		if maintenance != nil {
			maintenance.Stop()
		}
		if taskClient != nil {
			taskClient.Stop(ctx)
			taskCancel()
		}
	}

	var drains []func()
	if auditService != nil {
		drains = append(drains, auditService.Wait)
	}

	return Serve(ctx, router, cfg, onShutdown, drains...)
}

// csrfSecret decodes a hex secret, falls back to the raw bytes, or generates
// a random secret that lasts for this process only.
func csrfSecret(configured string) ([]byte, error) {
	if configured == "" {
		secret, err := security.GenerateSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate CSRF secret: %w", err)
		}
		log.Printf("Generated CSRF secret (set CSRF_SECRET to persist)")
		return secret, nil
	}

	if secret, err := hex.DecodeString(configured); err == nil && len(secret) == 32 {
		return secret, nil
	}
	if len(configured) != 32 {
		return nil, fmt.Errorf("CSRF_SECRET must be 32 bytes or 64 hex characters")
	}
	return []byte(configured), nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/campuskit/homeroom/internal/school/http"
	"github.com/campuskit/homeroom/internal/school/service"
	"github.com/campuskit/homeroom/internal/school/slot"
	"github.com/campuskit/homeroom/internal/school/store"
	"github.com/campuskit/homeroom/internal/school/store/drivers/memory"
	"github.com/campuskit/homeroom/internal/school/store/drivers/redis"
	"github.com/campuskit/homeroom/internal/school/store/drivers/sqlite"
	"github.com/campuskit/homeroom/pkg/cryptox"
	"github.com/campuskit/homeroom/pkg/jwtx"
	"github.com/campuskit/homeroom/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	// slotKeyPurpose labels the key derivation for the session sealer, so
	// other uses of the machine secret cannot produce a valid session token.
	slotKeyPurpose = "session-slot"

	// sealKeyPurpose labels the key that encrypts the slot file at rest.
	sealKeyPurpose = "slot-at-rest"
)

// Application wires the daemon together: shared record store, session
// machinery, view filtering and the loopback HTTP facade.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db      store.Store
	sealer  *jwtx.HS256
	sealKey []byte

	// Services
	sessionService   *service.SessionService
	viewService      *service.ViewService
	rosterService    *service.RosterService
	bootstrapService *service.BootstrapService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// When the durable slot holds a valid session from a previous run it is
// re-established here, so a dashboard that kept its token just keeps going.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "homeroomd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initStore(); err != nil {
		return nil, err
	}

	if err := app.initSealer(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	ctx := context.Background()
	if err := app.bootstrapService.Seed(ctx); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("seed admin account: %w", err)
	}

	if sess, ok := app.sessionService.Restore(ctx); ok {
		app.logger.Info("session restored from slot", "role", sess.Role().String())
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.viewService.Start()

	app.logger.Info("homeroom daemon starting",
		"addr", app.cfg.ListenAddr,
		"driver", app.cfg.StoreDriver,
		"version", BuildVersion,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application. The session is left in
// the durable slot on purpose; the next start restores it.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down homeroom daemon...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server first so no request observes a stopped
	// view service.
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.viewService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}

	app.logger.Info("homeroom daemon stopped")
	return nil
}

// initStore connects the configured shared record store and prepares its
// schema where the driver has one.
func (app *Application) initStore() error {
	switch app.cfg.StoreDriver {
	case "memory":
		app.db = memory.NewStore()

	case "sqlite":
		dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.SQLitePath)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("apply sqlite migrations: %w", err)
		}
		app.db = db

	case "redis":
		db, err := redis.NewStore(app.cfg.RedisURL, app.cfg.RedisNamespace)
		if err != nil {
			return fmt.Errorf("connect redis store: %w", err)
		}
		app.db = db

	default:
		return fmt.Errorf("unknown store driver %q", app.cfg.StoreDriver)
	}

	app.logger.Info("record store ready", "driver", app.cfg.StoreDriver)
	return nil
}

// initSealer derives the session signing and slot sealing keys from the
// per-machine secret.
func (app *Application) initSealer() error {
	secret, err := cryptox.LoadOrCreateSecret(app.cfg.SecretPath)
	if err != nil {
		return fmt.Errorf("load machine secret: %w", err)
	}

	sealer, err := jwtx.NewHS256(cryptox.DeriveKey(secret, slotKeyPurpose), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("initialize session sealer: %w", err)
	}

	app.sealer = sealer
	app.sealKey = cryptox.DeriveKey(secret, sealKeyPurpose)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	fileSlot, err := slot.NewFile(app.cfg.SlotPath)
	if err != nil {
		return fmt.Errorf("open session slot: %w", err)
	}

	app.sessionService = &service.SessionService{
		Store:  app.db,
		Slot:   slot.NewSealed(fileSlot, app.sealKey),
		Sealer: app.sealer,
		Issuer: app.cfg.Issuer,
	}

	app.viewService = service.NewViewService(app.db, app.sessionService, app.logger)

	app.rosterService = &service.RosterService{
		Store:    app.db,
		Sessions: app.sessionService,
		Views:    app.viewService,
	}

	app.bootstrapService = &service.BootstrapService{
		Store:         app.db,
		AdminUsername: app.cfg.AdminUsername,
		AdminPassword: app.cfg.AdminPassword,
		AdminName:     app.cfg.AdminName,
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sealer,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.Sessions = app.sessionService
	router.Views = app.viewService
	router.Roster = app.rosterService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              app.cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
